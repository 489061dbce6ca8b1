package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create persiste un traslado.
func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO transfers (id, product_id, quantity, from_warehouse_id, to_warehouse_id, reason, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		transfer.ID, transfer.ProductID, transfer.Quantity, transfer.FromWarehouseID,
		transfer.ToWarehouseID, transfer.Reason, transfer.CreatedBy, transfer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	var t entity.Transfer
	err := r.q.QueryRow(context.Background(),
		`SELECT id, product_id, quantity, from_warehouse_id, to_warehouse_id, reason, created_by, created_at
		 FROM transfers WHERE id = $1`, id,
	).Scan(&t.ID, &t.ProductID, &t.Quantity, &t.FromWarehouseID, &t.ToWarehouseID, &t.Reason, &t.CreatedBy, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return &t, nil
}

// List lista traslados con filtro opcional de rango de fechas.
func (r *TransferRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Transfer, error) {
	query := `
		SELECT id, product_id, quantity, from_warehouse_id, to_warehouse_id, reason, created_by, created_at
		FROM transfers
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at <= $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		if err := rows.Scan(&t.ID, &t.ProductID, &t.Quantity, &t.FromWarehouseID, &t.ToWarehouseID, &t.Reason, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
