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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL. Sin DELETE:
// la cancelación es una marca blanda.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, COALESCE(customer_id, ''), product_id, quantity, unit_price, subtotal, total,
	payment_method, warehouse_id, salesperson, notes, cancelled, cancelled_at, COALESCE(cancelled_by, ''), created_at`

// Create persiste una venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, customer_id, product_id, quantity, unit_price, subtotal, total,
			payment_method, warehouse_id, salesperson, notes, cancelled, created_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.CustomerID, sale.ProductID, sale.Quantity, sale.UnitPrice,
		sale.Subtotal, sale.Total, sale.PaymentMethod, sale.WarehouseID,
		sale.Salesperson, sale.Notes, sale.Cancelled, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.CustomerID, &s.ProductID, &s.Quantity, &s.UnitPrice, &s.Subtotal, &s.Total,
		&s.PaymentMethod, &s.WarehouseID, &s.Salesperson, &s.Notes,
		&s.Cancelled, &s.CancelledAt, &s.CancelledBy, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// Cancel marca la venta como cancelada (marca blanda, sin reversión de stock).
func (r *SaleRepo) Cancel(id, userID, reason string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales SET cancelled = true, cancelled_at = $2, cancelled_by = $3,
			notes = CASE WHEN $4 = '' THEN notes ELSE trim(both ' | ' from notes || ' | anulada: ' || $4) END
		 WHERE id = $1`,
		id, at, userID, reason)
	if err != nil {
		return fmt.Errorf("cancel sale: %w", err)
	}
	return nil
}

// List lista ventas con filtros opcionales de rango y bodega.
func (r *SaleRepo) List(from, to *time.Time, warehouseID string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + ` FROM sales
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at <= $2)
		  AND ($3 = '' OR warehouse_id = $3)
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, from, to, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.CustomerID, &s.ProductID, &s.Quantity, &s.UnitPrice, &s.Subtotal, &s.Total,
			&s.PaymentMethod, &s.WarehouseID, &s.Salesperson, &s.Notes,
			&s.Cancelled, &s.CancelledAt, &s.CancelledBy, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
