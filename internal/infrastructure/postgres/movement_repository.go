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

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL.
// El libro de movimientos solo inserta y lee: sin UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, product_id, warehouse_id, type, previous_quantity, delta, new_quantity,
	reason, ref_type, ref_id, created_by, created_at`

// Create inserta una fila del libro de movimientos.
func (r *MovementRepo) Create(movement *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.WarehouseID, movement.Type,
		movement.Previous, movement.Delta, movement.New,
		movement.Reason, movement.RefType, movement.RefID, movement.CreatedBy, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE id = $1`
	var m entity.InventoryMovement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ProductID, &m.WarehouseID, &m.Type, &m.Previous, &m.Delta, &m.New,
		&m.Reason, &m.RefType, &m.RefID, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// ListByProduct lista movimientos de un producto, opcionalmente filtrados por
// bodega y rango de fechas, del más reciente al más antiguo.
func (r *MovementRepo) ListByProduct(productID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM inventory_movements
		WHERE product_id = $1
		  AND ($2 = '' OR warehouse_id = $2)
		  AND ($3::timestamptz IS NULL OR created_at >= $3)
		  AND ($4::timestamptz IS NULL OR created_at <= $4)
		ORDER BY created_at DESC LIMIT $5 OFFSET $6`
	rows, err := r.q.Query(context.Background(), query, productID, warehouseID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	return scanMovementRows(rows)
}

// ListByWarehouse lista movimientos de una bodega.
func (r *MovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM inventory_movements
		WHERE warehouse_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, warehouseID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by warehouse: %w", err)
	}
	return scanMovementRows(rows)
}

// ListByRef lista los movimientos generados por una operación de origen
// (un traslado, una venta, un lote).
func (r *MovementRepo) ListByRef(refType, refID string) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM inventory_movements
		WHERE ref_type = $1 AND ref_id = $2 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, refType, refID)
	if err != nil {
		return nil, fmt.Errorf("list movements by ref: %w", err)
	}
	return scanMovementRows(rows)
}

func scanMovementRows(rows pgx.Rows) ([]*entity.InventoryMovement, error) {
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.WarehouseID, &m.Type, &m.Previous, &m.Delta, &m.New,
			&m.Reason, &m.RefType, &m.RefID, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
