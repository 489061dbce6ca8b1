package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene el stock actual de un producto en una bodega.
func (r *InventoryRepo) Get(productID, warehouseID string) (*entity.InventoryItem, error) {
	query := `
		SELECT id, product_id, warehouse_id, quantity, min_stock, max_stock, updated_at
		FROM inventory WHERE product_id = $1 AND warehouse_id = $2`
	var i entity.InventoryItem
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&i.ID, &i.ProductID, &i.WarehouseID, &i.Quantity, &i.MinStock, &i.MaxStock, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryItem{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &i, nil
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE). Si la
// fila no existe devuelve un item con cantidad cero sin persistirlo.
func (r *InventoryRepo) GetForUpdate(productID, warehouseID string) (*entity.InventoryItem, error) {
	query := `
		SELECT id, product_id, warehouse_id, quantity, min_stock, max_stock, updated_at
		FROM inventory WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var i entity.InventoryItem
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&i.ID, &i.ProductID, &i.WarehouseID, &i.Quantity, &i.MinStock, &i.MaxStock, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryItem{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return &i, nil
}

// Upsert inserta o actualiza la cantidad en stock (por producto y bodega).
func (r *InventoryRepo) Upsert(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory (id, product_id, warehouse_id, quantity, min_stock, max_stock, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		item.ProductID, item.WarehouseID, item.Quantity, item.MinStock, item.MaxStock)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

// ListByWarehouse lista el stock de todos los productos de una bodega.
func (r *InventoryRepo) ListByWarehouse(warehouseID string) ([]*entity.InventoryItem, error) {
	query := `
		SELECT id, product_id, warehouse_id, quantity, min_stock, max_stock, updated_at
		FROM inventory WHERE warehouse_id = $1 ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list inventory by warehouse: %w", err)
	}
	return scanInventoryRows(rows)
}

// ListByProduct lista el stock de un producto en todas las bodegas.
func (r *InventoryRepo) ListByProduct(productID string) ([]*entity.InventoryItem, error) {
	query := `
		SELECT id, product_id, warehouse_id, quantity, min_stock, max_stock, updated_at
		FROM inventory WHERE product_id = $1 ORDER BY warehouse_id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list inventory by product: %w", err)
	}
	return scanInventoryRows(rows)
}

// Delete elimina la fila solo si su cantidad es cero. Con stock restante
// devuelve ErrInvalidState.
func (r *InventoryRepo) Delete(productID, warehouseID string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM inventory WHERE product_id = $1 AND warehouse_id = $2 AND quantity = 0`,
		productID, warehouseID)
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInvalidState
	}
	return nil
}

func scanInventoryRows(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		var i entity.InventoryItem
		if err := rows.Scan(&i.ID, &i.ProductID, &i.WarehouseID, &i.Quantity, &i.MinStock, &i.MaxStock, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
