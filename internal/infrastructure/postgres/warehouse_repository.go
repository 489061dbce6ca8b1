package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación de WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una bodega.
func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO warehouses (id, code, name, address, active, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		warehouse.ID, warehouse.Code, warehouse.Name, warehouse.Address, warehouse.Active, warehouse.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := r.q.QueryRow(context.Background(),
		`SELECT id, code, name, address, active, created_at FROM warehouses WHERE id = $1`, id,
	).Scan(&w.ID, &w.Code, &w.Name, &w.Address, &w.Active, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// GetByCode obtiene una bodega por su código único.
func (r *WarehouseRepo) GetByCode(code string) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := r.q.QueryRow(context.Background(),
		`SELECT id, code, name, address, active, created_at FROM warehouses WHERE code = $1`, code,
	).Scan(&w.ID, &w.Code, &w.Name, &w.Address, &w.Active, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse by code: %w", err)
	}
	return &w, nil
}

// Update actualiza nombre y dirección. El código es inmutable.
func (r *WarehouseRepo) Update(warehouse *entity.Warehouse) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE warehouses SET name = $2, address = $3, active = $4 WHERE id = $1`,
		warehouse.ID, warehouse.Name, warehouse.Address, warehouse.Active,
	)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

// List lista todas las bodegas.
func (r *WarehouseRepo) List() ([]*entity.Warehouse, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, code, name, address, active, created_at FROM warehouses ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Code, &w.Name, &w.Address, &w.Active, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}
