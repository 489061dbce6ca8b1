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

var _ repository.RawMaterialRepository = (*RawMaterialRepo)(nil)

// RawMaterialRepo implementación de RawMaterialRepository sobre PostgreSQL.
// Las mutaciones de stock son UPDATEs condicionales de una sola sentencia:
// la condición stock + delta >= 0 se evalúa bajo el lock de fila del UPDATE.
type RawMaterialRepo struct {
	q Querier
}

// NewRawMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRawMaterialRepository(q Querier) *RawMaterialRepo {
	return &RawMaterialRepo{q: q}
}

// Create persiste una materia prima.
func (r *RawMaterialRepo) Create(material *entity.RawMaterial) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO raw_materials (id, name, unit_measure, cost_per_unit, stock, min_stock, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		material.ID, material.Name, material.UnitMeasure, material.CostPerUnit,
		material.Stock, material.MinStock, material.Active, material.CreatedAt, material.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert raw material: %w", err)
	}
	return nil
}

// GetByID obtiene una materia prima por ID.
func (r *RawMaterialRepo) GetByID(id string) (*entity.RawMaterial, error) {
	var m entity.RawMaterial
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, unit_measure, cost_per_unit, stock, min_stock, active, created_at, updated_at
		 FROM raw_materials WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.UnitMeasure, &m.CostPerUnit, &m.Stock, &m.MinStock, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw material: %w", err)
	}
	return &m, nil
}

// Update actualiza nombre, unidad, costo y mínimo. El stock se muta solo vía
// ApplyDelta y DeductIfAvailable.
func (r *RawMaterialRepo) Update(material *entity.RawMaterial) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE raw_materials SET name = $2, unit_measure = $3, cost_per_unit = $4, min_stock = $5, active = $6, updated_at = $7
		 WHERE id = $1`,
		material.ID, material.Name, material.UnitMeasure, material.CostPerUnit,
		material.MinStock, material.Active, material.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update raw material: %w", err)
	}
	return nil
}

// List lista materias primas, activas por defecto.
func (r *RawMaterialRepo) List(includeInactive bool) ([]*entity.RawMaterial, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, unit_measure, cost_per_unit, stock, min_stock, active, created_at, updated_at
		 FROM raw_materials WHERE ($1 OR active) ORDER BY name`, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list raw materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.RawMaterial
	for rows.Next() {
		var m entity.RawMaterial
		if err := rows.Scan(&m.ID, &m.Name, &m.UnitMeasure, &m.CostPerUnit, &m.Stock, &m.MinStock, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan raw material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Deactivate marca la materia prima como inactiva.
func (r *RawMaterialRepo) Deactivate(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE raw_materials SET active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate raw material: %w", err)
	}
	return nil
}

// ApplyDelta suma delta al stock de forma atómica. Devuelve nil sin error si
// la condición stock + delta >= 0 no se cumple (cero filas afectadas).
func (r *RawMaterialRepo) ApplyDelta(id string, delta decimal.Decimal) (*entity.RawMaterial, error) {
	query := `
		UPDATE raw_materials SET stock = stock + $2, updated_at = now()
		WHERE id = $1 AND stock + $2 >= 0
		RETURNING id, name, unit_measure, cost_per_unit, stock, min_stock, active, created_at, updated_at`
	var m entity.RawMaterial
	err := r.q.QueryRow(context.Background(), query, id, delta).Scan(
		&m.ID, &m.Name, &m.UnitMeasure, &m.CostPerUnit, &m.Stock, &m.MinStock, &m.Active, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("apply raw material delta: %w", err)
	}
	return &m, nil
}

// DeductIfAvailable descuenta qty solo si hay stock suficiente. Devuelve false
// si no se descontó.
func (r *RawMaterialRepo) DeductIfAvailable(id string, qty decimal.Decimal) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE raw_materials SET stock = stock - $2, updated_at = now()
		 WHERE id = $1 AND stock >= $2`, id, qty)
	if err != nil {
		return false, fmt.Errorf("deduct raw material: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
