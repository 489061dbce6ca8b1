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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)
var _ repository.PackagingTypeRepository = (*PackagingTypeRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría.
func (r *CategoryRepo) Create(category *entity.Category) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO categories (id, name, description, created_at) VALUES ($1, $2, $3, $4)`,
		category.ID, category.Name, category.Description, category.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, description, created_at FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// List lista todas las categorías.
func (r *CategoryRepo) List() ([]*entity.Category, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, description, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina una categoría por ID.
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// PackagingTypeRepo implementación de PackagingTypeRepository sobre PostgreSQL.
type PackagingTypeRepo struct {
	q Querier
}

// NewPackagingTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPackagingTypeRepository(q Querier) *PackagingTypeRepo {
	return &PackagingTypeRepo{q: q}
}

// Create persiste un tipo de empaque.
func (r *PackagingTypeRepo) Create(pt *entity.PackagingType) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO packaging_types (id, name, weight, active, created_at) VALUES ($1, $2, $3, $4, $5)`,
		pt.ID, pt.Name, pt.Weight, pt.Active, pt.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert packaging type: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo de empaque por ID.
func (r *PackagingTypeRepo) GetByID(id string) (*entity.PackagingType, error) {
	var pt entity.PackagingType
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, weight, active, created_at FROM packaging_types WHERE id = $1`, id,
	).Scan(&pt.ID, &pt.Name, &pt.Weight, &pt.Active, &pt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get packaging type: %w", err)
	}
	return &pt, nil
}

// List lista todos los tipos de empaque.
func (r *PackagingTypeRepo) List() ([]*entity.PackagingType, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, weight, active, created_at FROM packaging_types ORDER BY weight DESC`)
	if err != nil {
		return nil, fmt.Errorf("list packaging types: %w", err)
	}
	defer rows.Close()
	var list []*entity.PackagingType
	for rows.Next() {
		var pt entity.PackagingType
		if err := rows.Scan(&pt.ID, &pt.Name, &pt.Weight, &pt.Active, &pt.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan packaging type: %w", err)
		}
		list = append(list, &pt)
	}
	return list, rows.Err()
}

// Delete elimina un tipo de empaque por ID.
func (r *PackagingTypeRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM packaging_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete packaging type: %w", err)
	}
	return nil
}
