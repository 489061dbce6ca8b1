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

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación de RecipeRepository sobre PostgreSQL.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Create persiste una receta.
func (r *RecipeRepo) Create(recipe *entity.Recipe) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO recipes (id, name, product_id, yield_qty, yield_unit, active, created_at, updated_at)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)`,
		recipe.ID, recipe.Name, recipe.ProductID, recipe.YieldQty, recipe.YieldUnit,
		recipe.Active, recipe.CreatedAt, recipe.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert recipe: %w", err)
	}
	return nil
}

// GetByID obtiene una receta por ID.
func (r *RecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	var rec entity.Recipe
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, COALESCE(product_id, ''), yield_qty, yield_unit, active, created_at, updated_at
		 FROM recipes WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.Name, &rec.ProductID, &rec.YieldQty, &rec.YieldUnit, &rec.Active, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return &rec, nil
}

// Update actualiza una receta existente.
func (r *RecipeRepo) Update(recipe *entity.Recipe) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE recipes SET name = $2, product_id = NULLIF($3, ''), yield_qty = $4, yield_unit = $5, active = $6, updated_at = $7
		 WHERE id = $1`,
		recipe.ID, recipe.Name, recipe.ProductID, recipe.YieldQty, recipe.YieldUnit,
		recipe.Active, recipe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	return nil
}

// List lista recetas, activas por defecto.
func (r *RecipeRepo) List(includeInactive bool) ([]*entity.Recipe, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, COALESCE(product_id, ''), yield_qty, yield_unit, active, created_at, updated_at
		 FROM recipes WHERE ($1 OR active) ORDER BY name`, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Recipe
	for rows.Next() {
		var rec entity.Recipe
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.ProductID, &rec.YieldQty, &rec.YieldUnit, &rec.Active, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// Deactivate marca la receta como inactiva.
func (r *RecipeRepo) Deactivate(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE recipes SET active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate recipe: %w", err)
	}
	return nil
}

// AddIngredient agrega un ingrediente con su costo ya congelado.
func (r *RecipeRepo) AddIngredient(ingredient *entity.RecipeIngredient) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO recipe_ingredients (id, recipe_id, raw_material_id, quantity, unit, cost)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		ingredient.ID, ingredient.RecipeID, ingredient.RawMaterialID,
		ingredient.Quantity, ingredient.Unit, ingredient.Cost,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert recipe ingredient: %w", err)
	}
	return nil
}

// RemoveIngredient elimina un ingrediente por ID.
func (r *RecipeRepo) RemoveIngredient(ingredientID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM recipe_ingredients WHERE id = $1`, ingredientID)
	if err != nil {
		return fmt.Errorf("delete recipe ingredient: %w", err)
	}
	return nil
}

// ListIngredients lista los ingredientes de una receta.
func (r *RecipeRepo) ListIngredients(recipeID string) ([]*entity.RecipeIngredient, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, recipe_id, raw_material_id, quantity, unit, cost
		 FROM recipe_ingredients WHERE recipe_id = $1`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list recipe ingredients: %w", err)
	}
	defer rows.Close()
	var list []*entity.RecipeIngredient
	for rows.Next() {
		var ing entity.RecipeIngredient
		if err := rows.Scan(&ing.ID, &ing.RecipeID, &ing.RawMaterialID, &ing.Quantity, &ing.Unit, &ing.Cost); err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		list = append(list, &ing)
	}
	return list, rows.Err()
}
