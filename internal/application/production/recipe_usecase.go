package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	domainprod "github.com/jmorales-dev/granolapp-api/internal/domain/production"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

// RecipeUseCase CRUD de recetas e ingredientes. El costo de cada ingrediente
// se congela al agregarlo; cambiar después el costo de la materia prima no
// altera recetas ni lotes existentes.
type RecipeUseCase struct {
	recipeRepo repository.RecipeRepository
	rawRepo    repository.RawMaterialRepository
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(recipeRepo repository.RecipeRepository, rawRepo repository.RawMaterialRepository) *RecipeUseCase {
	return &RecipeUseCase{recipeRepo: recipeRepo, rawRepo: rawRepo}
}

// CreateRecipeInput entrada para crear una receta.
type CreateRecipeInput struct {
	Name      string
	ProductID string
	YieldQty  decimal.Decimal
	YieldUnit string
}

// Create crea una receta activa sin ingredientes.
func (uc *RecipeUseCase) Create(ctx context.Context, in CreateRecipeInput) (*entity.Recipe, error) {
	if in.Name == "" || !in.YieldQty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	recipe := &entity.Recipe{
		ID:        uuid.New().String(),
		Name:      in.Name,
		ProductID: in.ProductID,
		YieldQty:  in.YieldQty,
		YieldUnit: in.YieldUnit,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.recipeRepo.Create(recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// AddIngredient agrega una materia prima a la receta congelando su costo al
// precio unitario vigente.
func (uc *RecipeUseCase) AddIngredient(ctx context.Context, recipeID, rawMaterialID string, quantity decimal.Decimal, unit string) (*entity.RecipeIngredient, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	recipe, err := uc.recipeRepo.GetByID(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	material, err := uc.rawRepo.GetByID(rawMaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	ing := &entity.RecipeIngredient{
		ID:            uuid.New().String(),
		RecipeID:      recipeID,
		RawMaterialID: rawMaterialID,
		Quantity:      quantity,
		Unit:          unit,
		Cost:          domainprod.IngredientCost(quantity, material.CostPerUnit),
	}
	if err := uc.recipeRepo.AddIngredient(ing); err != nil {
		return nil, err
	}
	return ing, nil
}

// RemoveIngredient quita un ingrediente de la receta.
func (uc *RecipeUseCase) RemoveIngredient(ctx context.Context, ingredientID string) error {
	return uc.recipeRepo.RemoveIngredient(ingredientID)
}

// Get devuelve la receta con sus ingredientes.
func (uc *RecipeUseCase) Get(ctx context.Context, recipeID string) (*entity.Recipe, []*entity.RecipeIngredient, error) {
	recipe, err := uc.recipeRepo.GetByID(recipeID)
	if err != nil {
		return nil, nil, err
	}
	if recipe == nil {
		return nil, nil, domain.ErrNotFound
	}
	ingredients, err := uc.recipeRepo.ListIngredients(recipeID)
	if err != nil {
		return nil, nil, err
	}
	return recipe, ingredients, nil
}

// List lista recetas.
func (uc *RecipeUseCase) List(ctx context.Context, includeInactive bool) ([]*entity.Recipe, error) {
	return uc.recipeRepo.List(includeInactive)
}

// UpdateRecipeInput campos actualizables de una receta.
type UpdateRecipeInput struct {
	Name      *string
	ProductID *string
	YieldQty  *decimal.Decimal
	YieldUnit *string
	Active    *bool
}

// Update actualiza los campos presentes.
func (uc *RecipeUseCase) Update(ctx context.Context, recipeID string, in UpdateRecipeInput) (*entity.Recipe, error) {
	recipe, err := uc.recipeRepo.GetByID(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		recipe.Name = *in.Name
	}
	if in.ProductID != nil {
		recipe.ProductID = *in.ProductID
	}
	if in.YieldQty != nil {
		if !in.YieldQty.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		recipe.YieldQty = *in.YieldQty
	}
	if in.YieldUnit != nil {
		recipe.YieldUnit = *in.YieldUnit
	}
	if in.Active != nil {
		recipe.Active = *in.Active
	}
	recipe.UpdatedAt = time.Now().UTC()
	if err := uc.recipeRepo.Update(recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Deactivate desactiva una receta (no se borra: los lotes históricos la referencian).
func (uc *RecipeUseCase) Deactivate(ctx context.Context, recipeID string) error {
	recipe, err := uc.recipeRepo.GetByID(recipeID)
	if err != nil {
		return err
	}
	if recipe == nil {
		return domain.ErrNotFound
	}
	return uc.recipeRepo.Deactivate(recipeID)
}
