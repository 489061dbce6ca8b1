package repository

import "github.com/jmorales-dev/granolapp-api/internal/domain/entity"

// RecipeRepository define el puerto de persistencia para Recipe y sus ingredientes.
type RecipeRepository interface {
	Create(recipe *entity.Recipe) error
	GetByID(id string) (*entity.Recipe, error)
	Update(recipe *entity.Recipe) error
	List(includeInactive bool) ([]*entity.Recipe, error)
	Deactivate(id string) error

	AddIngredient(ingredient *entity.RecipeIngredient) error
	RemoveIngredient(ingredientID string) error
	ListIngredients(recipeID string) ([]*entity.RecipeIngredient, error)
}
