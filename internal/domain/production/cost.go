// Package production contiene la lógica de dominio pura de producción:
// costos de lote y la convención regional de día hábil.
package production

import (
	"github.com/shopspring/decimal"

	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
)

// IngredientCost calcula el costo congelado de un ingrediente al momento
// de agregarlo: cantidad × costo unitario actual de la materia prima.
// No se recalcula retroactivamente si el costo de la materia prima cambia.
func IngredientCost(quantity, costPerUnit decimal.Decimal) decimal.Decimal {
	return quantity.Mul(costPerUnit)
}

// BatchCost suma los costos ya congelados de los ingredientes de la receta.
// Es el costo total del lote al momento de su creación.
func BatchCost(ingredients []*entity.RecipeIngredient) decimal.Decimal {
	total := decimal.Zero
	for _, ing := range ingredients {
		total = total.Add(ing.Cost)
	}
	return total
}
