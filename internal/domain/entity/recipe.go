package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe define cómo se produce un lote: rendimiento esperado e ingredientes.
type Recipe struct {
	ID           string
	Name         string
	ProductID    string // producto terminado asociado (opcional, vacío si aún no se vincula)
	YieldQty     decimal.Decimal
	YieldUnit    string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RecipeIngredient es una materia prima de la receta con su cantidad.
// Cost queda congelado al momento de agregar el ingrediente
// (cantidad × costo unitario de la materia prima en ese momento);
// no se recalcula si el costo de la materia prima cambia después.
type RecipeIngredient struct {
	ID            string
	RecipeID      string
	RawMaterialID string
	Quantity      decimal.Decimal
	Unit          string
	Cost          decimal.Decimal
}
