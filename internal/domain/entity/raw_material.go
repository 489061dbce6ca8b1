package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawMaterial representa una materia prima (avena, miel, frutos secos...).
// Su stock solo cambia por la deducción al completar lotes y por ajustes manuales.
type RawMaterial struct {
	ID          string
	Name        string
	UnitMeasure string          // kg, gramos, litros, unidades
	CostPerUnit decimal.Decimal
	Stock       decimal.Decimal
	MinStock    decimal.Decimal
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
