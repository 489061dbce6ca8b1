package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer es un traslado de stock entre bodegas. Se aplica completo al
// crearse: no existe estado intermedio pendiente persistido.
type Transfer struct {
	ID              string
	ProductID       string
	Quantity        decimal.Decimal
	FromWarehouseID string
	ToWarehouseID   string
	Reason          string
	CreatedBy       string
	CreatedAt       time.Time
}
