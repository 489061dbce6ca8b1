package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem es el stock materializado de un producto en una bodega.
// La pareja (ProductID, WarehouseID) es única; la fila se crea de forma
// perezosa con el primer evento de stock y no puede borrarse con cantidad > 0.
// Invariante: Quantity siempre es igual a la suma de los deltas del libro
// de movimientos para esa pareja.
type InventoryItem struct {
	ID          string
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	MinStock    decimal.Decimal
	MaxStock    decimal.Decimal
	UpdatedAt   time.Time
}

// Warehouse es una bodega o punto de venta donde se guarda inventario.
type Warehouse struct {
	ID        string
	Code      string // único ("PRINCIPAL", "MMM"...)
	Name      string
	Address   string
	Active    bool
	CreatedAt time.Time
}
