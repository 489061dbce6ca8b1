package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementSale       = "venta"
	MovementProduction = "produccion"
	MovementTransfer   = "transferencia"
	MovementAdjustment = "ajuste"
)

// Tipos de referencia que enlazan un movimiento con su operación de origen.
const (
	RefBatch    = "batch"
	RefTransfer = "transfer"
	RefSale     = "sale"
)

// InventoryMovement es una fila inmutable del libro de movimientos: registra
// el stock previo, el delta aplicado y el stock resultante de una mutación.
// Nunca se actualiza ni se borra.
type InventoryMovement struct {
	ID          string
	ProductID   string
	WarehouseID string
	Type        string // venta, produccion, transferencia, ajuste
	Previous    decimal.Decimal
	Delta       decimal.Decimal // negativo en salidas
	New         decimal.Decimal
	Reason      string
	RefType     string // batch, transfer, sale; vacío en ajustes manuales
	RefID       string
	CreatedBy   string
	CreatedAt   time.Time
}
