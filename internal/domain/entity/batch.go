package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un lote de producción. Completado es terminal e irreversible.
const (
	BatchPlanned    = "planificado"
	BatchInProgress = "en_proceso"
	BatchCompleted  = "completado"
	BatchCancelled  = "cancelado"
)

// Batch representa una corrida de producción de una receta.
// TotalCost queda congelado al crear el lote (suma de los costos
// ya congelados de los ingredientes de la receta).
type Batch struct {
	ID             string
	Code           string // único, ej. LOTE-20260901-A3F2
	RecipeID       string
	ProductionDate time.Time
	ProducedQty    decimal.Decimal // por defecto, el rendimiento de la receta
	TotalCost      decimal.Decimal
	Status         string
	Notes          string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanComplete indica si el lote admite la transición a completado.
func (b *Batch) CanComplete() bool {
	return b.Status == BatchPlanned || b.Status == BatchInProgress
}

// CanCancel indica si el lote admite la transición a cancelado.
func (b *Batch) CanCancel() bool {
	return b.Status == BatchPlanned || b.Status == BatchInProgress
}

// BatchPackaging es una línea de empaque generada al completar un lote:
// cuántas bolsas de qué producto fueron a qué bodega.
type BatchPackaging struct {
	ID          string
	BatchID     string
	ProductID   string
	BagType     string // nombre del PackagingType ("1kg", "500g"...)
	BagCount    decimal.Decimal
	WarehouseID string
	CreatedAt   time.Time
}
