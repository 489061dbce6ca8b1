package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto terminado del catálogo (granolas, barras, etc.).
// El stock se maneja por bodega en InventoryItem, nunca aquí.
type Product struct {
	ID          string
	Name        string
	CategoryID  string
	Price       decimal.Decimal // precio de venta unitario
	Cost        decimal.Decimal // costo unitario de producción
	UnitMeasure string          // unidad, kg, gramos
	MinStock    decimal.Decimal // umbral de alerta de stock bajo
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Category agrupa productos del catálogo.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// PackagingType representa un tipo de empaque disponible ("1kg", "500g", "250g").
type PackagingType struct {
	ID        string
	Name      string
	Weight    decimal.Decimal // peso en gramos del empaque
	Active    bool
	CreatedAt time.Time
}
