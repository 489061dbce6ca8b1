package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
)

// SaleReportRow es una venta proyectada para agregación de reportes
// (incluye nombres resueltos de categoría y bodega).
type SaleReportRow struct {
	SaleID        string
	CategoryName  string
	PaymentMethod string
	WarehouseID   string
	WarehouseName string
	Quantity      decimal.Decimal
	Total         decimal.Decimal
	Date          time.Time
}

// ExpenseReportRow es un gasto proyectado para agregación de reportes.
type ExpenseReportRow struct {
	Category      string
	PaymentMethod string
	Amount        decimal.Decimal
	Date          time.Time
}

// LowStockRow es un producto por debajo de su mínimo en una bodega.
type LowStockRow struct {
	ProductID   string
	ProductName string
	WarehouseID string
	Warehouse   string
	Quantity    decimal.Decimal
	MinStock    decimal.Decimal
}

// ReportRepository expone lecturas de solo consulta para reportes.
// Sin mutaciones: seguro de ejecutar en paralelo con escrituras.
type ReportRepository interface {
	SalesInRange(ctx context.Context, from, to time.Time) ([]SaleReportRow, error)
	ExpensesInRange(ctx context.Context, from, to time.Time) ([]ExpenseReportRow, error)
	LowStockProducts(ctx context.Context) ([]LowStockRow, error)
	LowStockRawMaterials(ctx context.Context) ([]*entity.RawMaterial, error)
}
