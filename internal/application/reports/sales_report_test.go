package reports_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorales-dev/granolapp-api/internal/application/reports"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

var (
	reportFrom = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	reportTo   = time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests FoldSales
// ──────────────────────────────────────────────────────────────────────────────

func TestFoldSales_AgrupaPorCategoriaMetodoYBodega(t *testing.T) {
	rows := []repository.SaleReportRow{
		{SaleID: "v1", CategoryName: "Granolas", PaymentMethod: "Efectivo", WarehouseID: "w1", WarehouseName: "Principal", Quantity: dec("2"), Total: dec("30000")},
		{SaleID: "v2", CategoryName: "Granolas", PaymentMethod: "Transferencia", WarehouseID: "w1", WarehouseName: "Principal", Quantity: dec("1"), Total: dec("15000")},
		{SaleID: "v3", CategoryName: "Barras", PaymentMethod: "Efectivo", WarehouseID: "w2", WarehouseName: "MMM", Quantity: dec("5"), Total: dec("25000")},
	}

	summary := reports.FoldSales(reportFrom, reportTo, rows)

	assert.Equal(t, 3, summary.SaleCount)
	assert.True(t, summary.TotalUnits.Equal(dec("8")))
	assert.True(t, summary.TotalRevenue.Equal(dec("70000")))

	require.Len(t, summary.ByCategory, 2)
	assert.Equal(t, "Granolas", summary.ByCategory[0].Key, "mayor total primero")
	assert.Equal(t, 2, summary.ByCategory[0].Count)
	assert.True(t, summary.ByCategory[0].Total.Equal(dec("45000")))
	assert.Equal(t, "Barras", summary.ByCategory[1].Key)

	require.Len(t, summary.ByPaymentMethod, 2)
	assert.Equal(t, "Efectivo", summary.ByPaymentMethod[0].Key)
	assert.True(t, summary.ByPaymentMethod[0].Total.Equal(dec("55000")))
	assert.True(t, summary.ByPaymentMethod[0].Units.Equal(dec("7")))

	require.Len(t, summary.ByWarehouse, 2)
	assert.Equal(t, "Principal", summary.ByWarehouse[0].Key, "usa el nombre resuelto de la bodega")
}

// Las ventas sin categoría caen en el grupo "Sin categoría" en vez de perderse
// bajo una clave vacía.
func TestFoldSales_SinCategoriaUsaFallback(t *testing.T) {
	rows := []repository.SaleReportRow{
		{SaleID: "v1", PaymentMethod: "Efectivo", WarehouseID: "w1", Quantity: dec("1"), Total: dec("10000")},
	}

	summary := reports.FoldSales(reportFrom, reportTo, rows)

	require.Len(t, summary.ByCategory, 1)
	assert.Equal(t, "Sin categoría", summary.ByCategory[0].Key)
	require.Len(t, summary.ByWarehouse, 1)
	assert.Equal(t, "w1", summary.ByWarehouse[0].Key, "sin nombre resuelto usa el ID de bodega")
}

// En empate de totales el orden es por clave ascendente, para que el reporte
// sea determinista entre ejecuciones.
func TestFoldSales_EmpateOrdenaPorClave(t *testing.T) {
	rows := []repository.SaleReportRow{
		{SaleID: "v1", CategoryName: "Zanahoria", PaymentMethod: "Efectivo", WarehouseID: "w1", Quantity: dec("1"), Total: dec("10000")},
		{SaleID: "v2", CategoryName: "Avena", PaymentMethod: "Efectivo", WarehouseID: "w1", Quantity: dec("1"), Total: dec("10000")},
	}

	summary := reports.FoldSales(reportFrom, reportTo, rows)

	require.Len(t, summary.ByCategory, 2)
	assert.Equal(t, "Avena", summary.ByCategory[0].Key)
	assert.Equal(t, "Zanahoria", summary.ByCategory[1].Key)
}

// Los montos se acumulan con precisión completa y se redondean una sola vez al
// final: tres tercios suman exactamente 1.00 y no 0.99.
func TestFoldSales_RedondeaSoloAlFinal(t *testing.T) {
	third := dec("1").Div(dec("3")) // 0.333...
	rows := []repository.SaleReportRow{
		{SaleID: "v1", CategoryName: "Granolas", PaymentMethod: "Efectivo", WarehouseID: "w1", Quantity: dec("1"), Total: third},
		{SaleID: "v2", CategoryName: "Granolas", PaymentMethod: "Efectivo", WarehouseID: "w1", Quantity: dec("1"), Total: third},
		{SaleID: "v3", CategoryName: "Granolas", PaymentMethod: "Efectivo", WarehouseID: "w1", Quantity: dec("1"), Total: third},
	}

	summary := reports.FoldSales(reportFrom, reportTo, rows)

	assert.True(t, summary.TotalRevenue.Equal(dec("1")),
		"acumular y redondear al final no pierde centavos: %s", summary.TotalRevenue)
	require.Len(t, summary.ByCategory, 1)
	assert.True(t, summary.ByCategory[0].Total.Equal(dec("1")))
}

func TestFoldSales_SinFilas(t *testing.T) {
	summary := reports.FoldSales(reportFrom, reportTo, nil)

	assert.Equal(t, 0, summary.SaleCount)
	assert.True(t, summary.TotalRevenue.IsZero())
	assert.Empty(t, summary.ByCategory)
	assert.Empty(t, summary.ByPaymentMethod)
	assert.Empty(t, summary.ByWarehouse)
	assert.True(t, summary.From.Equal(reportFrom))
	assert.True(t, summary.To.Equal(reportTo))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests FoldExpenses
// ──────────────────────────────────────────────────────────────────────────────

func TestFoldExpenses_AgrupaPorCategoriaYMetodo(t *testing.T) {
	rows := []repository.ExpenseReportRow{
		{Category: "Insumos", PaymentMethod: "Efectivo", Amount: dec("80000")},
		{Category: "Insumos", PaymentMethod: "Transferencia", Amount: dec("120000")},
		{Category: "Transporte", PaymentMethod: "Efectivo", Amount: dec("30000")},
	}

	summary := reports.FoldExpenses(reportFrom, reportTo, rows)

	assert.Equal(t, 3, summary.ExpenseCount)
	assert.True(t, summary.TotalAmount.Equal(dec("230000")))

	require.Len(t, summary.ByCategory, 2)
	assert.Equal(t, "Insumos", summary.ByCategory[0].Key)
	assert.Equal(t, 2, summary.ByCategory[0].Count)
	assert.True(t, summary.ByCategory[0].Total.Equal(dec("200000")))

	require.Len(t, summary.ByPaymentMethod, 2)
	assert.Equal(t, "Transferencia", summary.ByPaymentMethod[0].Key)
}

func TestFoldExpenses_SinCategoriaUsaFallback(t *testing.T) {
	rows := []repository.ExpenseReportRow{
		{PaymentMethod: "Efectivo", Amount: dec("5000")},
	}

	summary := reports.FoldExpenses(reportFrom, reportTo, rows)

	require.Len(t, summary.ByCategory, 1)
	assert.Equal(t, "Sin categoría", summary.ByCategory[0].Key)
}
