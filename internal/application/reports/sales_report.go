// Package reports implementa los agregadores de solo lectura: pliegan ventas
// y gastos de un rango de fechas en totales por categoría, método de pago y
// bodega. Los montos se acumulan con precisión completa y se redondean a 2
// decimales únicamente al final del plegado, para no acumular error de
// redondeo fila a fila.
package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

// GroupTotal es un total agregado bajo una clave (categoría, método, bodega).
type GroupTotal struct {
	Key   string          `json:"key"`
	Count int             `json:"count"`
	Units decimal.Decimal `json:"units,omitempty"`
	Total decimal.Decimal `json:"total"`
}

// SalesSummary es el resultado del plegado de ventas de un período.
type SalesSummary struct {
	From            time.Time    `json:"from"`
	To              time.Time    `json:"to"`
	SaleCount       int          `json:"sale_count"`
	TotalUnits      decimal.Decimal `json:"total_units"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	ByCategory      []GroupTotal `json:"by_category"`
	ByPaymentMethod []GroupTotal `json:"by_payment_method"`
	ByWarehouse     []GroupTotal `json:"by_warehouse"`
}

// ExpensesSummary es el resultado del plegado de gastos de un período.
type ExpensesSummary struct {
	From            time.Time    `json:"from"`
	To              time.Time    `json:"to"`
	ExpenseCount    int          `json:"expense_count"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ByCategory      []GroupTotal `json:"by_category"`
	ByPaymentMethod []GroupTotal `json:"by_payment_method"`
}

type accumulator struct {
	count int
	units decimal.Decimal
	total decimal.Decimal
}

// FoldSales pliega las filas de venta en el resumen del período.
// Puro: sin mutación de estado, seguro de ejecutar junto a escrituras.
func FoldSales(from, to time.Time, rows []repository.SaleReportRow) *SalesSummary {
	byCategory := map[string]*accumulator{}
	byMethod := map[string]*accumulator{}
	byWarehouse := map[string]*accumulator{}

	totalUnits := decimal.Zero
	totalRevenue := decimal.Zero
	for _, row := range rows {
		totalUnits = totalUnits.Add(row.Quantity)
		totalRevenue = totalRevenue.Add(row.Total)
		accumulate(byCategory, keyOr(row.CategoryName, "Sin categoría"), row.Quantity, row.Total)
		accumulate(byMethod, row.PaymentMethod, row.Quantity, row.Total)
		accumulate(byWarehouse, keyOr(row.WarehouseName, row.WarehouseID), row.Quantity, row.Total)
	}

	return &SalesSummary{
		From:            from,
		To:              to,
		SaleCount:       len(rows),
		TotalUnits:      totalUnits,
		TotalRevenue:    totalRevenue.Round(2),
		ByCategory:      flatten(byCategory),
		ByPaymentMethod: flatten(byMethod),
		ByWarehouse:     flatten(byWarehouse),
	}
}

// FoldExpenses pliega las filas de gasto en el resumen del período.
func FoldExpenses(from, to time.Time, rows []repository.ExpenseReportRow) *ExpensesSummary {
	byCategory := map[string]*accumulator{}
	byMethod := map[string]*accumulator{}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Amount)
		accumulate(byCategory, keyOr(row.Category, "Sin categoría"), decimal.Zero, row.Amount)
		accumulate(byMethod, row.PaymentMethod, decimal.Zero, row.Amount)
	}

	return &ExpensesSummary{
		From:            from,
		To:              to,
		ExpenseCount:    len(rows),
		TotalAmount:     total.Round(2),
		ByCategory:      flatten(byCategory),
		ByPaymentMethod: flatten(byMethod),
	}
}

func keyOr(key, fallback string) string {
	if key == "" {
		return fallback
	}
	return key
}

func accumulate(groups map[string]*accumulator, key string, units, total decimal.Decimal) {
	acc, ok := groups[key]
	if !ok {
		acc = &accumulator{units: decimal.Zero, total: decimal.Zero}
		groups[key] = acc
	}
	acc.count++
	acc.units = acc.units.Add(units)
	acc.total = acc.total.Add(total)
}

// flatten emite los grupos ordenados por total descendente (clave ascendente
// en empate) redondeando cada total al final.
func flatten(groups map[string]*accumulator) []GroupTotal {
	out := make([]GroupTotal, 0, len(groups))
	for key, acc := range groups {
		out = append(out, GroupTotal{
			Key:   key,
			Count: acc.count,
			Units: acc.units,
			Total: acc.total.Round(2),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Key < out[j].Key
	})
	return out
}
