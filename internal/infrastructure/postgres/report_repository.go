package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo lecturas de solo consulta para reportes. Va directo al pool:
// nunca participa en transacciones de escritura.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes sobre el pool.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// SalesInRange proyecta las ventas no canceladas del rango con los nombres
// de categoría y bodega ya resueltos.
func (r *ReportRepo) SalesInRange(ctx context.Context, from, to time.Time) ([]repository.SaleReportRow, error) {
	query := `
		SELECT s.id, COALESCE(c.name, 'Sin categoría'), s.payment_method,
			s.warehouse_id, w.name, s.quantity, s.total, s.created_at
		FROM sales s
		JOIN products p ON p.id = s.product_id
		LEFT JOIN categories c ON c.id = p.category_id
		JOIN warehouses w ON w.id = s.warehouse_id
		WHERE NOT s.cancelled AND s.created_at >= $1 AND s.created_at <= $2
		ORDER BY s.created_at`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales in range: %w", err)
	}
	defer rows.Close()
	var list []repository.SaleReportRow
	for rows.Next() {
		var row repository.SaleReportRow
		if err := rows.Scan(&row.SaleID, &row.CategoryName, &row.PaymentMethod,
			&row.WarehouseID, &row.WarehouseName, &row.Quantity, &row.Total, &row.Date); err != nil {
			return nil, fmt.Errorf("scan sale report row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// ExpensesInRange proyecta los gastos del rango.
func (r *ReportRepo) ExpensesInRange(ctx context.Context, from, to time.Time) ([]repository.ExpenseReportRow, error) {
	query := `
		SELECT category, payment_method, amount, date
		FROM expenses WHERE date >= $1 AND date <= $2 ORDER BY date`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("expenses in range: %w", err)
	}
	defer rows.Close()
	var list []repository.ExpenseReportRow
	for rows.Next() {
		var row repository.ExpenseReportRow
		if err := rows.Scan(&row.Category, &row.PaymentMethod, &row.Amount, &row.Date); err != nil {
			return nil, fmt.Errorf("scan expense report row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// LowStockProducts lista parejas (producto, bodega) bajo el umbral mínimo.
// El umbral por bodega tiene prioridad; si es cero aplica el del producto.
func (r *ReportRepo) LowStockProducts(ctx context.Context) ([]repository.LowStockRow, error) {
	query := `
		SELECT p.id, p.name, w.id, w.name, i.quantity,
			CASE WHEN i.min_stock > 0 THEN i.min_stock ELSE p.min_stock END AS threshold
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		JOIN warehouses w ON w.id = i.warehouse_id
		WHERE p.active
		  AND i.quantity < CASE WHEN i.min_stock > 0 THEN i.min_stock ELSE p.min_stock END
		ORDER BY p.name, w.code`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("low stock products: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.WarehouseID,
			&row.Warehouse, &row.Quantity, &row.MinStock); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// LowStockRawMaterials lista materias primas activas bajo su mínimo.
func (r *ReportRepo) LowStockRawMaterials(ctx context.Context) ([]*entity.RawMaterial, error) {
	query := `
		SELECT id, name, unit_measure, cost_per_unit, stock, min_stock, active, created_at, updated_at
		FROM raw_materials WHERE active AND stock < min_stock ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("low stock raw materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.RawMaterial
	for rows.Next() {
		var m entity.RawMaterial
		if err := rows.Scan(&m.ID, &m.Name, &m.UnitMeasure, &m.CostPerUnit, &m.Stock,
			&m.MinStock, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan raw material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
