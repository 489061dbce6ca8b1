package reports

import (
	"context"
	"time"

	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

// SalesReportPDFGenerator renderiza el resumen de ventas como PDF.
type SalesReportPDFGenerator interface {
	GenerateSalesReport(ctx context.Context, summary *SalesSummary) ([]byte, error)
}

// ReportUseCase expone los reportes JSON y PDF del negocio.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
	pdf        SalesReportPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reportRepo repository.ReportRepository, pdf SalesReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo, pdf: pdf}
}

// SalesReport pliega las ventas no canceladas del rango.
func (uc *ReportUseCase) SalesReport(ctx context.Context, from, to time.Time) (*SalesSummary, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.reportRepo.SalesInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return FoldSales(from, to, rows), nil
}

// ExpensesReport pliega los gastos del rango.
func (uc *ReportUseCase) ExpensesReport(ctx context.Context, from, to time.Time) (*ExpensesSummary, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.reportRepo.ExpensesInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return FoldExpenses(from, to, rows), nil
}

// LowStockReport productos bajo mínimo por bodega y materias primas bajo umbral.
type LowStockReport struct {
	Products     []repository.LowStockRow `json:"products"`
	RawMaterials []*entity.RawMaterial    `json:"raw_materials"`
}

// LowStock devuelve el reporte de stock bajo.
func (uc *ReportUseCase) LowStock(ctx context.Context) (*LowStockReport, error) {
	products, err := uc.reportRepo.LowStockProducts(ctx)
	if err != nil {
		return nil, err
	}
	materials, err := uc.reportRepo.LowStockRawMaterials(ctx)
	if err != nil {
		return nil, err
	}
	return &LowStockReport{Products: products, RawMaterials: materials}, nil
}

// SalesReportPDF genera el PDF del resumen de ventas del rango.
func (uc *ReportUseCase) SalesReportPDF(ctx context.Context, from, to time.Time) ([]byte, error) {
	summary, err := uc.SalesReport(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateSalesReport(ctx, summary)
}
