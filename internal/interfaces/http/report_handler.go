package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jmorales-dev/granolapp-api/internal/application/dto"
	"github.com/jmorales-dev/granolapp-api/internal/application/reports"
)

// ReportHandler expone reportes JSON y PDF (protegido).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// reportRange lee from/to obligatorios; sin parámetros usa los últimos 30 días.
func reportRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	from, err := queryTime(c, "from")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	now := time.Now().UTC()
	if to == nil {
		to = &now
	}
	if from == nil {
		f := to.AddDate(0, 0, -30)
		from = &f
	}
	return *from, *to, nil
}

// Sales godoc
// @Summary      Reporte de ventas por categoría, método de pago y bodega
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Success      200  {object}  reports.SalesSummary
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	from, to, err := reportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "formato de fecha no reconocido"})
	}
	summary, err := h.uc.SalesReport(c.Context(), from, to)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}

// Expenses godoc
// @Summary      Reporte de gastos por categoría y método de pago
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Success      200  {object}  reports.ExpensesSummary
// @Router       /api/reports/expenses [get]
func (h *ReportHandler) Expenses(c *fiber.Ctx) error {
	from, to, err := reportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "formato de fecha no reconocido"})
	}
	summary, err := h.uc.ExpensesReport(c.Context(), from, to)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}

// LowStock godoc
// @Summary      Productos y materias primas bajo stock mínimo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  reports.LowStockReport
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	report, err := h.uc.LowStock(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

// SalesPDF godoc
// @Summary      Reporte de ventas en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from  query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Success      200  {file}  binary
// @Router       /api/reports/sales/pdf [get]
func (h *ReportHandler) SalesPDF(c *fiber.Ctx) error {
	from, to, err := reportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "formato de fecha no reconocido"})
	}
	pdfBytes, err := h.uc.SalesReportPDF(c.Context(), from, to)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-ventas.pdf"`)
	return c.Send(pdfBytes)
}
