package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
)

// RecordSaleRequest body para POST /api/sales.
type RecordSaleRequest struct {
	ProductID     string          `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	PaymentMethod string          `json:"payment_method"`
	WarehouseID   string          `json:"warehouse_id"`
	Salesperson   string          `json:"salesperson"`
	CustomerID    string          `json:"customer_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// CancelSaleRequest body para PUT /api/sales/:id/cancel.
type CancelSaleRequest struct {
	Reason string `json:"reason"`
}

// SaleResponse representación JSON de una venta.
type SaleResponse struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id,omitempty"`
	ProductID     string          `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	WarehouseID   string          `json:"warehouse_id"`
	Salesperson   string          `json:"salesperson"`
	Notes         string          `json:"notes,omitempty"`
	Cancelled     bool            `json:"cancelled"`
	CancelledAt   *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewSaleResponse convierte la entidad.
func NewSaleResponse(s *entity.Sale) *SaleResponse {
	if s == nil {
		return nil
	}
	return &SaleResponse{
		ID:            s.ID,
		CustomerID:    s.CustomerID,
		ProductID:     s.ProductID,
		Quantity:      s.Quantity,
		UnitPrice:     s.UnitPrice,
		Subtotal:      s.Subtotal,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		WarehouseID:   s.WarehouseID,
		Salesperson:   s.Salesperson,
		Notes:         s.Notes,
		Cancelled:     s.Cancelled,
		CancelledAt:   s.CancelledAt,
		CreatedAt:     s.CreatedAt,
	}
}

// CreateConsignmentRequest body para POST /api/consignments.
type CreateConsignmentRequest struct {
	SaleID        string          `json:"sale_id"`
	CustomerID    string          `json:"customer_id"`
	ProductID     string          `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	DeliveryDate  time.Time       `json:"delivery_date"`
	NextVisitDate time.Time       `json:"next_visit_date"`
	PaymentStatus string          `json:"payment_status,omitempty"`
	AmountPaid    decimal.Decimal `json:"amount_paid,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// ScheduleVisitRequest body para POST /api/consignments/:id/visits.
type ScheduleVisitRequest struct {
	Type      string    `json:"type"`
	VisitDate time.Time `json:"visit_date"`
	Notes     string    `json:"notes,omitempty"`
}

// RecordCollectionRequest body para POST /api/consignments/:id/collections.
type RecordCollectionRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ConsignmentVisitResponse representación JSON de una visita.
type ConsignmentVisitResponse struct {
	ID            string    `json:"id"`
	ConsignmentID string    `json:"consignment_id"`
	VisitDate     time.Time `json:"visit_date"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
}

// NewConsignmentVisitResponse convierte la entidad.
func NewConsignmentVisitResponse(v *entity.ConsignmentVisit) *ConsignmentVisitResponse {
	if v == nil {
		return nil
	}
	return &ConsignmentVisitResponse{
		ID:            v.ID,
		ConsignmentID: v.ConsignmentID,
		VisitDate:     v.VisitDate,
		Type:          v.Type,
		Status:        v.Status,
		Notes:         v.Notes,
	}
}

// ConsignmentResponse representación JSON de una consignación.
type ConsignmentResponse struct {
	ID            string                     `json:"id"`
	SaleID        string                     `json:"sale_id"`
	CustomerID    string                     `json:"customer_id"`
	ProductID     string                     `json:"product_id"`
	Quantity      decimal.Decimal            `json:"quantity"`
	DeliveryDate  time.Time                  `json:"delivery_date"`
	PaymentStatus string                     `json:"payment_status"`
	AmountPaid    decimal.Decimal            `json:"amount_paid"`
	NextVisitDate time.Time                  `json:"next_visit_date"`
	Notes         string                     `json:"notes,omitempty"`
	Visits        []ConsignmentVisitResponse `json:"visits,omitempty"`
	CreatedAt     time.Time                  `json:"created_at"`
}

// NewConsignmentResponse convierte la entidad con sus visitas.
func NewConsignmentResponse(c *entity.Consignment, visits []*entity.ConsignmentVisit) *ConsignmentResponse {
	if c == nil {
		return nil
	}
	resp := &ConsignmentResponse{
		ID:            c.ID,
		SaleID:        c.SaleID,
		CustomerID:    c.CustomerID,
		ProductID:     c.ProductID,
		Quantity:      c.Quantity,
		DeliveryDate:  c.DeliveryDate,
		PaymentStatus: c.PaymentStatus,
		AmountPaid:    c.AmountPaid,
		NextVisitDate: c.NextVisitDate,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt,
	}
	for _, v := range visits {
		resp.Visits = append(resp.Visits, *NewConsignmentVisitResponse(v))
	}
	return resp
}

// ExpenseRequest body para crear gastos (multipart con comprobante opcional).
type ExpenseRequest struct {
	Description   string          `json:"description" form:"description"`
	Category      string          `json:"category" form:"category"`
	Amount        decimal.Decimal `json:"amount" form:"amount"`
	PaymentMethod string          `json:"payment_method" form:"payment_method"`
	Responsible   string          `json:"responsible" form:"responsible"`
	Date          *time.Time      `json:"date,omitempty" form:"date"`
}

// ExpenseResponse representación JSON de un gasto.
type ExpenseResponse struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Responsible   string          `json:"responsible,omitempty"`
	Date          time.Time       `json:"date"`
	ReceiptPath   string          `json:"receipt_path,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewExpenseResponse convierte la entidad.
func NewExpenseResponse(e *entity.Expense) *ExpenseResponse {
	if e == nil {
		return nil
	}
	return &ExpenseResponse{
		ID:            e.ID,
		Description:   e.Description,
		Category:      e.Category,
		Amount:        e.Amount,
		PaymentMethod: e.PaymentMethod,
		Responsible:   e.Responsible,
		Date:          e.Date,
		ReceiptPath:   e.ReceiptPath,
		CreatedAt:     e.CreatedAt,
	}
}
