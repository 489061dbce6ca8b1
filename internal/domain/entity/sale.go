package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en ventas.
const (
	PaymentCash        = "Efectivo"
	PaymentTransfer    = "Transferencia"
	PaymentConsignment = "Consignación"
	PaymentGift        = "Regalo"
)

// ValidPaymentMethod reporta si el método de pago es uno de los aceptados.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentTransfer, PaymentConsignment, PaymentGift:
		return true
	}
	return false
}

// Sale es una venta de punto de venta. La cancelación es una marca blanda:
// la fila nunca se borra y la cancelación no revierte stock automáticamente.
type Sale struct {
	ID            string
	CustomerID    string // vacío = cliente general
	ProductID     string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	Subtotal      decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	WarehouseID   string
	Salesperson   string
	Notes         string
	Cancelled     bool
	CancelledAt   *time.Time
	CancelledBy   string
	CreatedAt     time.Time
}

// Customer es un cliente; las ventas sin cliente van al cliente general.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
