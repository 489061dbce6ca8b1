package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense es un gasto operativo; Amount debe ser > 0.
// ReceiptPath apunta al comprobante subido (vacío si no hay).
type Expense struct {
	ID            string
	Description   string
	Category      string
	Amount        decimal.Decimal
	PaymentMethod string
	Responsible   string
	Date          time.Time
	ReceiptPath   string
	CreatedBy     string
	CreatedAt     time.Time
}
