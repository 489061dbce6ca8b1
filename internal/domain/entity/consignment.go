package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de una consignación.
const (
	ConsignmentPending = "pending"
	ConsignmentPaid    = "paid"
	ConsignmentCredit  = "credit"
)

// Tipos y estados de visita de consignación.
const (
	VisitDelivery   = "delivery"
	VisitCollection = "collection"
	VisitCheck      = "check"

	VisitScheduled = "programada"
	VisitDone      = "hecha"
	VisitPendingDo = "por_hacer"
)

// Consignment es mercancía entregada a un cliente que paga después de vender.
// Se crea 1:1 junto a una venta con método Consignación (convención de la
// aplicación, no constraint de BD) y siempre nace con una visita inicial
// de tipo delivery en estado programada.
type Consignment struct {
	ID            string
	SaleID        string
	CustomerID    string
	ProductID     string
	Quantity      decimal.Decimal
	DeliveryDate  time.Time
	PaymentStatus string // pending, paid, credit
	AmountPaid    decimal.Decimal
	NextVisitDate time.Time
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ConsignmentVisit es una visita programada o realizada a un cliente en consignación.
type ConsignmentVisit struct {
	ID            string
	ConsignmentID string
	VisitDate     time.Time
	Type          string // delivery, collection, check
	Status        string // programada, hecha, por_hacer
	Notes         string
	CreatedAt     time.Time
}
