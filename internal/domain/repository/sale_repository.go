package repository

import (
	"time"

	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale.
// No hay Delete: la cancelación es una marca blanda.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	Cancel(id, userID, reason string, at time.Time) error
	List(from, to *time.Time, warehouseID string, limit, offset int) ([]*entity.Sale, error)
}

// ConsignmentRepository define el puerto de persistencia para Consignment.
type ConsignmentRepository interface {
	Create(consignment *entity.Consignment) error
	GetByID(id string) (*entity.Consignment, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para que dos cobros
	// concurrentes sobre la misma consignación no pierdan un abono.
	GetForUpdate(id string) (*entity.Consignment, error)
	Update(consignment *entity.Consignment) error
	List(paymentStatus string, limit, offset int) ([]*entity.Consignment, error)
	Delete(id string) error
}

// ConsignmentVisitRepository define el puerto para visitas de consignación.
type ConsignmentVisitRepository interface {
	Create(visit *entity.ConsignmentVisit) error
	GetByID(id string) (*entity.ConsignmentVisit, error)
	Update(visit *entity.ConsignmentVisit) error
	ListByConsignment(consignmentID string) ([]*entity.ConsignmentVisit, error)
	DeleteByConsignment(consignmentID string) error
}

// TransferRepository define el puerto de persistencia para Transfer.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	List(from, to *time.Time, limit, offset int) ([]*entity.Transfer, error)
}

// ExpenseRepository define el puerto de persistencia para Expense.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	GetByID(id string) (*entity.Expense, error)
	Update(expense *entity.Expense) error
	List(from, to *time.Time, category string, limit, offset int) ([]*entity.Expense, error)
	Delete(id string) error
}
