package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

// ConsignmentUseCase gestiona consignaciones y sus visitas. Toda
// consignación nace junto a una visita inicial de entrega programada; el
// borrado elimina primero las visitas y luego la consignación, en una
// transacción.
type ConsignmentUseCase struct {
	txRunner     TxRunner
	consRepo     repository.ConsignmentRepository
	visitRepo    repository.ConsignmentVisitRepository
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

// NewConsignmentUseCase construye el caso de uso.
func NewConsignmentUseCase(
	txRunner TxRunner,
	consRepo repository.ConsignmentRepository,
	visitRepo repository.ConsignmentVisitRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) *ConsignmentUseCase {
	return &ConsignmentUseCase{
		txRunner:     txRunner,
		consRepo:     consRepo,
		visitRepo:    visitRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// CreateConsignmentInput entrada para crear una consignación.
type CreateConsignmentInput struct {
	SaleID        string
	CustomerID    string
	ProductID     string
	Quantity      decimal.Decimal
	DeliveryDate  time.Time
	NextVisitDate time.Time
	PaymentStatus string
	AmountPaid    decimal.Decimal
	Notes         string
}

// Create valida las referencias, inserta la consignación y, siempre, su
// visita inicial (tipo delivery, estado programada, fecha = próxima visita).
func (uc *ConsignmentUseCase) Create(ctx context.Context, in CreateConsignmentInput) (*entity.Consignment, *entity.ConsignmentVisit, error) {
	if in.SaleID == "" || in.CustomerID == "" || in.ProductID == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) || in.NextVisitDate.IsZero() {
		return nil, nil, domain.ErrInvalidInput
	}
	switch in.PaymentStatus {
	case "":
		in.PaymentStatus = entity.ConsignmentPending
	case entity.ConsignmentPending, entity.ConsignmentPaid, entity.ConsignmentCredit:
	default:
		return nil, nil, domain.ErrInvalidInput
	}

	sale, err := uc.saleRepo.GetByID(in.SaleID)
	if err != nil {
		return nil, nil, err
	}
	if sale == nil {
		return nil, nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, nil, err
	}
	if customer == nil {
		return nil, nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}

	now := time.Now().UTC()
	cons := &entity.Consignment{
		ID:            uuid.New().String(),
		SaleID:        in.SaleID,
		CustomerID:    in.CustomerID,
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		DeliveryDate:  in.DeliveryDate,
		PaymentStatus: in.PaymentStatus,
		AmountPaid:    in.AmountPaid,
		NextVisitDate: in.NextVisitDate,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	visit := &entity.ConsignmentVisit{
		ID:            uuid.New().String(),
		ConsignmentID: cons.ID,
		VisitDate:     in.NextVisitDate,
		Type:          entity.VisitDelivery,
		Status:        entity.VisitScheduled,
		CreatedAt:     now,
	}

	err = uc.txRunner.RunConsignment(ctx, func(
		consRepo repository.ConsignmentRepository,
		visitRepo repository.ConsignmentVisitRepository,
	) error {
		if err := consRepo.Create(cons); err != nil {
			return err
		}
		return visitRepo.Create(visit)
	})
	if err != nil {
		return nil, nil, err
	}
	return cons, visit, nil
}

// Delete borra la consignación y antes sus visitas (cascada explícita en dos
// pasos dentro de una transacción).
func (uc *ConsignmentUseCase) Delete(ctx context.Context, consignmentID string) error {
	cons, err := uc.consRepo.GetByID(consignmentID)
	if err != nil {
		return err
	}
	if cons == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.RunConsignment(ctx, func(
		consRepo repository.ConsignmentRepository,
		visitRepo repository.ConsignmentVisitRepository,
	) error {
		if err := visitRepo.DeleteByConsignment(consignmentID); err != nil {
			return err
		}
		return consRepo.Delete(consignmentID)
	})
}

// ScheduleVisit programa una visita futura (collection o check) y mueve la
// próxima visita de la consignación, en una transacción con la fila bloqueada:
// o quedan la visita y la nueva fecha, o no queda nada.
func (uc *ConsignmentUseCase) ScheduleVisit(ctx context.Context, consignmentID, visitType string, date time.Time, notes string) (*entity.ConsignmentVisit, error) {
	switch visitType {
	case entity.VisitDelivery, entity.VisitCollection, entity.VisitCheck:
	default:
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	visit := &entity.ConsignmentVisit{
		ID:            uuid.New().String(),
		ConsignmentID: consignmentID,
		VisitDate:     date,
		Type:          visitType,
		Status:        entity.VisitScheduled,
		Notes:         notes,
		CreatedAt:     now,
	}
	err := uc.txRunner.RunConsignment(ctx, func(
		consRepo repository.ConsignmentRepository,
		visitRepo repository.ConsignmentVisitRepository,
	) error {
		cons, err := consRepo.GetForUpdate(consignmentID)
		if err != nil {
			return err
		}
		if cons == nil {
			return domain.ErrNotFound
		}
		if err := visitRepo.Create(visit); err != nil {
			return err
		}
		cons.NextVisitDate = date
		cons.UpdatedAt = now
		return consRepo.Update(cons)
	})
	if err != nil {
		return nil, err
	}
	return visit, nil
}

// CompleteVisit marca una visita como hecha.
func (uc *ConsignmentUseCase) CompleteVisit(ctx context.Context, visitID, notes string) error {
	visit, err := uc.visitRepo.GetByID(visitID)
	if err != nil {
		return err
	}
	if visit == nil {
		return domain.ErrNotFound
	}
	visit.Status = entity.VisitDone
	if notes != "" {
		visit.Notes = notes
	}
	return uc.visitRepo.Update(visit)
}

// RecordCollection registra un cobro: suma al monto pagado y pasa la
// consignación a paid cuando cubre el total de la venta asociada. La suma
// corre en transacción sobre la fila bloqueada, así dos cobros concurrentes
// nunca pierden un abono.
func (uc *ConsignmentUseCase) RecordCollection(ctx context.Context, consignmentID string, amount decimal.Decimal) (*entity.Consignment, error) {
	if !amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.Consignment
	err := uc.txRunner.RunConsignment(ctx, func(
		consRepo repository.ConsignmentRepository,
		visitRepo repository.ConsignmentVisitRepository,
	) error {
		cons, err := consRepo.GetForUpdate(consignmentID)
		if err != nil {
			return err
		}
		if cons == nil {
			return domain.ErrNotFound
		}
		sale, err := uc.saleRepo.GetByID(cons.SaleID)
		if err != nil {
			return err
		}
		cons.AmountPaid = cons.AmountPaid.Add(amount)
		if sale != nil && cons.AmountPaid.GreaterThanOrEqual(sale.Total) {
			cons.PaymentStatus = entity.ConsignmentPaid
		}
		cons.UpdatedAt = time.Now().UTC()
		if err := consRepo.Update(cons); err != nil {
			return err
		}
		updated = cons
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Get devuelve la consignación con sus visitas.
func (uc *ConsignmentUseCase) Get(ctx context.Context, consignmentID string) (*entity.Consignment, []*entity.ConsignmentVisit, error) {
	cons, err := uc.consRepo.GetByID(consignmentID)
	if err != nil {
		return nil, nil, err
	}
	if cons == nil {
		return nil, nil, domain.ErrNotFound
	}
	visits, err := uc.visitRepo.ListByConsignment(consignmentID)
	if err != nil {
		return nil, nil, err
	}
	return cons, visits, nil
}

// List lista consignaciones filtrando por estado de pago.
func (uc *ConsignmentUseCase) List(ctx context.Context, paymentStatus string, limit, offset int) ([]*entity.Consignment, error) {
	return uc.consRepo.List(paymentStatus, limit, offset)
}
