package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmorales-dev/granolapp-api/internal/application/inventory"
	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

// SaleUseCase registra y cancela ventas de punto de venta. El registro
// descuenta el stock vía el libro de movimientos en la misma transacción:
// nunca queda una venta sin su salida de inventario.
type SaleUseCase struct {
	txRunner      TxRunner
	saleRepo      repository.SaleRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	customerRepo  repository.CustomerRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	customerRepo repository.CustomerRepository,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:      txRunner,
		saleRepo:      saleRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		customerRepo:  customerRepo,
	}
}

// RecordSaleInput entrada para registrar una venta.
type RecordSaleInput struct {
	ProductID     string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	PaymentMethod string
	WarehouseID   string
	Salesperson   string
	CustomerID    string // vacío = cliente general
	Notes         string
}

// RecordSale valida la venta, la persiste y descuenta el stock (tipo venta,
// referencia a la venta) en una sola transacción.
func (uc *SaleUseCase) RecordSale(ctx context.Context, userID string, in RecordSaleInput) (*entity.Sale, error) {
	if in.ProductID == "" || in.WarehouseID == "" || in.Salesperson == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now().UTC()
	subtotal := in.Quantity.Mul(in.UnitPrice)
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		CustomerID:    in.CustomerID,
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		Subtotal:      subtotal,
		Total:         subtotal,
		PaymentMethod: in.PaymentMethod,
		WarehouseID:   in.WarehouseID,
		Salesperson:   in.Salesperson,
		Notes:         in.Notes,
		CreatedAt:     now,
	}

	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
	) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		_, err := inventory.ApplyAdjustmentInTx(invRepo, movRepo, inventory.Adjustment{
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			Delta:       in.Quantity.Neg(),
			Type:        entity.MovementSale,
			Reason:      "venta " + in.PaymentMethod,
			RefType:     entity.RefSale,
			RefID:       sale.ID,
			UserID:      userID,
			Now:         now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// CancelSale marca la venta como cancelada (marca blanda: la fila no se borra
// y el stock descontado no se revierte automáticamente). Falla con
// ErrInvalidState si ya estaba cancelada.
func (uc *SaleUseCase) CancelSale(ctx context.Context, userID, saleID, reason string) error {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	if sale.Cancelled {
		return domain.ErrInvalidState
	}
	return uc.saleRepo.Cancel(saleID, userID, reason, time.Now().UTC())
}

// GetSale devuelve una venta por ID.
func (uc *SaleUseCase) GetSale(ctx context.Context, saleID string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

// ListSales lista ventas por rango de fechas y bodega.
func (uc *SaleUseCase) ListSales(ctx context.Context, from, to *time.Time, warehouseID string, limit, offset int) ([]*entity.Sale, error) {
	return uc.saleRepo.List(from, to, warehouseID, limit, offset)
}
