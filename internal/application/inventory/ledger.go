package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

// StockLedger es el único camino para mutar stock de productos: lee la
// cantidad actual bajo bloqueo de fila, aplica el delta y agrega exactamente
// una fila inmutable al libro de movimientos, todo en una transacción.
type StockLedger struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewStockLedger construye el caso de uso.
func NewStockLedger(txRunner TxRunner, productRepo repository.ProductRepository, warehouseRepo repository.WarehouseRepository) *StockLedger {
	return &StockLedger{txRunner: txRunner, productRepo: productRepo, warehouseRepo: warehouseRepo}
}

// AdjustStockInput entrada para un ajuste de stock. Type por defecto es
// ajuste; venta/produccion/transferencia los usan los flujos respectivos.
type AdjustStockInput struct {
	ProductID   string
	WarehouseID string
	Delta       decimal.Decimal
	Type        string
	Reason      string
	RefType     string
	RefID       string
}

// StockAdjustment resultado de un ajuste aplicado.
type StockAdjustment struct {
	Previous   decimal.Decimal
	New        decimal.Decimal
	MovementID string
}

// Adjust aplica un delta al stock de (producto, bodega) dentro de una
// transacción con bloqueo de fila. Si la fila no existe y el delta es
// negativo falla con stock insuficiente; si no existe y el delta es >= 0 la
// crea con cantidad previa cero. Nunca deja cantidades negativas.
func (l *StockLedger) Adjust(ctx context.Context, userID string, in AdjustStockInput) (*StockAdjustment, error) {
	if in.ProductID == "" || in.WarehouseID == "" || in.Delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.Type == "" {
		in.Type = entity.MovementAdjustment
	}
	switch in.Type {
	case entity.MovementSale, entity.MovementProduction, entity.MovementTransfer, entity.MovementAdjustment:
	default:
		return nil, domain.ErrInvalidInput
	}

	product, err := l.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	wh, err := l.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}

	var result *StockAdjustment
	err = l.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.MovementRepository) error {
		result, err = ApplyAdjustmentInTx(invRepo, movRepo, Adjustment{
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			Delta:       in.Delta,
			Type:        in.Type,
			Reason:      in.Reason,
			RefType:     in.RefType,
			RefID:       in.RefID,
			UserID:      userID,
			Now:         time.Now().UTC(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Adjustment parámetros para aplicar un delta dentro de una transacción ya abierta.
type Adjustment struct {
	ProductID   string
	WarehouseID string
	Delta       decimal.Decimal
	Type        string
	Reason      string
	RefType     string
	RefID       string
	UserID      string
	Now         time.Time
}

// ApplyAdjustmentInTx aplica un delta usando repositorios atados a la
// transacción del caller. Es el único camino de mutación de stock: ventas,
// producción y traslados pasan por aquí para que la cantidad materializada y
// el libro de movimientos no diverjan jamás. Exactamente una fila de
// movimiento por llamada.
func ApplyAdjustmentInTx(invRepo repository.InventoryRepository, movRepo repository.MovementRepository, adj Adjustment) (*StockAdjustment, error) {
	item, err := invRepo.GetForUpdate(adj.ProductID, adj.WarehouseID)
	if err != nil {
		return nil, err
	}

	previous := item.Quantity
	newQty := previous.Add(adj.Delta)
	if newQty.IsNegative() {
		return nil, &domain.InsufficientStockError{
			Current:   previous,
			Requested: adj.Delta.Neg(),
		}
	}

	item.Quantity = newQty
	item.UpdatedAt = adj.Now
	if err := invRepo.Upsert(item); err != nil {
		return nil, err
	}

	mov := &entity.InventoryMovement{
		ID:          uuid.New().String(),
		ProductID:   adj.ProductID,
		WarehouseID: adj.WarehouseID,
		Type:        adj.Type,
		Previous:    previous,
		Delta:       adj.Delta,
		New:         newQty,
		Reason:      adj.Reason,
		RefType:     adj.RefType,
		RefID:       adj.RefID,
		CreatedBy:   adj.UserID,
		CreatedAt:   adj.Now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}

	return &StockAdjustment{Previous: previous, New: newQty, MovementID: mov.ID}, nil
}
