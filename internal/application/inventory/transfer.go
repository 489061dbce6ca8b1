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

// TransferUseCase traslada stock entre bodegas: resta en origen, suma (o
// crea la fila) en destino y deja dos movimientos con deltas opuestos
// referenciando el mismo traslado, todo en una transacción.
type TransferUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(txRunner TxRunner, productRepo repository.ProductRepository, warehouseRepo repository.WarehouseRepository) *TransferUseCase {
	return &TransferUseCase{txRunner: txRunner, productRepo: productRepo, warehouseRepo: warehouseRepo}
}

// TransferInput entrada para un traslado entre bodegas.
type TransferInput struct {
	ProductID       string
	Quantity        decimal.Decimal
	FromWarehouseID string
	ToWarehouseID   string
	Reason          string
}

// Transfer ejecuta el traslado. Falla con stock insuficiente (reportando la
// cantidad disponible en origen) si la bodega origen no alcanza; en ese caso
// la transacción revierte y no queda ni el registro del traslado ni
// movimiento alguno.
func (uc *TransferUseCase) Transfer(ctx context.Context, userID string, in TransferInput) (*entity.Transfer, error) {
	if in.ProductID == "" || in.FromWarehouseID == "" || in.ToWarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) || in.FromWarehouseID == in.ToWarehouseID {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	for _, whID := range []string{in.FromWarehouseID, in.ToWarehouseID} {
		wh, err := uc.warehouseRepo.GetByID(whID)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now().UTC()
	transfer := &entity.Transfer{
		ID:              uuid.New().String(),
		ProductID:       in.ProductID,
		Quantity:        in.Quantity,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Reason:          in.Reason,
		CreatedBy:       userID,
		CreatedAt:       now,
	}

	err = uc.txRunner.RunTransfer(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
		transferRepo repository.TransferRepository,
	) error {
		if err := transferRepo.Create(transfer); err != nil {
			return err
		}
		// Siempre origen antes que destino: la salida valida el stock
		// disponible antes de tocar la fila destino. Dos traslados cruzados
		// pueden bloquearse entre sí; Postgres aborta uno y esa transacción
		// revierte completa, sin traslado ni movimientos a medias.
		if _, err := ApplyAdjustmentInTx(invRepo, movRepo, Adjustment{
			ProductID:   in.ProductID,
			WarehouseID: in.FromWarehouseID,
			Delta:       in.Quantity.Neg(),
			Type:        entity.MovementTransfer,
			Reason:      in.Reason,
			RefType:     entity.RefTransfer,
			RefID:       transfer.ID,
			UserID:      userID,
			Now:         now,
		}); err != nil {
			return err
		}
		_, err := ApplyAdjustmentInTx(invRepo, movRepo, Adjustment{
			ProductID:   in.ProductID,
			WarehouseID: in.ToWarehouseID,
			Delta:       in.Quantity,
			Type:        entity.MovementTransfer,
			Reason:      in.Reason,
			RefType:     entity.RefTransfer,
			RefID:       transfer.ID,
			UserID:      userID,
			Now:         now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return transfer, nil
}
