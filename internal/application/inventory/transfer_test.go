package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorales-dev/granolapp-api/internal/application/inventory"
	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
)

// Un traslado resta en origen, suma en destino y deja dos movimientos de tipo
// transferencia con deltas opuestos apuntando al mismo traslado.
func TestTransfer_DejaDosMovimientosOpuestos(t *testing.T) {
	f := newLedgerFixture(t)
	f.seedStock(t, testProductID, testWarehouseID, 30)

	transfer, err := f.transfers.Transfer(context.Background(), testLedgerUserID, inventory.TransferInput{
		ProductID:       testProductID,
		Quantity:        decimal.NewFromInt(12),
		FromWarehouseID: testWarehouseID,
		ToWarehouseID:   testWarehouseIDTo,
		Reason:          "reposición punto de venta",
	})
	require.NoError(t, err)
	require.NotNil(t, transfer)

	assert.True(t, f.inv.quantity(t, testProductID, testWarehouseID).Equal(decimal.NewFromInt(18)),
		"el origen debe quedar en 18")
	assert.True(t, f.inv.quantity(t, testProductID, testWarehouseIDTo).Equal(decimal.NewFromInt(12)),
		"el destino debe quedar en 12")

	require.Len(t, f.trRepo.transfers, 1)
	require.Len(t, f.mov.movements, 2, "un traslado deja exactamente dos movimientos")

	out, in := f.mov.movements[0], f.mov.movements[1]
	assert.Equal(t, testWarehouseID, out.WarehouseID, "primero la salida en origen")
	assert.Equal(t, testWarehouseIDTo, in.WarehouseID)
	assert.True(t, out.Delta.Equal(decimal.NewFromInt(-12)))
	assert.True(t, in.Delta.Equal(decimal.NewFromInt(12)))
	assert.True(t, out.Delta.Add(in.Delta).IsZero(), "los deltas deben sumar cero")

	for _, mov := range f.mov.movements {
		assert.Equal(t, entity.MovementTransfer, mov.Type)
		assert.Equal(t, entity.RefTransfer, mov.RefType)
		assert.Equal(t, transfer.ID, mov.RefID, "ambos movimientos referencian el mismo traslado")
	}
}

// Si el origen no alcanza, la transacción revierte completa: ni traslado, ni
// movimientos, ni cambio de stock.
func TestTransfer_StockInsuficienteRevierteTodo(t *testing.T) {
	f := newLedgerFixture(t)
	f.seedStock(t, testProductID, testWarehouseID, 5)

	_, err := f.transfers.Transfer(context.Background(), testLedgerUserID, inventory.TransferInput{
		ProductID:       testProductID,
		Quantity:        decimal.NewFromInt(10),
		FromWarehouseID: testWarehouseID,
		ToWarehouseID:   testWarehouseIDTo,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Current.Equal(decimal.NewFromInt(5)),
		"debe reportar lo disponible en origen")

	assert.Empty(t, f.trRepo.transfers, "no debe quedar registro del traslado")
	assert.Empty(t, f.mov.movements, "no debe quedar movimiento alguno")
	assert.True(t, f.inv.quantity(t, testProductID, testWarehouseID).Equal(decimal.NewFromInt(5)))
	assert.True(t, f.inv.quantity(t, testProductID, testWarehouseIDTo).IsZero())
}

func TestTransfer_MismaBodegaInvalida(t *testing.T) {
	f := newLedgerFixture(t)
	f.seedStock(t, testProductID, testWarehouseID, 30)

	_, err := f.transfers.Transfer(context.Background(), testLedgerUserID, inventory.TransferInput{
		ProductID:       testProductID,
		Quantity:        decimal.NewFromInt(1),
		FromWarehouseID: testWarehouseID,
		ToWarehouseID:   testWarehouseID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransfer_CantidadNoPositivaInvalida(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.transfers.Transfer(context.Background(), testLedgerUserID, inventory.TransferInput{
		ProductID:       testProductID,
		Quantity:        decimal.Zero,
		FromWarehouseID: testWarehouseID,
		ToWarehouseID:   testWarehouseIDTo,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El destino puede no tener fila previa: el traslado la crea con el primer
// movimiento de entrada.
func TestTransfer_DestinoSinFilaPrevia(t *testing.T) {
	f := newLedgerFixture(t)
	f.seedStock(t, testProductID, testWarehouseID, 7)

	_, err := f.transfers.Transfer(context.Background(), testLedgerUserID, inventory.TransferInput{
		ProductID:       testProductID,
		Quantity:        decimal.NewFromInt(7),
		FromWarehouseID: testWarehouseID,
		ToWarehouseID:   testWarehouseIDTo,
	})
	require.NoError(t, err)

	assert.True(t, f.inv.quantity(t, testProductID, testWarehouseID).IsZero())
	assert.True(t, f.inv.quantity(t, testProductID, testWarehouseIDTo).Equal(decimal.NewFromInt(7)))
}
