package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorales-dev/granolapp-api/internal/application/inventory"
	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

func invKey(productID, warehouseID string) string {
	return productID + "|" + warehouseID
}

type memInventoryRepo struct {
	items map[string]*entity.InventoryItem
}

func newMemInventoryRepo() *memInventoryRepo {
	return &memInventoryRepo{items: map[string]*entity.InventoryItem{}}
}

func (m *memInventoryRepo) Get(productID, warehouseID string) (*entity.InventoryItem, error) {
	it, ok := m.items[invKey(productID, warehouseID)]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (m *memInventoryRepo) GetForUpdate(productID, warehouseID string) (*entity.InventoryItem, error) {
	if it, ok := m.items[invKey(productID, warehouseID)]; ok {
		cp := *it
		return &cp, nil
	}
	// Igual que el repo real: fila inexistente se trata como cantidad cero.
	return &entity.InventoryItem{
		ID:          uuid.New().String(),
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    decimal.Zero,
	}, nil
}

func (m *memInventoryRepo) Upsert(item *entity.InventoryItem) error {
	cp := *item
	m.items[invKey(item.ProductID, item.WarehouseID)] = &cp
	return nil
}

func (m *memInventoryRepo) ListByWarehouse(warehouseID string) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range m.items {
		if it.WarehouseID == warehouseID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memInventoryRepo) ListByProduct(productID string) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range m.items {
		if it.ProductID == productID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memInventoryRepo) Delete(productID, warehouseID string) error {
	it, ok := m.items[invKey(productID, warehouseID)]
	if !ok {
		return domain.ErrNotFound
	}
	if !it.Quantity.IsZero() {
		return domain.ErrInvalidState
	}
	delete(m.items, invKey(productID, warehouseID))
	return nil
}

func (m *memInventoryRepo) snapshot() map[string]*entity.InventoryItem {
	snap := make(map[string]*entity.InventoryItem, len(m.items))
	for k, it := range m.items {
		cp := *it
		snap[k] = &cp
	}
	return snap
}

func (m *memInventoryRepo) quantity(t *testing.T, productID, warehouseID string) decimal.Decimal {
	t.Helper()
	it, ok := m.items[invKey(productID, warehouseID)]
	if !ok {
		return decimal.Zero
	}
	return it.Quantity
}

type memMovementRepo struct {
	movements []*entity.InventoryMovement
}

func (m *memMovementRepo) Create(movement *entity.InventoryMovement) error {
	cp := *movement
	m.movements = append(m.movements, &cp)
	return nil
}

func (m *memMovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	for _, mov := range m.movements {
		if mov.ID == id {
			cp := *mov
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memMovementRepo) ListByProduct(productID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, mov := range m.movements {
		if mov.ProductID == productID && (warehouseID == "" || mov.WarehouseID == warehouseID) {
			cp := *mov
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memMovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, mov := range m.movements {
		if mov.WarehouseID == warehouseID {
			cp := *mov
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memMovementRepo) ListByRef(refType, refID string) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, mov := range m.movements {
		if mov.RefType == refType && mov.RefID == refID {
			cp := *mov
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memTransferRepo struct {
	transfers []*entity.Transfer
}

func (m *memTransferRepo) Create(transfer *entity.Transfer) error {
	cp := *transfer
	m.transfers = append(m.transfers, &cp)
	return nil
}

func (m *memTransferRepo) GetByID(id string) (*entity.Transfer, error) {
	for _, tr := range m.transfers {
		if tr.ID == id {
			cp := *tr
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memTransferRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Transfer, error) {
	out := make([]*entity.Transfer, 0, len(m.transfers))
	for _, tr := range m.transfers {
		cp := *tr
		out = append(out, &cp)
	}
	return out, nil
}

type stubProductRepo struct {
	products map[string]*entity.Product
}

func (s *stubProductRepo) Create(product *entity.Product) error {
	s.products[product.ID] = product
	return nil
}

func (s *stubProductRepo) GetByID(id string) (*entity.Product, error) {
	return s.products[id], nil
}

func (s *stubProductRepo) GetByName(name string) (*entity.Product, error) {
	for _, p := range s.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}

func (s *stubProductRepo) Update(product *entity.Product) error { return nil }

func (s *stubProductRepo) List(includeInactive bool, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) Deactivate(id string) error { return nil }

type stubWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func (s *stubWarehouseRepo) Create(warehouse *entity.Warehouse) error {
	s.warehouses[warehouse.ID] = warehouse
	return nil
}

func (s *stubWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return s.warehouses[id], nil
}

func (s *stubWarehouseRepo) GetByCode(code string) (*entity.Warehouse, error) {
	for _, w := range s.warehouses {
		if w.Code == code {
			return w, nil
		}
	}
	return nil, nil
}

func (s *stubWarehouseRepo) Update(warehouse *entity.Warehouse) error { return nil }

func (s *stubWarehouseRepo) List() ([]*entity.Warehouse, error) { return nil, nil }

// fakeTxRunner ejecuta fn contra los fakes y simula el rollback restaurando el
// estado previo cuando fn devuelve error.
type fakeTxRunner struct {
	inv       *memInventoryRepo
	mov       *memMovementRepo
	transfers *memTransferRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
) error) error {
	invSnap := f.inv.snapshot()
	movSnap := append([]*entity.InventoryMovement(nil), f.mov.movements...)
	if err := fn(f.inv, f.mov); err != nil {
		f.inv.items = invSnap
		f.mov.movements = movSnap
		return err
	}
	return nil
}

func (f *fakeTxRunner) RunTransfer(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
	transferRepo repository.TransferRepository,
) error) error {
	invSnap := f.inv.snapshot()
	movSnap := append([]*entity.InventoryMovement(nil), f.mov.movements...)
	trSnap := append([]*entity.Transfer(nil), f.transfers.transfers...)
	if err := fn(f.inv, f.mov, f.transfers); err != nil {
		f.inv.items = invSnap
		f.mov.movements = movSnap
		f.transfers.transfers = trSnap
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	testProductID     = "prod-granola-1kg"
	testWarehouseID   = "bodega-principal"
	testWarehouseIDTo = "bodega-mmm"
	testLedgerUserID  = "user-admin"
)

type ledgerFixture struct {
	ledger    *inventory.StockLedger
	transfers *inventory.TransferUseCase
	inv       *memInventoryRepo
	mov       *memMovementRepo
	trRepo    *memTransferRepo
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	inv := newMemInventoryRepo()
	mov := &memMovementRepo{}
	trRepo := &memTransferRepo{}
	txRunner := &fakeTxRunner{inv: inv, mov: mov, transfers: trRepo}

	products := &stubProductRepo{products: map[string]*entity.Product{
		testProductID: {ID: testProductID, Name: "Granola 1kg", Active: true},
	}}
	warehouses := &stubWarehouseRepo{warehouses: map[string]*entity.Warehouse{
		testWarehouseID:   {ID: testWarehouseID, Code: "PRINCIPAL", Name: "Principal", Active: true},
		testWarehouseIDTo: {ID: testWarehouseIDTo, Code: "MMM", Name: "Punto MMM", Active: true},
	}}

	return &ledgerFixture{
		ledger:    inventory.NewStockLedger(txRunner, products, warehouses),
		transfers: inventory.NewTransferUseCase(txRunner, products, warehouses),
		inv:       inv,
		mov:       mov,
		trRepo:    trRepo,
	}
}

func (f *ledgerFixture) seedStock(t *testing.T, productID, warehouseID string, qty int64) {
	t.Helper()
	require.NoError(t, f.inv.Upsert(&entity.InventoryItem{
		ID:          uuid.New().String(),
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    decimal.NewFromInt(qty),
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Adjust
// ──────────────────────────────────────────────────────────────────────────────

// Una entrada sobre una pareja sin fila crea el stock desde cero y deja
// exactamente un movimiento con previo, delta y resultante coherentes.
func TestAdjust_EntradaCreaFilaYUnMovimiento(t *testing.T) {
	f := newLedgerFixture(t)

	result, err := f.ledger.Adjust(context.Background(), testLedgerUserID, inventory.AdjustStockInput{
		ProductID:   testProductID,
		WarehouseID: testWarehouseID,
		Delta:       decimal.NewFromInt(50),
		Reason:      "carga inicial",
	})
	require.NoError(t, err)

	assert.True(t, result.Previous.IsZero(), "el stock previo debe ser cero")
	assert.True(t, result.New.Equal(decimal.NewFromInt(50)))
	assert.True(t, f.inv.quantity(t, testProductID, testWarehouseID).Equal(decimal.NewFromInt(50)))

	require.Len(t, f.mov.movements, 1, "exactamente un movimiento por ajuste")
	mov := f.mov.movements[0]
	assert.Equal(t, entity.MovementAdjustment, mov.Type, "sin tipo explícito el ajuste es el default")
	assert.True(t, mov.Previous.IsZero())
	assert.True(t, mov.Delta.Equal(decimal.NewFromInt(50)))
	assert.True(t, mov.New.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, testLedgerUserID, mov.CreatedBy)
	assert.Equal(t, result.MovementID, mov.ID)
}

// Una salida mayor al stock disponible falla con el error tipado de stock
// insuficiente y no escribe ni la cantidad ni el movimiento.
func TestAdjust_StockInsuficienteNoEscribeNada(t *testing.T) {
	f := newLedgerFixture(t)
	f.seedStock(t, testProductID, testWarehouseID, 10)

	_, err := f.ledger.Adjust(context.Background(), testLedgerUserID, inventory.AdjustStockInput{
		ProductID:   testProductID,
		WarehouseID: testWarehouseID,
		Delta:       decimal.NewFromInt(-15),
	})
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Current.Equal(decimal.NewFromInt(10)), "debe reportar el stock disponible")
	assert.True(t, insufficient.Requested.Equal(decimal.NewFromInt(15)), "debe reportar lo solicitado en positivo")

	assert.True(t, f.inv.quantity(t, testProductID, testWarehouseID).Equal(decimal.NewFromInt(10)),
		"el stock no debe cambiar")
	assert.Empty(t, f.mov.movements, "no debe quedar movimiento alguno")
}

// Delta cero, tipo desconocido o campos vacíos se rechazan antes de tocar la BD.
func TestAdjust_EntradaInvalida(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.ledger.Adjust(context.Background(), testLedgerUserID, inventory.AdjustStockInput{
		ProductID:   testProductID,
		WarehouseID: testWarehouseID,
		Delta:       decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "delta cero es inválido")

	_, err = f.ledger.Adjust(context.Background(), testLedgerUserID, inventory.AdjustStockInput{
		ProductID:   testProductID,
		WarehouseID: testWarehouseID,
		Delta:       decimal.NewFromInt(1),
		Type:        "regalo",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo de movimiento desconocido es inválido")

	_, err = f.ledger.Adjust(context.Background(), testLedgerUserID, inventory.AdjustStockInput{
		WarehouseID: testWarehouseID,
		Delta:       decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "producto vacío es inválido")

	assert.Empty(t, f.mov.movements)
}

func TestAdjust_ProductoInexistente(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.ledger.Adjust(context.Background(), testLedgerUserID, inventory.AdjustStockInput{
		ProductID:   "prod-fantasma",
		WarehouseID: testWarehouseID,
		Delta:       decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Una secuencia de ajustes mantiene el invariante: la cantidad materializada
// es igual a la suma de los deltas del libro.
func TestAdjust_LibroYCantidadNoDivergen(t *testing.T) {
	f := newLedgerFixture(t)

	deltas := []int64{30, -12, 5, -3}
	for _, d := range deltas {
		_, err := f.ledger.Adjust(context.Background(), testLedgerUserID, inventory.AdjustStockInput{
			ProductID:   testProductID,
			WarehouseID: testWarehouseID,
			Delta:       decimal.NewFromInt(d),
		})
		require.NoError(t, err)
	}

	sum := decimal.Zero
	for _, mov := range f.mov.movements {
		sum = sum.Add(mov.Delta)
	}
	assert.True(t, f.inv.quantity(t, testProductID, testWarehouseID).Equal(sum),
		"la cantidad debe ser la suma de los deltas del libro")
	assert.Len(t, f.mov.movements, len(deltas))
}
