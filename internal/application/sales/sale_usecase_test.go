package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorales-dev/granolapp-api/internal/application/sales"
	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memSaleRepo struct {
	sales map[string]*entity.Sale
}

func newMemSaleRepo() *memSaleRepo {
	return &memSaleRepo{sales: map[string]*entity.Sale{}}
}

func (m *memSaleRepo) Create(sale *entity.Sale) error {
	cp := *sale
	m.sales[sale.ID] = &cp
	return nil
}

func (m *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := m.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memSaleRepo) Cancel(id, userID, reason string, at time.Time) error {
	s, ok := m.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Cancelled = true
	s.CancelledAt = &at
	s.CancelledBy = userID
	if reason != "" {
		s.Notes = reason
	}
	return nil
}

func (m *memSaleRepo) List(from, to *time.Time, warehouseID string, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range m.sales {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

type memConsignmentRepo struct {
	items map[string]*entity.Consignment
}

func newMemConsignmentRepo() *memConsignmentRepo {
	return &memConsignmentRepo{items: map[string]*entity.Consignment{}}
}

func (m *memConsignmentRepo) Create(c *entity.Consignment) error {
	cp := *c
	m.items[c.ID] = &cp
	return nil
}

func (m *memConsignmentRepo) GetByID(id string) (*entity.Consignment, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memConsignmentRepo) GetForUpdate(id string) (*entity.Consignment, error) {
	return m.GetByID(id)
}

func (m *memConsignmentRepo) Update(c *entity.Consignment) error {
	if _, ok := m.items[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	m.items[c.ID] = &cp
	return nil
}

func (m *memConsignmentRepo) List(paymentStatus string, limit, offset int) ([]*entity.Consignment, error) {
	var out []*entity.Consignment
	for _, c := range m.items {
		if paymentStatus == "" || c.PaymentStatus == paymentStatus {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memConsignmentRepo) Delete(id string) error {
	delete(m.items, id)
	return nil
}

type memVisitRepo struct {
	visits map[string]*entity.ConsignmentVisit
}

func newMemVisitRepo() *memVisitRepo {
	return &memVisitRepo{visits: map[string]*entity.ConsignmentVisit{}}
}

func (m *memVisitRepo) Create(v *entity.ConsignmentVisit) error {
	cp := *v
	m.visits[v.ID] = &cp
	return nil
}

func (m *memVisitRepo) GetByID(id string) (*entity.ConsignmentVisit, error) {
	v, ok := m.visits[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (m *memVisitRepo) Update(v *entity.ConsignmentVisit) error {
	if _, ok := m.visits[v.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *v
	m.visits[v.ID] = &cp
	return nil
}

func (m *memVisitRepo) ListByConsignment(consignmentID string) ([]*entity.ConsignmentVisit, error) {
	var out []*entity.ConsignmentVisit
	for _, v := range m.visits {
		if v.ConsignmentID == consignmentID {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memVisitRepo) DeleteByConsignment(consignmentID string) error {
	for id, v := range m.visits {
		if v.ConsignmentID == consignmentID {
			delete(m.visits, id)
		}
	}
	return nil
}

type memInvRepo struct {
	items map[string]*entity.InventoryItem
}

func invKey(productID, warehouseID string) string { return productID + "|" + warehouseID }

func newMemInvRepo() *memInvRepo {
	return &memInvRepo{items: map[string]*entity.InventoryItem{}}
}

func (m *memInvRepo) Get(productID, warehouseID string) (*entity.InventoryItem, error) {
	it, ok := m.items[invKey(productID, warehouseID)]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (m *memInvRepo) GetForUpdate(productID, warehouseID string) (*entity.InventoryItem, error) {
	if it, ok := m.items[invKey(productID, warehouseID)]; ok {
		cp := *it
		return &cp, nil
	}
	return &entity.InventoryItem{
		ID:          uuid.New().String(),
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    decimal.Zero,
	}, nil
}

func (m *memInvRepo) Upsert(item *entity.InventoryItem) error {
	cp := *item
	m.items[invKey(item.ProductID, item.WarehouseID)] = &cp
	return nil
}

func (m *memInvRepo) ListByWarehouse(warehouseID string) ([]*entity.InventoryItem, error) {
	return nil, nil
}

func (m *memInvRepo) ListByProduct(productID string) ([]*entity.InventoryItem, error) {
	return nil, nil
}

func (m *memInvRepo) Delete(productID, warehouseID string) error {
	delete(m.items, invKey(productID, warehouseID))
	return nil
}

func (m *memInvRepo) quantity(productID, warehouseID string) decimal.Decimal {
	it, ok := m.items[invKey(productID, warehouseID)]
	if !ok {
		return decimal.Zero
	}
	return it.Quantity
}

type memMovRepo struct {
	movements []*entity.InventoryMovement
}

func (m *memMovRepo) Create(mov *entity.InventoryMovement) error {
	cp := *mov
	m.movements = append(m.movements, &cp)
	return nil
}

func (m *memMovRepo) GetByID(id string) (*entity.InventoryMovement, error) { return nil, nil }

func (m *memMovRepo) ListByProduct(productID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}

func (m *memMovRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}

func (m *memMovRepo) ListByRef(refType, refID string) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, mov := range m.movements {
		if mov.RefType == refType && mov.RefID == refID {
			cp := *mov
			out = append(out, &cp)
		}
	}
	return out, nil
}

type stubProductRepo struct{ products map[string]*entity.Product }

func (s *stubProductRepo) Create(p *entity.Product) error             { return nil }
func (s *stubProductRepo) GetByID(id string) (*entity.Product, error) { return s.products[id], nil }
func (s *stubProductRepo) GetByName(name string) (*entity.Product, error) {
	return nil, nil
}
func (s *stubProductRepo) Update(p *entity.Product) error { return nil }
func (s *stubProductRepo) List(includeInactive bool, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (s *stubProductRepo) Deactivate(id string) error { return nil }

type stubWarehouseRepo struct{ warehouses map[string]*entity.Warehouse }

func (s *stubWarehouseRepo) Create(w *entity.Warehouse) error { return nil }
func (s *stubWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return s.warehouses[id], nil
}
func (s *stubWarehouseRepo) GetByCode(code string) (*entity.Warehouse, error) { return nil, nil }
func (s *stubWarehouseRepo) Update(w *entity.Warehouse) error                 { return nil }
func (s *stubWarehouseRepo) List() ([]*entity.Warehouse, error)               { return nil, nil }

type stubCustomerRepo struct{ customers map[string]*entity.Customer }

func (s *stubCustomerRepo) Create(c *entity.Customer) error { return nil }
func (s *stubCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return s.customers[id], nil
}
func (s *stubCustomerRepo) Update(c *entity.Customer) error { return nil }
func (s *stubCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (s *stubCustomerRepo) Deactivate(id string) error { return nil }

// fakeTxRunner ejecuta fn contra los fakes y restaura el estado previo cuando
// fn falla, igual que el rollback real.
type fakeTxRunner struct {
	saleRepo  *memSaleRepo
	inv       *memInvRepo
	mov       *memMovRepo
	consRepo  *memConsignmentRepo
	visitRepo *memVisitRepo

	// txCons, si se asigna, reemplaza al repo de consignaciones visto dentro
	// de la transacción; permite inyectar fallos de escritura.
	txCons repository.ConsignmentRepository
}

func (f *fakeTxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
) error) error {
	salesSnap := make(map[string]*entity.Sale, len(f.saleRepo.sales))
	for k, v := range f.saleRepo.sales {
		cp := *v
		salesSnap[k] = &cp
	}
	invSnap := make(map[string]*entity.InventoryItem, len(f.inv.items))
	for k, v := range f.inv.items {
		cp := *v
		invSnap[k] = &cp
	}
	movSnap := append([]*entity.InventoryMovement(nil), f.mov.movements...)

	if err := fn(f.saleRepo, f.inv, f.mov); err != nil {
		f.saleRepo.sales = salesSnap
		f.inv.items = invSnap
		f.mov.movements = movSnap
		return err
	}
	return nil
}

func (f *fakeTxRunner) RunConsignment(ctx context.Context, fn func(
	consRepo repository.ConsignmentRepository,
	visitRepo repository.ConsignmentVisitRepository,
) error) error {
	consSnap := make(map[string]*entity.Consignment, len(f.consRepo.items))
	for k, v := range f.consRepo.items {
		cp := *v
		consSnap[k] = &cp
	}
	visitSnap := make(map[string]*entity.ConsignmentVisit, len(f.visitRepo.visits))
	for k, v := range f.visitRepo.visits {
		cp := *v
		visitSnap[k] = &cp
	}

	cons := repository.ConsignmentRepository(f.consRepo)
	if f.txCons != nil {
		cons = f.txCons
	}
	if err := fn(cons, f.visitRepo); err != nil {
		f.consRepo.items = consSnap
		f.visitRepo.visits = visitSnap
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	testProductID   = "prod-granola-500g"
	testWarehouseID = "bodega-principal"
	testCustomerID  = "cliente-tienda-mmm"
	testUserID      = "user-cajero"
)

type salesFixture struct {
	saleUC    *sales.SaleUseCase
	consUC    *sales.ConsignmentUseCase
	txRunner  *fakeTxRunner
	saleRepo  *memSaleRepo
	consRepo  *memConsignmentRepo
	visitRepo *memVisitRepo
	inv       *memInvRepo
	mov       *memMovRepo
	products  *stubProductRepo
	customers *stubCustomerRepo
}

func newSalesFixture(t *testing.T) *salesFixture {
	t.Helper()
	saleRepo := newMemSaleRepo()
	consRepo := newMemConsignmentRepo()
	visitRepo := newMemVisitRepo()
	inv := newMemInvRepo()
	mov := &memMovRepo{}
	txRunner := &fakeTxRunner{saleRepo: saleRepo, inv: inv, mov: mov, consRepo: consRepo, visitRepo: visitRepo}

	products := &stubProductRepo{products: map[string]*entity.Product{
		testProductID: {ID: testProductID, Name: "Granola 500g", Active: true},
	}}
	warehouses := &stubWarehouseRepo{warehouses: map[string]*entity.Warehouse{
		testWarehouseID: {ID: testWarehouseID, Code: "PRINCIPAL", Active: true},
	}}
	customers := &stubCustomerRepo{customers: map[string]*entity.Customer{
		testCustomerID: {ID: testCustomerID, Name: "Tienda MMM", Active: true},
	}}

	return &salesFixture{
		saleUC:    sales.NewSaleUseCase(txRunner, saleRepo, products, warehouses, customers),
		consUC:    sales.NewConsignmentUseCase(txRunner, consRepo, visitRepo, saleRepo, customers, products),
		txRunner:  txRunner,
		saleRepo:  saleRepo,
		consRepo:  consRepo,
		visitRepo: visitRepo,
		inv:       inv,
		mov:       mov,
		products:  products,
		customers: customers,
	}
}

func (f *salesFixture) seedStock(t *testing.T, qty int64) {
	t.Helper()
	require.NoError(t, f.inv.Upsert(&entity.InventoryItem{
		ID:          uuid.New().String(),
		ProductID:   testProductID,
		WarehouseID: testWarehouseID,
		Quantity:    decimal.NewFromInt(qty),
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RecordSale
// ──────────────────────────────────────────────────────────────────────────────

// Registrar una venta descuenta el stock en la misma operación y deja un
// movimiento de tipo venta referenciando la venta.
func TestRecordSale_DescuentaStockEnLaMismaOperacion(t *testing.T) {
	f := newSalesFixture(t)
	f.seedStock(t, 20)

	sale, err := f.saleUC.RecordSale(context.Background(), testUserID, sales.RecordSaleInput{
		ProductID:     testProductID,
		Quantity:      decimal.NewFromInt(3),
		UnitPrice:     decimal.NewFromInt(15000),
		PaymentMethod: entity.PaymentCash,
		WarehouseID:   testWarehouseID,
		Salesperson:   "maria",
	})
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(45000)), "subtotal = cantidad × precio")
	assert.True(t, sale.Total.Equal(sale.Subtotal))
	assert.False(t, sale.Cancelled)

	assert.True(t, f.inv.quantity(testProductID, testWarehouseID).Equal(decimal.NewFromInt(17)),
		"el stock debe bajar de 20 a 17")

	movs, err := f.mov.ListByRef(entity.RefSale, sale.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1, "exactamente un movimiento por venta")
	assert.Equal(t, entity.MovementSale, movs[0].Type)
	assert.True(t, movs[0].Delta.Equal(decimal.NewFromInt(-3)), "el delta de una venta es negativo")
}

// Sin stock suficiente la venta no queda registrada: la transacción revierte
// venta, stock y movimientos.
func TestRecordSale_StockInsuficienteNoDejaVenta(t *testing.T) {
	f := newSalesFixture(t)
	f.seedStock(t, 2)

	_, err := f.saleUC.RecordSale(context.Background(), testUserID, sales.RecordSaleInput{
		ProductID:     testProductID,
		Quantity:      decimal.NewFromInt(5),
		UnitPrice:     decimal.NewFromInt(15000),
		PaymentMethod: entity.PaymentCash,
		WarehouseID:   testWarehouseID,
		Salesperson:   "maria",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Empty(t, f.saleRepo.sales, "la venta no debe persistirse")
	assert.Empty(t, f.mov.movements, "no debe quedar movimiento alguno")
	assert.True(t, f.inv.quantity(testProductID, testWarehouseID).Equal(decimal.NewFromInt(2)))
}

func TestRecordSale_MetodoPagoInvalido(t *testing.T) {
	f := newSalesFixture(t)
	f.seedStock(t, 10)

	_, err := f.saleUC.RecordSale(context.Background(), testUserID, sales.RecordSaleInput{
		ProductID:     testProductID,
		Quantity:      decimal.NewFromInt(1),
		UnitPrice:     decimal.NewFromInt(15000),
		PaymentMethod: "Cheque",
		WarehouseID:   testWarehouseID,
		Salesperson:   "maria",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.saleRepo.sales)
}

func TestRecordSale_VendedorRequerido(t *testing.T) {
	f := newSalesFixture(t)

	_, err := f.saleUC.RecordSale(context.Background(), testUserID, sales.RecordSaleInput{
		ProductID:     testProductID,
		Quantity:      decimal.NewFromInt(1),
		UnitPrice:     decimal.NewFromInt(15000),
		PaymentMethod: entity.PaymentCash,
		WarehouseID:   testWarehouseID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordSale_ClienteInexistente(t *testing.T) {
	f := newSalesFixture(t)
	f.seedStock(t, 10)

	_, err := f.saleUC.RecordSale(context.Background(), testUserID, sales.RecordSaleInput{
		ProductID:     testProductID,
		Quantity:      decimal.NewFromInt(1),
		UnitPrice:     decimal.NewFromInt(15000),
		PaymentMethod: entity.PaymentCash,
		WarehouseID:   testWarehouseID,
		Salesperson:   "maria",
		CustomerID:    "cliente-fantasma",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Una venta con precio cero (regalo) es válida: descuenta stock con total cero.
func TestRecordSale_RegaloConPrecioCero(t *testing.T) {
	f := newSalesFixture(t)
	f.seedStock(t, 10)

	sale, err := f.saleUC.RecordSale(context.Background(), testUserID, sales.RecordSaleInput{
		ProductID:     testProductID,
		Quantity:      decimal.NewFromInt(2),
		UnitPrice:     decimal.Zero,
		PaymentMethod: entity.PaymentGift,
		WarehouseID:   testWarehouseID,
		Salesperson:   "maria",
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.IsZero())
	assert.True(t, f.inv.quantity(testProductID, testWarehouseID).Equal(decimal.NewFromInt(8)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CancelSale
// ──────────────────────────────────────────────────────────────────────────────

// La cancelación es una marca blanda y no es idempotente: cancelar dos veces
// falla con estado inválido. El stock descontado no se revierte.
func TestCancelSale_DosVecesFalla(t *testing.T) {
	f := newSalesFixture(t)
	f.seedStock(t, 10)

	sale, err := f.saleUC.RecordSale(context.Background(), testUserID, sales.RecordSaleInput{
		ProductID:     testProductID,
		Quantity:      decimal.NewFromInt(4),
		UnitPrice:     decimal.NewFromInt(15000),
		PaymentMethod: entity.PaymentTransfer,
		WarehouseID:   testWarehouseID,
		Salesperson:   "maria",
	})
	require.NoError(t, err)

	require.NoError(t, f.saleUC.CancelSale(context.Background(), testUserID, sale.ID, "pedido devuelto"))

	got, err := f.saleUC.GetSale(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.True(t, got.Cancelled)
	assert.Equal(t, testUserID, got.CancelledBy)

	assert.True(t, f.inv.quantity(testProductID, testWarehouseID).Equal(decimal.NewFromInt(6)),
		"cancelar no revierte el stock automáticamente")

	err = f.saleUC.CancelSale(context.Background(), testUserID, sale.ID, "otra vez")
	assert.ErrorIs(t, err, domain.ErrInvalidState, "la segunda cancelación debe fallar")
}

func TestCancelSale_VentaInexistente(t *testing.T) {
	f := newSalesFixture(t)

	err := f.saleUC.CancelSale(context.Background(), testUserID, "venta-fantasma", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
