package production_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorales-dev/granolapp-api/internal/application/production"
	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
	"github.com/jmorales-dev/granolapp-api/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memBatchRepo struct {
	batches map[string]*entity.Batch
}

func newMemBatchRepo() *memBatchRepo {
	return &memBatchRepo{batches: map[string]*entity.Batch{}}
}

func (m *memBatchRepo) Create(batch *entity.Batch) error {
	cp := *batch
	m.batches[batch.ID] = &cp
	return nil
}

func (m *memBatchRepo) GetByID(id string) (*entity.Batch, error) {
	b, ok := m.batches[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (m *memBatchRepo) GetForUpdate(id string) (*entity.Batch, error) {
	return m.GetByID(id)
}

func (m *memBatchRepo) GetByCode(code string) (*entity.Batch, error) {
	for _, b := range m.batches {
		if b.Code == code {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memBatchRepo) UpdateStatusIfOpen(id, status string) (bool, error) {
	b, ok := m.batches[id]
	if !ok {
		return false, nil
	}
	if b.Status != entity.BatchPlanned && b.Status != entity.BatchInProgress {
		return false, nil
	}
	b.Status = status
	b.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (m *memBatchRepo) Update(batch *entity.Batch) error {
	cp := *batch
	m.batches[batch.ID] = &cp
	return nil
}

func (m *memBatchRepo) List(status string, from, to *time.Time, limit, offset int) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range m.batches {
		if status == "" || b.Status == status {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memBatchRepo) DeleteIfNotCompleted(id string) (bool, error) {
	b, ok := m.batches[id]
	if !ok {
		return false, nil
	}
	if b.Status == entity.BatchCompleted {
		return false, nil
	}
	delete(m.batches, id)
	return true, nil
}

func (m *memBatchRepo) status(t *testing.T, id string) string {
	t.Helper()
	b, ok := m.batches[id]
	require.True(t, ok, "el lote debe existir")
	return b.Status
}

type memPackRepo struct {
	packs []*entity.BatchPackaging
}

func (m *memPackRepo) Create(p *entity.BatchPackaging) error {
	cp := *p
	m.packs = append(m.packs, &cp)
	return nil
}

func (m *memPackRepo) ListByBatch(batchID string) ([]*entity.BatchPackaging, error) {
	var out []*entity.BatchPackaging
	for _, p := range m.packs {
		if p.BatchID == batchID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memPackRepo) CountByBatch(batchID string) (int, error) {
	n := 0
	for _, p := range m.packs {
		if p.BatchID == batchID {
			n++
		}
	}
	return n, nil
}

type memRecipeRepo struct {
	recipes     map[string]*entity.Recipe
	ingredients []*entity.RecipeIngredient
}

func newMemRecipeRepo() *memRecipeRepo {
	return &memRecipeRepo{recipes: map[string]*entity.Recipe{}}
}

func (m *memRecipeRepo) Create(r *entity.Recipe) error {
	cp := *r
	m.recipes[r.ID] = &cp
	return nil
}

func (m *memRecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	r, ok := m.recipes[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memRecipeRepo) Update(r *entity.Recipe) error {
	cp := *r
	m.recipes[r.ID] = &cp
	return nil
}

func (m *memRecipeRepo) List(includeInactive bool) ([]*entity.Recipe, error) { return nil, nil }

func (m *memRecipeRepo) Deactivate(id string) error {
	if r, ok := m.recipes[id]; ok {
		r.Active = false
	}
	return nil
}

func (m *memRecipeRepo) AddIngredient(ing *entity.RecipeIngredient) error {
	cp := *ing
	m.ingredients = append(m.ingredients, &cp)
	return nil
}

func (m *memRecipeRepo) RemoveIngredient(ingredientID string) error {
	out := m.ingredients[:0]
	for _, ing := range m.ingredients {
		if ing.ID != ingredientID {
			out = append(out, ing)
		}
	}
	m.ingredients = out
	return nil
}

func (m *memRecipeRepo) ListIngredients(recipeID string) ([]*entity.RecipeIngredient, error) {
	var out []*entity.RecipeIngredient
	for _, ing := range m.ingredients {
		if ing.RecipeID == recipeID {
			cp := *ing
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memRawRepo struct {
	materials map[string]*entity.RawMaterial
}

func newMemRawRepo() *memRawRepo {
	return &memRawRepo{materials: map[string]*entity.RawMaterial{}}
}

func (m *memRawRepo) Create(material *entity.RawMaterial) error {
	cp := *material
	m.materials[material.ID] = &cp
	return nil
}

func (m *memRawRepo) GetByID(id string) (*entity.RawMaterial, error) {
	mat, ok := m.materials[id]
	if !ok {
		return nil, nil
	}
	cp := *mat
	return &cp, nil
}

func (m *memRawRepo) Update(material *entity.RawMaterial) error {
	cp := *material
	m.materials[material.ID] = &cp
	return nil
}

func (m *memRawRepo) List(includeInactive bool) ([]*entity.RawMaterial, error) { return nil, nil }

func (m *memRawRepo) Deactivate(id string) error { return nil }

func (m *memRawRepo) ApplyDelta(id string, delta decimal.Decimal) (*entity.RawMaterial, error) {
	mat, ok := m.materials[id]
	if !ok {
		return nil, nil
	}
	next := mat.Stock.Add(delta)
	if next.IsNegative() {
		return nil, nil
	}
	mat.Stock = next
	cp := *mat
	return &cp, nil
}

func (m *memRawRepo) DeductIfAvailable(id string, qty decimal.Decimal) (bool, error) {
	mat, ok := m.materials[id]
	if !ok {
		return false, nil
	}
	if mat.Stock.LessThan(qty) {
		return false, nil
	}
	mat.Stock = mat.Stock.Sub(qty)
	return true, nil
}

func (m *memRawRepo) stock(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	mat, ok := m.materials[id]
	require.True(t, ok)
	return mat.Stock
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

func (m *memInvRepo) Delete(productID, warehouseID string) error { return nil }

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

// fakeTxRunner ejecuta fn contra los fakes y restaura todo el estado previo
// cuando fn falla, igual que el rollback real.
type fakeTxRunner struct {
	batches *memBatchRepo
	packs   *memPackRepo
	inv     *memInvRepo
	mov     *memMovRepo
	recipes *memRecipeRepo
	raw     *memRawRepo
}

func (f *fakeTxRunner) RunProduction(ctx context.Context, fn func(
	batchRepo repository.BatchRepository,
	packRepo repository.BatchPackagingRepository,
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
	recipeRepo repository.RecipeRepository,
	rawRepo repository.RawMaterialRepository,
) error) error {
	batchSnap := make(map[string]*entity.Batch, len(f.batches.batches))
	for k, v := range f.batches.batches {
		cp := *v
		batchSnap[k] = &cp
	}
	packSnap := append([]*entity.BatchPackaging(nil), f.packs.packs...)
	invSnap := make(map[string]*entity.InventoryItem, len(f.inv.items))
	for k, v := range f.inv.items {
		cp := *v
		invSnap[k] = &cp
	}
	movSnap := append([]*entity.InventoryMovement(nil), f.mov.movements...)
	rawSnap := make(map[string]*entity.RawMaterial, len(f.raw.materials))
	for k, v := range f.raw.materials {
		cp := *v
		rawSnap[k] = &cp
	}

	if err := fn(f.batches, f.packs, f.inv, f.mov, f.recipes, f.raw); err != nil {
		f.batches.batches = batchSnap
		f.packs.packs = packSnap
		f.inv.items = invSnap
		f.mov.movements = movSnap
		f.raw.materials = rawSnap
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	testRecipeID    = "receta-granola-clasica"
	testProductID   = "prod-granola-1kg"
	testWarehouseID = "bodega-principal"
	testOatsID      = "mp-avena"
	testHoneyID     = "mp-miel"
	testUserID      = "user-produccion"
)

type productionFixture struct {
	uc         *production.BatchUseCase
	txRunner   *fakeTxRunner
	batches    *memBatchRepo
	packs      *memPackRepo
	inv        *memInvRepo
	mov        *memMovRepo
	recipes    *memRecipeRepo
	raw        *memRawRepo
	products   *stubProductRepo
	warehouses *stubWarehouseRepo
}

// newProductionFixture arma una receta activa con dos ingredientes (avena 5,
// miel 2) y stock de materia prima configurable.
func newProductionFixture(t *testing.T, policy string, oatsStock, honeyStock int64) *productionFixture {
	t.Helper()
	batches := newMemBatchRepo()
	packs := &memPackRepo{}
	inv := newMemInvRepo()
	mov := &memMovRepo{}
	recipes := newMemRecipeRepo()
	raw := newMemRawRepo()
	txRunner := &fakeTxRunner{batches: batches, packs: packs, inv: inv, mov: mov, recipes: recipes, raw: raw}

	require.NoError(t, recipes.Create(&entity.Recipe{
		ID:        testRecipeID,
		Name:      "Granola clásica",
		ProductID: testProductID,
		YieldQty:  decimal.NewFromInt(20),
		YieldUnit: "kg",
		Active:    true,
	}))
	require.NoError(t, recipes.AddIngredient(&entity.RecipeIngredient{
		ID:            uuid.New().String(),
		RecipeID:      testRecipeID,
		RawMaterialID: testOatsID,
		Quantity:      decimal.NewFromInt(5),
		Unit:          "kg",
		Cost:          decimal.NewFromInt(20000),
	}))
	require.NoError(t, recipes.AddIngredient(&entity.RecipeIngredient{
		ID:            uuid.New().String(),
		RecipeID:      testRecipeID,
		RawMaterialID: testHoneyID,
		Quantity:      decimal.NewFromInt(2),
		Unit:          "litros",
		Cost:          decimal.NewFromInt(15000),
	}))
	require.NoError(t, raw.Create(&entity.RawMaterial{
		ID: testOatsID, Name: "Avena", UnitMeasure: "kg",
		Stock: decimal.NewFromInt(oatsStock), Active: true,
	}))
	require.NoError(t, raw.Create(&entity.RawMaterial{
		ID: testHoneyID, Name: "Miel", UnitMeasure: "litros",
		Stock: decimal.NewFromInt(honeyStock), Active: true,
	}))

	products := &stubProductRepo{products: map[string]*entity.Product{
		testProductID: {ID: testProductID, Name: "Granola 1kg", Active: true},
	}}
	warehouses := &stubWarehouseRepo{warehouses: map[string]*entity.Warehouse{
		testWarehouseID: {ID: testWarehouseID, Code: "PRINCIPAL", Active: true},
	}}

	uc := production.NewBatchUseCase(txRunner, batches, packs, recipes, products, warehouses, policy)
	return &productionFixture{
		uc: uc, txRunner: txRunner, batches: batches, packs: packs, inv: inv,
		mov: mov, recipes: recipes, raw: raw, products: products, warehouses: warehouses,
	}
}

func (f *productionFixture) plannedBatch(t *testing.T) *entity.Batch {
	t.Helper()
	batch, err := f.uc.CreateBatch(context.Background(), testUserID, production.CreateBatchInput{
		RecipeID: testRecipeID,
	})
	require.NoError(t, err)
	return batch
}

func defaultPackaging() []production.PackagingInput {
	return []production.PackagingInput{{
		ProductID:   testProductID,
		BagType:     "1kg",
		BagCount:    decimal.NewFromInt(8),
		WarehouseID: testWarehouseID,
	}}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CreateBatch
// ──────────────────────────────────────────────────────────────────────────────

// El lote nace planificado, con el rendimiento de la receta por defecto y el
// costo congelado como suma de los costos ya congelados de los ingredientes.
func TestCreateBatch_CongelaCostoYGeneraCodigo(t *testing.T) {
	f := newProductionFixture(t, config.DeductionLenient, 100, 100)

	batch := f.plannedBatch(t)

	assert.Equal(t, entity.BatchPlanned, batch.Status)
	assert.True(t, batch.ProducedQty.Equal(decimal.NewFromInt(20)), "sin cantidad explícita usa el rendimiento")
	assert.True(t, batch.TotalCost.Equal(decimal.NewFromInt(35000)), "costo = suma de costos de ingredientes")
	assert.True(t, strings.HasPrefix(batch.Code, "LOTE-"), "el código generado lleva el prefijo LOTE-")
}

func TestCreateBatch_CodigoDuplicado(t *testing.T) {
	f := newProductionFixture(t, config.DeductionLenient, 100, 100)

	_, err := f.uc.CreateBatch(context.Background(), testUserID, production.CreateBatchInput{
		RecipeID: testRecipeID,
		Code:     "LOTE-MANUAL-1",
	})
	require.NoError(t, err)

	_, err = f.uc.CreateBatch(context.Background(), testUserID, production.CreateBatchInput{
		RecipeID: testRecipeID,
		Code:     "LOTE-MANUAL-1",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateBatch_RecetaInactivaFalla(t *testing.T) {
	recipes := newMemRecipeRepo()
	require.NoError(t, recipes.Create(&entity.Recipe{ID: "receta-off", Active: false}))
	uc := production.NewBatchUseCase(
		&fakeTxRunner{batches: newMemBatchRepo(), packs: &memPackRepo{}, inv: newMemInvRepo(), mov: &memMovRepo{}, recipes: recipes, raw: newMemRawRepo()},
		newMemBatchRepo(), &memPackRepo{}, recipes,
		&stubProductRepo{products: map[string]*entity.Product{}},
		&stubWarehouseRepo{warehouses: map[string]*entity.Warehouse{}},
		config.DeductionLenient,
	)

	_, err := uc.CreateBatch(context.Background(), testUserID, production.CreateBatchInput{RecipeID: "receta-off"})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CompleteBatch
// ──────────────────────────────────────────────────────────────────────────────

// Completar un lote suma el producto terminado al inventario vía el libro y
// descuenta la materia prima de la receta, todo en la misma transacción.
func TestCompleteBatch_SumaStockYDescuentaMateriaPrima(t *testing.T) {
	f := newProductionFixture(t, config.DeductionStrict, 50, 50)
	batch := f.plannedBatch(t)

	result, err := f.uc.CompleteBatch(context.Background(), testUserID, batch.ID, defaultPackaging())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, entity.BatchCompleted, f.batches.status(t, batch.ID))
	require.Len(t, result.Packaging, 1)
	assert.Equal(t, batch.ID, result.Packaging[0].BatchID)

	assert.True(t, f.inv.quantity(testProductID, testWarehouseID).Equal(decimal.NewFromInt(8)),
		"el empaque suma 8 bolsas al inventario")

	movs, err := f.mov.ListByRef(entity.RefBatch, batch.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementProduction, movs[0].Type)
	assert.True(t, movs[0].Delta.Equal(decimal.NewFromInt(8)))

	assert.True(t, f.raw.stock(t, testOatsID).Equal(decimal.NewFromInt(45)), "avena 50 - 5")
	assert.True(t, f.raw.stock(t, testHoneyID).Equal(decimal.NewFromInt(48)), "miel 50 - 2")
}

// Completado es terminal: el segundo intento falla con estado inválido.
func TestCompleteBatch_DosVecesFalla(t *testing.T) {
	f := newProductionFixture(t, config.DeductionLenient, 50, 50)
	batch := f.plannedBatch(t)

	_, err := f.uc.CompleteBatch(context.Background(), testUserID, batch.ID, defaultPackaging())
	require.NoError(t, err)

	_, err = f.uc.CompleteBatch(context.Background(), testUserID, batch.ID, defaultPackaging())
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// Con política strict la falta de cualquier ingrediente revierte el completado
// entero: estado, empaques, inventario y materia prima quedan como estaban.
func TestCompleteBatch_PoliticaStrictRevierteTodo(t *testing.T) {
	f := newProductionFixture(t, config.DeductionStrict, 3, 50) // avena insuficiente (pide 5)
	batch := f.plannedBatch(t)

	_, err := f.uc.CompleteBatch(context.Background(), testUserID, batch.ID, defaultPackaging())
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Current.Equal(decimal.NewFromInt(3)), "debe reportar el stock de la materia prima")
	assert.True(t, insufficient.Requested.Equal(decimal.NewFromInt(5)))

	assert.Equal(t, entity.BatchPlanned, f.batches.status(t, batch.ID), "el lote sigue planificado")
	assert.Empty(t, f.packs.packs, "sin empaques persistidos")
	assert.Empty(t, f.mov.movements, "sin movimientos persistidos")
	assert.True(t, f.inv.quantity(testProductID, testWarehouseID).IsZero())
	assert.True(t, f.raw.stock(t, testOatsID).Equal(decimal.NewFromInt(3)), "la avena no cambió")
	assert.True(t, f.raw.stock(t, testHoneyID).Equal(decimal.NewFromInt(50)), "la miel no cambió")
}

// Con política lenient el ingrediente sin stock se omite con warning y el
// completado sigue adelante; los demás ingredientes sí se descuentan.
func TestCompleteBatch_PoliticaLenientOmiteIngrediente(t *testing.T) {
	f := newProductionFixture(t, config.DeductionLenient, 3, 50) // avena insuficiente
	batch := f.plannedBatch(t)

	result, err := f.uc.CompleteBatch(context.Background(), testUserID, batch.ID, defaultPackaging())
	require.NoError(t, err, "lenient no falla por materia prima insuficiente")
	require.NotNil(t, result)

	assert.Equal(t, entity.BatchCompleted, f.batches.status(t, batch.ID))
	assert.True(t, f.inv.quantity(testProductID, testWarehouseID).Equal(decimal.NewFromInt(8)))
	assert.True(t, f.raw.stock(t, testOatsID).Equal(decimal.NewFromInt(3)), "el ingrediente omitido no se descuenta")
	assert.True(t, f.raw.stock(t, testHoneyID).Equal(decimal.NewFromInt(48)), "los demás sí se descuentan")
}

func TestCompleteBatch_SinEmpaquesInvalido(t *testing.T) {
	f := newProductionFixture(t, config.DeductionLenient, 50, 50)
	batch := f.plannedBatch(t)

	_, err := f.uc.CompleteBatch(context.Background(), testUserID, batch.ID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.BatchPlanned, f.batches.status(t, batch.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CancelBatch / DeleteBatch
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelBatch_CompletadoNoSeCancela(t *testing.T) {
	f := newProductionFixture(t, config.DeductionLenient, 50, 50)
	batch := f.plannedBatch(t)

	_, err := f.uc.CompleteBatch(context.Background(), testUserID, batch.ID, defaultPackaging())
	require.NoError(t, err)

	err = f.uc.CancelBatch(context.Background(), batch.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestDeleteBatch_CompletadoNoSeBorra(t *testing.T) {
	f := newProductionFixture(t, config.DeductionLenient, 50, 50)
	batch := f.plannedBatch(t)

	_, err := f.uc.CompleteBatch(context.Background(), testUserID, batch.ID, defaultPackaging())
	require.NoError(t, err)

	err = f.uc.DeleteBatch(context.Background(), batch.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "los lotes completados son historia contable")
}

// staleBatchRepo simula otra conexión que completó el lote justo después de
// la lectura: las lecturas sueltas aún ven el lote abierto, pero la escritura
// condicional consulta el estado real.
type staleBatchRepo struct {
	*memBatchRepo
}

func (s *staleBatchRepo) GetByID(id string) (*entity.Batch, error) {
	b, err := s.memBatchRepo.GetByID(id)
	if err != nil || b == nil {
		return b, err
	}
	b.Status = entity.BatchPlanned
	return b, nil
}

// Aunque la lectura previa vea el lote planificado, un completado ya
// confirmado no se pisa con cancelado.
func TestCancelBatch_CompletadoEntreLecturaYEscrituraNoSePisa(t *testing.T) {
	f := newProductionFixture(t, config.DeductionLenient, 50, 50)
	batch := f.plannedBatch(t)

	_, err := f.uc.CompleteBatch(context.Background(), testUserID, batch.ID, defaultPackaging())
	require.NoError(t, err)

	staleUC := production.NewBatchUseCase(f.txRunner, &staleBatchRepo{f.batches},
		f.packs, f.recipes, f.products, f.warehouses, config.DeductionLenient)

	err = staleUC.CancelBatch(context.Background(), batch.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, entity.BatchCompleted, f.batches.status(t, batch.ID), "el estado terminal no se pisa")
}

func TestDeleteBatch_CompletadoEntreLecturaYEscrituraNoSeBorra(t *testing.T) {
	f := newProductionFixture(t, config.DeductionLenient, 50, 50)
	batch := f.plannedBatch(t)

	_, err := f.uc.CompleteBatch(context.Background(), testUserID, batch.ID, defaultPackaging())
	require.NoError(t, err)

	staleUC := production.NewBatchUseCase(f.txRunner, &staleBatchRepo{f.batches},
		f.packs, f.recipes, f.products, f.warehouses, config.DeductionLenient)

	err = staleUC.DeleteBatch(context.Background(), batch.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, entity.BatchCompleted, f.batches.status(t, batch.ID), "el lote completado sigue existiendo")
}

func TestDeleteBatch_PlanificadoSeBorra(t *testing.T) {
	f := newProductionFixture(t, config.DeductionLenient, 50, 50)
	batch := f.plannedBatch(t)

	require.NoError(t, f.uc.DeleteBatch(context.Background(), batch.ID))

	_, _, err := f.uc.GetBatch(context.Background(), batch.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
