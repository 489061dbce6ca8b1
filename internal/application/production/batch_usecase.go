package production

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jmorales-dev/granolapp-api/internal/application/inventory"
	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	domainprod "github.com/jmorales-dev/granolapp-api/internal/domain/production"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
	"github.com/jmorales-dev/granolapp-api/pkg/config"
)

// BatchUseCase gestiona el ciclo de vida de los lotes de producción:
// planificado/en_proceso -> completado (terminal) o cancelado.
type BatchUseCase struct {
	txRunner        TxRunner
	batchRepo       repository.BatchRepository
	packRepo        repository.BatchPackagingRepository
	recipeRepo      repository.RecipeRepository
	productRepo     repository.ProductRepository
	warehouseRepo   repository.WarehouseRepository
	deductionPolicy string
}

// NewBatchUseCase construye el caso de uso. deductionPolicy es
// config.DeductionStrict o config.DeductionLenient.
func NewBatchUseCase(
	txRunner TxRunner,
	batchRepo repository.BatchRepository,
	packRepo repository.BatchPackagingRepository,
	recipeRepo repository.RecipeRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	deductionPolicy string,
) *BatchUseCase {
	if deductionPolicy == "" {
		deductionPolicy = config.DeductionLenient
	}
	return &BatchUseCase{
		txRunner:        txRunner,
		batchRepo:       batchRepo,
		packRepo:        packRepo,
		recipeRepo:      recipeRepo,
		productRepo:     productRepo,
		warehouseRepo:   warehouseRepo,
		deductionPolicy: deductionPolicy,
	}
}

// CreateBatchInput entrada para crear un lote.
type CreateBatchInput struct {
	RecipeID       string
	Code           string           // opcional; se genera si viene vacío
	ProductionDate *time.Time       // opcional; por defecto el día hábil actual (UTC-6)
	ProducedQty    *decimal.Decimal // opcional; por defecto el rendimiento de la receta
	Notes          string
}

// CreateBatch crea un lote en estado planificado. El costo total queda
// congelado: suma de los costos ya congelados de los ingredientes de la receta.
func (uc *BatchUseCase) CreateBatch(ctx context.Context, userID string, in CreateBatchInput) (*entity.Batch, error) {
	if in.RecipeID == "" {
		return nil, domain.ErrInvalidInput
	}
	recipe, err := uc.recipeRepo.GetByID(in.RecipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	if !recipe.Active {
		return nil, domain.ErrInvalidState
	}

	ingredients, err := uc.recipeRepo.ListIngredients(recipe.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	prodDate := domainprod.BusinessDay(now)
	if in.ProductionDate != nil {
		prodDate = in.ProductionDate.UTC()
	}
	qty := recipe.YieldQty
	if in.ProducedQty != nil {
		if !in.ProducedQty.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		qty = *in.ProducedQty
	}
	code := in.Code
	if code == "" {
		code = newBatchCode(prodDate)
	} else if existing, err := uc.batchRepo.GetByCode(code); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	batch := &entity.Batch{
		ID:             uuid.New().String(),
		Code:           code,
		RecipeID:       recipe.ID,
		ProductionDate: prodDate,
		ProducedQty:    qty,
		TotalCost:      domainprod.BatchCost(ingredients),
		Status:         entity.BatchPlanned,
		Notes:          in.Notes,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.batchRepo.Create(batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// newBatchCode genera un código único legible: LOTE-20260901-A3F2.
func newBatchCode(prodDate time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:4])
	return fmt.Sprintf("LOTE-%s-%s", prodDate.Format("20060102"), suffix)
}

// PackagingInput una línea de empaque al completar un lote.
type PackagingInput struct {
	ProductID   string
	BagType     string
	BagCount    decimal.Decimal
	WarehouseID string
}

// CompleteBatchResult resumen del completado.
type CompleteBatchResult struct {
	BatchID   string
	Code      string
	Packaging []*entity.BatchPackaging
}

// CompleteBatch completa un lote en una sola transacción:
//  1. bloquea el lote y valida la transición de estado (completado es terminal),
//  2. marca el lote como completado,
//  3. por cada línea de empaque inserta el registro y suma el stock del
//     producto terminado vía el libro (tipo produccion, referencia al lote),
//  4. descuenta la materia prima de cada ingrediente de la receta con un
//     UPDATE condicional atómico.
//
// Con política lenient los ingredientes sin stock suficiente se omiten con un
// warning en el log; con strict la falta de cualquier ingrediente revierte
// todo el completado.
func (uc *BatchUseCase) CompleteBatch(ctx context.Context, userID, batchID string, packaging []PackagingInput) (*CompleteBatchResult, error) {
	if batchID == "" || len(packaging) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, p := range packaging {
		if p.ProductID == "" || p.WarehouseID == "" || !p.BagCount.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(p.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		wh, err := uc.warehouseRepo.GetByID(p.WarehouseID)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now().UTC()
	var result *CompleteBatchResult

	err := uc.txRunner.RunProduction(ctx, func(
		batchRepo repository.BatchRepository,
		packRepo repository.BatchPackagingRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
		recipeRepo repository.RecipeRepository,
		rawRepo repository.RawMaterialRepository,
	) error {
		batch, err := batchRepo.GetForUpdate(batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if !batch.CanComplete() {
			return domain.ErrInvalidState
		}

		ok, err := batchRepo.UpdateStatusIfOpen(batch.ID, entity.BatchCompleted)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidState
		}

		created := make([]*entity.BatchPackaging, 0, len(packaging))
		for _, p := range packaging {
			pack := &entity.BatchPackaging{
				ID:          uuid.New().String(),
				BatchID:     batch.ID,
				ProductID:   p.ProductID,
				BagType:     p.BagType,
				BagCount:    p.BagCount,
				WarehouseID: p.WarehouseID,
				CreatedAt:   now,
			}
			if err := packRepo.Create(pack); err != nil {
				return err
			}
			if _, err := inventory.ApplyAdjustmentInTx(invRepo, movRepo, inventory.Adjustment{
				ProductID:   p.ProductID,
				WarehouseID: p.WarehouseID,
				Delta:       p.BagCount,
				Type:        entity.MovementProduction,
				Reason:      "producción lote " + batch.Code,
				RefType:     entity.RefBatch,
				RefID:       batch.ID,
				UserID:      userID,
				Now:         now,
			}); err != nil {
				return err
			}
			created = append(created, pack)
		}

		ingredients, err := recipeRepo.ListIngredients(batch.RecipeID)
		if err != nil {
			return err
		}
		for _, ing := range ingredients {
			ok, err := rawRepo.DeductIfAvailable(ing.RawMaterialID, ing.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				if uc.deductionPolicy == config.DeductionStrict {
					material, err := rawRepo.GetByID(ing.RawMaterialID)
					if err != nil {
						return err
					}
					current := decimal.Zero
					if material != nil {
						current = material.Stock
					}
					return &domain.InsufficientStockError{Current: current, Requested: ing.Quantity}
				}
				log.Warn().
					Str("batch", batch.Code).
					Str("raw_material_id", ing.RawMaterialID).
					Str("requested", ing.Quantity.String()).
					Msg("materia prima insuficiente, ingrediente omitido en la deducción")
			}
		}

		result = &CompleteBatchResult{BatchID: batch.ID, Code: batch.Code, Packaging: created}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CancelBatch pasa un lote a cancelado. Un lote completado nunca se cancela:
// la escritura condicional valida el estado en la misma sentencia, así un
// completado confirmado por otra conexión no se pisa.
func (uc *BatchUseCase) CancelBatch(ctx context.Context, batchID string) error {
	ok, err := uc.batchRepo.UpdateStatusIfOpen(batchID, entity.BatchCancelled)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	// distinguir lote inexistente de transición inválida
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return err
	}
	if batch == nil {
		return domain.ErrNotFound
	}
	return domain.ErrInvalidState
}

// DeleteBatch elimina un lote que nunca llegó a completarse. Los lotes
// completados son historia contable: el borrado condicional los excluye en la
// misma sentencia.
func (uc *BatchUseCase) DeleteBatch(ctx context.Context, batchID string) error {
	ok, err := uc.batchRepo.DeleteIfNotCompleted(batchID)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return err
	}
	if batch == nil {
		return domain.ErrNotFound
	}
	return domain.ErrInvalidState
}

// GetBatch devuelve un lote con sus líneas de empaque.
func (uc *BatchUseCase) GetBatch(ctx context.Context, batchID string) (*entity.Batch, []*entity.BatchPackaging, error) {
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return nil, nil, err
	}
	if batch == nil {
		return nil, nil, domain.ErrNotFound
	}
	packs, err := uc.packRepo.ListByBatch(batchID)
	if err != nil {
		return nil, nil, err
	}
	return batch, packs, nil
}

// ListBatches lista lotes filtrando por estado y rango de fechas.
func (uc *BatchUseCase) ListBatches(ctx context.Context, status string, from, to *time.Time, limit, offset int) ([]*entity.Batch, error) {
	return uc.batchRepo.List(status, from, to, limit, offset)
}
