package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
)

// CreateRecipeRequest body para POST /api/recipes.
type CreateRecipeRequest struct {
	Name      string          `json:"name"`
	ProductID string          `json:"product_id"`
	YieldQty  decimal.Decimal `json:"yield_qty"`
	YieldUnit string          `json:"yield_unit"`
}

// UpdateRecipeRequest body para PUT /api/recipes/:id.
type UpdateRecipeRequest struct {
	Name      *string          `json:"name,omitempty"`
	ProductID *string          `json:"product_id,omitempty"`
	YieldQty  *decimal.Decimal `json:"yield_qty,omitempty"`
	YieldUnit *string          `json:"yield_unit,omitempty"`
	Active    *bool            `json:"active,omitempty"`
}

// AddIngredientRequest body para POST /api/recipes/:id/ingredients.
type AddIngredientRequest struct {
	RawMaterialID string          `json:"raw_material_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
}

// RecipeIngredientResponse ingrediente con su costo congelado.
type RecipeIngredientResponse struct {
	ID            string          `json:"id"`
	RawMaterialID string          `json:"raw_material_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	Cost          decimal.Decimal `json:"cost"`
}

// RecipeResponse receta con ingredientes opcionales.
type RecipeResponse struct {
	ID          string                     `json:"id"`
	Name        string                     `json:"name"`
	ProductID   string                     `json:"product_id,omitempty"`
	YieldQty    decimal.Decimal            `json:"yield_qty"`
	YieldUnit   string                     `json:"yield_unit"`
	Active      bool                       `json:"active"`
	Ingredients []RecipeIngredientResponse `json:"ingredients,omitempty"`
	CreatedAt   time.Time                  `json:"created_at"`
}

// NewRecipeResponse convierte la entidad con sus ingredientes.
func NewRecipeResponse(r *entity.Recipe, ingredients []*entity.RecipeIngredient) *RecipeResponse {
	if r == nil {
		return nil
	}
	resp := &RecipeResponse{
		ID:        r.ID,
		Name:      r.Name,
		ProductID: r.ProductID,
		YieldQty:  r.YieldQty,
		YieldUnit: r.YieldUnit,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
	}
	for _, ing := range ingredients {
		resp.Ingredients = append(resp.Ingredients, RecipeIngredientResponse{
			ID:            ing.ID,
			RawMaterialID: ing.RawMaterialID,
			Quantity:      ing.Quantity,
			Unit:          ing.Unit,
			Cost:          ing.Cost,
		})
	}
	return resp
}

// CreateBatchRequest body para POST /api/batches.
type CreateBatchRequest struct {
	RecipeID       string           `json:"recipe_id"`
	Code           string           `json:"code,omitempty"`
	ProductionDate *time.Time       `json:"production_date,omitempty"`
	ProducedQty    *decimal.Decimal `json:"produced_qty,omitempty"`
	Notes          string           `json:"notes,omitempty"`
}

// PackagingEntry una línea de empaque en el completado de un lote.
type PackagingEntry struct {
	ProductID   string          `json:"product_id"`
	BagType     string          `json:"bag_type"`
	BagCount    decimal.Decimal `json:"bag_count"`
	WarehouseID string          `json:"warehouse_id"`
}

// CompleteBatchRequest body para POST /api/batches/:id/complete.
type CompleteBatchRequest struct {
	Packaging []PackagingEntry `json:"packaging"`
}

// BatchPackagingResponse línea de empaque persistida.
type BatchPackagingResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	BagType     string          `json:"bag_type"`
	BagCount    decimal.Decimal `json:"bag_count"`
	WarehouseID string          `json:"warehouse_id"`
}

// BatchResponse representación JSON de un lote.
type BatchResponse struct {
	ID             string                   `json:"id"`
	Code           string                   `json:"code"`
	RecipeID       string                   `json:"recipe_id"`
	ProductionDate time.Time                `json:"production_date"`
	ProducedQty    decimal.Decimal          `json:"produced_qty"`
	TotalCost      decimal.Decimal          `json:"total_cost"`
	Status         string                   `json:"status"`
	Notes          string                   `json:"notes,omitempty"`
	Packaging      []BatchPackagingResponse `json:"packaging,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
}

// NewBatchResponse convierte la entidad con sus líneas de empaque.
func NewBatchResponse(b *entity.Batch, packaging []*entity.BatchPackaging) *BatchResponse {
	if b == nil {
		return nil
	}
	resp := &BatchResponse{
		ID:             b.ID,
		Code:           b.Code,
		RecipeID:       b.RecipeID,
		ProductionDate: b.ProductionDate,
		ProducedQty:    b.ProducedQty,
		TotalCost:      b.TotalCost,
		Status:         b.Status,
		Notes:          b.Notes,
		CreatedAt:      b.CreatedAt,
	}
	for _, p := range packaging {
		resp.Packaging = append(resp.Packaging, BatchPackagingResponse{
			ID:          p.ID,
			ProductID:   p.ProductID,
			BagType:     p.BagType,
			BagCount:    p.BagCount,
			WarehouseID: p.WarehouseID,
		})
	}
	return resp
}
