package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
)

// UpdateStockRequest body para POST /api/inventory/update-stock (ajuste manual).
type UpdateStockRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Delta       decimal.Decimal `json:"delta"`
	Reason      string          `json:"reason"`
}

// StockAdjustmentResponse resultado de un ajuste de stock.
type StockAdjustmentResponse struct {
	PreviousQuantity decimal.Decimal `json:"previous_quantity"`
	NewQuantity      decimal.Decimal `json:"new_quantity"`
	MovementID       string          `json:"movement_id"`
}

// InventoryItemResponse stock materializado de (producto, bodega).
type InventoryItemResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinStock    decimal.Decimal `json:"min_stock"`
	MaxStock    decimal.Decimal `json:"max_stock"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewInventoryItemResponse convierte la entidad.
func NewInventoryItemResponse(i *entity.InventoryItem) *InventoryItemResponse {
	if i == nil {
		return nil
	}
	return &InventoryItemResponse{
		ProductID:   i.ProductID,
		WarehouseID: i.WarehouseID,
		Quantity:    i.Quantity,
		MinStock:    i.MinStock,
		MaxStock:    i.MaxStock,
		UpdatedAt:   i.UpdatedAt,
	}
}

// MovementResponse una fila del libro de movimientos.
type MovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Type        string          `json:"type"`
	Previous    decimal.Decimal `json:"previous_quantity"`
	Delta       decimal.Decimal `json:"delta"`
	New         decimal.Decimal `json:"new_quantity"`
	Reason      string          `json:"reason,omitempty"`
	RefType     string          `json:"ref_type,omitempty"`
	RefID       string          `json:"ref_id,omitempty"`
	CreatedBy   string          `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewMovementResponse convierte la entidad.
func NewMovementResponse(m *entity.InventoryMovement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		Type:        m.Type,
		Previous:    m.Previous,
		Delta:       m.Delta,
		New:         m.New,
		Reason:      m.Reason,
		RefType:     m.RefType,
		RefID:       m.RefID,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}

// TransferRequest body para POST /api/transfers.
type TransferRequest struct {
	ProductID       string          `json:"product_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	FromWarehouseID string          `json:"from_warehouse_id"`
	ToWarehouseID   string          `json:"to_warehouse_id"`
	Reason          string          `json:"reason"`
}

// TransferResponse representación JSON de un traslado.
type TransferResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	FromWarehouseID string          `json:"from_warehouse_id"`
	ToWarehouseID   string          `json:"to_warehouse_id"`
	Reason          string          `json:"reason,omitempty"`
	CreatedBy       string          `json:"created_by,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewTransferResponse convierte la entidad.
func NewTransferResponse(t *entity.Transfer) *TransferResponse {
	if t == nil {
		return nil
	}
	return &TransferResponse{
		ID:              t.ID,
		ProductID:       t.ProductID,
		Quantity:        t.Quantity,
		FromWarehouseID: t.FromWarehouseID,
		ToWarehouseID:   t.ToWarehouseID,
		Reason:          t.Reason,
		CreatedBy:       t.CreatedBy,
		CreatedAt:       t.CreatedAt,
	}
}

// RawMaterialRequest body para crear/actualizar materias primas.
type RawMaterialRequest struct {
	Name        string          `json:"name"`
	UnitMeasure string          `json:"unit_measure"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	Stock       decimal.Decimal `json:"stock"`
	MinStock    decimal.Decimal `json:"min_stock"`
}

// AdjustRawMaterialRequest body para POST /api/raw-materials/:id/adjust-stock.
type AdjustRawMaterialRequest struct {
	Delta  decimal.Decimal `json:"delta"`
	Reason string          `json:"reason"`
}

// RawMaterialResponse representación JSON de una materia prima.
type RawMaterialResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	UnitMeasure string          `json:"unit_measure"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	Stock       decimal.Decimal `json:"stock"`
	MinStock    decimal.Decimal `json:"min_stock"`
	Active      bool            `json:"active"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewRawMaterialResponse convierte la entidad.
func NewRawMaterialResponse(m *entity.RawMaterial) *RawMaterialResponse {
	if m == nil {
		return nil
	}
	return &RawMaterialResponse{
		ID:          m.ID,
		Name:        m.Name,
		UnitMeasure: m.UnitMeasure,
		CostPerUnit: m.CostPerUnit,
		Stock:       m.Stock,
		MinStock:    m.MinStock,
		Active:      m.Active,
		UpdatedAt:   m.UpdatedAt,
	}
}
