package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmorales-dev/granolapp-api/internal/application/dto"
	"github.com/jmorales-dev/granolapp-api/internal/application/inventory"
)

// InventoryHandler maneja ajustes de stock y consultas del libro de
// movimientos (protegido).
type InventoryHandler struct {
	ledger  *inventory.StockLedger
	queries *inventory.Queries
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.StockLedger, queries *inventory.Queries) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, queries: queries}
}

// UpdateStock godoc
// @Summary      Ajuste manual de stock (delta con o sin signo)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateStockRequest  true  "Ajuste"
// @Success      200   {object}  dto.StockAdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/update-stock [post]
func (h *InventoryHandler) UpdateStock(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	adj, err := h.ledger.Adjust(c.Context(), GetUserID(c), inventory.AdjustStockInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Delta:       in.Delta,
		Reason:      in.Reason,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.StockAdjustmentResponse{
		PreviousQuantity: adj.Previous,
		NewQuantity:      adj.New,
		MovementID:       adj.MovementID,
	})
}

// StockByWarehouse godoc
// @Summary      Stock materializado de una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la bodega"
// @Success      200  {array}  dto.InventoryItemResponse
// @Router       /api/inventory/warehouse/{id} [get]
func (h *InventoryHandler) StockByWarehouse(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	items, err := h.queries.StockByWarehouse(id)
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, *dto.NewInventoryItemResponse(item))
	}
	return c.JSON(out)
}

// StockByProduct godoc
// @Summary      Stock de un producto en todas las bodegas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.InventoryItemResponse
// @Router       /api/inventory/product/{id} [get]
func (h *InventoryHandler) StockByProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	items, err := h.queries.StockByProduct(id)
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, *dto.NewInventoryItemResponse(item))
	}
	return c.JSON(out)
}

// DeleteItem godoc
// @Summary      Borrar fila de inventario (solo si la cantidad es cero)
// @Tags         inventory
// @Security     Bearer
// @Param        product_id    query  string  true  "ID del producto"
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory [delete]
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	if productID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y warehouse_id son requeridos"})
	}
	if err := h.queries.DeleteItem(productID, warehouseID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Movements godoc
// @Summary      Libro de movimientos por producto o bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "ID del producto"
// @Param        warehouse_id  query  string  false  "ID de la bodega"
// @Param        from          query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to            query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Param        limit         query  int     false  "Límite"   default(20)
// @Param        offset        query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from: formato de fecha no reconocido"})
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to: formato de fecha no reconocido"})
	}
	limit, offset := queryPage(c)
	movements, err := h.queries.Movements(c.Query("product_id"), c.Query("warehouse_id"), from, to, limit, offset)
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, *dto.NewMovementResponse(m))
	}
	return c.JSON(out)
}

// MovementsByRef godoc
// @Summary      Movimientos de una operación (lote, traslado o venta)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        ref_type  path  string  true  "Tipo de referencia (batch, transfer, sale)"
// @Param        ref_id    path  string  true  "ID de la referencia"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/movements/{ref_type}/{ref_id} [get]
func (h *InventoryHandler) MovementsByRef(c *fiber.Ctx) error {
	refType := c.Params("ref_type")
	refID := c.Params("ref_id")
	if refType == "" || refID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ref_type y ref_id son requeridos"})
	}
	movements, err := h.queries.MovementsByRef(refType, refID)
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, *dto.NewMovementResponse(m))
	}
	return c.JSON(out)
}
