package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmorales-dev/granolapp-api/internal/application/dto"
	"github.com/jmorales-dev/granolapp-api/internal/application/production"
)

// BatchHandler maneja lotes de producción (protegido).
type BatchHandler struct {
	uc *production.BatchUseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *production.BatchUseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

// Create godoc
// @Summary      Planificar lote de producción
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "Lote"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/batches [post]
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.uc.CreateBatch(c.Context(), GetUserID(c), production.CreateBatchInput{
		RecipeID:       in.RecipeID,
		Code:           in.Code,
		ProductionDate: in.ProductionDate,
		ProducedQty:    in.ProducedQty,
		Notes:          in.Notes,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewBatchResponse(batch, nil))
}

// Complete godoc
// @Summary      Completar lote (descuenta materias primas y suma stock empacado)
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lote"
// @Param        body  body  dto.CompleteBatchRequest  true  "Líneas de empaque"
// @Success      200   {object}  dto.BatchResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/complete [post]
func (h *BatchHandler) Complete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.CompleteBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	packaging := make([]production.PackagingInput, 0, len(in.Packaging))
	for _, p := range in.Packaging {
		packaging = append(packaging, production.PackagingInput{
			ProductID:   p.ProductID,
			BagType:     p.BagType,
			BagCount:    p.BagCount,
			WarehouseID: p.WarehouseID,
		})
	}
	result, err := h.uc.CompleteBatch(c.Context(), GetUserID(c), id, packaging)
	if err != nil {
		return fail(c, err)
	}
	batch, lines, err := h.uc.GetBatch(c.Context(), result.BatchID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewBatchResponse(batch, lines))
}

// Cancel godoc
// @Summary      Cancelar lote (solo planificado o en proceso)
// @Tags         batches
// @Security     Bearer
// @Param        id  path  string  true  "ID del lote"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/cancel [put]
func (h *BatchHandler) Cancel(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.CancelBatch(c.Context(), id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar lote (solo si no está completado)
// @Tags         batches
// @Security     Bearer
// @Param        id  path  string  true  "ID del lote"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [delete]
func (h *BatchHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.DeleteBatch(c.Context(), id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener lote con sus líneas de empaque
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [get]
func (h *BatchHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	batch, packaging, err := h.uc.GetBatch(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewBatchResponse(batch, packaging))
}

// List godoc
// @Summary      Listar lotes
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "planificado, en_proceso, completado o cancelado"
// @Param        from    query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/batches [get]
func (h *BatchHandler) List(c *fiber.Ctx) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from: formato de fecha no reconocido"})
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to: formato de fecha no reconocido"})
	}
	limit, offset := queryPage(c)
	batches, err := h.uc.ListBatches(c.Context(), c.Query("status"), from, to, limit, offset)
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, *dto.NewBatchResponse(b, nil))
	}
	return c.JSON(out)
}
