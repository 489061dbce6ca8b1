package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmorales-dev/granolapp-api/internal/application/dto"
	"github.com/jmorales-dev/granolapp-api/internal/application/sales"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
)

// ConsignmentHandler maneja consignaciones y sus visitas (protegido).
type ConsignmentHandler struct {
	uc *sales.ConsignmentUseCase
}

// NewConsignmentHandler construye el handler.
func NewConsignmentHandler(uc *sales.ConsignmentUseCase) *ConsignmentHandler {
	return &ConsignmentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear consignación (con visita inicial de entrega)
// @Tags         consignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateConsignmentRequest  true  "Consignación"
// @Success      201   {object}  dto.ConsignmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/consignments [post]
func (h *ConsignmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateConsignmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cons, visit, err := h.uc.Create(c.Context(), sales.CreateConsignmentInput{
		SaleID:        in.SaleID,
		CustomerID:    in.CustomerID,
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		DeliveryDate:  in.DeliveryDate,
		NextVisitDate: in.NextVisitDate,
		PaymentStatus: in.PaymentStatus,
		AmountPaid:    in.AmountPaid,
		Notes:         in.Notes,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewConsignmentResponse(cons, []*entity.ConsignmentVisit{visit}))
}

// GetByID godoc
// @Summary      Obtener consignación con sus visitas
// @Tags         consignments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la consignación"
// @Success      200  {object}  dto.ConsignmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/consignments/{id} [get]
func (h *ConsignmentHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	cons, visits, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewConsignmentResponse(cons, visits))
}

// List godoc
// @Summary      Listar consignaciones
// @Tags         consignments
// @Security     Bearer
// @Produce      json
// @Param        payment_status  query  string  false  "pending, paid o credit"
// @Param        limit           query  int     false  "Límite"   default(20)
// @Param        offset          query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.ConsignmentResponse
// @Router       /api/consignments [get]
func (h *ConsignmentHandler) List(c *fiber.Ctx) error {
	limit, offset := queryPage(c)
	list, err := h.uc.List(c.Context(), c.Query("payment_status"), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.ConsignmentResponse, 0, len(list))
	for _, cons := range list {
		out = append(out, *dto.NewConsignmentResponse(cons, nil))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar consignación (y sus visitas)
// @Tags         consignments
// @Security     Bearer
// @Param        id  path  string  true  "ID de la consignación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/consignments/{id} [delete]
func (h *ConsignmentHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ScheduleVisit godoc
// @Summary      Programar visita (delivery, collection o check)
// @Tags         consignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la consignación"
// @Param        body  body  dto.ScheduleVisitRequest  true  "Visita"
// @Success      201   {object}  dto.ConsignmentVisitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/consignments/{id}/visits [post]
func (h *ConsignmentHandler) ScheduleVisit(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ScheduleVisitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	visit, err := h.uc.ScheduleVisit(c.Context(), id, in.Type, in.VisitDate, in.Notes)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewConsignmentVisitResponse(visit))
}

// CompleteVisit godoc
// @Summary      Marcar visita como hecha
// @Tags         consignments
// @Security     Bearer
// @Accept       json
// @Param        visit_id  path  string  true  "ID de la visita"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/consignments/visits/{visit_id}/complete [put]
func (h *ConsignmentHandler) CompleteVisit(c *fiber.Ctx) error {
	visitID := c.Params("visit_id")
	if visitID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "visit_id es requerido"})
	}
	var in struct {
		Notes string `json:"notes"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	if err := h.uc.CompleteVisit(c.Context(), visitID, in.Notes); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecordCollection godoc
// @Summary      Registrar cobro de una consignación
// @Tags         consignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la consignación"
// @Param        body  body  dto.RecordCollectionRequest  true  "Monto"
// @Success      200   {object}  dto.ConsignmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/consignments/{id}/collections [post]
func (h *ConsignmentHandler) RecordCollection(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.RecordCollectionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cons, err := h.uc.RecordCollection(c.Context(), id, in.Amount)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewConsignmentResponse(cons, nil))
}
