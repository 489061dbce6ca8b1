package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmorales-dev/granolapp-api/internal/application/dto"
	"github.com/jmorales-dev/granolapp-api/internal/application/usecase"
)

// SettingHandler maneja la configuración clave/valor del negocio (protegido).
type SettingHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingHandler construye el handler.
func NewSettingHandler(uc *usecase.SettingsUseCase) *SettingHandler {
	return &SettingHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener un valor de configuración
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        key  path  string  true  "Clave"
// @Success      200  {object}  dto.SettingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/{key} [get]
func (h *SettingHandler) Get(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_KEY", Message: "key es requerida"})
	}
	out, err := h.uc.Get(key)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Set godoc
// @Summary      Guardar un valor de configuración (upsert)
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        key   path  string  true  "Clave"
// @Param        body  body  dto.SettingRequest  true  "Valor"
// @Success      200   {object}  dto.SettingResponse
// @Router       /api/settings/{key} [put]
func (h *SettingHandler) Set(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_KEY", Message: "key es requerida"})
	}
	var in dto.SettingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Set(key, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar toda la configuración
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SettingResponse
// @Router       /api/settings [get]
func (h *SettingHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
