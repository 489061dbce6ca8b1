package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmorales-dev/granolapp-api/internal/application/dto"
	"github.com/jmorales-dev/granolapp-api/internal/application/production"
)

// RecipeHandler maneja recetas y sus ingredientes (protegido).
type RecipeHandler struct {
	uc *production.RecipeUseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(uc *production.RecipeUseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear receta
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRecipeRequest  true  "Receta"
// @Success      201   {object}  dto.RecipeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/recipes [post]
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	recipe, err := h.uc.Create(c.Context(), production.CreateRecipeInput{
		Name:      in.Name,
		ProductID: in.ProductID,
		YieldQty:  in.YieldQty,
		YieldUnit: in.YieldUnit,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewRecipeResponse(recipe, nil))
}

// GetByID godoc
// @Summary      Obtener receta con sus ingredientes
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la receta"
// @Success      200  {object}  dto.RecipeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [get]
func (h *RecipeHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	recipe, ingredients, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewRecipeResponse(recipe, ingredients))
}

// List godoc
// @Summary      Listar recetas
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        include_inactive  query  bool  false  "Incluir inactivas"
// @Success      200  {array}  dto.RecipeResponse
// @Router       /api/recipes [get]
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	recipes, err := h.uc.List(c.Context(), c.QueryBool("include_inactive", false))
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, *dto.NewRecipeResponse(r, nil))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar receta
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la receta"
// @Param        body  body  dto.UpdateRecipeRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.RecipeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [put]
func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	recipe, err := h.uc.Update(c.Context(), id, production.UpdateRecipeInput{
		Name:      in.Name,
		ProductID: in.ProductID,
		YieldQty:  in.YieldQty,
		YieldUnit: in.YieldUnit,
		Active:    in.Active,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewRecipeResponse(recipe, nil))
}

// Deactivate godoc
// @Summary      Desactivar receta (borrado blando)
// @Tags         recipes
// @Security     Bearer
// @Param        id  path  string  true  "ID de la receta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [delete]
func (h *RecipeHandler) Deactivate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Deactivate(c.Context(), id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddIngredient godoc
// @Summary      Agregar ingrediente a la receta (congela el costo actual)
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la receta"
// @Param        body  body  dto.AddIngredientRequest  true  "Ingrediente"
// @Success      201   {object}  dto.RecipeIngredientResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/recipes/{id}/ingredients [post]
func (h *RecipeHandler) AddIngredient(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.AddIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ing, err := h.uc.AddIngredient(c.Context(), id, in.RawMaterialID, in.Quantity, in.Unit)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RecipeIngredientResponse{
		ID:            ing.ID,
		RawMaterialID: ing.RawMaterialID,
		Quantity:      ing.Quantity,
		Unit:          ing.Unit,
		Cost:          ing.Cost,
	})
}

// RemoveIngredient godoc
// @Summary      Quitar ingrediente de la receta
// @Tags         recipes
// @Security     Bearer
// @Param        ingredient_id  path  string  true  "ID del ingrediente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/ingredients/{ingredient_id} [delete]
func (h *RecipeHandler) RemoveIngredient(c *fiber.Ctx) error {
	ingredientID := c.Params("ingredient_id")
	if ingredientID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "ingredient_id es requerido"})
	}
	if err := h.uc.RemoveIngredient(c.Context(), ingredientID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
