package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/inventario-lite/internal/application/dto"
	"github.com/tu-usuario/inventario-lite/internal/application/inventory"
	"github.com/tu-usuario/inventario-lite/internal/domain"
	"github.com/tu-usuario/inventario-lite/pkg/validator"
)

// ItemHandler maneja las peticiones HTTP de artículos, ajustes y auditoría.
type ItemHandler struct {
	uc *inventory.UseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *inventory.UseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// List godoc
// @Summary      Listar artículos
// @Tags         items
// @Produce      json
// @Param        search     query  string  false  "Substring sobre nombre o categoría (case-insensitive)"
// @Param        category   query  string  false  "Categoría exacta"
// @Param        sortBy     query  string  false  "Campo de orden"  default(name)
// @Param        sortOrder  query  string  false  "asc | desc"      default(asc)
// @Param        page       query  int     false  "Página (1-indexada)"  default(1)
// @Param        limit      query  int     false  "Tamaño de página"     default(10)
// @Success      200  {object}  dto.ListItemsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var q dto.ListItemsQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de consulta inválidos"})
	}
	out, err := h.uc.ListItems(c.Context(), q)
	if err != nil {
		return internalError(c, err, "listar artículos")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         items
// @Produce      json
// @Param        id   path  string  true  "ID del artículo (UUID)"
// @Success      200  {object}  dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		return mapItemError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear artículo
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Describe(errs)})
	}
	out, err := h.uc.CreateItem(c.Context(), in, GetActor(c))
	if err != nil {
		return mapItemError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar artículo (parcial)
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo (UUID)"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Describe(errs)})
	}
	out, err := h.uc.UpdateItem(c.Context(), c.Params("id"), in, GetActor(c))
	if err != nil {
		return mapItemError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar artículo
// @Tags         items
// @Produce      json
// @Param        id   path  string  true  "ID del artículo (UUID)"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteItem(c.Context(), c.Params("id"), GetActor(c)); err != nil {
		return mapItemError(c, err)
	}
	return c.JSON(fiber.Map{"message": "artículo eliminado"})
}

// Adjust godoc
// @Summary      Ajustar cantidad
// @Description  Aplica un delta entero (positivo o negativo) a la cantidad.
//
//	Si el resultado sería negativo, la operación completa se rechaza:
//	ni mutación ni entrada de auditoría.
//
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo (UUID)"
// @Param        body  body  dto.AdjustQuantityRequest  true  "delta y reason opcional"
// @Success      200   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/adjust [post]
func (h *ItemHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "delta debe ser un número entero"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Describe(errs)})
	}
	res, err := h.uc.AdjustQuantity(c.Context(), c.Params("id"), *in.Delta, in.Reason, GetActor(c))
	if err != nil {
		return mapItemError(c, err)
	}
	return c.JSON(dto.AdjustmentResponse{
		Item: *res.Item,
		Adjustment: dto.AdjustmentDetail{
			Delta:            res.Delta,
			PreviousQuantity: res.PreviousQuantity,
			NewQuantity:      res.NewQuantity,
			Reason:           res.Reason,
		},
	})
}

// Audit godoc
// @Summary      Historial de auditoría de un artículo
// @Description  Entradas en orden descendente por timestamp. Funciona también
//
//	para artículos ya eliminados.
//
// @Tags         items
// @Produce      json
// @Param        id     path   string  true   "ID del artículo (UUID)"
// @Param        page   query  int     false  "Página (1-indexada)"  default(1)
// @Param        limit  query  int     false  "Tamaño de página"     default(20)
// @Success      200  {object}  dto.AuditListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/audit [get]
func (h *ItemHandler) Audit(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	limit := c.QueryInt("limit", 0)
	out, err := h.uc.ListAudit(c.Context(), c.Params("id"), page, limit)
	if err != nil {
		return mapItemError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Agregados del inventario
// @Tags         items
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/items/stats [get]
func (h *ItemHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context())
	if err != nil {
		return internalError(c, err, "agregados de inventario")
	}
	return c.JSON(out)
}

// mapItemError traduce errores de dominio a códigos HTTP. Todo lo que no sea
// un error de dominio conocido se trata como fallo de persistencia (500).
func mapItemError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de artículo inválido"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_QUANTITY", Message: "cantidad insuficiente para el ajuste"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
	default:
		return internalError(c, err, "operación sobre artículo")
	}
}

func internalError(c *fiber.Ctx, err error, op string) error {
	log.Error().Err(err).Str("op", op).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}
