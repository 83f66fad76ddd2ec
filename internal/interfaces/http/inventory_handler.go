package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Puntoventa-api/internal/application/dto"
	"github.com/jhoicas/Puntoventa-api/internal/application/inventory"
)

// InventoryHandler maneja restock, correcciones y consulta de stock (protegido).
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Restock godoc
// @Summary      Recibir mercancía (restock manual)
// @Description  Suma unidades llenas; para categorías retornables entrega los
// @Description  envases vacíos disponibles a cambio (recorta a cero con warning
// @Description  si hay menos vacíos que unidades recibidas).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RestockRequest  true  "productId, quantity, note"
// @Success      200   {object}  dto.InventoryStateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/restock [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	outletID := GetOutletID(c)
	if outletID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "outlet_id requerido"})
	}
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId y quantity > 0 son requeridos"})
	}
	out, err := h.uc.Restock(c.UserContext(), outletID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Correct godoc
// @Summary      Corrección manual de stock (deltas firmados)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CorrectionRequest  true  "productId, deltaFilled, deltaEmpty, note"
// @Success      200   {object}  dto.InventoryStateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Router       /api/inventory/corrections [post]
func (h *InventoryHandler) Correct(c *fiber.Ctx) error {
	outletID := GetOutletID(c)
	if outletID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "outlet_id requerido"})
	}
	var in dto.CorrectionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId es requerido"})
	}
	if in.DeltaFilled == 0 && in.DeltaEmpty == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "al menos un delta debe ser distinto de cero"})
	}
	out, err := h.uc.Correct(c.UserContext(), outletID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetState godoc
// @Summary      Consultar stock dual de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.InventoryStateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId} [get]
func (h *InventoryHandler) GetState(c *fiber.Ctx) error {
	outletID := GetOutletID(c)
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productId es requerido"})
	}
	out, err := h.uc.GetState(c.UserContext(), outletID, productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListEvents godoc
// @Summary      Listar log de inventario de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        limit      query  int     false  "Límite"   default(50)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.InventoryEventResponse
// @Router       /api/inventory/{productId}/events [get]
func (h *InventoryHandler) ListEvents(c *fiber.Ctx) error {
	outletID := GetOutletID(c)
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productId es requerido"})
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.ListEvents(c.UserContext(), outletID, productID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
