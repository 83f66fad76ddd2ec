package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Puntoventa-api/internal/application/dto"
	"github.com/jhoicas/Puntoventa-api/internal/application/usecase"
)

// CustomerHandler maneja clientes, tiers y excepciones de precio (protegido).
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// CreateCustomer godoc
// @Summary      Crear cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	outletID := GetOutletID(c)
	if outletID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "outlet_id requerido"})
	}
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.CreateCustomer(outletID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCustomers godoc
// @Summary      Listar clientes del outlet
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.CustomerResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) ListCustomers(c *fiber.Ctx) error {
	outletID := GetOutletID(c)
	if outletID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "outlet_id requerido"})
	}
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.ListCustomers(outletID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateCustomer godoc
// @Summary      Actualizar cliente (incluida asignación de tier)
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.UpdateCustomerRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c *fiber.Ctx) error {
	outletID := GetOutletID(c)
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateCustomer(outletID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateTier godoc
// @Summary      Crear tier de clientes
// @Tags         tiers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTierRequest  true  "name, global_discount_percent"
// @Success      201   {object}  dto.TierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tiers [post]
func (h *CustomerHandler) CreateTier(c *fiber.Ctx) error {
	outletID := GetOutletID(c)
	if outletID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "outlet_id requerido"})
	}
	var in dto.CreateTierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.CreateTier(outletID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTiers godoc
// @Summary      Listar tiers del outlet
// @Tags         tiers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TierResponse
// @Router       /api/tiers [get]
func (h *CustomerHandler) ListTiers(c *fiber.Ctx) error {
	outletID := GetOutletID(c)
	if outletID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "outlet_id requerido"})
	}
	out, err := h.uc.ListTiers(outletID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateTier godoc
// @Summary      Actualizar tier (el cambio aplica solo a ventas futuras)
// @Tags         tiers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del tier"
// @Param        body  body  dto.UpdateTierRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.TierResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tiers/{id} [put]
func (h *CustomerHandler) UpdateTier(c *fiber.Ctx) error {
	outletID := GetOutletID(c)
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateTierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateTier(outletID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetTierOverride godoc
// @Summary      Fijar excepción de precio de un producto para un tier
// @Tags         tiers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del tier"
// @Param        body  body  dto.SetTierOverrideRequest  true  "product_id, discount_kind, discount_value"
// @Success      200   {object}  dto.TierOverrideResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tiers/{id}/overrides [put]
func (h *CustomerHandler) SetTierOverride(c *fiber.Ctx) error {
	outletID := GetOutletID(c)
	tierID := c.Params("id")
	if tierID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.SetTierOverrideRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.DiscountKind == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y discount_kind son requeridos"})
	}
	out, err := h.uc.SetTierOverride(outletID, tierID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteTierOverride godoc
// @Summary      Eliminar excepción de precio
// @Tags         tiers
// @Security     Bearer
// @Param        id         path  string  true  "ID del tier"
// @Param        productId  path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tiers/{id}/overrides/{productId} [delete]
func (h *CustomerHandler) DeleteTierOverride(c *fiber.Ctx) error {
	outletID := GetOutletID(c)
	tierID := c.Params("id")
	productID := c.Params("productId")
	if tierID == "" || productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id y productId son requeridos"})
	}
	if err := h.uc.DeleteTierOverride(outletID, tierID, productID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteCustomer godoc
// @Summary      Eliminar cliente
// @Tags         customers
// @Security     Bearer
// @Param        id  path  string  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c *fiber.Ctx) error {
	outletID := GetOutletID(c)
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.DeleteCustomer(outletID, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteTier godoc
// @Summary      Eliminar tier
// @Tags         tiers
// @Security     Bearer
// @Param        id  path  string  true  "ID del tier"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tiers/{id} [delete]
func (h *CustomerHandler) DeleteTier(c *fiber.Ctx) error {
	outletID := GetOutletID(c)
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.DeleteTier(outletID, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
