package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Puntoventa-api/internal/application/checkout"
	"github.com/jhoicas/Puntoventa-api/internal/application/dto"
)

// CheckoutHandler maneja el cobro y la cotización de precio (protegido).
type CheckoutHandler struct {
	uc *checkout.UseCase
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(uc *checkout.UseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// Checkout godoc
// @Summary      Cobrar un carrito (venta atómica)
// @Description  Congela precios, descuenta stock e inserta la venta con sus
// @Description  líneas en una sola transacción. Si alguna línea no tiene stock
// @Description  suficiente, rechaza todo con el detalle por línea.
// @Tags         checkout
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "items, paymentMethod, customerId, cashTendered"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK con details"
// @Router       /api/checkout [post]
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	outletID := GetOutletID(c)
	if outletID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "outlet_id requerido"})
	}
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "items no puede estar vacío"})
	}
	out, err := h.uc.Checkout(c.UserContext(), outletID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// QuotePrice godoc
// @Summary      Cotizar el precio de un producto para un cliente
// @Description  Mismo resolver de descuentos que usa el checkout; el precio
// @Description  autoritativo sigue siendo el que se congela al cobrar.
// @Tags         checkout
// @Security     Bearer
// @Produce      json
// @Param        productId   query  string  true   "ID del producto"
// @Param        customerId  query  string  false  "ID del cliente (vacío = precio de lista)"
// @Success      200  {object}  dto.PriceQuoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/checkout/quote [get]
func (h *CheckoutHandler) QuotePrice(c *fiber.Ctx) error {
	outletID := GetOutletID(c)
	if outletID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "outlet_id requerido"})
	}
	productID := c.Query("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId es requerido"})
	}
	out, err := h.uc.QuotePrice(c.UserContext(), outletID, productID, c.Query("customerId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
