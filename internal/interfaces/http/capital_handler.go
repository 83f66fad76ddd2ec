package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Puntoventa-api/internal/application/capital"
	"github.com/jhoicas/Puntoventa-api/internal/application/dto"
	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
)

// CapitalHandler maneja el ledger de capital de trabajo (protegido).
type CapitalHandler struct {
	uc *capital.UseCase
}

// NewCapitalHandler construye el handler.
func NewCapitalHandler(uc *capital.UseCase) *CapitalHandler {
	return &CapitalHandler{uc: uc}
}

// RecordEntry godoc
// @Summary      Registrar asiento de capital (in / out)
// @Description  Los retiros se rechazan si superan el balance derivado; el
// @Description  chequeo corre con la fila del outlet bloqueada.
// @Tags         capital
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CapitalEntryRequest  true  "kind, amount, note"
// @Success      201   {object}  dto.CapitalBalanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_CAPITAL"
// @Router       /api/capital/entries [post]
func (h *CapitalHandler) RecordEntry(c *fiber.Ctx) error {
	outletID := GetOutletID(c)
	if outletID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "outlet_id requerido"})
	}
	var in dto.CapitalEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Kind != entity.CapitalIn && in.Kind != entity.CapitalOut {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "kind debe ser in u out"})
	}
	out, err := h.uc.RecordEntry(c.UserContext(), outletID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetBalance godoc
// @Summary      Consultar balance de capital del outlet
// @Tags         capital
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CapitalBalanceResponse
// @Router       /api/capital/balance [get]
func (h *CapitalHandler) GetBalance(c *fiber.Ctx) error {
	outletID := GetOutletID(c)
	if outletID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "outlet_id requerido"})
	}
	out, err := h.uc.GetBalance(c.UserContext(), outletID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListEntries godoc
// @Summary      Listar asientos de capital del outlet
// @Tags         capital
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.CapitalEntryListResponse
// @Router       /api/capital/entries [get]
func (h *CapitalHandler) ListEntries(c *fiber.Ctx) error {
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
	out, err := h.uc.ListEntries(c.UserContext(), outletID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
