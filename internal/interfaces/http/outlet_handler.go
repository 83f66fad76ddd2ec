package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Puntoventa-api/internal/application/dto"
	"github.com/jhoicas/Puntoventa-api/internal/application/usecase"
)

// OutletHandler expone la consulta del outlet propio (protegido).
type OutletHandler struct {
	uc *usecase.OutletUseCase
}

// NewOutletHandler construye el handler.
func NewOutletHandler(uc *usecase.OutletUseCase) *OutletHandler {
	return &OutletHandler{uc: uc}
}

// GetMine godoc
// @Summary      Obtener el outlet del token
// @Tags         outlets
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OutletResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/outlets/me [get]
func (h *OutletHandler) GetMine(c *fiber.Ctx) error {
	outletID := GetOutletID(c)
	if outletID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "outlet_id requerido"})
	}
	out, err := h.uc.GetByID(outletID)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "outlet no encontrado"})
	}
	return c.JSON(out)
}
