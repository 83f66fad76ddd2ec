package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Puntoventa-api/internal/application/dto"
	"github.com/jhoicas/Puntoventa-api/internal/domain"
)

// respondError traduce errores de dominio a respuestas HTTP. Los handlers lo
// usan para los errores que vienen del caso de uso; los errores de parsing y
// validación de entrada se responden en el propio handler.
func respondError(c *fiber.Ctx, err error) error {
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		resp := dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para una o más líneas"}
		for _, s := range stockErr.Shortages {
			resp.Details = append(resp.Details, dto.StockShortageDetail{
				ProductID:   s.ProductID,
				ProductName: s.ProductName,
				Available:   s.Available,
				Requested:   s.Requested,
			})
		}
		return c.Status(fiber.StatusConflict).JSON(resp)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrCashTenderedTooLow):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CASH_TENDERED_TOO_LOW", Message: "efectivo recibido menor al total"})
	case errors.Is(err, domain.ErrCreditNeedsCustomer):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CREDIT_NEEDS_CUSTOMER", Message: "venta a crédito requiere cliente"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "recurso de otro outlet"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "email ya registrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	case errors.Is(err, domain.ErrInsufficientCapital):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_CAPITAL", Message: "balance de capital insuficiente"})
	case errors.Is(err, domain.ErrSaleNotVoidable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SALE_NOT_VOIDABLE", Message: "la venta no está en estado anulable"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto de concurrencia, reintente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
