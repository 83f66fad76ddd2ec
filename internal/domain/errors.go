package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto de concurrencia, reintentar")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInsufficientCapital = errors.New("capital insuficiente")
	ErrSaleNotVoidable     = errors.New("la venta no admite anulación")
	ErrCashTenderedTooLow  = errors.New("efectivo recibido menor al total")
	ErrCreditNeedsCustomer = errors.New("venta a crédito requiere cliente")
)

// StockShortage detalle por línea de un checkout rechazado por falta de stock.
type StockShortage struct {
	ProductID   string
	ProductName string
	Available   int64
	Requested   int64
}

// InsufficientStockError agrupa todas las líneas con stock insuficiente de un
// checkout. Se construye completo (todas las líneas fallidas, no solo la primera)
// para que el caller reciba un único error accionable.
type InsufficientStockError struct {
	Shortages []StockShortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (hay %d, pide %d)", s.ProductName, s.Available, s.Requested))
	}
	return "stock insuficiente: " + strings.Join(parts, "; ")
}

// Is permite detectar el error con errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
