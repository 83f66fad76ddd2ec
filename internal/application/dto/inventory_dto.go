package dto

import "time"

// RestockRequest body para POST /api/inventory/restock (recepción de mercancía).
type RestockRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
	Note      string `json:"note,omitempty"`
}

// CorrectionRequest body para POST /api/inventory/corrections (ajuste manual).
// Los deltas son firmados; al menos uno debe ser distinto de cero.
type CorrectionRequest struct {
	ProductID   string `json:"productId" validate:"required"`
	DeltaFilled int64  `json:"deltaFilled"`
	DeltaEmpty  int64  `json:"deltaEmpty"`
	Note        string `json:"note,omitempty"`
}

// InventoryStateResponse stock dual resultante de una operación o consulta.
// Warning lleva EMPTY_STOCK_UNDERFLOW cuando el contador de vacíos se recortó
// a cero; la operación aun así fue exitosa.
type InventoryStateResponse struct {
	ProductID   string `json:"productId"`
	StockFilled int64  `json:"stockFilled"`
	StockEmpty  int64  `json:"stockEmpty"`
	Warning     string `json:"warning,omitempty"`
}

// InventoryEventResponse fila del log de inventario.
type InventoryEventResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	DeltaFilled int64     `json:"deltaFilled"`
	DeltaEmpty  int64     `json:"deltaEmpty"`
	Reason      string    `json:"reason"`
	SaleID      string    `json:"saleId,omitempty"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
