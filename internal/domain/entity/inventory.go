package entity

import "time"

// Razones válidas para un InventoryEvent.
const (
	ReasonSale          = "sale"
	ReasonManualRestock = "manual_restock"
	ReasonCorrection    = "correction"
	ReasonReturn        = "return"
)

// InventoryState stock actual de un producto en un outlet: unidades llenas
// vendibles (StockFilled) y envases vacíos pendientes de canje (StockEmpty).
// StockEmpty solo tiene sentido para categorías retornables; siempre 0 en general.
// Es el único agregado mutable del núcleo y solo se modifica vía el ledger.
type InventoryState struct {
	OutletID    string
	ProductID   string
	StockFilled int64
	StockEmpty  int64
	UpdatedAt   time.Time
}

// InventoryEvent fila append-only del log de inventario. Los deltas registran
// lo efectivamente aplicado (post-clamp), no lo solicitado: InventoryState debe
// ser siempre reconstruible como la suma corriente de sus eventos.
type InventoryEvent struct {
	ID          string
	OutletID    string
	ProductID   string
	DeltaFilled int64
	DeltaEmpty  int64
	Reason      string // ver constantes Reason*
	SaleID      string // vacío si no está ligado a una venta
	Note        string
	CreatedAt   time.Time
}
