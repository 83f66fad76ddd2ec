package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto. Las categorías retornables (gas, botellón de agua)
// llevan doble contador de stock: unidades llenas y envases vacíos.
const (
	CategoryFuelCanister        = "fuel-canister"
	CategoryReturnableContainer = "returnable-container"
	CategoryGeneral             = "general"
)

// Product representa un producto del catálogo. Puede ser compartido (catálogo
// global) o propio del outlet. El precio y costo viven en PriceRule por outlet.
type Product struct {
	ID        string
	OutletID  string // vacío si IsShared
	Name      string
	Category  string // ver constantes Category*
	ImageURL  string
	IsShared  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsReturnable indica si la categoría lleva contador de envases vacíos.
func (p *Product) IsReturnable() bool {
	return p.Category == CategoryFuelCanister || p.Category == CategoryReturnableContainer
}

// PriceRule precio de venta y costo unitario de un producto para un outlet.
// Exactamente una regla activa por par (outlet, producto). CostPrice <= BasePrice
// se valida al momento del input, no como invariante de almacenamiento.
type PriceRule struct {
	ID        string
	OutletID  string
	ProductID string
	BasePrice decimal.Decimal
	CostPrice decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
