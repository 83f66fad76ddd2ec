package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Category string `json:"category" validate:"required,oneof=fuel-canister returnable-container general"`
	ImageURL string `json:"image_url"`
	IsShared bool   `json:"is_shared"`
}

// UpdateProductRequest entrada para actualizar un producto (solo nombre,
// categoría e imagen; la identidad es inmutable).
type UpdateProductRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Category *string `json:"category" validate:"omitempty,oneof=fuel-canister returnable-container general"`
	ImageURL *string `json:"image_url"`
}

// SetPriceRuleRequest fija precio de venta y costo del producto para el outlet.
// cost_price no puede superar base_price (validación de entrada).
type SetPriceRuleRequest struct {
	BasePrice decimal.Decimal `json:"base_price" validate:"required"`
	CostPrice decimal.Decimal `json:"cost_price"`
}

// ProductResponse salida de un producto con su regla de precio del outlet
// (si existe).
type ProductResponse struct {
	ID        string           `json:"id"`
	OutletID  string           `json:"outlet_id,omitempty"`
	Name      string           `json:"name"`
	Category  string           `json:"category"`
	ImageURL  string           `json:"image_url,omitempty"`
	IsShared  bool             `json:"is_shared"`
	BasePrice *decimal.Decimal `json:"base_price,omitempty"`
	CostPrice *decimal.Decimal `json:"cost_price,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
