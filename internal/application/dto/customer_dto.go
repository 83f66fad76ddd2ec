package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	TierID  string `json:"tier_id"`
}

// UpdateCustomerRequest entrada para actualizar un cliente.
type UpdateCustomerRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	TierID  *string `json:"tier_id"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	OutletID  string    `json:"outlet_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	TierID    string    `json:"tier_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateTierRequest entrada para crear un tier de clientes.
type CreateTierRequest struct {
	Name                  string          `json:"name" validate:"required,min=1,max=100"`
	GlobalDiscountPercent decimal.Decimal `json:"global_discount_percent"` // 0..100
}

// UpdateTierRequest entrada para actualizar un tier.
type UpdateTierRequest struct {
	Name                  *string          `json:"name" validate:"omitempty,min=1,max=100"`
	GlobalDiscountPercent *decimal.Decimal `json:"global_discount_percent"`
}

// TierResponse salida de un tier.
type TierResponse struct {
	ID                    string          `json:"id"`
	OutletID              string          `json:"outlet_id"`
	Name                  string          `json:"name"`
	GlobalDiscountPercent decimal.Decimal `json:"global_discount_percent"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// SetTierOverrideRequest fija la excepción de precio de un producto para un
// tier. percentage: 0..100; fixed: >= 0 (se topa en el precio base al aplicar).
type SetTierOverrideRequest struct {
	ProductID     string          `json:"product_id" validate:"required"`
	DiscountKind  string          `json:"discount_kind" validate:"required,oneof=percentage fixed"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}

// TierOverrideResponse salida de una excepción de precio.
type TierOverrideResponse struct {
	ProductID     string          `json:"product_id"`
	TierID        string          `json:"tier_id"`
	DiscountKind  string          `json:"discount_kind"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}
