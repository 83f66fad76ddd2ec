package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerTier clasificación de cliente (ej. regular/silver/gold) con un
// descuento porcentual por defecto sobre todo el catálogo.
type CustomerTier struct {
	ID                    string
	OutletID              string
	Name                  string
	GlobalDiscountPercent decimal.Decimal // 0..100
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Tipos de descuento para TierPriceOverride.
const (
	DiscountKindPercentage = "percentage"
	DiscountKindFixed      = "fixed"
)

// TierPriceOverride excepción manual de precio por (outlet, producto, tier).
// Máximo una por tripleta (constraint único). Gana siempre sobre el descuento
// global del tier, aunque el descuento resultante sea menor.
type TierPriceOverride struct {
	ID            string
	OutletID      string
	ProductID     string
	TierID        string
	DiscountKind  string          // percentage | fixed
	DiscountValue decimal.Decimal // percentage: 0..100; fixed: >= 0
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Customer representa un cliente del outlet, opcionalmente asignado a un tier.
type Customer struct {
	ID        string
	OutletID  string
	Name      string
	Phone     string
	Address   string
	TierID    string // vacío = sin tier (precio de lista)
	CreatedAt time.Time
	UpdatedAt time.Time
}
