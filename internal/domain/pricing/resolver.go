// Package pricing implementa la resolución de descuentos por tier (servicio de
// dominio puro). Se puede llamar libremente fuera de transacción para mostrar
// precios en el catálogo, y de nuevo, con el mismo resultado, dentro de la
// transacción de checkout para congelar el precio autoritativo.
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
)

// Fuente del descuento resuelto.
const (
	SourceNone         = "none"
	SourceTierOverride = "tier_override"
	SourceTierDefault  = "tier_default"
)

// Resolved resultado de resolver un descuento para un producto.
// Invariante exacto: FinalPrice + DiscountAmount == basePrice. La moneda no
// maneja subunidad: DiscountAmount se redondea a entero y FinalPrice es la
// resta, nunca se redondea por separado.
type Resolved struct {
	Kind           string // percentage | fixed | "" si Source == none
	Value          decimal.Decimal
	FinalPrice     decimal.Decimal
	DiscountAmount decimal.Decimal
	Source         string // none | tier_override | tier_default
}

// Input parámetros de resolución. HasTier indica si la venta tiene cliente con
// tier asignado; Override es la excepción (outlet, producto, tier) si existe.
type Input struct {
	BasePrice             decimal.Decimal
	HasTier               bool
	Override              *entity.TierPriceOverride
	GlobalDiscountPercent decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// Resolve aplica la política de descuentos en cascada:
//  1. Sin tier: precio de lista (source none).
//  2. Override por (producto, tier): gana incondicionalmente, aunque el
//     descuento resultante sea menor que el global del tier. Es una excepción
//     manual intencional, no una optimización.
//  3. Descuento global del tier > 0: se aplica como porcentaje.
//  4. En otro caso: precio de lista.
func Resolve(in Input) Resolved {
	if !in.HasTier {
		return noDiscount(in.BasePrice)
	}

	if ov := in.Override; ov != nil {
		switch ov.DiscountKind {
		case entity.DiscountKindPercentage:
			amount := percentOf(in.BasePrice, ov.DiscountValue)
			return Resolved{
				Kind:           entity.DiscountKindPercentage,
				Value:          ov.DiscountValue,
				FinalPrice:     in.BasePrice.Sub(amount),
				DiscountAmount: amount,
				Source:         SourceTierOverride,
			}
		case entity.DiscountKindFixed:
			// El descuento fijo se topa en el precio base: FinalPrice nunca
			// queda negativo.
			amount := ov.DiscountValue
			if amount.GreaterThan(in.BasePrice) {
				amount = in.BasePrice
			}
			return Resolved{
				Kind:           entity.DiscountKindFixed,
				Value:          ov.DiscountValue,
				FinalPrice:     in.BasePrice.Sub(amount),
				DiscountAmount: amount,
				Source:         SourceTierOverride,
			}
		}
	}

	if in.GlobalDiscountPercent.GreaterThan(decimal.Zero) {
		amount := percentOf(in.BasePrice, in.GlobalDiscountPercent)
		return Resolved{
			Kind:           entity.DiscountKindPercentage,
			Value:          in.GlobalDiscountPercent,
			FinalPrice:     in.BasePrice.Sub(amount),
			DiscountAmount: amount,
			Source:         SourceTierDefault,
		}
	}

	return noDiscount(in.BasePrice)
}

func noDiscount(basePrice decimal.Decimal) Resolved {
	return Resolved{
		FinalPrice:     basePrice,
		DiscountAmount: decimal.Zero,
		Source:         SourceNone,
	}
}

// percentOf redondea al entero de moneda más cercano (sin subunidad en IDR).
func percentOf(basePrice, percent decimal.Decimal) decimal.Decimal {
	return basePrice.Mul(percent).Div(oneHundred).Round(0)
}
