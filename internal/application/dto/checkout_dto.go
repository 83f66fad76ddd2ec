package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutItem una línea del carrito.
type CheckoutItem struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
}

// CheckoutRequest body para POST /api/checkout. CashTendered solo aplica a
// paymentMethod cash; customerId es opcional salvo para credit.
type CheckoutRequest struct {
	CustomerID    string           `json:"customerId,omitempty"`
	Items         []CheckoutItem   `json:"items" validate:"required,min=1"`
	PaymentMethod string           `json:"paymentMethod" validate:"required,oneof=cash qris credit"`
	CashTendered  *decimal.Decimal `json:"cashTendered,omitempty"`
}

// CheckoutResponse venta comprometida.
type CheckoutResponse struct {
	SaleID       string           `json:"saleId"`
	TotalAmount  decimal.Decimal  `json:"totalAmount"`
	TotalCost    decimal.Decimal  `json:"totalCost"`
	TotalProfit  decimal.Decimal  `json:"totalProfit"`
	ChangeAmount *decimal.Decimal `json:"changeAmount,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// SaleLineResponse línea de venta con precios congelados.
type SaleLineResponse struct {
	ProductID      string          `json:"productId"`
	ProductName    string          `json:"productName"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	UnitCost       decimal.Decimal `json:"unitCost"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Profit         decimal.Decimal `json:"profit"`
}

// SaleResponse venta completa con líneas.
type SaleResponse struct {
	ID            string             `json:"id"`
	OutletID      string             `json:"outletId"`
	CustomerID    string             `json:"customerId,omitempty"`
	TotalAmount   decimal.Decimal    `json:"totalAmount"`
	TotalCost     decimal.Decimal    `json:"totalCost"`
	TotalProfit   decimal.Decimal    `json:"totalProfit"`
	PaymentMethod string             `json:"paymentMethod"`
	CashTendered  decimal.Decimal    `json:"cashTendered"`
	ChangeAmount  decimal.Decimal    `json:"changeAmount"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"createdAt"`
	VoidedAt      *time.Time         `json:"voidedAt,omitempty"`
	Lines         []SaleLineResponse `json:"lines"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// PriceQuoteResponse precio resuelto de un producto para un cliente, para
// mostrar en pantalla de cobro. El precio autoritativo es siempre el que
// congela el checkout; esta respuesta usa el mismo resolver.
type PriceQuoteResponse struct {
	ProductID      string          `json:"productId"`
	BasePrice      decimal.Decimal `json:"basePrice"`
	FinalPrice     decimal.Decimal `json:"finalPrice"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	DiscountKind   string          `json:"discountKind,omitempty"`
	Source         string          `json:"source"`
}
