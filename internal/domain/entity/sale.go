package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago. Se registran como etiqueta; no hay conciliación con
// pasarelas externas.
const (
	PaymentCash   = "cash"
	PaymentQRIS   = "qris"
	PaymentCredit = "credit"
)

// Estados de una venta. Una venta paid es inmutable en sus montos; solo puede
// transicionar a void.
const (
	SaleStatusPaid = "paid"
	SaleStatusVoid = "void"
)

// Sale cabecera de una venta. Creada una sola vez, atómicamente, junto con sus
// SaleLine y los eventos de inventario.
type Sale struct {
	ID            string
	OutletID      string
	CustomerID    string // vacío = venta anónima
	TotalAmount   decimal.Decimal
	TotalCost     decimal.Decimal
	TotalProfit   decimal.Decimal
	PaymentMethod string // cash, qris, credit
	CashTendered  decimal.Decimal // solo cash
	ChangeAmount  decimal.Decimal // solo cash
	Status        string          // paid, void
	CreatedAt     time.Time
	VoidedAt      *time.Time
}

// SaleLine línea de venta con precio y costo congelados al momento de la venta.
type SaleLine struct {
	ID             string
	SaleID         string
	ProductID      string
	ProductName    string // congelado para el recibo
	Quantity       int64
	UnitPrice      decimal.Decimal
	UnitCost       decimal.Decimal
	DiscountAmount decimal.Decimal // por unidad, ya aplicado en UnitPrice
	Subtotal       decimal.Decimal
	Profit         decimal.Decimal
}
