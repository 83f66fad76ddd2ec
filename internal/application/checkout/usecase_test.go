package checkout_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Puntoventa-api/internal/application/dto"
	"github.com/jhoicas/Puntoventa-api/internal/domain"
	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
	"github.com/jhoicas/Puntoventa-api/internal/domain/pricing"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func dp(v int64) *decimal.Decimal {
	x := decimal.NewFromInt(v)
	return &x
}

func TestCheckout_EfectivoConDescuentoDeTier(t *testing.T) {
	s := newMemStore()
	s.seedProduct("prod-gas", entity.CategoryFuelCanister, 20000, 16000, 10)
	s.seedCustomerWithTier(5)
	uc, pub := newTestUseCase(s)

	resp, err := uc.Checkout(context.Background(), testOutletID, dto.CheckoutRequest{
		CustomerID:    testCustomerID,
		Items:         []dto.CheckoutItem{{ProductID: "prod-gas", Quantity: 2}},
		PaymentMethod: entity.PaymentCash,
		CashTendered:  dp(40000),
	})
	require.NoError(t, err)

	// 20000 - 5% = 19000 por unidad.
	assert.True(t, resp.TotalAmount.Equal(d(38000)), "total: %s", resp.TotalAmount)
	assert.True(t, resp.TotalCost.Equal(d(32000)))
	assert.True(t, resp.TotalProfit.Equal(d(6000)))
	require.NotNil(t, resp.ChangeAmount)
	assert.True(t, resp.ChangeAmount.Equal(d(2000)))

	sale := s.sales[resp.SaleID]
	assert.Equal(t, entity.SaleStatusPaid, sale.Status)
	assert.Equal(t, testCustomerID, sale.CustomerID)
	assert.True(t, sale.CashTendered.Equal(d(40000)))

	lines := s.lines[resp.SaleID]
	require.Len(t, lines, 1)
	assert.Equal(t, "producto prod-gas", lines[0].ProductName)
	assert.True(t, lines[0].UnitPrice.Equal(d(19000)))
	assert.True(t, lines[0].DiscountAmount.Equal(d(1000)))
	assert.True(t, lines[0].Subtotal.Equal(d(38000)))

	// Retornable: bajan llenas, suben vacías, y queda el evento ligado a la venta.
	state := s.states[key{testOutletID, "prod-gas"}]
	assert.Equal(t, int64(8), state.StockFilled)
	assert.Equal(t, int64(2), state.StockEmpty)
	require.Len(t, s.events, 1)
	assert.Equal(t, entity.ReasonSale, s.events[0].Reason)
	assert.Equal(t, resp.SaleID, s.events[0].SaleID)
	assert.Equal(t, int64(-2), s.events[0].DeltaFilled)
	assert.Equal(t, int64(2), s.events[0].DeltaEmpty)

	assert.Equal(t, []string{resp.SaleID}, pub.published)
}

func TestCheckout_CreditoSinCliente(t *testing.T) {
	s := newMemStore()
	s.seedProduct("prod-agua", entity.CategoryGeneral, 5000, 3000, 10)
	uc, _ := newTestUseCase(s)

	_, err := uc.Checkout(context.Background(), testOutletID, dto.CheckoutRequest{
		Items:         []dto.CheckoutItem{{ProductID: "prod-agua", Quantity: 1}},
		PaymentMethod: entity.PaymentCredit,
	})
	assert.ErrorIs(t, err, domain.ErrCreditNeedsCustomer)
	assert.Empty(t, s.sales)
}

func TestCheckout_EfectivoInsuficiente(t *testing.T) {
	s := newMemStore()
	s.seedProduct("prod-agua", entity.CategoryGeneral, 5000, 3000, 10)
	uc, pub := newTestUseCase(s)

	_, err := uc.Checkout(context.Background(), testOutletID, dto.CheckoutRequest{
		Items:         []dto.CheckoutItem{{ProductID: "prod-agua", Quantity: 2}},
		PaymentMethod: entity.PaymentCash,
		CashTendered:  dp(9000),
	})
	assert.ErrorIs(t, err, domain.ErrCashTenderedTooLow)

	// El rollback no deja rastro: ni venta, ni eventos, ni stock tocado.
	assert.Empty(t, s.sales)
	assert.Empty(t, s.events)
	assert.Equal(t, int64(10), s.states[key{testOutletID, "prod-agua"}].StockFilled)
	assert.Empty(t, pub.published)
}

func TestCheckout_EntradaInvalida(t *testing.T) {
	s := newMemStore()
	uc, _ := newTestUseCase(s)
	ctx := context.Background()

	_, err := uc.Checkout(ctx, testOutletID, dto.CheckoutRequest{
		PaymentMethod: entity.PaymentCash,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Checkout(ctx, testOutletID, dto.CheckoutRequest{
		Items:         []dto.CheckoutItem{{ProductID: "prod-x", Quantity: 0}},
		PaymentMethod: entity.PaymentCash,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Checkout(ctx, testOutletID, dto.CheckoutRequest{
		Items:         []dto.CheckoutItem{{ProductID: "prod-x", Quantity: 1}},
		PaymentMethod: "transferencia",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheckout_JuntaTodosLosFaltantes(t *testing.T) {
	s := newMemStore()
	s.seedProduct("prod-gas", entity.CategoryFuelCanister, 20000, 16000, 1)
	s.seedProduct("prod-galon", entity.CategoryReturnableContainer, 7000, 4000, 0)
	s.seedProduct("prod-agua", entity.CategoryGeneral, 5000, 3000, 50)
	uc, _ := newTestUseCase(s)

	_, err := uc.Checkout(context.Background(), testOutletID, dto.CheckoutRequest{
		Items: []dto.CheckoutItem{
			{ProductID: "prod-gas", Quantity: 3},
			{ProductID: "prod-galon", Quantity: 2},
			{ProductID: "prod-agua", Quantity: 5},
		},
		PaymentMethod: entity.PaymentQRIS,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Shortages, 2)
	assert.Equal(t, "prod-gas", stockErr.Shortages[0].ProductID)
	assert.Equal(t, int64(1), stockErr.Shortages[0].Available)
	assert.Equal(t, int64(3), stockErr.Shortages[0].Requested)
	assert.Equal(t, "prod-galon", stockErr.Shortages[1].ProductID)
	assert.Equal(t, int64(0), stockErr.Shortages[1].Available)

	// Atomicidad: la línea suficiente tampoco se descontó.
	assert.Empty(t, s.sales)
	assert.Empty(t, s.lines)
	assert.Empty(t, s.events)
	assert.Equal(t, int64(50), s.states[key{testOutletID, "prod-agua"}].StockFilled)
}

func TestCheckout_OverrideGanaSobreDescuentoGlobal(t *testing.T) {
	s := newMemStore()
	s.seedProduct("prod-gas", entity.CategoryFuelCanister, 20000, 16000, 5)
	s.seedCustomerWithTier(10)
	s.seedOverride("prod-gas", entity.DiscountKindFixed, 500)
	uc, _ := newTestUseCase(s)

	resp, err := uc.Checkout(context.Background(), testOutletID, dto.CheckoutRequest{
		CustomerID:    testCustomerID,
		Items:         []dto.CheckoutItem{{ProductID: "prod-gas", Quantity: 1}},
		PaymentMethod: entity.PaymentQRIS,
	})
	require.NoError(t, err)

	// El override fijo de 500 aplica aunque el 10% global fuera mejor.
	assert.True(t, resp.TotalAmount.Equal(d(19500)), "total: %s", resp.TotalAmount)
	lines := s.lines[resp.SaleID]
	require.Len(t, lines, 1)
	assert.True(t, lines[0].DiscountAmount.Equal(d(500)))
}

// El tier y sus overrides se leen dentro de la transacción: un override
// editado justo antes del commit queda congelado con su valor nuevo, jamás
// con una lectura anterior.
func TestCheckout_OverrideEditadoAntesDeLaTx_CongelaElValorNuevo(t *testing.T) {
	s := newMemStore()
	s.seedProduct("prod-gas", entity.CategoryFuelCanister, 20000, 16000, 5)
	s.seedCustomerWithTier(5)
	s.seedOverride("prod-gas", entity.DiscountKindFixed, 500)
	uc, _ := newTestUseCaseAtTxStart(s, func() {
		s.seedOverride("prod-gas", entity.DiscountKindFixed, 1200)
	})

	resp, err := uc.Checkout(context.Background(), testOutletID, dto.CheckoutRequest{
		CustomerID:    testCustomerID,
		Items:         []dto.CheckoutItem{{ProductID: "prod-gas", Quantity: 1}},
		PaymentMethod: entity.PaymentQRIS,
	})
	require.NoError(t, err)

	lines := s.lines[resp.SaleID]
	require.Len(t, lines, 1)
	assert.True(t, lines[0].DiscountAmount.Equal(d(1200)), "descuento: %s", lines[0].DiscountAmount)
	assert.True(t, resp.TotalAmount.Equal(d(18800)))
}

// Cliente cuyo tier fue eliminado: vende a precio de lista, no falla.
func TestCheckout_TierEliminado_PrecioDeLista(t *testing.T) {
	s := newMemStore()
	s.seedProduct("prod-gas", entity.CategoryFuelCanister, 20000, 16000, 5)
	s.seedCustomerWithTier(10)
	delete(s.tiers, testTierID)
	uc, _ := newTestUseCase(s)

	resp, err := uc.Checkout(context.Background(), testOutletID, dto.CheckoutRequest{
		CustomerID:    testCustomerID,
		Items:         []dto.CheckoutItem{{ProductID: "prod-gas", Quantity: 1}},
		PaymentMethod: entity.PaymentQRIS,
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(d(20000)))
}

func TestCheckout_VentaAnonimaPrecioDeLista(t *testing.T) {
	s := newMemStore()
	s.seedProduct("prod-agua", entity.CategoryGeneral, 5000, 3000, 10)
	uc, _ := newTestUseCase(s)

	resp, err := uc.Checkout(context.Background(), testOutletID, dto.CheckoutRequest{
		Items:         []dto.CheckoutItem{{ProductID: "prod-agua", Quantity: 3}},
		PaymentMethod: entity.PaymentQRIS,
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(d(15000)))
	assert.Nil(t, resp.ChangeAmount)

	// General: no genera vacíos.
	state := s.states[key{testOutletID, "prod-agua"}]
	assert.Equal(t, int64(7), state.StockFilled)
	assert.Equal(t, int64(0), state.StockEmpty)
}

func TestQuotePrice_CoincideConElPrecioCongelado(t *testing.T) {
	s := newMemStore()
	s.seedProduct("prod-gas", entity.CategoryFuelCanister, 20000, 16000, 5)
	s.seedCustomerWithTier(5)
	s.seedOverride("prod-gas", entity.DiscountKindPercentage, 12)
	uc, _ := newTestUseCase(s)
	ctx := context.Background()

	quote, err := uc.QuotePrice(ctx, testOutletID, "prod-gas", testCustomerID)
	require.NoError(t, err)
	assert.Equal(t, pricing.SourceTierOverride, quote.Source)
	assert.Equal(t, entity.DiscountKindPercentage, quote.DiscountKind)

	resp, err := uc.Checkout(ctx, testOutletID, dto.CheckoutRequest{
		CustomerID:    testCustomerID,
		Items:         []dto.CheckoutItem{{ProductID: "prod-gas", Quantity: 1}},
		PaymentMethod: entity.PaymentQRIS,
	})
	require.NoError(t, err)

	line := s.lines[resp.SaleID][0]
	assert.True(t, quote.FinalPrice.Equal(line.UnitPrice),
		"cotizado %s vs congelado %s", quote.FinalPrice, line.UnitPrice)
	assert.True(t, quote.DiscountAmount.Equal(line.DiscountAmount))
}

func TestVoidSale_RestauraInventarioYMarcaVoid(t *testing.T) {
	s := newMemStore()
	s.seedProduct("prod-gas", entity.CategoryFuelCanister, 20000, 16000, 10)
	uc, _ := newTestUseCase(s)
	ctx := context.Background()

	resp, err := uc.Checkout(ctx, testOutletID, dto.CheckoutRequest{
		Items:         []dto.CheckoutItem{{ProductID: "prod-gas", Quantity: 4}},
		PaymentMethod: entity.PaymentQRIS,
	})
	require.NoError(t, err)

	voided, err := uc.VoidSale(ctx, testOutletID, resp.SaleID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusVoid, voided.Status)
	require.NotNil(t, voided.VoidedAt)
	// Los montos de la venta quedan intactos.
	assert.True(t, voided.TotalAmount.Equal(d(80000)))

	state := s.states[key{testOutletID, "prod-gas"}]
	assert.Equal(t, int64(10), state.StockFilled)
	assert.Equal(t, int64(0), state.StockEmpty)

	// Venta + devolución, una entrada por cada una.
	require.Len(t, s.events, 2)
	assert.Equal(t, entity.ReasonReturn, s.events[1].Reason)
	assert.Equal(t, resp.SaleID, s.events[1].SaleID)
	assert.Equal(t, int64(4), s.events[1].DeltaFilled)
	assert.Equal(t, int64(-4), s.events[1].DeltaEmpty)

	_, err = uc.VoidSale(ctx, testOutletID, resp.SaleID)
	assert.ErrorIs(t, err, domain.ErrSaleNotVoidable)
}

func TestVoidSale_VentaDeOtroOutlet(t *testing.T) {
	s := newMemStore()
	s.seedProduct("prod-agua", entity.CategoryGeneral, 5000, 3000, 10)
	uc, _ := newTestUseCase(s)
	ctx := context.Background()

	resp, err := uc.Checkout(ctx, testOutletID, dto.CheckoutRequest{
		Items:         []dto.CheckoutItem{{ProductID: "prod-agua", Quantity: 1}},
		PaymentMethod: entity.PaymentQRIS,
	})
	require.NoError(t, err)

	_, err = uc.VoidSale(ctx, "outlet-ajeno", resp.SaleID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, entity.SaleStatusPaid, s.sales[resp.SaleID].Status)
}

func TestGetSale_IncluyeLineas(t *testing.T) {
	s := newMemStore()
	s.seedProduct("prod-agua", entity.CategoryGeneral, 5000, 3000, 10)
	uc, _ := newTestUseCase(s)
	ctx := context.Background()

	resp, err := uc.Checkout(ctx, testOutletID, dto.CheckoutRequest{
		Items:         []dto.CheckoutItem{{ProductID: "prod-agua", Quantity: 2}},
		PaymentMethod: entity.PaymentQRIS,
	})
	require.NoError(t, err)

	sale, err := uc.GetSale(ctx, testOutletID, resp.SaleID)
	require.NoError(t, err)
	require.Len(t, sale.Lines, 1)
	assert.Equal(t, int64(2), sale.Lines[0].Quantity)
	assert.True(t, sale.Lines[0].Subtotal.Equal(d(10000)))
}
