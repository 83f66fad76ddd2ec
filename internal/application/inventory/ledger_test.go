package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Puntoventa-api/internal/application/inventory"
	"github.com/jhoicas/Puntoventa-api/internal/domain"
	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
)

const (
	testOutletID  = "outlet-1"
	testProductID = "prod-gas-3kg"
)

// Venta de retornable: -qty llenas, +qty vacíos.
func TestApplyDelta_VentaRetornable(t *testing.T) {
	stockRepo := newMemStockRepo()
	eventRepo := &memEventRepo{}
	stockRepo.seed(testOutletID, testProductID, 10, 2)

	product := testProduct(testProductID, testOutletID, entity.CategoryFuelCanister)
	delta := inventory.SaleConsumption(&product, testOutletID, "sale-1", 3)

	state, warning, err := inventory.ApplyDelta(stockRepo, eventRepo, delta, time.Now())
	require.NoError(t, err)

	assert.Empty(t, warning)
	assert.Equal(t, int64(7), state.StockFilled)
	assert.Equal(t, int64(5), state.StockEmpty)

	require.Len(t, eventRepo.events, 1)
	ev := eventRepo.events[0]
	assert.Equal(t, entity.ReasonSale, ev.Reason)
	assert.Equal(t, "sale-1", ev.SaleID)
	assert.Equal(t, int64(-3), ev.DeltaFilled)
	assert.Equal(t, int64(3), ev.DeltaEmpty)

	// Restock con canje: +4 llenas, -4 vacíos.
	restock := inventory.RestockDelta(&product, testOutletID, 4, "")
	state, warning, err = inventory.ApplyDelta(stockRepo, eventRepo, restock, time.Now())
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Equal(t, int64(11), state.StockFilled)
	assert.Equal(t, int64(1), state.StockEmpty)
}

// Venta de producto general: solo descuenta llenas, los vacíos no se tocan.
func TestApplyDelta_VentaGeneral_SinVacios(t *testing.T) {
	stockRepo := newMemStockRepo()
	eventRepo := &memEventRepo{}
	stockRepo.seed(testOutletID, "prod-snack", 5, 0)

	product := testProduct("prod-snack", testOutletID, entity.CategoryGeneral)
	delta := inventory.SaleConsumption(&product, testOutletID, "sale-2", 2)

	state, _, err := inventory.ApplyDelta(stockRepo, eventRepo, delta, time.Now())
	require.NoError(t, err)

	assert.Equal(t, int64(3), state.StockFilled)
	assert.Equal(t, int64(0), state.StockEmpty)
	assert.Equal(t, int64(0), eventRepo.events[0].DeltaEmpty)
}

// Llenas insuficientes: fallo duro, nada se escribe.
func TestApplyDelta_LlenasInsuficientes_FalloDuro(t *testing.T) {
	stockRepo := newMemStockRepo()
	eventRepo := &memEventRepo{}
	stockRepo.seed(testOutletID, testProductID, 2, 0)

	product := testProduct(testProductID, testOutletID, entity.CategoryFuelCanister)
	delta := inventory.SaleConsumption(&product, testOutletID, "sale-3", 5)

	_, _, err := inventory.ApplyDelta(stockRepo, eventRepo, delta, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Shortages, 1)
	assert.Equal(t, int64(2), stockErr.Shortages[0].Available)
	assert.Equal(t, int64(5), stockErr.Shortages[0].Requested)

	// Nada escrito: estado intacto, log vacío.
	state, _ := stockRepo.Get(testOutletID, testProductID)
	assert.Equal(t, int64(2), state.StockFilled)
	assert.Empty(t, eventRepo.events)
}

// Restock con menos vacíos que unidades recibidas: los vacíos se recortan a
// cero con warning y el evento registra el delta efectivamente aplicado.
func TestApplyDelta_RestockRecortaVacios(t *testing.T) {
	stockRepo := newMemStockRepo()
	eventRepo := &memEventRepo{}
	stockRepo.seed(testOutletID, testProductID, 1, 3)

	product := testProduct(testProductID, testOutletID, entity.CategoryReturnableContainer)
	delta := inventory.RestockDelta(&product, testOutletID, 10, "recepción proveedor")

	state, warning, err := inventory.ApplyDelta(stockRepo, eventRepo, delta, time.Now())
	require.NoError(t, err)

	assert.Equal(t, inventory.WarningEmptyStockUnderflow, warning)
	assert.Equal(t, int64(11), state.StockFilled)
	assert.Equal(t, int64(0), state.StockEmpty)

	// El evento lleva el delta post-clamp (-3), no el solicitado (-10).
	require.Len(t, eventRepo.events, 1)
	assert.Equal(t, int64(10), eventRepo.events[0].DeltaFilled)
	assert.Equal(t, int64(-3), eventRepo.events[0].DeltaEmpty)
}

// Restock con vacíos suficientes: canje completo sin warning.
func TestApplyDelta_RestockConVaciosSuficientes(t *testing.T) {
	stockRepo := newMemStockRepo()
	eventRepo := &memEventRepo{}
	stockRepo.seed(testOutletID, testProductID, 0, 8)

	product := testProduct(testProductID, testOutletID, entity.CategoryFuelCanister)
	delta := inventory.RestockDelta(&product, testOutletID, 5, "")

	state, warning, err := inventory.ApplyDelta(stockRepo, eventRepo, delta, time.Now())
	require.NoError(t, err)

	assert.Empty(t, warning)
	assert.Equal(t, int64(5), state.StockFilled)
	assert.Equal(t, int64(3), state.StockEmpty)
}

// Producto sin movimientos previos: el estado parte de cero.
func TestApplyDelta_ProductoSinFila(t *testing.T) {
	stockRepo := newMemStockRepo()
	eventRepo := &memEventRepo{}

	product := testProduct("prod-nuevo", testOutletID, entity.CategoryGeneral)
	delta := inventory.RestockDelta(&product, testOutletID, 4, "")

	state, _, err := inventory.ApplyDelta(stockRepo, eventRepo, delta, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(4), state.StockFilled)
}

// El estado es siempre reconstruible como la suma corriente de los eventos,
// incluso después de clamps.
func TestApplyDelta_ReplayDelLogReproduceElEstado(t *testing.T) {
	stockRepo := newMemStockRepo()
	eventRepo := &memEventRepo{}
	now := time.Now()

	product := testProduct(testProductID, testOutletID, entity.CategoryFuelCanister)

	steps := []inventory.Delta{
		inventory.RestockDelta(&product, testOutletID, 10, ""),          // clamp: no hay vacíos
		inventory.SaleConsumption(&product, testOutletID, "s1", 4),
		inventory.SaleConsumption(&product, testOutletID, "s2", 1),
		inventory.RestockDelta(&product, testOutletID, 8, ""),           // clamp parcial: solo 5 vacíos
		inventory.ReturnDelta(&product, testOutletID, "s2", 1),
	}
	for _, d := range steps {
		_, _, err := inventory.ApplyDelta(stockRepo, eventRepo, d, now)
		require.NoError(t, err)
	}

	state, err := stockRepo.Get(testOutletID, testProductID)
	require.NoError(t, err)
	filled, empty := eventRepo.replay(testOutletID, testProductID)
	assert.Equal(t, state.StockFilled, filled, "replay de llenas debe coincidir con el estado")
	assert.Equal(t, state.StockEmpty, empty, "replay de vacíos debe coincidir con el estado")
	assert.GreaterOrEqual(t, state.StockEmpty, int64(0))
}
