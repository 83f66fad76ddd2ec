package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Puntoventa-api/internal/application/dto"
	"github.com/jhoicas/Puntoventa-api/internal/application/inventory"
	"github.com/jhoicas/Puntoventa-api/internal/domain"
	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
)

func newTestUseCase() (*inventory.UseCase, *memStockRepo, *memEventRepo, *memProductRepo) {
	stockRepo := newMemStockRepo()
	eventRepo := &memEventRepo{}
	productRepo := newMemProductRepo()
	runner := &fakeTxRunner{stockRepo: stockRepo, eventRepo: eventRepo}
	uc := inventory.NewUseCase(runner, productRepo, stockRepo, eventRepo)
	return uc, stockRepo, eventRepo, productRepo
}

func TestRestock_RetornableConCanje(t *testing.T) {
	uc, stockRepo, _, productRepo := newTestUseCase()
	productRepo.seed(testProduct(testProductID, testOutletID, entity.CategoryFuelCanister))
	stockRepo.seed(testOutletID, testProductID, 2, 10)

	out, err := uc.Restock(context.Background(), testOutletID, dto.RestockRequest{
		ProductID: testProductID,
		Quantity:  6,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(8), out.StockFilled)
	assert.Equal(t, int64(4), out.StockEmpty)
	assert.Empty(t, out.Warning)
}

func TestRestock_SinVaciosSuficientes_WarningNoError(t *testing.T) {
	uc, stockRepo, _, productRepo := newTestUseCase()
	productRepo.seed(testProduct(testProductID, testOutletID, entity.CategoryFuelCanister))
	stockRepo.seed(testOutletID, testProductID, 0, 2)

	out, err := uc.Restock(context.Background(), testOutletID, dto.RestockRequest{
		ProductID: testProductID,
		Quantity:  10,
	})
	require.NoError(t, err, "el desborde de vacíos nunca es error")

	assert.Equal(t, inventory.WarningEmptyStockUnderflow, out.Warning)
	assert.Equal(t, int64(10), out.StockFilled)
	assert.Equal(t, int64(0), out.StockEmpty)
}

func TestRestock_ProductoDeOtroOutlet_Forbidden(t *testing.T) {
	uc, _, _, productRepo := newTestUseCase()
	productRepo.seed(testProduct(testProductID, "outlet-ajeno", entity.CategoryFuelCanister))

	_, err := uc.Restock(context.Background(), testOutletID, dto.RestockRequest{
		ProductID: testProductID,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRestock_ProductoCompartido_Visible(t *testing.T) {
	uc, _, _, productRepo := newTestUseCase()
	shared := testProduct("prod-shared", "", entity.CategoryGeneral)
	shared.IsShared = true
	productRepo.seed(shared)

	out, err := uc.Restock(context.Background(), testOutletID, dto.RestockRequest{
		ProductID: "prod-shared",
		Quantity:  3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.StockFilled)
}

func TestCorrect_DeltasFirmados(t *testing.T) {
	uc, stockRepo, eventRepo, productRepo := newTestUseCase()
	productRepo.seed(testProduct(testProductID, testOutletID, entity.CategoryFuelCanister))
	stockRepo.seed(testOutletID, testProductID, 5, 5)

	out, err := uc.Correct(context.Background(), testOutletID, dto.CorrectionRequest{
		ProductID:   testProductID,
		DeltaFilled: -2,
		DeltaEmpty:  1,
		Note:        "conteo físico",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), out.StockFilled)
	assert.Equal(t, int64(6), out.StockEmpty)
	require.Len(t, eventRepo.events, 1)
	assert.Equal(t, entity.ReasonCorrection, eventRepo.events[0].Reason)
	assert.Equal(t, "conteo físico", eventRepo.events[0].Note)
}

func TestCorrect_GeneralConDeltaEmpty_Rechazado(t *testing.T) {
	uc, _, _, productRepo := newTestUseCase()
	productRepo.seed(testProduct("prod-snack", testOutletID, entity.CategoryGeneral))

	_, err := uc.Correct(context.Background(), testOutletID, dto.CorrectionRequest{
		ProductID:  "prod-snack",
		DeltaEmpty: 2,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCorrect_AmbosDeltasCero_Rechazado(t *testing.T) {
	uc, _, _, productRepo := newTestUseCase()
	productRepo.seed(testProduct(testProductID, testOutletID, entity.CategoryFuelCanister))

	_, err := uc.Correct(context.Background(), testOutletID, dto.CorrectionRequest{
		ProductID: testProductID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCorrect_LlenasNegativas_FalloDuro(t *testing.T) {
	uc, stockRepo, eventRepo, productRepo := newTestUseCase()
	productRepo.seed(testProduct(testProductID, testOutletID, entity.CategoryFuelCanister))
	stockRepo.seed(testOutletID, testProductID, 1, 0)

	_, err := uc.Correct(context.Background(), testOutletID, dto.CorrectionRequest{
		ProductID:   testProductID,
		DeltaFilled: -3,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, eventRepo.events)
}

func TestGetState_ProductoSinMovimientos_Cero(t *testing.T) {
	uc, _, _, productRepo := newTestUseCase()
	productRepo.seed(testProduct(testProductID, testOutletID, entity.CategoryFuelCanister))

	out, err := uc.GetState(context.Background(), testOutletID, testProductID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.StockFilled)
	assert.Equal(t, int64(0), out.StockEmpty)
}

func TestListEvents_MasRecientePrimero(t *testing.T) {
	uc, _, _, productRepo := newTestUseCase()
	productRepo.seed(testProduct(testProductID, testOutletID, entity.CategoryFuelCanister))

	_, err := uc.Restock(context.Background(), testOutletID, dto.RestockRequest{ProductID: testProductID, Quantity: 5})
	require.NoError(t, err)
	_, err = uc.Correct(context.Background(), testOutletID, dto.CorrectionRequest{ProductID: testProductID, DeltaFilled: -1})
	require.NoError(t, err)

	events, err := uc.ListEvents(context.Background(), testOutletID, testProductID, 10, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, entity.ReasonCorrection, events[0].Reason)
	assert.Equal(t, entity.ReasonManualRestock, events[1].Reason)
}
