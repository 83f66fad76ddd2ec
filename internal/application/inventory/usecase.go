package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Puntoventa-api/internal/application/dto"
	"github.com/jhoicas/Puntoventa-api/internal/domain"
	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
	"github.com/jhoicas/Puntoventa-api/internal/domain/repository"
)

// UseCase operaciones de inventario fuera de la venta: recepción de mercancía
// (restock), ajustes manuales (correction) y consultas de stock y auditoría.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	stockRepo   repository.InventoryStateRepository
	eventRepo   repository.InventoryEventRepository
}

// NewUseCase construye el caso de uso. stockRepo y eventRepo se usan solo para
// lecturas fuera de transacción; las escrituras pasan por txRunner.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	stockRepo repository.InventoryStateRepository,
	eventRepo repository.InventoryEventRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, productRepo: productRepo, stockRepo: stockRepo, eventRepo: eventRepo}
}

// loadVisibleProduct valida que el producto exista y sea visible para el
// outlet (propio o de catálogo compartido).
func (uc *UseCase) loadVisibleProduct(outletID, productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.IsShared && product.OutletID != outletID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

// Restock registra una recepción de mercancía: +quantity llenas y, en
// retornables, canje de vacíos por hasta quantity. El bloqueo de fila solo
// compite con mutaciones del mismo (outlet, producto).
func (uc *UseCase) Restock(ctx context.Context, outletID string, in dto.RestockRequest) (*dto.InventoryStateResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.loadVisibleProduct(outletID, in.ProductID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var resp *dto.InventoryStateResponse
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.InventoryStateRepository,
		eventRepo repository.InventoryEventRepository,
	) error {
		state, warning, err := ApplyDelta(stockRepo, eventRepo, RestockDelta(product, outletID, in.Quantity, in.Note), now)
		if err != nil {
			return err
		}
		resp = &dto.InventoryStateResponse{
			ProductID:   state.ProductID,
			StockFilled: state.StockFilled,
			StockEmpty:  state.StockEmpty,
			Warning:     warning,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Correct aplica un ajuste manual con deltas firmados (reason correction).
// Mismos invariantes del ledger: llenas nunca negativas (fallo duro), vacíos
// se recortan a cero con warning. Productos general no llevan vacíos.
func (uc *UseCase) Correct(ctx context.Context, outletID string, in dto.CorrectionRequest) (*dto.InventoryStateResponse, error) {
	if in.ProductID == "" || (in.DeltaFilled == 0 && in.DeltaEmpty == 0) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.loadVisibleProduct(outletID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsReturnable() && in.DeltaEmpty != 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var resp *dto.InventoryStateResponse
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.InventoryStateRepository,
		eventRepo repository.InventoryEventRepository,
	) error {
		state, warning, err := ApplyDelta(stockRepo, eventRepo, Delta{
			OutletID:    outletID,
			ProductID:   in.ProductID,
			ProductName: product.Name,
			DeltaFilled: in.DeltaFilled,
			DeltaEmpty:  in.DeltaEmpty,
			Reason:      entity.ReasonCorrection,
			Note:        in.Note,
		}, now)
		if err != nil {
			return err
		}
		resp = &dto.InventoryStateResponse{
			ProductID:   state.ProductID,
			StockFilled: state.StockFilled,
			StockEmpty:  state.StockEmpty,
			Warning:     warning,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetState consulta el stock dual actual de un producto.
func (uc *UseCase) GetState(ctx context.Context, outletID, productID string) (*dto.InventoryStateResponse, error) {
	if _, err := uc.loadVisibleProduct(outletID, productID); err != nil {
		return nil, err
	}
	state, err := uc.stockRepo.Get(outletID, productID)
	if err != nil {
		return nil, err
	}
	return &dto.InventoryStateResponse{
		ProductID:   productID,
		StockFilled: state.StockFilled,
		StockEmpty:  state.StockEmpty,
	}, nil
}

// ListEvents devuelve el log de auditoría de un producto, más reciente primero.
func (uc *UseCase) ListEvents(ctx context.Context, outletID, productID string, limit, offset int) ([]dto.InventoryEventResponse, error) {
	if _, err := uc.loadVisibleProduct(outletID, productID); err != nil {
		return nil, err
	}
	events, err := uc.eventRepo.ListByProduct(outletID, productID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, dto.InventoryEventResponse{
			ID:          e.ID,
			ProductID:   e.ProductID,
			DeltaFilled: e.DeltaFilled,
			DeltaEmpty:  e.DeltaEmpty,
			Reason:      e.Reason,
			SaleID:      e.SaleID,
			Note:        e.Note,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out, nil
}
