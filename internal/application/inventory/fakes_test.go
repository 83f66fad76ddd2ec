package inventory_test

import (
	"context"
	"time"

	"github.com/jhoicas/Puntoventa-api/internal/domain"
	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
	"github.com/jhoicas/Puntoventa-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los tests del ledger
// ──────────────────────────────────────────────────────────────────────────────

type stockKey struct{ outletID, productID string }

type memStockRepo struct {
	states map[stockKey]entity.InventoryState
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{states: map[stockKey]entity.InventoryState{}}
}

func (r *memStockRepo) seed(outletID, productID string, filled, empty int64) {
	r.states[stockKey{outletID, productID}] = entity.InventoryState{
		OutletID: outletID, ProductID: productID,
		StockFilled: filled, StockEmpty: empty,
	}
}

func (r *memStockRepo) Get(outletID, productID string) (*entity.InventoryState, error) {
	if s, ok := r.states[stockKey{outletID, productID}]; ok {
		cp := s
		return &cp, nil
	}
	return &entity.InventoryState{OutletID: outletID, ProductID: productID}, nil
}

func (r *memStockRepo) GetForUpdate(outletID, productID string) (*entity.InventoryState, error) {
	return r.Get(outletID, productID)
}

func (r *memStockRepo) Upsert(state *entity.InventoryState) error {
	r.states[stockKey{state.OutletID, state.ProductID}] = *state
	return nil
}

type memEventRepo struct {
	events []entity.InventoryEvent
}

func (r *memEventRepo) Create(event *entity.InventoryEvent) error {
	r.events = append(r.events, *event)
	return nil
}

func (r *memEventRepo) ListByProduct(outletID, productID string, limit, offset int) ([]*entity.InventoryEvent, error) {
	var out []*entity.InventoryEvent
	for i := len(r.events) - 1; i >= 0; i-- {
		e := r.events[i]
		if e.OutletID == outletID && e.ProductID == productID {
			cp := e
			out = append(out, &cp)
		}
	}
	if offset < len(out) {
		out = out[offset:]
	} else {
		out = nil
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// replay reconstruye el estado sumando todos los eventos de un producto.
func (r *memEventRepo) replay(outletID, productID string) (filled, empty int64) {
	for _, e := range r.events {
		if e.OutletID == outletID && e.ProductID == productID {
			filled += e.DeltaFilled
			empty += e.DeltaEmpty
		}
	}
	return filled, empty
}

type memProductRepo struct {
	products map[string]entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: map[string]entity.Product{}}
}

func (r *memProductRepo) seed(p entity.Product) { r.products[p.ID] = p }

func (r *memProductRepo) Create(product *entity.Product) error {
	r.products[product.ID] = *product
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (r *memProductRepo) Update(product *entity.Product) error {
	r.products[product.ID] = *product
	return nil
}

func (r *memProductRepo) ListByOutlet(outletID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.OutletID == outletID || p.IsShared {
			cp := p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memProductRepo) Delete(id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// fakeTxRunner ejecuta el callback directamente sobre los fakes (sin tx real).
type fakeTxRunner struct {
	stockRepo *memStockRepo
	eventRepo *memEventRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.InventoryStateRepository,
	eventRepo repository.InventoryEventRepository,
) error) error {
	return fn(r.stockRepo, r.eventRepo)
}

func testProduct(id, outletID, category string) entity.Product {
	now := time.Now()
	return entity.Product{
		ID: id, OutletID: outletID, Name: "producto " + id,
		Category: category, CreatedAt: now, UpdatedAt: now,
	}
}
