package checkout_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Puntoventa-api/internal/application/checkout"
	"github.com/jhoicas/Puntoventa-api/internal/domain"
	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
	"github.com/jhoicas/Puntoventa-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El fakeTxRunner toma snapshot del estado mutable antes del
// callback y lo restaura si falla: emula el rollback de la transacción real.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testOutletID   = "outlet-1"
	testCustomerID = "cust-1"
	testTierID     = "tier-gold"
)

type key struct{ outletID, productID string }

type memStore struct {
	products  map[string]entity.Product
	rules     map[key]entity.PriceRule
	customers map[string]entity.Customer
	tiers     map[string]entity.CustomerTier
	overrides map[string]entity.TierPriceOverride // por productID (un solo tier en tests)
	states    map[key]entity.InventoryState
	events    []entity.InventoryEvent
	sales     map[string]entity.Sale
	lines     map[string][]entity.SaleLine
}

func newMemStore() *memStore {
	return &memStore{
		products:  map[string]entity.Product{},
		rules:     map[key]entity.PriceRule{},
		customers: map[string]entity.Customer{},
		tiers:     map[string]entity.CustomerTier{},
		overrides: map[string]entity.TierPriceOverride{},
		states:    map[key]entity.InventoryState{},
		sales:     map[string]entity.Sale{},
		lines:     map[string][]entity.SaleLine{},
	}
}

func (s *memStore) seedProduct(id, category string, basePrice, costPrice, filled int64) {
	now := time.Now()
	s.products[id] = entity.Product{
		ID: id, OutletID: testOutletID, Name: "producto " + id,
		Category: category, CreatedAt: now, UpdatedAt: now,
	}
	s.rules[key{testOutletID, id}] = entity.PriceRule{
		ID: "rule-" + id, OutletID: testOutletID, ProductID: id,
		BasePrice: decimal.NewFromInt(basePrice),
		CostPrice: decimal.NewFromInt(costPrice),
	}
	s.states[key{testOutletID, id}] = entity.InventoryState{
		OutletID: testOutletID, ProductID: id, StockFilled: filled,
	}
}

func (s *memStore) seedCustomerWithTier(globalPercent int64) {
	s.tiers[testTierID] = entity.CustomerTier{
		ID: testTierID, OutletID: testOutletID, Name: "gold",
		GlobalDiscountPercent: decimal.NewFromInt(globalPercent),
	}
	s.customers[testCustomerID] = entity.Customer{
		ID: testCustomerID, OutletID: testOutletID, Name: "Cliente Gold", TierID: testTierID,
	}
}

func (s *memStore) seedOverride(productID, kind string, value int64) {
	s.overrides[productID] = entity.TierPriceOverride{
		ID: "ov-" + productID, OutletID: testOutletID, ProductID: productID,
		TierID: testTierID, DiscountKind: kind, DiscountValue: decimal.NewFromInt(value),
	}
}

func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for k, v := range s.states {
		cp.states[k] = v
	}
	cp.events = append([]entity.InventoryEvent(nil), s.events...)
	for k, v := range s.sales {
		cp.sales[k] = v
	}
	for k, v := range s.lines {
		cp.lines[k] = append([]entity.SaleLine(nil), v...)
	}
	return cp
}

func (s *memStore) restore(snap *memStore) {
	s.states = snap.states
	s.events = snap.events
	s.sales = snap.sales
	s.lines = snap.lines
}

// ── repos sobre memStore ─────────────────────────────────────────────────────

type storeProductRepo struct{ s *memStore }

func (r storeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = *p; return nil }
func (r storeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}
func (r storeProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = *p; return nil }
func (r storeProductRepo) ListByOutlet(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r storeProductRepo) Delete(string) error { return nil }

type storePriceRepo struct{ s *memStore }

func (r storePriceRepo) Upsert(rule *entity.PriceRule) error {
	r.s.rules[key{rule.OutletID, rule.ProductID}] = *rule
	return nil
}
func (r storePriceRepo) Get(outletID, productID string) (*entity.PriceRule, error) {
	if rule, ok := r.s.rules[key{outletID, productID}]; ok {
		cp := rule
		return &cp, nil
	}
	return nil, nil
}
func (r storePriceRepo) ListByOutlet(string) ([]*entity.PriceRule, error) { return nil, nil }

type storeCustomerRepo struct{ s *memStore }

func (r storeCustomerRepo) Create(c *entity.Customer) error { r.s.customers[c.ID] = *c; return nil }
func (r storeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	if c, ok := r.s.customers[id]; ok {
		cp := c
		return &cp, nil
	}
	return nil, nil
}
func (r storeCustomerRepo) ListByOutlet(string, int, int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r storeCustomerRepo) Update(c *entity.Customer) error { r.s.customers[c.ID] = *c; return nil }
func (r storeCustomerRepo) Delete(string) error             { return nil }

type storeTierRepo struct{ s *memStore }

func (r storeTierRepo) Create(t *entity.CustomerTier) error { r.s.tiers[t.ID] = *t; return nil }
func (r storeTierRepo) GetByID(id string) (*entity.CustomerTier, error) {
	if t, ok := r.s.tiers[id]; ok {
		cp := t
		return &cp, nil
	}
	return nil, nil
}
func (r storeTierRepo) ListByOutlet(string) ([]*entity.CustomerTier, error) { return nil, nil }
func (r storeTierRepo) Update(t *entity.CustomerTier) error                 { r.s.tiers[t.ID] = *t; return nil }
func (r storeTierRepo) Delete(string) error                                 { return nil }
func (r storeTierRepo) UpsertOverride(ov *entity.TierPriceOverride) error {
	r.s.overrides[ov.ProductID] = *ov
	return nil
}
func (r storeTierRepo) GetOverride(outletID, productID, tierID string) (*entity.TierPriceOverride, error) {
	if ov, ok := r.s.overrides[productID]; ok && ov.TierID == tierID {
		cp := ov
		return &cp, nil
	}
	return nil, nil
}
func (r storeTierRepo) ListOverridesByTier(string, string) ([]*entity.TierPriceOverride, error) {
	return nil, nil
}
func (r storeTierRepo) DeleteOverride(outletID, productID, tierID string) error {
	delete(r.s.overrides, productID)
	return nil
}

type storeStockRepo struct{ s *memStore }

func (r storeStockRepo) Get(outletID, productID string) (*entity.InventoryState, error) {
	if st, ok := r.s.states[key{outletID, productID}]; ok {
		cp := st
		return &cp, nil
	}
	return &entity.InventoryState{OutletID: outletID, ProductID: productID}, nil
}
func (r storeStockRepo) GetForUpdate(outletID, productID string) (*entity.InventoryState, error) {
	return r.Get(outletID, productID)
}
func (r storeStockRepo) Upsert(st *entity.InventoryState) error {
	r.s.states[key{st.OutletID, st.ProductID}] = *st
	return nil
}

type storeEventRepo struct{ s *memStore }

func (r storeEventRepo) Create(e *entity.InventoryEvent) error {
	r.s.events = append(r.s.events, *e)
	return nil
}
func (r storeEventRepo) ListByProduct(string, string, int, int) ([]*entity.InventoryEvent, error) {
	return nil, nil
}

type storeSaleRepo struct{ s *memStore }

func (r storeSaleRepo) Create(sale *entity.Sale) error { r.s.sales[sale.ID] = *sale; return nil }
func (r storeSaleRepo) CreateLine(line *entity.SaleLine) error {
	r.s.lines[line.SaleID] = append(r.s.lines[line.SaleID], *line)
	return nil
}
func (r storeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	if sale, ok := r.s.sales[id]; ok {
		cp := sale
		return &cp, nil
	}
	return nil, nil
}
func (r storeSaleRepo) GetByIDForUpdate(id string) (*entity.Sale, error) { return r.GetByID(id) }
func (r storeSaleRepo) GetLinesBySaleID(saleID string) ([]*entity.SaleLine, error) {
	var out []*entity.SaleLine
	for _, l := range r.s.lines[saleID] {
		cp := l
		out = append(out, &cp)
	}
	return out, nil
}
func (r storeSaleRepo) ListByOutlet(outletID string, from, to time.Time, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, sale := range r.s.sales {
		if sale.OutletID == outletID {
			cp := sale
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r storeSaleRepo) UpdateStatus(id, status string, voidedAt time.Time) error {
	sale, ok := r.s.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	sale.Status = status
	sale.VoidedAt = &voidedAt
	r.s.sales[id] = sale
	return nil
}

// fakeTxRunner con rollback por snapshot. atTxStart, si está definido, corre
// justo antes del callback: simula una escritura concurrente confirmada que la
// transacción ya debería ver.
type fakeTxRunner struct {
	s         *memStore
	atTxStart func()
}

func (r fakeTxRunner) RunCheckout(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	tierRepo repository.TierRepository,
	productRepo repository.ProductRepository,
	priceRepo repository.PriceRuleRepository,
	stockRepo repository.InventoryStateRepository,
	eventRepo repository.InventoryEventRepository,
	saleRepo repository.SaleRepository,
) error) error {
	if r.atTxStart != nil {
		r.atTxStart()
	}
	snap := r.s.snapshot()
	err := fn(
		storeCustomerRepo{r.s}, storeTierRepo{r.s}, storeProductRepo{r.s},
		storePriceRepo{r.s}, storeStockRepo{r.s}, storeEventRepo{r.s}, storeSaleRepo{r.s},
	)
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

// fakePublisher captura las ventas publicadas después del commit.
type fakePublisher struct {
	published []string
}

func (p *fakePublisher) SaleCommitted(_ context.Context, sale *entity.Sale, _ []*entity.SaleLine) {
	p.published = append(p.published, sale.ID)
}

func newTestUseCase(s *memStore) (*checkout.UseCase, *fakePublisher) {
	return newTestUseCaseAtTxStart(s, nil)
}

func newTestUseCaseAtTxStart(s *memStore, atTxStart func()) (*checkout.UseCase, *fakePublisher) {
	pub := &fakePublisher{}
	uc := checkout.NewUseCase(
		fakeTxRunner{s: s, atTxStart: atTxStart},
		storeCustomerRepo{s}, storeTierRepo{s}, storeProductRepo{s},
		storePriceRepo{s}, storeSaleRepo{s}, pub,
	)
	return uc, pub
}
