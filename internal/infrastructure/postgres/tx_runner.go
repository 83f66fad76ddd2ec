package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Puntoventa-api/internal/application/capital"
	"github.com/jhoicas/Puntoventa-api/internal/application/checkout"
	"github.com/jhoicas/Puntoventa-api/internal/application/inventory"
	"github.com/jhoicas/Puntoventa-api/internal/domain"
	"github.com/jhoicas/Puntoventa-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner, checkout.TxRunner y capital.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ checkout.TxRunner = (*TxRunner)(nil)
var _ capital.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos de inventario atados a la
// tx y hace Commit o Rollback (restock y correcciones).
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.InventoryStateRepository,
	eventRepo repository.InventoryEventRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stockRepo := NewInventoryStateRepository(tx)
	eventRepo := NewInventoryEventRepository(tx)

	if err := fn(stockRepo, eventRepo); err != nil {
		return mapTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapTxError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// RunCheckout inicia una transacción con los repos que necesita el motor de
// checkout (resolver tier, congelar precios, stock, venta).
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	tierRepo repository.TierRepository,
	productRepo repository.ProductRepository,
	priceRepo repository.PriceRuleRepository,
	stockRepo repository.InventoryStateRepository,
	eventRepo repository.InventoryEventRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	customerRepo := NewCustomerRepository(tx)
	tierRepo := NewTierRepository(tx)
	productRepo := NewProductRepository(tx)
	priceRepo := NewPriceRuleRepository(tx)
	stockRepo := NewInventoryStateRepository(tx)
	eventRepo := NewInventoryEventRepository(tx)
	saleRepo := NewSaleRepository(tx)

	if err := fn(customerRepo, tierRepo, productRepo, priceRepo, stockRepo, eventRepo, saleRepo); err != nil {
		return mapTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapTxError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// RunCapital inicia una transacción con los repos del ledger de capital
// (bloqueo de la fila del outlet + asientos).
func (r *TxRunner) RunCapital(ctx context.Context, fn func(
	outletRepo repository.OutletRepository,
	capitalRepo repository.CapitalRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	outletRepo := NewOutletRepository(tx)
	capitalRepo := NewCapitalRepository(tx)

	if err := fn(outletRepo, capitalRepo); err != nil {
		return mapTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapTxError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// mapTxError traduce fallos de serialización/deadlock a ErrConflict
// (reintentable por el caller); el resto pasa sin tocar.
func mapTxError(err error) error {
	if isSerializationFailure(err) {
		return domain.ErrConflict
	}
	return err
}
