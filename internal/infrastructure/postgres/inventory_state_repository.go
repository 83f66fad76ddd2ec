package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
	"github.com/jhoicas/Puntoventa-api/internal/domain/repository"
)

var _ repository.InventoryStateRepository = (*InventoryStateRepo)(nil)

// InventoryStateRepo implementación de InventoryStateRepository sobre
// PostgreSQL. Una fila por (outlet, producto); si no existe, el stock es cero.
type InventoryStateRepo struct {
	q Querier
}

func NewInventoryStateRepository(q Querier) *InventoryStateRepo {
	return &InventoryStateRepo{q: q}
}

// Get obtiene el stock actual. Si no hay fila devuelve un estado en cero,
// nunca error: producto sin movimientos equivale a stock cero.
func (r *InventoryStateRepo) Get(outletID, productID string) (*entity.InventoryState, error) {
	s, err := r.get(outletID, productID, false)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return &entity.InventoryState{OutletID: outletID, ProductID: productID}, nil
	}
	return s, nil
}

// GetForUpdate igual que Get pero bloquea la fila (SELECT ... FOR UPDATE).
// Si la fila todavía no existe la crea en cero y la vuelve a leer con lock:
// un estado sintético sin fila no bloquea nada, y dos primeros movimientos
// concurrentes del mismo producto partirían ambos de cero.
func (r *InventoryStateRepo) GetForUpdate(outletID, productID string) (*entity.InventoryState, error) {
	s, err := r.get(outletID, productID, true)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}
	insert := `
		INSERT INTO inventory_states (outlet_id, product_id, stock_filled, stock_empty, updated_at)
		VALUES ($1, $2, 0, 0, NOW())
		ON CONFLICT (outlet_id, product_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, outletID, productID); err != nil {
		return nil, fmt.Errorf("init inventory state: %w", err)
	}
	s, err = r.get(outletID, productID, true)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("get inventory state: fila no visible tras insertarla")
	}
	return s, nil
}

func (r *InventoryStateRepo) get(outletID, productID string, forUpdate bool) (*entity.InventoryState, error) {
	query := `SELECT outlet_id, product_id, stock_filled, stock_empty, updated_at
		FROM inventory_states WHERE outlet_id = $1 AND product_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var s entity.InventoryState
	err := r.q.QueryRow(context.Background(), query, outletID, productID).Scan(
		&s.OutletID, &s.ProductID, &s.StockFilled, &s.StockEmpty, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory state: %w", err)
	}
	return &s, nil
}

// Upsert escribe el estado resultante del ledger.
func (r *InventoryStateRepo) Upsert(state *entity.InventoryState) error {
	query := `
		INSERT INTO inventory_states (outlet_id, product_id, stock_filled, stock_empty, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (outlet_id, product_id) DO UPDATE
		SET stock_filled = EXCLUDED.stock_filled,
		    stock_empty = EXCLUDED.stock_empty,
		    updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		state.OutletID, state.ProductID, state.StockFilled, state.StockEmpty, state.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert inventory state: %w", err)
	}
	return nil
}
