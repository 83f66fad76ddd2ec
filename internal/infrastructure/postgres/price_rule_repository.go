package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
	"github.com/jhoicas/Puntoventa-api/internal/domain/repository"
)

var _ repository.PriceRuleRepository = (*PriceRuleRepo)(nil)

// PriceRuleRepo implementación de PriceRuleRepository sobre PostgreSQL.
// Exactamente una regla por (outlet, producto); el Upsert descansa en el
// constraint único de la tabla.
type PriceRuleRepo struct {
	q Querier
}

func NewPriceRuleRepository(q Querier) *PriceRuleRepo {
	return &PriceRuleRepo{q: q}
}

// Upsert crea o reemplaza la regla de precio del par (outlet, producto).
func (r *PriceRuleRepo) Upsert(rule *entity.PriceRule) error {
	query := `
		INSERT INTO price_rules (id, outlet_id, product_id, base_price, cost_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (outlet_id, product_id) DO UPDATE
		SET base_price = EXCLUDED.base_price,
		    cost_price = EXCLUDED.cost_price,
		    updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		rule.ID, rule.OutletID, rule.ProductID, rule.BasePrice, rule.CostPrice,
		rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert price rule: %w", err)
	}
	return nil
}

// Get obtiene la regla activa del par (outlet, producto).
func (r *PriceRuleRepo) Get(outletID, productID string) (*entity.PriceRule, error) {
	var rl entity.PriceRule
	query := `SELECT id, outlet_id, product_id, base_price, cost_price, created_at, updated_at
		FROM price_rules WHERE outlet_id = $1 AND product_id = $2`
	err := r.q.QueryRow(context.Background(), query, outletID, productID).Scan(
		&rl.ID, &rl.OutletID, &rl.ProductID, &rl.BasePrice, &rl.CostPrice,
		&rl.CreatedAt, &rl.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price rule: %w", err)
	}
	return &rl, nil
}

// ListByOutlet lista todas las reglas de precio del outlet.
func (r *PriceRuleRepo) ListByOutlet(outletID string) ([]*entity.PriceRule, error) {
	query := `SELECT id, outlet_id, product_id, base_price, cost_price, created_at, updated_at
		FROM price_rules WHERE outlet_id = $1 ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, outletID)
	if err != nil {
		return nil, fmt.Errorf("list price rules: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceRule
	for rows.Next() {
		var rl entity.PriceRule
		if err := rows.Scan(&rl.ID, &rl.OutletID, &rl.ProductID, &rl.BasePrice, &rl.CostPrice, &rl.CreatedAt, &rl.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan price rule: %w", err)
		}
		list = append(list, &rl)
	}
	return list, rows.Err()
}
