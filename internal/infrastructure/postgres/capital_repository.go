package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
	"github.com/jhoicas/Puntoventa-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.CapitalRepository = (*CapitalRepo)(nil)

// CapitalRepo implementación de CapitalRepository sobre PostgreSQL.
// El ledger es append-only: solo INSERT y SELECT, sin UPDATE ni DELETE.
type CapitalRepo struct {
	q Querier
}

func NewCapitalRepository(q Querier) *CapitalRepo {
	return &CapitalRepo{q: q}
}

// Create inserta un asiento de capital.
func (r *CapitalRepo) Create(entry *entity.CapitalEntry) error {
	query := `
		INSERT INTO capital_entries (id, outlet_id, kind, amount, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.OutletID, entry.Kind, entry.Amount, entry.Note, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert capital entry: %w", err)
	}
	return nil
}

// SumBalance deriva el balance del outlet: sum(in) - sum(out).
func (r *CapitalRepo) SumBalance(outletID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN kind = 'in' THEN amount ELSE -amount END), 0)
		FROM capital_entries WHERE outlet_id = $1`
	var balance decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, outletID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("sum capital balance: %w", err)
	}
	return balance, nil
}

// ListByOutlet lista los asientos del outlet, más recientes primero.
func (r *CapitalRepo) ListByOutlet(outletID string, limit, offset int) ([]*entity.CapitalEntry, error) {
	query := `SELECT id, outlet_id, kind, amount, note, created_at
		FROM capital_entries
		WHERE outlet_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, outletID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list capital entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.CapitalEntry
	for rows.Next() {
		var e entity.CapitalEntry
		if err := rows.Scan(&e.ID, &e.OutletID, &e.Kind, &e.Amount, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan capital entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
