package repository

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
)

// CapitalRepository define el puerto para los asientos de capital.
// Append-only: no hay Update ni Delete. SumBalance deriva el balance
// (sum(in) - sum(out)) recorriendo todos los asientos del outlet.
type CapitalRepository interface {
	Create(entry *entity.CapitalEntry) error
	SumBalance(outletID string) (decimal.Decimal, error)
	ListByOutlet(outletID string, limit, offset int) ([]*entity.CapitalEntry, error)
}
