package cache

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Puntoventa-api/internal/application/capital"
)

var _ capital.BalanceCache = (*NoopBalanceCache)(nil)

// NoopBalanceCache implementación nula para cuando redis no está configurado:
// todo es cache miss y las escrituras no hacen nada.
type NoopBalanceCache struct{}

func NewNoopBalanceCache() *NoopBalanceCache { return &NoopBalanceCache{} }

func (NoopBalanceCache) Get(ctx context.Context, outletID string) (decimal.Decimal, bool, error) {
	return decimal.Zero, false, nil
}

func (NoopBalanceCache) Set(ctx context.Context, outletID string, balance decimal.Decimal, ttl time.Duration) error {
	return nil
}

func (NoopBalanceCache) Invalidate(ctx context.Context, outletID string) error {
	return nil
}
