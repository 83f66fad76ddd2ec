package capital

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Puntoventa-api/internal/domain/repository"
)

// TxRunner ejecuta la secuencia balance-check + insert de un asiento dentro de
// una transacción, con la fila del outlet bloqueada: dos retiros concurrentes
// no pueden pasar ambos el chequeo de balance.
type TxRunner interface {
	RunCapital(ctx context.Context, fn func(
		outletRepo repository.OutletRepository,
		capitalRepo repository.CapitalRepository,
	) error) error
}

// BalanceCache cachea el balance derivado por outlet. El balance nunca se
// almacena como estado mutable: se recalcula o se cachea-e-invalida.
type BalanceCache interface {
	Get(ctx context.Context, outletID string) (decimal.Decimal, bool, error)
	Set(ctx context.Context, outletID string, balance decimal.Decimal, ttl time.Duration) error
	Invalidate(ctx context.Context, outletID string) error
}
