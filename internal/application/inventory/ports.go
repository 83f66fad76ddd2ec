package inventory

import (
	"context"

	"github.com/jhoicas/Puntoventa-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ledger de
// inventario: la secuencia leer-verificar-escribir corre bajo un mismo
// bloqueo de fila.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.InventoryStateRepository,
		eventRepo repository.InventoryEventRepository,
	) error) error
}
