package repository

import "github.com/jhoicas/Puntoventa-api/internal/domain/entity"

// InventoryStateRepository define el puerto para el agregado de stock dual.
// GetForUpdate debe bloquear la fila (SELECT ... FOR UPDATE) para que la
// secuencia leer-verificar-escribir del ledger sea segura ante concurrencia.
type InventoryStateRepository interface {
	Get(outletID, productID string) (*entity.InventoryState, error)
	GetForUpdate(outletID, productID string) (*entity.InventoryState, error)
	Upsert(state *entity.InventoryState) error
}

// InventoryEventRepository define el puerto para el log append-only de
// inventario. Los eventos nunca se editan ni se borran.
type InventoryEventRepository interface {
	Create(event *entity.InventoryEvent) error
	ListByProduct(outletID, productID string, limit, offset int) ([]*entity.InventoryEvent, error)
}
