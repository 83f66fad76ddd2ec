package repository

import "github.com/jhoicas/Puntoventa-api/internal/domain/entity"

// OutletRepository define el puerto de persistencia para Outlet.
// GetForUpdate bloquea la fila del outlet: el ledger de capital lo usa para
// serializar la secuencia balance-check + insert de asientos out.
type OutletRepository interface {
	Create(outlet *entity.Outlet) error
	GetByID(id string) (*entity.Outlet, error)
	GetForUpdate(id string) (*entity.Outlet, error)
	Update(outlet *entity.Outlet) error
	List(limit, offset int) ([]*entity.Outlet, error)
}
