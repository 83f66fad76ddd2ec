package repository

import (
	"time"

	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
// Una venta paid es inmutable en sus montos; UpdateStatus solo cambia el
// estado (transición reservada paid -> void).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateLine(line *entity.SaleLine) error
	GetByID(id string) (*entity.Sale, error)
	GetByIDForUpdate(id string) (*entity.Sale, error)
	GetLinesBySaleID(saleID string) ([]*entity.SaleLine, error)
	ListByOutlet(outletID string, from, to time.Time, limit, offset int) ([]*entity.Sale, error)
	UpdateStatus(id, status string, voidedAt time.Time) error
}
