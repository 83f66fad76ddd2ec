package repository

import "github.com/jhoicas/Puntoventa-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	ListByOutlet(outletID string, limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}

// TierRepository define el puerto para CustomerTier y sus overrides de precio.
type TierRepository interface {
	Create(tier *entity.CustomerTier) error
	GetByID(id string) (*entity.CustomerTier, error)
	ListByOutlet(outletID string) ([]*entity.CustomerTier, error)
	Update(tier *entity.CustomerTier) error
	Delete(id string) error

	// Overrides: máximo uno por (outlet, producto, tier); Upsert reemplaza.
	UpsertOverride(ov *entity.TierPriceOverride) error
	GetOverride(outletID, productID, tierID string) (*entity.TierPriceOverride, error)
	ListOverridesByTier(outletID, tierID string) ([]*entity.TierPriceOverride, error)
	DeleteOverride(outletID, productID, tierID string) error
}
