package repository

import "github.com/jhoicas/Puntoventa-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	ListByOutlet(outletID string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}

// PriceRuleRepository define el puerto de persistencia para PriceRule.
// Exactamente una regla activa por par (outlet, producto): Upsert reemplaza.
type PriceRuleRepository interface {
	Upsert(rule *entity.PriceRule) error
	Get(outletID, productID string) (*entity.PriceRule, error)
	ListByOutlet(outletID string) ([]*entity.PriceRule, error)
}
