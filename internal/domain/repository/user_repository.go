package repository

import "github.com/jhoicas/Puntoventa-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	GetByEmailAndOutlet(email, outletID string) (*entity.User, error)
}
