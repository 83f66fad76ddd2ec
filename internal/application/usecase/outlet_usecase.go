package usecase

import (
	"github.com/jhoicas/Puntoventa-api/internal/application/dto"
	"github.com/jhoicas/Puntoventa-api/internal/domain"
	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
	"github.com/jhoicas/Puntoventa-api/internal/domain/repository"
)

// OutletUseCase consultas y edición del outlet (la creación ocurre en el
// registro de auth).
type OutletUseCase struct {
	outletRepo repository.OutletRepository
}

// NewOutletUseCase construye el caso de uso.
func NewOutletUseCase(outletRepo repository.OutletRepository) *OutletUseCase {
	return &OutletUseCase{outletRepo: outletRepo}
}

// GetByID obtiene un outlet.
func (uc *OutletUseCase) GetByID(id string) (*dto.OutletResponse, error) {
	outlet, err := uc.outletRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if outlet == nil {
		return nil, domain.ErrNotFound
	}
	return toOutletResponse(outlet), nil
}

func toOutletResponse(o *entity.Outlet) *dto.OutletResponse {
	return &dto.OutletResponse{
		ID:        o.ID,
		Name:      o.Name,
		Address:   o.Address,
		Phone:     o.Phone,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
