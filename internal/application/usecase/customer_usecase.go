package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Puntoventa-api/internal/application/dto"
	"github.com/jhoicas/Puntoventa-api/internal/domain"
	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
	"github.com/jhoicas/Puntoventa-api/internal/domain/repository"
)

// CustomerUseCase CRUD de clientes, tiers y excepciones de precio por tier.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
	tierRepo     repository.TierRepository
	productRepo  repository.ProductRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customerRepo repository.CustomerRepository, tierRepo repository.TierRepository, productRepo repository.ProductRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo, tierRepo: tierRepo, productRepo: productRepo}
}

// CreateCustomer crea un cliente, opcionalmente asignado a un tier del outlet.
func (uc *CustomerUseCase) CreateCustomer(outletID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.TierID != "" {
		if err := uc.checkTier(outletID, in.TierID); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		OutletID:  outletID,
		Name:      in.Name,
		Phone:     in.Phone,
		Address:   in.Address,
		TierID:    in.TierID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// ListCustomers lista clientes del outlet.
func (uc *CustomerUseCase) ListCustomers(outletID string, limit, offset int) ([]dto.CustomerResponse, error) {
	customers, err := uc.customerRepo.ListByOutlet(outletID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

// UpdateCustomer actualiza datos del cliente, incluida la asignación de tier.
func (uc *CustomerUseCase) UpdateCustomer(outletID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.OutletID != outletID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	if in.TierID != nil {
		if *in.TierID != "" {
			if err := uc.checkTier(outletID, *in.TierID); err != nil {
				return nil, err
			}
		}
		customer.TierID = *in.TierID
	}
	customer.UpdatedAt = time.Now()
	if err := uc.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// DeleteCustomer elimina un cliente del outlet. Las ventas históricas
// conservan su customer_id como referencia textual.
func (uc *CustomerUseCase) DeleteCustomer(outletID, id string) error {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil || customer.OutletID != outletID {
		return domain.ErrNotFound
	}
	return uc.customerRepo.Delete(id)
}

// CreateTier crea un tier con su descuento global (0..100).
func (uc *CustomerUseCase) CreateTier(outletID string, in dto.CreateTierRequest) (*dto.TierResponse, error) {
	if in.Name == "" || !validPercent(in.GlobalDiscountPercent) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	tier := &entity.CustomerTier{
		ID:                    uuid.New().String(),
		OutletID:              outletID,
		Name:                  in.Name,
		GlobalDiscountPercent: in.GlobalDiscountPercent,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := uc.tierRepo.Create(tier); err != nil {
		return nil, err
	}
	return toTierResponse(tier), nil
}

// ListTiers lista los tiers del outlet.
func (uc *CustomerUseCase) ListTiers(outletID string) ([]dto.TierResponse, error) {
	tiers, err := uc.tierRepo.ListByOutlet(outletID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TierResponse, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, *toTierResponse(t))
	}
	return out, nil
}

// UpdateTier actualiza nombre/descuento global del tier.
func (uc *CustomerUseCase) UpdateTier(outletID, id string, in dto.UpdateTierRequest) (*dto.TierResponse, error) {
	tier, err := uc.tierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tier == nil || tier.OutletID != outletID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		tier.Name = *in.Name
	}
	if in.GlobalDiscountPercent != nil {
		if !validPercent(*in.GlobalDiscountPercent) {
			return nil, domain.ErrInvalidInput
		}
		tier.GlobalDiscountPercent = *in.GlobalDiscountPercent
	}
	tier.UpdatedAt = time.Now()
	if err := uc.tierRepo.Update(tier); err != nil {
		return nil, err
	}
	return toTierResponse(tier), nil
}

// DeleteTier elimina un tier del outlet. Los clientes que lo tenían asignado
// vuelven a precio de lista en el siguiente checkout.
func (uc *CustomerUseCase) DeleteTier(outletID, id string) error {
	tier, err := uc.tierRepo.GetByID(id)
	if err != nil {
		return err
	}
	if tier == nil || tier.OutletID != outletID {
		return domain.ErrNotFound
	}
	return uc.tierRepo.Delete(id)
}

// SetTierOverride fija la excepción de precio (producto, tier). percentage se
// restringe a [0,100]; fixed debe ser >= 0 (el tope al precio base se aplica
// al resolver, no aquí).
func (uc *CustomerUseCase) SetTierOverride(outletID, tierID string, in dto.SetTierOverrideRequest) (*dto.TierOverrideResponse, error) {
	tier, err := uc.tierRepo.GetByID(tierID)
	if err != nil {
		return nil, err
	}
	if tier == nil || tier.OutletID != outletID {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || (!product.IsShared && product.OutletID != outletID) {
		return nil, domain.ErrNotFound
	}
	switch in.DiscountKind {
	case entity.DiscountKindPercentage:
		if !validPercent(in.DiscountValue) {
			return nil, domain.ErrInvalidInput
		}
	case entity.DiscountKindFixed:
		if in.DiscountValue.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	ov := &entity.TierPriceOverride{
		ID:            uuid.New().String(),
		OutletID:      outletID,
		ProductID:     in.ProductID,
		TierID:        tierID,
		DiscountKind:  in.DiscountKind,
		DiscountValue: in.DiscountValue,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.tierRepo.UpsertOverride(ov); err != nil {
		return nil, err
	}
	return &dto.TierOverrideResponse{
		ProductID:     ov.ProductID,
		TierID:        ov.TierID,
		DiscountKind:  ov.DiscountKind,
		DiscountValue: ov.DiscountValue,
	}, nil
}

// DeleteTierOverride elimina la excepción de precio (producto, tier).
func (uc *CustomerUseCase) DeleteTierOverride(outletID, tierID, productID string) error {
	tier, err := uc.tierRepo.GetByID(tierID)
	if err != nil {
		return err
	}
	if tier == nil || tier.OutletID != outletID {
		return domain.ErrNotFound
	}
	return uc.tierRepo.DeleteOverride(outletID, productID, tierID)
}

func (uc *CustomerUseCase) checkTier(outletID, tierID string) error {
	tier, err := uc.tierRepo.GetByID(tierID)
	if err != nil {
		return err
	}
	if tier == nil || tier.OutletID != outletID {
		return domain.ErrNotFound
	}
	return nil
}

func validPercent(v decimal.Decimal) bool {
	return !v.LessThan(decimal.Zero) && !v.GreaterThan(decimal.NewFromInt(100))
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		OutletID:  c.OutletID,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		TierID:    c.TierID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toTierResponse(t *entity.CustomerTier) *dto.TierResponse {
	return &dto.TierResponse{
		ID:                    t.ID,
		OutletID:              t.OutletID,
		Name:                  t.Name,
		GlobalDiscountPercent: t.GlobalDiscountPercent,
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}
}
