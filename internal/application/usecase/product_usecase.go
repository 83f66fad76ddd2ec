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

// ProductUseCase CRUD de productos y reglas de precio por outlet.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	priceRepo   repository.PriceRuleRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, priceRepo repository.PriceRuleRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, priceRepo: priceRepo}
}

func validCategory(c string) bool {
	switch c {
	case entity.CategoryFuelCanister, entity.CategoryReturnableContainer, entity.CategoryGeneral:
		return true
	}
	return false
}

// Create crea un producto del outlet (o compartido si is_shared).
func (uc *ProductUseCase) Create(outletID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || !validCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Category:  in.Category,
		ImageURL:  in.ImageURL,
		IsShared:  in.IsShared,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !in.IsShared {
		product.OutletID = outletID
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return uc.toResponse(outletID, product)
}

// GetByID obtiene un producto visible para el outlet, con su regla de precio.
func (uc *ProductUseCase) GetByID(outletID, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if !product.IsShared && product.OutletID != outletID {
		return nil, domain.ErrForbidden
	}
	return uc.toResponse(outletID, product)
}

// List lista productos visibles para el outlet (propios + compartidos).
func (uc *ProductUseCase) List(outletID string, limit, offset int) (*dto.ProductListResponse, error) {
	products, err := uc.productRepo.ListByOutlet(outletID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(products)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, p := range products {
		resp, err := uc.toResponse(outletID, p)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, *resp)
	}
	return out, nil
}

// Update actualiza nombre/categoría/imagen. La identidad del producto es
// inmutable una vez creada.
func (uc *ProductUseCase) Update(outletID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if !product.IsShared && product.OutletID != outletID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		if !validCategory(*in.Category) {
			return nil, domain.ErrInvalidInput
		}
		product.Category = *in.Category
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return uc.toResponse(outletID, product)
}

// SetPriceRule fija (o reemplaza) la regla de precio del producto para el
// outlet. El costo no puede superar el precio de venta; se valida aquí, al
// momento del input.
func (uc *ProductUseCase) SetPriceRule(outletID, productID string, in dto.SetPriceRuleRequest) (*dto.ProductResponse, error) {
	if !in.BasePrice.GreaterThan(decimal.Zero) || in.CostPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.CostPrice.GreaterThan(in.BasePrice) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.IsShared && product.OutletID != outletID {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	rule := &entity.PriceRule{
		ID:        uuid.New().String(),
		OutletID:  outletID,
		ProductID: productID,
		BasePrice: in.BasePrice,
		CostPrice: in.CostPrice,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.priceRepo.Upsert(rule); err != nil {
		return nil, err
	}
	return uc.toResponse(outletID, product)
}

// Delete elimina un producto del outlet. Los compartidos no se borran desde
// un outlet: solo su dueño los administra.
func (uc *ProductUseCase) Delete(outletID, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.OutletID != outletID {
		return domain.ErrForbidden
	}
	return uc.productRepo.Delete(id)
}

func (uc *ProductUseCase) toResponse(outletID string, p *entity.Product) (*dto.ProductResponse, error) {
	resp := &dto.ProductResponse{
		ID:        p.ID,
		OutletID:  p.OutletID,
		Name:      p.Name,
		Category:  p.Category,
		ImageURL:  p.ImageURL,
		IsShared:  p.IsShared,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	rule, err := uc.priceRepo.Get(outletID, p.ID)
	if err != nil {
		return nil, err
	}
	if rule != nil {
		resp.BasePrice = &rule.BasePrice
		resp.CostPrice = &rule.CostPrice
	}
	return resp, nil
}
