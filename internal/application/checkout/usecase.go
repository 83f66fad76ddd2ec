// Package checkout implementa el motor de cobro: resuelve descuentos por
// línea, valida stock y compromete la venta con sus efectos de inventario en
// una sola transacción.
package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Puntoventa-api/internal/application/dto"
	appinventory "github.com/jhoicas/Puntoventa-api/internal/application/inventory"
	"github.com/jhoicas/Puntoventa-api/internal/domain"
	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
	"github.com/jhoicas/Puntoventa-api/internal/domain/pricing"
	"github.com/jhoicas/Puntoventa-api/internal/domain/repository"
)

// UseCase motor de checkout y consultas de ventas.
type UseCase struct {
	txRunner     TxRunner
	customerRepo repository.CustomerRepository
	tierRepo     repository.TierRepository
	productRepo  repository.ProductRepository
	priceRepo    repository.PriceRuleRepository
	saleRepo     repository.SaleRepository
	publisher    SalePublisher // nil = sin publicación de eventos
}

// NewUseCase construye el motor. customerRepo/tierRepo/productRepo/priceRepo/
// saleRepo son repos de solo lectura (pool); las escrituras pasan por txRunner.
func NewUseCase(
	txRunner TxRunner,
	customerRepo repository.CustomerRepository,
	tierRepo repository.TierRepository,
	productRepo repository.ProductRepository,
	priceRepo repository.PriceRuleRepository,
	saleRepo repository.SaleRepository,
	publisher SalePublisher,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		tierRepo:     tierRepo,
		productRepo:  productRepo,
		priceRepo:    priceRepo,
		saleRepo:     saleRepo,
		publisher:    publisher,
	}
}

// tierContext datos de descuento del cliente, resueltos al inicio de la tx de
// checkout: el precio congelado refleja los overrides vigentes al momento del
// commit, nunca una lectura anterior.
type tierContext struct {
	hasTier       bool
	globalPercent decimal.Decimal
	overrides     map[string]*entity.TierPriceOverride // por productID
}

// Checkout ejecuta una venta completa. Todo el ciclo congelar-verificar-
// escribir corre dentro de una sola transacción; cualquier fallo (incluida la
// carrera por la última unidad) revierte la venta entera. No hay reintento
// automático: un conflicto de serialización llega al caller como ErrConflict.
func (uc *UseCase) Checkout(ctx context.Context, outletID string, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	switch in.PaymentMethod {
	case entity.PaymentCash, entity.PaymentQRIS, entity.PaymentCredit:
	default:
		return nil, domain.ErrInvalidInput
	}
	// Crédito (fiado) nunca se extiende a una venta anónima.
	if in.PaymentMethod == entity.PaymentCredit && in.CustomerID == "" {
		return nil, domain.ErrCreditNeedsCustomer
	}

	now := time.Now()
	saleID := uuid.New().String()
	var sale *entity.Sale
	var lines []*entity.SaleLine

	err := uc.txRunner.RunCheckout(ctx, func(
		customerRepo repository.CustomerRepository,
		tierRepo repository.TierRepository,
		productRepo repository.ProductRepository,
		priceRepo repository.PriceRuleRepository,
		stockRepo repository.InventoryStateRepository,
		eventRepo repository.InventoryEventRepository,
		saleRepo repository.SaleRepository,
	) error {
		// 1) Resolver tier y overrides, y congelar precio y costo por línea
		// con el resolver de descuentos. Todo dentro de la tx.
		tc, err := resolveTier(customerRepo, tierRepo, outletID, in.CustomerID, in.Items)
		if err != nil {
			return err
		}
		products := make([]*entity.Product, len(in.Items))
		totalAmount, totalCost, totalProfit := decimal.Zero, decimal.Zero, decimal.Zero
		lines = lines[:0]
		for i, item := range in.Items {
			product, err := productRepo.GetByID(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil || (!product.IsShared && product.OutletID != outletID) {
				return domain.ErrNotFound
			}
			products[i] = product

			rule, err := priceRepo.Get(outletID, item.ProductID)
			if err != nil {
				return err
			}
			if rule == nil {
				// Sin regla de precio no hay precio que congelar.
				return domain.ErrNotFound
			}
			resolved := pricing.Resolve(pricing.Input{
				BasePrice:             rule.BasePrice,
				HasTier:               tc.hasTier,
				Override:              tc.overrides[item.ProductID],
				GlobalDiscountPercent: tc.globalPercent,
			})

			qty := decimal.NewFromInt(item.Quantity)
			subtotal := resolved.FinalPrice.Mul(qty)
			// El costo nunca se descuenta.
			profit := resolved.FinalPrice.Sub(rule.CostPrice).Mul(qty)
			lines = append(lines, &entity.SaleLine{
				ID:             uuid.New().String(),
				SaleID:         saleID,
				ProductID:      product.ID,
				ProductName:    product.Name,
				Quantity:       item.Quantity,
				UnitPrice:      resolved.FinalPrice,
				UnitCost:       rule.CostPrice,
				DiscountAmount: resolved.DiscountAmount,
				Subtotal:       subtotal,
				Profit:         profit,
			})
			totalAmount = totalAmount.Add(subtotal)
			totalCost = totalCost.Add(rule.CostPrice.Mul(qty))
			totalProfit = totalProfit.Add(profit)
		}

		// 2) Verificar stock con la fila bloqueada, juntando TODAS las líneas
		// insuficientes antes de fallar: el caller recibe un solo error
		// completo, nunca una respuesta de carrito parcial.
		var shortages []domain.StockShortage
		for i, item := range in.Items {
			state, err := stockRepo.GetForUpdate(outletID, item.ProductID)
			if err != nil {
				return err
			}
			if item.Quantity > state.StockFilled {
				shortages = append(shortages, domain.StockShortage{
					ProductID:   item.ProductID,
					ProductName: products[i].Name,
					Available:   state.StockFilled,
					Requested:   item.Quantity,
				})
			}
		}
		if len(shortages) > 0 {
			return &domain.InsufficientStockError{Shortages: shortages}
		}

		// 3) Precondiciones de pago sobre el total ya congelado.
		cashTendered, changeAmount := decimal.Zero, decimal.Zero
		if in.PaymentMethod == entity.PaymentCash {
			if in.CashTendered == nil || in.CashTendered.LessThan(totalAmount) {
				return domain.ErrCashTenderedTooLow
			}
			cashTendered = *in.CashTendered
			changeAmount = cashTendered.Sub(totalAmount)
		}

		// 4) Cabecera + líneas.
		sale = &entity.Sale{
			ID:            saleID,
			OutletID:      outletID,
			CustomerID:    in.CustomerID,
			TotalAmount:   totalAmount,
			TotalCost:     totalCost,
			TotalProfit:   totalProfit,
			PaymentMethod: in.PaymentMethod,
			CashTendered:  cashTendered,
			ChangeAmount:  changeAmount,
			Status:        entity.SaleStatusPaid,
			CreatedAt:     now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, line := range lines {
			if err := saleRepo.CreateLine(line); err != nil {
				return err
			}
		}

		// 5) Descontar inventario vía el ledger (un evento por línea, ligado a
		// la venta). Las filas ya están bloqueadas desde el paso 2.
		for i, item := range in.Items {
			delta := appinventory.SaleConsumption(products[i], outletID, saleID, item.Quantity)
			if _, _, err := appinventory.ApplyDelta(stockRepo, eventRepo, delta, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.publisher != nil {
		uc.publisher.SaleCommitted(ctx, sale, lines)
	}

	resp := &dto.CheckoutResponse{
		SaleID:      sale.ID,
		TotalAmount: sale.TotalAmount,
		TotalCost:   sale.TotalCost,
		TotalProfit: sale.TotalProfit,
		CreatedAt:   sale.CreatedAt,
	}
	if sale.PaymentMethod == entity.PaymentCash {
		change := sale.ChangeAmount
		resp.ChangeAmount = &change
	}
	return resp, nil
}

// resolveTier carga cliente, tier y overrides por producto. Sin cliente, sin
// tier asignado o con el tier ya eliminado devuelve un contexto vacío (precio
// de lista). Recibe los repos como argumento para correr con los de la tx en
// Checkout y con los del pool en QuotePrice.
func resolveTier(customerRepo repository.CustomerRepository, tierRepo repository.TierRepository, outletID, customerID string, items []dto.CheckoutItem) (*tierContext, error) {
	tc := &tierContext{overrides: map[string]*entity.TierPriceOverride{}}
	if customerID == "" {
		return tc, nil
	}
	customer, err := customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.OutletID != outletID {
		return nil, domain.ErrNotFound
	}
	if customer.TierID == "" {
		return tc, nil
	}
	tier, err := tierRepo.GetByID(customer.TierID)
	if err != nil {
		return nil, err
	}
	if tier == nil {
		return tc, nil
	}
	tc.hasTier = true
	tc.globalPercent = tier.GlobalDiscountPercent
	for _, item := range items {
		ov, err := tierRepo.GetOverride(outletID, item.ProductID, tier.ID)
		if err != nil {
			return nil, err
		}
		if ov != nil {
			tc.overrides[item.ProductID] = ov
		}
	}
	return tc, nil
}

// QuotePrice resuelve el precio de un producto para un cliente, para mostrar
// antes del cobro. Usa exactamente el mismo resolver que congela el precio en
// Checkout: lo mostrado y lo comprometido no pueden divergir.
func (uc *UseCase) QuotePrice(ctx context.Context, outletID, productID, customerID string) (*dto.PriceQuoteResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || (!product.IsShared && product.OutletID != outletID) {
		return nil, domain.ErrNotFound
	}
	rule, err := uc.priceRepo.Get(outletID, productID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, domain.ErrNotFound
	}
	tc, err := resolveTier(uc.customerRepo, uc.tierRepo, outletID, customerID, []dto.CheckoutItem{{ProductID: productID, Quantity: 1}})
	if err != nil {
		return nil, err
	}
	resolved := pricing.Resolve(pricing.Input{
		BasePrice:             rule.BasePrice,
		HasTier:               tc.hasTier,
		Override:              tc.overrides[productID],
		GlobalDiscountPercent: tc.globalPercent,
	})
	return &dto.PriceQuoteResponse{
		ProductID:      productID,
		BasePrice:      rule.BasePrice,
		FinalPrice:     resolved.FinalPrice,
		DiscountAmount: resolved.DiscountAmount,
		DiscountKind:   resolved.Kind,
		Source:         resolved.Source,
	}, nil
}

// VoidSale anula una venta paid: revierte el inventario de cada línea (reason
// return) y cambia el estado, todo en una transacción. Los montos de la venta
// quedan intactos.
func (uc *UseCase) VoidSale(ctx context.Context, outletID, saleID string) (*dto.SaleResponse, error) {
	if saleID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	var voided *entity.Sale
	var voidedLines []*entity.SaleLine
	err := uc.txRunner.RunCheckout(ctx, func(
		_ repository.CustomerRepository,
		_ repository.TierRepository,
		productRepo repository.ProductRepository,
		_ repository.PriceRuleRepository,
		stockRepo repository.InventoryStateRepository,
		eventRepo repository.InventoryEventRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetByIDForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil || sale.OutletID != outletID {
			return domain.ErrNotFound
		}
		if sale.Status != entity.SaleStatusPaid {
			return domain.ErrSaleNotVoidable
		}
		lines, err := saleRepo.GetLinesBySaleID(saleID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			product, err := productRepo.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			delta := appinventory.ReturnDelta(product, outletID, saleID, line.Quantity)
			if _, _, err := appinventory.ApplyDelta(stockRepo, eventRepo, delta, now); err != nil {
				return err
			}
		}
		if err := saleRepo.UpdateStatus(saleID, entity.SaleStatusVoid, now); err != nil {
			return err
		}
		sale.Status = entity.SaleStatusVoid
		sale.VoidedAt = &now
		voided = sale
		voidedLines = lines
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(voided, voidedLines), nil
}

// GetSale obtiene una venta con sus líneas.
func (uc *UseCase) GetSale(ctx context.Context, outletID, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil || sale.OutletID != outletID {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.saleRepo.GetLinesBySaleID(saleID)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, lines), nil
}

// ListSales lista ventas del outlet en un rango de fechas.
func (uc *UseCase) ListSales(ctx context.Context, outletID string, from, to time.Time, limit, offset int) (*dto.SaleListResponse, error) {
	sales, err := uc.saleRepo.ListByOutlet(outletID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{
		Items: make([]dto.SaleResponse, 0, len(sales)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, sale := range sales {
		out.Items = append(out.Items, *toSaleResponse(sale, nil))
	}
	return out, nil
}

func toSaleResponse(sale *entity.Sale, lines []*entity.SaleLine) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		OutletID:      sale.OutletID,
		CustomerID:    sale.CustomerID,
		TotalAmount:   sale.TotalAmount,
		TotalCost:     sale.TotalCost,
		TotalProfit:   sale.TotalProfit,
		PaymentMethod: sale.PaymentMethod,
		CashTendered:  sale.CashTendered,
		ChangeAmount:  sale.ChangeAmount,
		Status:        sale.Status,
		CreatedAt:     sale.CreatedAt,
		VoidedAt:      sale.VoidedAt,
		Lines:         make([]dto.SaleLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.SaleLineResponse{
			ProductID:      l.ProductID,
			ProductName:    l.ProductName,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice,
			UnitCost:       l.UnitCost,
			DiscountAmount: l.DiscountAmount,
			Subtotal:       l.Subtotal,
			Profit:         l.Profit,
		})
	}
	return resp
}
