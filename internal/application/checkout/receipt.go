package checkout

import (
	"context"

	"github.com/jhoicas/Puntoventa-api/internal/domain"
	"github.com/jhoicas/Puntoventa-api/internal/domain/repository"
)

// ReceiptUseCase genera el recibo PDF de una venta.
type ReceiptUseCase struct {
	saleRepo   repository.SaleRepository
	outletRepo repository.OutletRepository
	generator  ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(saleRepo repository.SaleRepository, outletRepo repository.OutletRepository, generator ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, outletRepo: outletRepo, generator: generator}
}

// GenerateReceipt obtiene la venta con sus líneas y produce los bytes del PDF.
func (uc *ReceiptUseCase) GenerateReceipt(ctx context.Context, outletID, saleID string) ([]byte, error) {
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
	outlet, err := uc.outletRepo.GetByID(outletID)
	if err != nil {
		return nil, err
	}
	if outlet == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generator.GenerateReceiptPDF(ctx, sale, lines, outlet)
}
