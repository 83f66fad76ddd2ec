package checkout

import (
	"context"

	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
	"github.com/jhoicas/Puntoventa-api/internal/domain/repository"
)

// TxRunner ejecuta el checkout completo dentro de una transacción de BD:
// resolver el tier del cliente, congelar precios, verificar y descontar stock,
// e insertar la venta con sus líneas deben confirmar o revertir juntos.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		tierRepo repository.TierRepository,
		productRepo repository.ProductRepository,
		priceRepo repository.PriceRuleRepository,
		stockRepo repository.InventoryStateRepository,
		eventRepo repository.InventoryEventRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// SalePublisher publica el evento de venta comprometida hacia el exterior
// (analítica). Best effort después del commit; nunca afecta la transacción.
type SalePublisher interface {
	SaleCommitted(ctx context.Context, sale *entity.Sale, lines []*entity.SaleLine)
}

// ReceiptPDFGenerator genera la representación PDF del recibo de una venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, lines []*entity.SaleLine, outlet *entity.Outlet) ([]byte, error)
}
