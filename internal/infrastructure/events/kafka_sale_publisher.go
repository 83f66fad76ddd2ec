package events

import (
	"context"
	"encoding/json"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"

	"github.com/jhoicas/Puntoventa-api/internal/application/checkout"
	"github.com/jhoicas/Puntoventa-api/internal/domain/entity"
	"github.com/jhoicas/Puntoventa-api/pkg/logger"
)

var _ checkout.SalePublisher = (*KafkaSalePublisher)(nil)

// KafkaSalePublisher publica ventas comprometidas a un topic de Kafka para
// consumo analítico. Best effort: el error se loguea y no se propaga, la
// venta ya está confirmada en BD cuando se publica.
type KafkaSalePublisher struct {
	writer *kafkaGo.Writer
	log    *logger.Logger
}

// NewKafkaSalePublisher construye el publicador con un writer propio.
func NewKafkaSalePublisher(brokers []string, topic string, log *logger.Logger) *KafkaSalePublisher {
	writer := &kafkaGo.Writer{
		Addr:         kafkaGo.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkaGo.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}
	return &KafkaSalePublisher{writer: writer, log: log}
}

func (p *KafkaSalePublisher) Close() error {
	return p.writer.Close()
}

type saleLinePayload struct {
	ProductID      string `json:"productId"`
	ProductName    string `json:"productName"`
	Quantity       int64  `json:"quantity"`
	UnitPrice      string `json:"unitPrice"`
	DiscountAmount string `json:"discountAmount"`
	Subtotal       string `json:"subtotal"`
}

type saleCommittedPayload struct {
	SaleID        string            `json:"saleId"`
	OutletID      string            `json:"outletId"`
	CustomerID    string            `json:"customerId,omitempty"`
	TotalAmount   string            `json:"totalAmount"`
	TotalProfit   string            `json:"totalProfit"`
	PaymentMethod string            `json:"paymentMethod"`
	CreatedAt     time.Time         `json:"createdAt"`
	Lines         []saleLinePayload `json:"lines"`
}

// SaleCommitted serializa la venta y la escribe al topic, con el outlet como
// clave para preservar orden por outlet.
func (p *KafkaSalePublisher) SaleCommitted(ctx context.Context, sale *entity.Sale, lines []*entity.SaleLine) {
	payload := saleCommittedPayload{
		SaleID:        sale.ID,
		OutletID:      sale.OutletID,
		CustomerID:    sale.CustomerID,
		TotalAmount:   sale.TotalAmount.String(),
		TotalProfit:   sale.TotalProfit.String(),
		PaymentMethod: sale.PaymentMethod,
		CreatedAt:     sale.CreatedAt,
	}
	for _, l := range lines {
		payload.Lines = append(payload.Lines, saleLinePayload{
			ProductID:      l.ProductID,
			ProductName:    l.ProductName,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice.String(),
			DiscountAmount: l.DiscountAmount.String(),
			Subtotal:       l.Subtotal.String(),
		})
	}

	value, err := json.Marshal(payload)
	if err != nil {
		p.log.Error().Err(err).Str("sale_id", sale.ID).Msg("serializar evento de venta")
		return
	}

	err = p.writer.WriteMessages(ctx, kafkaGo.Message{
		Key:   []byte(sale.OutletID),
		Value: value,
	})
	if err != nil {
		p.log.Error().Err(err).Str("sale_id", sale.ID).Msg("publicar evento de venta")
		return
	}
	p.log.Debug().Str("sale_id", sale.ID).Str("outlet_id", sale.OutletID).Msg("evento de venta publicado")
}
