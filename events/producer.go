package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sellerhub/marketplace-api/models"
)

// Producer publishes order lifecycle events. A nil Producer is valid and
// drops events, so callers stay free of configuration branches.
type Producer struct {
	w *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 {
		return nil
	}
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

type OrderPlacedItem struct {
	ProductID uint    `json:"product_id"`
	SellerID  string  `json:"seller_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderPlacedEvent struct {
	OrderRef    string            `json:"order_ref"`
	UserID      string            `json:"user_id"`
	TotalAmount float64           `json:"total_amount"`
	Items       []OrderPlacedItem `json:"items"`
	PlacedAt    time.Time         `json:"placed_at"`
}

// OrderPlaced publishes a single order-placed event keyed by order ref.
// Delivery is best-effort; the caller logs failures and moves on.
func (p *Producer) OrderPlaced(ctx context.Context, order *models.Order) error {
	if p == nil {
		return nil
	}

	event := OrderPlacedEvent{
		OrderRef:    order.OrderRef,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		PlacedAt:    order.CreatedAt,
	}
	for _, item := range order.Items {
		event.Items = append(event.Items, OrderPlacedItem{
			ProductID: item.ProductID,
			SellerID:  item.SellerID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.OrderRef),
		Value: payload,
		Time:  time.Now(),
	})
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.w.Close()
}
