package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/bookshop/internal/domain"
	pkgkafka "github.com/utafrali/bookshop/pkg/kafka"
	"github.com/utafrali/bookshop/pkg/logger"
)

// Kafka topic constants for bookshop domain events.
const (
	TopicOrderPlaced    = "bookshop.order.placed"
	TopicUserRegistered = "bookshop.user.registered"
	TopicCartUpdated    = "bookshop.cart.updated"
)

// Aggregate type constants.
const (
	AggregateTypeOrder = "order"
	AggregateTypeUser  = "user"
	AggregateTypeCart  = "cart"
)

// Source identifier for events originating from this service.
const Source = "bookshop"

// OrderPlacedData is the payload for an order.placed event.
type OrderPlacedData struct {
	OrderID       string  `json:"order_id"`
	CustomerEmail string  `json:"customer_email"`
	ItemCount     int     `json:"item_count"`
	Total         float64 `json:"total"`
	TransactionID string  `json:"transaction_id"`
}

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	CartID     string  `json:"cart_id"`
	ItemCount  int     `json:"item_count"`
	TotalPrice float64 `json:"total_price"`
}

// Producer publishes bookshop domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishOrderPlaced publishes an order.placed event.
func (p *Producer) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	data := OrderPlacedData{
		OrderID:       order.ID,
		CustomerEmail: order.CustomerEmail,
		ItemCount:     order.TotalItems(),
		Total:         order.Total,
		TransactionID: order.TransactionID,
	}

	return p.publish(ctx, TopicOrderPlaced, "order.placed", order.ID, AggregateTypeOrder, data)
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		Email: user.Email,
		Name:  user.Name,
	}

	return p.publish(ctx, TopicUserRegistered, "user.registered", user.Email, AggregateTypeUser, data)
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	data := CartUpdatedData{
		CartID:     cart.ID,
		ItemCount:  cart.TotalItems(),
		TotalPrice: cart.TotalPrice(),
	}

	return p.publish(ctx, TopicCartUpdated, "cart.updated", cart.ID, AggregateTypeCart, data)
}

func (p *Producer) publish(ctx context.Context, topic, eventType, aggregateID, aggregateType string, data any) error {
	evt, err := pkgkafka.NewEvent(eventType, aggregateID, aggregateType, Source, data)
	if err != nil {
		return fmt.Errorf("build %s event: %w", eventType, err)
	}

	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}

	return p.kafka.Publish(ctx, topic, evt)
}
