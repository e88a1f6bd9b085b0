package app

import (
	"context"

	"github.com/yardsale/storefront/internal/order/domain"
)

type OrderRepo interface {
	Create(ctx context.Context, o domain.Order) (domain.Order, error)
	Get(ctx context.Context, id string) (domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	Update(ctx context.Context, o domain.Order) (domain.Order, error)
}

// EventPublisher hands created orders to the warehouse.
type EventPublisher interface {
	OrderCreated(ctx context.Context, o domain.Order) error
}

// NopPublisher is used when no queue is configured.
type NopPublisher struct{}

func (NopPublisher) OrderCreated(ctx context.Context, o domain.Order) error { return nil }
