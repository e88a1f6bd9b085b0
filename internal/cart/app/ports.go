package app

import (
	"context"

	"github.com/yardsale/storefront/internal/cart/domain"
)

// Persistence is the durable slot the store writes its items to. Only the
// line items are persisted; the panel visibility flag never is.
type Persistence interface {
	Load(ctx context.Context) ([]domain.LineItem, error)
	Save(ctx context.Context, items []domain.LineItem) error
}
