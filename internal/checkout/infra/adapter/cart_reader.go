package adapter

import (
	"context"

	"github.com/yardsale/storefront/internal/cart/app"
	checkoutapp "github.com/yardsale/storefront/internal/checkout/app"
)

// CartStoreAdapter exposes the cart store through checkout's narrow Cart
// port.
type CartStoreAdapter struct {
	store *app.Store
}

func NewCartStoreAdapter(store *app.Store) *CartStoreAdapter {
	return &CartStoreAdapter{store: store}
}

func (a *CartStoreAdapter) Lines(ctx context.Context) ([]checkoutapp.CartLine, error) {
	items := a.store.Items()

	lines := make([]checkoutapp.CartLine, len(items))
	for i, it := range items {
		lines[i] = checkoutapp.CartLine{
			ProductID: it.ProductID,
			Name:      it.Product.Name,
			Image:     it.Product.Image,
			UnitPrice: it.Product.Price,
			Quantity:  it.Quantity,
		}
	}
	return lines, nil
}

func (a *CartStoreAdapter) Totals(ctx context.Context) (checkoutapp.Totals, error) {
	return checkoutapp.Totals{
		Subtotal: a.store.Subtotal(),
		Tax:      a.store.Tax(),
		Shipping: a.store.Shipping(),
		Total:    a.store.Total(),
	}, nil
}

func (a *CartStoreAdapter) Clear(ctx context.Context) error {
	a.store.Clear(ctx)
	return nil
}
