package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yardsale/storefront/internal/catalog/app"
	"github.com/yardsale/storefront/internal/catalog/domain"
)

// ProductRepo serves the catalog from memory, the in-process stand-in for
// the storefront's fixture backend.
type ProductRepo struct {
	mu       sync.RWMutex
	products []domain.Product
}

func NewProductRepo(products []domain.Product) *ProductRepo {
	return &ProductRepo{products: products}
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("product %s: %w", id, app.ErrNotFound)
}

// DefaultProducts is the built-in catalog seed used when no fixture file
// is configured.
func DefaultProducts() []domain.Product {
	now := time.Now().UTC()
	return []domain.Product{
		{
			ID: "1", Name: "Vintage Leather Jacket", Price: 120.00,
			Description: "Worn-in brown leather jacket, size M.",
			Category:    "clothes", Condition: "good", Image: "jacket.jpg",
			Stock: 3, Featured: true, Rating: 4.6, SellerID: "s1",
			CreatedAt: now.Add(-72 * time.Hour), UpdatedAt: now,
		},
		{
			ID: "2", Name: "Mechanical Keyboard", Price: 99.99,
			Description: "Tenkeyless board with brown switches.",
			Category:    "electronics", Condition: "like-new", Image: "keyboard.jpg",
			Stock: 10, Featured: true, Rating: 4.8, SellerID: "s2",
			CreatedAt: now.Add(-48 * time.Hour), UpdatedAt: now,
		},
		{
			ID: "3", Name: "Oak Coffee Table", Price: 600.00,
			Description: "Solid oak, light scratches on one leg.",
			Category:    "furniture", Condition: "fair", Image: "table.jpg",
			Stock: 1, Featured: false, Rating: 4.1, SellerID: "s1",
			CreatedAt: now.Add(-24 * time.Hour), UpdatedAt: now,
		},
		{
			ID: "4", Name: "Wooden Train Set", Price: 35.50,
			Description: "Complete 40-piece set, all tracks included.",
			Category:    "toys", Condition: "good", Image: "train.jpg",
			Stock: 5, Featured: false, Rating: 4.3, SellerID: "s3",
			CreatedAt: now.Add(-12 * time.Hour), UpdatedAt: now,
		},
	}
}
