package app

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/yardsale/storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Sort orders accepted by ListProducts.
const (
	SortRecent    = "recent"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortName      = "name"
	SortRating    = "rating"
)

// Filters narrows a product listing. Zero values mean "no constraint";
// the category "all" matches everything.
type Filters struct {
	Search    string
	Category  string
	Condition string
	MinPrice  *float64
	MaxPrice  *float64
	SortBy    string
}

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

// ListProducts applies filters and sorting over the full catalog, the way
// the storefront listing pages do.
func (s *Service) ListProducts(ctx context.Context, f Filters) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, len(products))
	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, p := range products {
		if f.Category != "" && f.Category != "all" && p.Category != f.Category {
			continue
		}
		if f.Condition != "" && p.Condition != f.Condition {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, f.SortBy)
	return out, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

// FeaturedProducts returns featured items, best rated first.
func (s *Service) FeaturedProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 6
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var out []domain.Product
	for _, p := range products {
		if p.Featured {
			out = append(out, p)
		}
	}
	sortProducts(out, SortRating)

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// RelatedProducts returns the best rated products sharing the given
// product's category, excluding the product itself.
func (s *Service) RelatedProducts(ctx context.Context, productID string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 4
	}

	product, err := s.repo.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var out []domain.Product
	for _, p := range products {
		if p.ID == productID || p.Category != product.Category {
			continue
		}
		out = append(out, p)
	}
	sortProducts(out, SortRating)

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SearchProducts matches a free-text query against name and description.
// A blank query returns nothing rather than everything.
func (s *Service) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	return s.ListProducts(ctx, Filters{Search: query})
}

func matchesSearch(p domain.Product, search string) bool {
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Description), search)
}

func sortProducts(products []domain.Product, sortBy string) {
	switch sortBy {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case SortName:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Rating > products[j].Rating })
	default:
		// Newest first, also used for SortRecent.
		sort.SliceStable(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	}
}
