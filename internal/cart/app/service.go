package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/yardsale/storefront/internal/cart/domain"
)

// Outcome reports what a mutation did to the cart. Rejections leave the
// cart untouched; callers that ignore the outcome observe plain no-ops.
type Outcome int

const (
	OutcomeAdded Outcome = iota
	OutcomeIncremented
	OutcomeUpdated
	OutcomeRemoved
	OutcomeCleared
	OutcomeRejectedInsufficientStock
	OutcomeRejectedNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAdded:
		return "added"
	case OutcomeIncremented:
		return "incremented"
	case OutcomeUpdated:
		return "updated"
	case OutcomeRemoved:
		return "removed"
	case OutcomeCleared:
		return "cleared"
	case OutcomeRejectedInsufficientStock:
		return "rejected_insufficient_stock"
	case OutcomeRejectedNotFound:
		return "rejected_not_found"
	default:
		return "unknown"
	}
}

func (o Outcome) Rejected() bool {
	return o == OutcomeRejectedInsufficientStock || o == OutcomeRejectedNotFound
}

// Store is the single owner of the cart state. Items change only through
// its mutations; every items change is written to persistence before the
// mutation returns. The open flag is session-only and never persisted.
type Store struct {
	mu     sync.RWMutex
	items  []domain.LineItem
	isOpen bool

	persistence Persistence
	log         *slog.Logger
}

// NewStore restores prior items from persistence. Missing or unreadable
// data seeds an empty cart; the panel always starts closed.
func NewStore(ctx context.Context, p Persistence, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}

	s := &Store{
		persistence: p,
		log:         log,
	}

	items, err := p.Load(ctx)
	if err != nil {
		log.Warn("cart restore failed, starting empty", slog.Any("err", err))
		return s
	}
	if !validItems(items) {
		log.Warn("persisted cart violates invariants, starting empty")
		return s
	}
	s.items = items
	return s
}

// AddItem appends a line item with quantity 1, or bumps an existing line
// by 1. The bump is checked against the stock of the snapshot passed in,
// which is the caller's freshest view of the product.
func (s *Store) AddItem(ctx context.Context, p domain.ProductSnapshot) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID != p.ID {
			continue
		}
		if s.items[i].Quantity+1 > p.Stock {
			s.log.Warn("add rejected, stock ceiling reached",
				slog.String("product_id", p.ID),
				slog.Int("stock", p.Stock))
			return OutcomeRejectedInsufficientStock
		}
		s.items[i].Quantity++
		s.persist(ctx)
		return OutcomeIncremented
	}

	if p.Stock < 1 {
		s.log.Warn("add rejected, product out of stock", slog.String("product_id", p.ID))
		return OutcomeRejectedInsufficientStock
	}

	s.items = append(s.items, domain.LineItem{
		ProductID: p.ID,
		Quantity:  1,
		Product:   p,
	})
	s.persist(ctx)
	return OutcomeAdded
}

// RemoveItem deletes the line item for productID. Removing an absent item
// is not an error; the remaining items keep their relative order.
func (s *Store) RemoveItem(ctx context.Context, productID string) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(ctx, productID)
}

// SetQuantity sets a line item to an exact quantity. Zero or negative
// removes the item. A quantity above the captured snapshot's stock is
// rejected outright, not clamped.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.removeLocked(ctx, productID)
	}

	for i := range s.items {
		if s.items[i].ProductID != productID {
			continue
		}
		if quantity > s.items[i].Product.Stock {
			s.log.Warn("quantity rejected, exceeds stock",
				slog.String("product_id", productID),
				slog.Int("requested", quantity),
				slog.Int("stock", s.items[i].Product.Stock))
			return OutcomeRejectedInsufficientStock
		}
		s.items[i].Quantity = quantity
		s.persist(ctx)
		return OutcomeUpdated
	}

	return OutcomeRejectedNotFound
}

// Clear empties the cart and wipes the persisted items.
func (s *Store) Clear(ctx context.Context) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persist(ctx)
	return OutcomeCleared
}

func (s *Store) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = !s.isOpen
}

func (s *Store) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = true
}

func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = false
}

func (s *Store) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isOpen
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// ItemByID returns the line item for productID, reporting presence in the
// second value.
func (s *Store) ItemByID(productID string) (domain.LineItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, it := range s.items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return domain.LineItem{}, false
}

func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.ItemCount(s.items)
}

func (s *Store) Subtotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Subtotal(s.items)
}

func (s *Store) Tax() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Tax(s.items)
}

func (s *Store) Shipping() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Shipping(s.items)
}

func (s *Store) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Total(s.items)
}

func (s *Store) removeLocked(ctx context.Context, productID string) Outcome {
	for i := range s.items {
		if s.items[i].ProductID != productID {
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		s.persist(ctx)
		return OutcomeRemoved
	}
	return OutcomeRejectedNotFound
}

// persist writes the items while the lock is still held, so a restore can
// never observe a half-applied mutation. Write failures are logged and do
// not fail the mutation.
func (s *Store) persist(ctx context.Context) {
	if err := s.persistence.Save(ctx, s.items); err != nil {
		s.log.Error("cart persist failed", slog.Any("err", err))
	}
}

func validItems(items []domain.LineItem) bool {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, dup := seen[it.ProductID]; dup {
			return false
		}
		seen[it.ProductID] = struct{}{}
		if it.Quantity < 1 || it.Quantity > it.Product.Stock {
			return false
		}
	}
	return true
}
