package app

import (
	"context"
	"errors"
	"math"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/yardsale/storefront/internal/cart/domain"
)

type fakePersistence struct {
	loadItems []domain.LineItem
	loadErr   error
	saveErr   error

	saves [][]domain.LineItem
}

func (f *fakePersistence) Load(ctx context.Context) ([]domain.LineItem, error) {
	return f.loadItems, f.loadErr
}

func (f *fakePersistence) Save(ctx context.Context, items []domain.LineItem) error {
	cp := make([]domain.LineItem, len(items))
	copy(cp, items)
	f.saves = append(f.saves, cp)
	return f.saveErr
}

func newTestStore(t *testing.T) (*Store, *fakePersistence) {
	t.Helper()
	p := &fakePersistence{}
	return NewStore(context.Background(), p, nil), p
}

func product(id string, price float64, stock int) domain.ProductSnapshot {
	return domain.ProductSnapshot{ID: id, Name: "p" + id, Price: price, Stock: stock}
}

func approx(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a new item with quantity 1", func(t *testing.T) {
		s, _ := newTestStore(t)

		if got := s.AddItem(ctx, product("1", 99.99, 10)); got != OutcomeAdded {
			t.Fatalf("outcome = %v, want added", got)
		}

		items := s.Items()
		if len(items) != 1 || items[0].ProductID != "1" || items[0].Quantity != 1 {
			t.Fatalf("items = %+v", items)
		}
		approx(t, s.Subtotal(), 99.99)
		approx(t, s.Tax(), 99.99*0.16)
		approx(t, s.Shipping(), 50)
		approx(t, s.Total(), 99.99+99.99*0.16+50)
	})

	t.Run("increments quantity for an existing item", func(t *testing.T) {
		s, _ := newTestStore(t)
		p := product("1", 99.99, 10)

		s.AddItem(ctx, p)
		if got := s.AddItem(ctx, p); got != OutcomeIncremented {
			t.Fatalf("outcome = %v, want incremented", got)
		}

		if len(s.Items()) != 1 {
			t.Fatalf("expected a single line item")
		}
		if s.ItemCount() != 2 {
			t.Fatalf("ItemCount = %d, want 2", s.ItemCount())
		}
	})

	t.Run("rejects increment past the stock ceiling", func(t *testing.T) {
		s, p := newTestStore(t)
		low := product("1", 10, 1)

		s.AddItem(ctx, low)
		saves := len(p.saves)

		if got := s.AddItem(ctx, low); got != OutcomeRejectedInsufficientStock {
			t.Fatalf("outcome = %v, want rejection", got)
		}
		if s.Items()[0].Quantity != 1 {
			t.Fatalf("quantity changed on rejected add")
		}
		if len(p.saves) != saves {
			t.Fatalf("rejected add must not persist")
		}
	})

	t.Run("never adds an out of stock product", func(t *testing.T) {
		s, _ := newTestStore(t)

		if got := s.AddItem(ctx, product("1", 10, 0)); got != OutcomeRejectedInsufficientStock {
			t.Fatalf("outcome = %v, want rejection", got)
		}
		if len(s.Items()) != 0 {
			t.Fatalf("item added despite zero stock")
		}
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		s, _ := newTestStore(t)

		s.AddItem(ctx, product("a", 1, 5))
		s.AddItem(ctx, product("b", 2, 5))
		s.AddItem(ctx, product("c", 3, 5))

		items := s.Items()
		if items[0].ProductID != "a" || items[1].ProductID != "b" || items[2].ProductID != "c" {
			t.Fatalf("order broken: %+v", items)
		}
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("removes and preserves remaining order", func(t *testing.T) {
		s, _ := newTestStore(t)
		s.AddItem(ctx, product("a", 1, 5))
		s.AddItem(ctx, product("b", 2, 5))

		if got := s.RemoveItem(ctx, "a"); got != OutcomeRemoved {
			t.Fatalf("outcome = %v, want removed", got)
		}

		items := s.Items()
		if len(items) != 1 || items[0].ProductID != "b" {
			t.Fatalf("items = %+v", items)
		}
	})

	t.Run("second remove is a no-op", func(t *testing.T) {
		s, p := newTestStore(t)
		s.AddItem(ctx, product("a", 1, 5))

		s.RemoveItem(ctx, "a")
		saves := len(p.saves)

		if got := s.RemoveItem(ctx, "a"); got != OutcomeRejectedNotFound {
			t.Fatalf("outcome = %v, want not found", got)
		}
		if len(p.saves) != saves {
			t.Fatalf("no-op remove must not persist")
		}
	})
}

func TestSetQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("sets an exact quantity", func(t *testing.T) {
		s, _ := newTestStore(t)
		s.AddItem(ctx, product("1", 10, 10))

		if got := s.SetQuantity(ctx, "1", 5); got != OutcomeUpdated {
			t.Fatalf("outcome = %v, want updated", got)
		}
		if it, _ := s.ItemByID("1"); it.Quantity != 5 {
			t.Fatalf("quantity = %d, want 5", it.Quantity)
		}
	})

	t.Run("zero removes the item", func(t *testing.T) {
		s, _ := newTestStore(t)
		s.AddItem(ctx, product("1", 10, 10))

		if got := s.SetQuantity(ctx, "1", 0); got != OutcomeRemoved {
			t.Fatalf("outcome = %v, want removed", got)
		}
		if len(s.Items()) != 0 {
			t.Fatalf("item still present")
		}
	})

	t.Run("negative behaves like removal", func(t *testing.T) {
		s, _ := newTestStore(t)
		s.AddItem(ctx, product("1", 10, 10))

		if got := s.SetQuantity(ctx, "1", -3); got != OutcomeRemoved {
			t.Fatalf("outcome = %v, want removed", got)
		}
	})

	t.Run("missing item is a no-op", func(t *testing.T) {
		s, p := newTestStore(t)
		saves := len(p.saves)

		if got := s.SetQuantity(ctx, "ghost", 3); got != OutcomeRejectedNotFound {
			t.Fatalf("outcome = %v, want not found", got)
		}
		if len(p.saves) != saves {
			t.Fatalf("no-op must not persist")
		}
	})

	t.Run("succeeds exactly at the stock ceiling", func(t *testing.T) {
		s, _ := newTestStore(t)
		s.AddItem(ctx, product("1", 10, 5))

		if got := s.SetQuantity(ctx, "1", 5); got != OutcomeUpdated {
			t.Fatalf("outcome = %v, want updated at ceiling", got)
		}
	})

	t.Run("rejects one past the ceiling, no clamping", func(t *testing.T) {
		s, _ := newTestStore(t)
		s.AddItem(ctx, product("1", 100, 5))
		s.SetQuantity(ctx, "1", 3)

		if got := s.SetQuantity(ctx, "1", 6); got != OutcomeRejectedInsufficientStock {
			t.Fatalf("outcome = %v, want rejection", got)
		}
		if it, _ := s.ItemByID("1"); it.Quantity != 3 {
			t.Fatalf("quantity = %d, want unchanged 3", it.Quantity)
		}
	})
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s, p := newTestStore(t)

	s.AddItem(ctx, product("1", 99.99, 10))
	s.AddItem(ctx, product("2", 10, 10))

	if got := s.Clear(ctx); got != OutcomeCleared {
		t.Fatalf("outcome = %v, want cleared", got)
	}

	if s.ItemCount() != 0 {
		t.Fatalf("ItemCount = %d after clear", s.ItemCount())
	}
	approx(t, s.Subtotal(), 0)
	approx(t, s.Shipping(), 50)
	approx(t, s.Total(), 50)

	last := p.saves[len(p.saves)-1]
	if len(last) != 0 {
		t.Fatalf("clear must wipe persisted items, got %+v", last)
	}
}

func TestVisibilityFlag(t *testing.T) {
	ctx := context.Background()
	s, p := newTestStore(t)

	if s.IsOpen() {
		t.Fatal("cart must start closed")
	}

	s.Toggle()
	if !s.IsOpen() {
		t.Fatal("toggle did not open")
	}
	s.Toggle()
	if s.IsOpen() {
		t.Fatal("toggle did not close")
	}

	s.Open()
	if !s.IsOpen() {
		t.Fatal("open did not open")
	}
	s.Close()
	if s.IsOpen() {
		t.Fatal("close did not close")
	}

	if len(p.saves) != 0 {
		t.Fatalf("visibility changes must not persist, got %d saves", len(p.saves))
	}

	// Unrelated mutation still persists as usual.
	s.AddItem(ctx, product("1", 1, 1))
	if len(p.saves) != 1 {
		t.Fatalf("expected one save after add, got %d", len(p.saves))
	}
}

func TestPricing(t *testing.T) {
	ctx := context.Background()

	t.Run("free shipping at the threshold", func(t *testing.T) {
		s, _ := newTestStore(t)
		s.AddItem(ctx, product("1", 600, 10))

		approx(t, s.Subtotal(), 600)
		approx(t, s.Tax(), 96)
		approx(t, s.Shipping(), 0)
		approx(t, s.Total(), 696)
	})

	t.Run("flat rate just below the threshold", func(t *testing.T) {
		s, _ := newTestStore(t)
		s.AddItem(ctx, product("1", 499.99, 10))

		approx(t, s.Shipping(), 50)
	})

	t.Run("exactly at the threshold", func(t *testing.T) {
		s, _ := newTestStore(t)
		s.AddItem(ctx, product("1", 250, 10))
		s.SetQuantity(ctx, "1", 2)

		approx(t, s.Subtotal(), 500)
		approx(t, s.Shipping(), 0)
	})

	t.Run("total is always the sum of its parts", func(t *testing.T) {
		s, _ := newTestStore(t)
		s.AddItem(ctx, product("1", 99.99, 10))
		s.AddItem(ctx, product("2", 3.33, 7))
		s.SetQuantity(ctx, "2", 6)

		approx(t, s.Total(), s.Subtotal()+s.Tax()+s.Shipping())
	})
}

func TestItemByID(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	s.AddItem(ctx, product("1", 10, 10))

	if it, ok := s.ItemByID("1"); !ok || it.ProductID != "1" {
		t.Fatalf("lookup failed: %+v %v", it, ok)
	}
	if _, ok := s.ItemByID("missing"); ok {
		t.Fatal("expected not found")
	}
}

func TestRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds items from persistence, panel closed", func(t *testing.T) {
		persisted := []domain.LineItem{
			{ProductID: "1", Quantity: 2, Product: product("1", 99.99, 10)},
		}
		s := NewStore(ctx, &fakePersistence{loadItems: persisted}, nil)

		if s.ItemCount() != 2 {
			t.Fatalf("ItemCount = %d, want 2", s.ItemCount())
		}
		if s.IsOpen() {
			t.Fatal("isOpen must start false regardless of persisted content")
		}
	})

	t.Run("load error starts empty", func(t *testing.T) {
		s := NewStore(ctx, &fakePersistence{loadErr: errors.New("disk gone")}, nil)
		if s.ItemCount() != 0 {
			t.Fatalf("expected empty cart")
		}
	})

	t.Run("invariant-breaking payload starts empty", func(t *testing.T) {
		bad := []domain.LineItem{
			{ProductID: "1", Quantity: 3, Product: product("1", 10, 2)}, // over stock
		}
		s := NewStore(ctx, &fakePersistence{loadItems: bad}, nil)
		if s.ItemCount() != 0 {
			t.Fatalf("expected empty cart")
		}
	})

	t.Run("duplicate product ids start empty", func(t *testing.T) {
		bad := []domain.LineItem{
			{ProductID: "1", Quantity: 1, Product: product("1", 10, 5)},
			{ProductID: "1", Quantity: 2, Product: product("1", 10, 5)},
		}
		s := NewStore(ctx, &fakePersistence{loadItems: bad}, nil)
		if s.ItemCount() != 0 {
			t.Fatalf("expected empty cart")
		}
	})
}

func TestSaveFailureDoesNotFailMutation(t *testing.T) {
	ctx := context.Background()
	p := &fakePersistence{saveErr: errors.New("write refused")}
	s := NewStore(ctx, p, nil)

	if got := s.AddItem(ctx, product("1", 10, 5)); got != OutcomeAdded {
		t.Fatalf("outcome = %v, want added despite save failure", got)
	}
	if s.ItemCount() != 1 {
		t.Fatalf("state lost on save failure")
	}
}

func TestConcurrentAddItem(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	const n = 100
	p := product("1", 10, n)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if got := s.AddItem(ctx, p); got.Rejected() {
				return errors.New("unexpected rejection")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent AddItem failed: %v", err)
	}

	if it, _ := s.ItemByID("1"); it.Quantity != n {
		t.Fatalf("quantity = %d, want %d", it.Quantity, n)
	}
}

func TestInvariantsAcrossMixedOperations(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	s.AddItem(ctx, product("a", 5, 3))
	s.AddItem(ctx, product("b", 7, 2))
	s.AddItem(ctx, product("a", 5, 3))
	s.SetQuantity(ctx, "b", 9) // rejected
	s.SetQuantity(ctx, "a", 3)
	s.RemoveItem(ctx, "ghost")
	s.AddItem(ctx, product("c", 1, 0)) // rejected

	seen := map[string]bool{}
	count := 0
	for _, it := range s.Items() {
		if seen[it.ProductID] {
			t.Fatalf("duplicate line for %s", it.ProductID)
		}
		seen[it.ProductID] = true
		if it.Quantity < 1 || it.Quantity > it.Product.Stock {
			t.Fatalf("quantity invariant broken: %+v", it)
		}
		count += it.Quantity
	}
	if s.ItemCount() != count {
		t.Fatalf("ItemCount = %d, recomputed %d", s.ItemCount(), count)
	}
}
