package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yardsale/storefront/internal/checkout/domain"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPaymentDeclined   = errors.New("payment declined")
)

func validPaymentMethod(method string) bool {
	switch method {
	case "credit-card", "debit-card", "paypal", "cash-on-delivery":
		return true
	}
	return false
}

type Service struct {
	cart     Cart
	catalog  CatalogReader
	payments PaymentProcessor
	orders   OrderPlacer
	log      *slog.Logger

	maxConcurrent int
}

func NewService(cart Cart, catalog CatalogReader, payments PaymentProcessor, orders OrderPlacer, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		cart:          cart,
		catalog:       catalog,
		payments:      payments,
		orders:        orders,
		log:           log,
		maxConcurrent: 10,
	}
}

// PlaceOrder runs the purchase: revalidate every cart line against live
// catalog stock, charge the buyer, record the order, then clear the cart.
// Cart snapshots can be stale, so the stock check here is the one that
// counts.
func (s *Service) PlaceOrder(ctx context.Context, userID, paymentMethod string, addr Address) (domain.Receipt, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Receipt{}, ErrInvalidInput
	}
	if !validPaymentMethod(paymentMethod) {
		return domain.Receipt{}, fmt.Errorf("payment method %q: %w", paymentMethod, ErrInvalidInput)
	}

	lines, err := s.cart.Lines(ctx)
	if err != nil {
		return domain.Receipt{}, err
	}
	if len(lines) == 0 {
		return domain.Receipt{}, ErrEmptyCart
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range lines {
		idx := idx
		g.Go(func() error {
			line := lines[idx]
			product, err := s.catalog.GetProduct(gctx, line.ProductID)
			if err != nil {
				return fmt.Errorf("failed to get product %s: %w", line.ProductID, err)
			}
			if line.Quantity > product.Stock {
				return fmt.Errorf("product %s has %d in stock, cart wants %d: %w",
					product.ID, product.Stock, line.Quantity, ErrInsufficientStock)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Receipt{}, err
	}

	totals, err := s.cart.Totals(ctx)
	if err != nil {
		return domain.Receipt{}, err
	}

	txnID, err := s.payments.Charge(ctx, paymentMethod, totals.Total)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("charge %.2f via %s: %w", totals.Total, paymentMethod, err)
	}

	orderID, err := s.orders.Place(ctx, OrderRequest{
		UserID:          userID,
		Lines:           lines,
		Totals:          totals,
		PaymentMethod:   paymentMethod,
		ShippingAddress: addr,
	})
	if err != nil {
		return domain.Receipt{}, err
	}

	if err := s.cart.Clear(ctx); err != nil {
		s.log.Error("cart clear after checkout failed",
			slog.String("order_id", orderID),
			slog.Any("err", err))
	}

	receiptLines := make([]domain.Line, len(lines))
	for i, line := range lines {
		receiptLines[i] = domain.Line{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.UnitPrice * float64(line.Quantity),
		}
	}

	return domain.Receipt{
		OrderID:       orderID,
		TransactionID: txnID,
		Lines:         receiptLines,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Shipping:      totals.Shipping,
		Total:         totals.Total,
	}, nil
}
