package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yardsale/storefront/internal/order/domain"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Draft is everything checkout knows about an order before it exists.
type Draft struct {
	UserID          string
	Items           []domain.Item
	Subtotal        float64
	Tax             float64
	Shipping        float64
	Total           float64
	PaymentMethod   string
	ShippingAddress domain.Address
}

type Service struct {
	repo      OrderRepo
	publisher EventPublisher
	log       *slog.Logger
}

func NewService(repo OrderRepo, publisher EventPublisher, log *slog.Logger) *Service {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// CreateOrder materializes a draft as a pending order and announces it to
// the warehouse. A publish failure does not undo the order.
func (s *Service) CreateOrder(ctx context.Context, d Draft) (domain.Order, error) {
	if strings.TrimSpace(d.UserID) == "" || len(d.Items) == 0 {
		return domain.Order{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:              uuid.NewString(),
		UserID:          d.UserID,
		Items:           d.Items,
		Subtotal:        d.Subtotal,
		Tax:             d.Tax,
		Shipping:        d.Shipping,
		Total:           d.Total,
		Status:          domain.StatusPending,
		PaymentMethod:   d.PaymentMethod,
		ShippingAddress: d.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return domain.Order{}, err
	}

	if err := s.publisher.OrderCreated(ctx, created); err != nil {
		s.log.Error("order event publish failed",
			slog.String("order_id", created.ID),
			slog.Any("err", err))
	}

	return created, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Order{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

// ListOrdersByUser returns the user's orders, newest first.
func (s *Service) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) UpdateStatus(ctx context.Context, id string, next domain.Status) (domain.Order, error) {
	if !next.Valid() {
		return domain.Order{}, ErrInvalidInput
	}

	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	if !order.Status.CanTransitionTo(next) {
		return domain.Order{}, ErrInvalidTransition
	}

	order.Status = next
	order.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, order)
}

func (s *Service) CancelOrder(ctx context.Context, id string) (domain.Order, error) {
	return s.UpdateStatus(ctx, id, domain.StatusCancelled)
}
