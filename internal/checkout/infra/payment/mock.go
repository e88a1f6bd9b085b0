package payment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/yardsale/storefront/internal/checkout/app"
)

// MockProcessor approves every well-formed charge. A real gateway would
// slot in behind the same PaymentProcessor port.
type MockProcessor struct{}

func NewMockProcessor() *MockProcessor {
	return &MockProcessor{}
}

func (MockProcessor) Charge(ctx context.Context, method string, amount float64) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("amount %.2f: %w", amount, app.ErrInvalidInput)
	}
	return fmt.Sprintf("TXN-%d-%06d", time.Now().UnixMilli(), rand.Intn(1_000_000)), nil
}
