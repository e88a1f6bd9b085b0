package domain

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo encodes the fulfillment lifecycle. Cancellation is only
// possible before the order ships.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessing || next == StatusCancelled
	case StatusProcessing:
		return next == StatusShipped || next == StatusCancelled
	case StatusShipped:
		return next == StatusDelivered
	default:
		return false
	}
}

// Item captures a purchased line at the moment of checkout.
type Item struct {
	ProductID       string  `json:"productId"`
	ProductName     string  `json:"productName"`
	ProductImage    string  `json:"productImage,omitempty"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type Order struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Items           []Item    `json:"items"`
	Subtotal        float64   `json:"subtotal"`
	Tax             float64   `json:"tax"`
	Shipping        float64   `json:"shipping"`
	Total           float64   `json:"total"`
	Status          Status    `json:"status"`
	PaymentMethod   string    `json:"paymentMethod"`
	ShippingAddress Address   `json:"shippingAddress"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
