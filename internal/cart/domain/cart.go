package domain

// Pricing policy. Fixed by the storefront, not configurable.
const (
	TaxRate               = 0.16
	FreeShippingThreshold = 500.0
	FlatShippingRate      = 50.0
)

// ProductSnapshot is the slice of a catalog product the cart keeps.
// It is captured at add time; later catalog changes do not flow into it.
type ProductSnapshot struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
	Image string  `json:"image,omitempty"`
}

// LineItem is one product's presence in the cart. ProductID is unique
// among the items of a cart.
type LineItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Product   ProductSnapshot `json:"product"`
}

func ItemCount(items []LineItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func Subtotal(items []LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Product.Price * float64(it.Quantity)
	}
	return sum
}

func Tax(items []LineItem) float64 {
	return Subtotal(items) * TaxRate
}

// Shipping is free at or above the threshold, flat otherwise.
func Shipping(items []LineItem) float64 {
	if Subtotal(items) >= FreeShippingThreshold {
		return 0
	}
	return FlatShippingRate
}

func Total(items []LineItem) float64 {
	return Subtotal(items) + Tax(items) + Shipping(items)
}
