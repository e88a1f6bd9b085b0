package app

import "context"

// CartLine is checkout's view of one cart entry.
type CartLine struct {
	ProductID string
	Name      string
	Image     string
	UnitPrice float64
	Quantity  int
}

type Totals struct {
	Subtotal float64
	Tax      float64
	Shipping float64
	Total    float64
}

type Cart interface {
	Lines(ctx context.Context) ([]CartLine, error)
	Totals(ctx context.Context) (Totals, error)
	Clear(ctx context.Context) error
}

type Product struct {
	ID    string
	Name  string
	Stock int
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

// PaymentProcessor charges the buyer and returns a transaction id.
type PaymentProcessor interface {
	Charge(ctx context.Context, method string, amount float64) (string, error)
}

type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

type OrderRequest struct {
	UserID          string
	Lines           []CartLine
	Totals          Totals
	PaymentMethod   string
	ShippingAddress Address
}

// OrderPlacer records the finished purchase and returns the order id.
type OrderPlacer interface {
	Place(ctx context.Context, req OrderRequest) (string, error)
}
