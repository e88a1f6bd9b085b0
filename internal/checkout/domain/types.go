package domain

type Line struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
}

// Receipt is what the buyer gets back from a successful checkout.
type Receipt struct {
	OrderID       string  `json:"orderId"`
	TransactionID string  `json:"transactionId"`
	Lines         []Line  `json:"lines"`
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	Shipping      float64 `json:"shipping"`
	Total         float64 `json:"total"`
}
