package adapter

import (
	"context"

	checkoutapp "github.com/yardsale/storefront/internal/checkout/app"
	orderapp "github.com/yardsale/storefront/internal/order/app"
	orderdomain "github.com/yardsale/storefront/internal/order/domain"
)

type OrderServicePlacer struct {
	svc *orderapp.Service
}

func NewOrderServicePlacer(svc *orderapp.Service) *OrderServicePlacer {
	return &OrderServicePlacer{svc: svc}
}

func (p *OrderServicePlacer) Place(ctx context.Context, req checkoutapp.OrderRequest) (string, error) {
	items := make([]orderdomain.Item, len(req.Lines))
	for i, line := range req.Lines {
		items[i] = orderdomain.Item{
			ProductID:       line.ProductID,
			ProductName:     line.Name,
			ProductImage:    line.Image,
			Quantity:        line.Quantity,
			PriceAtPurchase: line.UnitPrice,
		}
	}

	order, err := p.svc.CreateOrder(ctx, orderapp.Draft{
		UserID:        req.UserID,
		Items:         items,
		Subtotal:      req.Totals.Subtotal,
		Tax:           req.Totals.Tax,
		Shipping:      req.Totals.Shipping,
		Total:         req.Totals.Total,
		PaymentMethod: req.PaymentMethod,
		ShippingAddress: orderdomain.Address{
			Street:  req.ShippingAddress.Street,
			City:    req.ShippingAddress.City,
			State:   req.ShippingAddress.State,
			ZipCode: req.ShippingAddress.ZipCode,
			Country: req.ShippingAddress.Country,
		},
	})
	if err != nil {
		return "", err
	}
	return order.ID, nil
}
