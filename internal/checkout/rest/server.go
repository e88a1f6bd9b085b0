package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/yardsale/storefront/internal/catalog/app"
	"github.com/yardsale/storefront/internal/checkout/app"
)

type addressRequest struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	ZipCode string `json:"zipCode" binding:"required"`
	Country string `json:"country" binding:"required"`
}

type checkoutRequest struct {
	UserID          string         `json:"userId" binding:"required"`
	PaymentMethod   string         `json:"paymentMethod" binding:"required"`
	ShippingAddress addressRequest `json:"shippingAddress" binding:"required"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r gin.IRouter) {
	r.POST("/checkout", h.checkout)
}

func (h *Handler) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	receipt, err := h.svc.PlaceOrder(c.Request.Context(), req.UserID, req.PaymentMethod, app.Address{
		Street:  req.ShippingAddress.Street,
		City:    req.ShippingAddress.City,
		State:   req.ShippingAddress.State,
		ZipCode: req.ShippingAddress.ZipCode,
		Country: req.ShippingAddress.Country,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, receipt)
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "EMPTY_CART",
			Message: "Cannot check out an empty cart",
		})
	case errors.Is(err, app.ErrInsufficientStock):
		c.JSON(http.StatusConflict, errorResponse{
			Error:   "INSUFFICIENT_STOCK",
			Message: "A cart item exceeds the available stock",
			Details: err.Error(),
		})
	case errors.Is(err, catalogapp.ErrNotFound):
		c.JSON(http.StatusConflict, errorResponse{
			Error:   "PRODUCT_UNAVAILABLE",
			Message: "A cart item is no longer in the catalog",
			Details: err.Error(),
		})
	case errors.Is(err, app.ErrPaymentDeclined):
		c.JSON(http.StatusPaymentRequired, errorResponse{
			Error:   "PAYMENT_DECLINED",
			Message: "Payment was declined",
		})
	case errors.Is(err, app.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid checkout request",
			Details: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{
			Error:   "INTERNAL",
			Message: "Checkout failed",
		})
	}
}
