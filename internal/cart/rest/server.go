package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yardsale/storefront/internal/cart/app"
	"github.com/yardsale/storefront/internal/cart/domain"
)

// SnapshotSource resolves a product id to the snapshot the cart captures.
// The second return reports whether the product exists.
type SnapshotSource interface {
	Snapshot(ctx context.Context, productID string) (domain.ProductSnapshot, bool, error)
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// Quantity is a pointer so an explicit 0 (remove) survives binding.
type setQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type cartResponse struct {
	Outcome   string            `json:"outcome,omitempty"`
	Items     []domain.LineItem `json:"items"`
	IsOpen    bool              `json:"isOpen"`
	ItemCount int               `json:"itemCount"`
	Subtotal  float64           `json:"subtotal"`
	Tax       float64           `json:"tax"`
	Shipping  float64           `json:"shipping"`
	Total     float64           `json:"total"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type Handler struct {
	store    *app.Store
	products SnapshotSource
}

func NewHandler(store *app.Store, products SnapshotSource) *Handler {
	return &Handler{store: store, products: products}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/cart", h.getCart)
	r.POST("/cart/items", h.addItem)
	r.PUT("/cart/items/:productId", h.setQuantity)
	r.DELETE("/cart/items/:productId", h.removeItem)
	r.DELETE("/cart", h.clearCart)
	r.POST("/cart/toggle", h.toggleCart)
	r.POST("/cart/open", h.openCart)
	r.POST("/cart/close", h.closeCart)
}

func (h *Handler) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.snapshot(""))
}

func (h *Handler) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	snap, ok, err := h.products.Snapshot(c.Request.Context(), req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadGateway, errorResponse{
			Error:   "CATALOG_UNAVAILABLE",
			Message: "Could not look up product",
			Details: err.Error(),
		})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{
			Error:   "NOT_FOUND",
			Message: "Product not found",
		})
		return
	}

	outcome := h.store.AddItem(c.Request.Context(), snap)
	h.respond(c, outcome)
}

func (h *Handler) setQuantity(c *gin.Context) {
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	outcome := h.store.SetQuantity(c.Request.Context(), c.Param("productId"), *req.Quantity)
	h.respond(c, outcome)
}

func (h *Handler) removeItem(c *gin.Context) {
	outcome := h.store.RemoveItem(c.Request.Context(), c.Param("productId"))
	h.respond(c, outcome)
}

func (h *Handler) clearCart(c *gin.Context) {
	outcome := h.store.Clear(c.Request.Context())
	h.respond(c, outcome)
}

func (h *Handler) toggleCart(c *gin.Context) {
	h.store.Toggle()
	c.JSON(http.StatusOK, h.snapshot(""))
}

func (h *Handler) openCart(c *gin.Context) {
	h.store.Open()
	c.JSON(http.StatusOK, h.snapshot(""))
}

func (h *Handler) closeCart(c *gin.Context) {
	h.store.Close()
	c.JSON(http.StatusOK, h.snapshot(""))
}

func (h *Handler) respond(c *gin.Context, outcome app.Outcome) {
	switch outcome {
	case app.OutcomeRejectedInsufficientStock:
		c.JSON(http.StatusConflict, errorResponse{
			Error:   "INSUFFICIENT_STOCK",
			Message: "Requested quantity exceeds available stock",
		})
	case app.OutcomeRejectedNotFound:
		c.JSON(http.StatusNotFound, errorResponse{
			Error:   "NOT_FOUND",
			Message: "Item is not in the cart",
		})
	default:
		c.JSON(http.StatusOK, h.snapshot(outcome.String()))
	}
}

func (h *Handler) snapshot(outcome string) cartResponse {
	items := h.store.Items()
	return cartResponse{
		Outcome:   outcome,
		Items:     items,
		IsOpen:    h.store.IsOpen(),
		ItemCount: domain.ItemCount(items),
		Subtotal:  domain.Subtotal(items),
		Tax:       domain.Tax(items),
		Shipping:  domain.Shipping(items),
		Total:     domain.Total(items),
	}
}
