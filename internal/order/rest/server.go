package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yardsale/storefront/internal/order/app"
	"github.com/yardsale/storefront/internal/order/domain"
)

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
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
	r.GET("/orders", h.listOrders)
	r.GET("/orders/:id", h.getOrder)
	r.PATCH("/orders/:id/status", h.updateStatus)
	r.POST("/orders/:id/cancel", h.cancelOrder)
}

func (h *Handler) listOrders(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "INVALID_INPUT",
			Message: "userId query parameter is required",
		})
		return
	}

	orders, err := h.svc.ListOrdersByUser(c.Request.Context(), userID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) getOrder(c *gin.Context) {
	order, err := h.svc.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) updateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	order, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), domain.Status(req.Status))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) cancelOrder(c *gin.Context) {
	order, err := h.svc.CancelOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{
			Error:   "NOT_FOUND",
			Message: "Order not found",
		})
	case errors.Is(err, app.ErrInvalidTransition):
		c.JSON(http.StatusConflict, errorResponse{
			Error:   "INVALID_TRANSITION",
			Message: "Order status cannot change that way",
		})
	case errors.Is(err, app.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid order request",
		})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{
			Error:   "INTERNAL",
			Message: "Could not process order request",
		})
	}
}
