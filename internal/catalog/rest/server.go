package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yardsale/storefront/internal/catalog/app"
)

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
	r.GET("/products", h.listProducts)
	r.GET("/products/:id", h.getProduct)
	r.GET("/products/:id/related", h.relatedProducts)
}

func (h *Handler) listProducts(c *gin.Context) {
	// featured=true short-circuits into the featured listing, the shape
	// the storefront home page requests.
	if c.Query("featured") == "true" {
		limit, _ := strconv.Atoi(c.Query("limit"))
		products, err := h.svc.FeaturedProducts(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, errorResponse{
				Error:   "INTERNAL",
				Message: "Could not list featured products",
			})
			return
		}
		c.JSON(http.StatusOK, products)
		return
	}

	f := app.Filters{
		Search:    c.Query("q"),
		Category:  c.Query("category"),
		Condition: c.Query("condition"),
		SortBy:    c.Query("sortBy"),
	}
	if v := c.Query("minPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{
				Error:   "INVALID_INPUT",
				Message: "minPrice must be a number",
			})
			return
		}
		f.MinPrice = &p
	}
	if v := c.Query("maxPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{
				Error:   "INVALID_INPUT",
				Message: "maxPrice must be a number",
			})
			return
		}
		f.MaxPrice = &p
	}

	products, err := h.svc.ListProducts(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{
			Error:   "INTERNAL",
			Message: "Could not list products",
		})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.svc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) relatedProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	products, err := h.svc.RelatedProducts(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{
			Error:   "NOT_FOUND",
			Message: "Product not found",
		})
	case errors.Is(err, app.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid product id",
		})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{
			Error:   "INTERNAL",
			Message: "Could not load product",
		})
	}
}
