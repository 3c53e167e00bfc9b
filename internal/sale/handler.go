package sale

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/PHPdro/menu-engineering-api/internal/core"
	"github.com/PHPdro/menu-engineering-api/internal/inventory"
	"github.com/PHPdro/menu-engineering-api/internal/menu"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /sales
// --------------------------------------------------

func (h *Handler) CreateSale(c *gin.Context) {
	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.service.RecordSale(c.Request.Context(), req)
	if err != nil {
		// Recipe and stock failures are user-correctable, not server faults
		var noRecipe *menu.NoActiveRecipeError
		var noStock *inventory.InsufficientStockError
		if errors.As(err, &noRecipe) || errors.As(err, &noStock) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		core.HTTPError(c, err, menu.ErrDishNotFound)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// --------------------------------------------------
// GET /sales
// --------------------------------------------------

func (h *Handler) ListSales(c *gin.Context) {
	sales, err := h.service.ListSales(c.Request.Context())
	if err != nil {
		core.HTTPError(c, err)
		return
	}
	if sales == nil {
		sales = []*Sale{}
	}

	c.JSON(http.StatusOK, sales)
}

// --------------------------------------------------
// GET /sales/:id
// --------------------------------------------------

func (h *Handler) GetSale(c *gin.Context) {
	var id int64
	if _, err := fmt.Sscanf(c.Param("id"), "%d", &id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	s, err := h.service.GetSale(c.Request.Context(), id)
	if err != nil {
		core.HTTPError(c, err, ErrSaleNotFound)
		return
	}

	c.JSON(http.StatusOK, s)
}
