package supplier

import (
	"fmt"
	"net/http"

	"github.com/PHPdro/menu-engineering-api/internal/core"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// SUPPLIERS
// --------------------------------------------------

func (h *Handler) CreateSupplier(c *gin.Context) {
	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sup, err := h.service.CreateSupplier(c.Request.Context(), req)
	if err != nil {
		core.HTTPError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sup)
}

func (h *Handler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.service.ListSuppliers(c.Request.Context())
	if err != nil {
		core.HTTPError(c, err)
		return
	}
	if suppliers == nil {
		suppliers = []*Supplier{}
	}

	c.JSON(http.StatusOK, suppliers)
}

func (h *Handler) GetSupplier(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	sup, err := h.service.GetSupplier(c.Request.Context(), id)
	if err != nil {
		core.HTTPError(c, err, ErrSupplierNotFound)
		return
	}

	c.JSON(http.StatusOK, sup)
}

func (h *Handler) UpdateSupplier(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sup, err := h.service.UpdateSupplier(c.Request.Context(), id, req)
	if err != nil {
		core.HTTPError(c, err, ErrSupplierNotFound)
		return
	}

	c.JSON(http.StatusOK, sup)
}

func (h *Handler) DeleteSupplier(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteSupplier(c.Request.Context(), id); err != nil {
		core.HTTPError(c, err, ErrSupplierNotFound)
		return
	}

	c.Status(http.StatusNoContent)
}

// --------------------------------------------------
// INGREDIENT PRICES
// --------------------------------------------------

func (h *Handler) CreatePrice(c *gin.Context) {
	var req PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	price, err := h.service.CreatePrice(c.Request.Context(), req)
	if err != nil {
		core.HTTPError(c, err, ErrSupplierNotFound)
		return
	}

	c.JSON(http.StatusCreated, price)
}

func (h *Handler) ListPrices(c *gin.Context) {
	var ingredientID *int64
	if raw := c.Query("ingredient_id"); raw != "" {
		var id int64
		if _, err := fmt.Sscanf(raw, "%d", &id); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient_id"})
			return
		}
		ingredientID = &id
	}

	prices, err := h.service.ListPrices(c.Request.Context(), ingredientID)
	if err != nil {
		core.HTTPError(c, err)
		return
	}
	if prices == nil {
		prices = []*IngredientPrice{}
	}

	c.JSON(http.StatusOK, prices)
}

func (h *Handler) GetPrice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	price, err := h.service.GetPrice(c.Request.Context(), id)
	if err != nil {
		core.HTTPError(c, err, ErrPriceNotFound)
		return
	}

	c.JSON(http.StatusOK, price)
}

func (h *Handler) UpdatePrice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	price, err := h.service.UpdatePrice(c.Request.Context(), id, req)
	if err != nil {
		core.HTTPError(c, err, ErrPriceNotFound)
		return
	}

	c.JSON(http.StatusOK, price)
}

func (h *Handler) DeletePrice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.DeletePrice(c.Request.Context(), id); err != nil {
		core.HTTPError(c, err, ErrPriceNotFound)
		return
	}

	c.Status(http.StatusNoContent)
}

func idParam(c *gin.Context) (int64, bool) {
	var id int64
	if _, err := fmt.Sscanf(c.Param("id"), "%d", &id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
