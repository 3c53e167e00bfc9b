package inventory

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
// INGREDIENTS
// --------------------------------------------------

func (h *Handler) CreateIngredient(c *gin.Context) {
	var req CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ing, err := h.service.CreateIngredient(c.Request.Context(), req)
	if err != nil {
		core.HTTPError(c, err, ErrIngredientNotFound)
		return
	}

	c.JSON(http.StatusCreated, ing)
}

func (h *Handler) ListIngredients(c *gin.Context) {
	ingredients, err := h.service.ListIngredients(c.Request.Context())
	if err != nil {
		core.HTTPError(c, err)
		return
	}
	if ingredients == nil {
		ingredients = []*Ingredient{}
	}

	c.JSON(http.StatusOK, ingredients)
}

func (h *Handler) GetIngredient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ing, err := h.service.GetIngredient(c.Request.Context(), id)
	if err != nil {
		core.HTTPError(c, err, ErrIngredientNotFound)
		return
	}

	c.JSON(http.StatusOK, ing)
}

func (h *Handler) UpdateIngredient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ing, err := h.service.UpdateIngredient(c.Request.Context(), id, req)
	if err != nil {
		core.HTTPError(c, err, ErrIngredientNotFound)
		return
	}

	c.JSON(http.StatusOK, ing)
}

func (h *Handler) DeleteIngredient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteIngredient(c.Request.Context(), id); err != nil {
		core.HTTPError(c, err, ErrIngredientNotFound)
		return
	}

	c.Status(http.StatusNoContent)
}

// --------------------------------------------------
// BATCHES
// --------------------------------------------------

func (h *Handler) CreateBatch(c *gin.Context) {
	var req CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	batch, err := h.service.CreateBatch(c.Request.Context(), req)
	if err != nil {
		core.HTTPError(c, err, ErrIngredientNotFound)
		return
	}

	c.JSON(http.StatusCreated, batch)
}

func (h *Handler) ListBatches(c *gin.Context) {
	var ingredientID *int64
	if raw := c.Query("ingredient_id"); raw != "" {
		var id int64
		if _, err := fmt.Sscanf(raw, "%d", &id); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient_id"})
			return
		}
		ingredientID = &id
	}

	batches, err := h.service.ListBatches(c.Request.Context(), ingredientID)
	if err != nil {
		core.HTTPError(c, err)
		return
	}
	if batches == nil {
		batches = []*Batch{}
	}

	c.JSON(http.StatusOK, batches)
}

func (h *Handler) GetBatch(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	batch, err := h.service.GetBatch(c.Request.Context(), id)
	if err != nil {
		core.HTTPError(c, err, ErrBatchNotFound)
		return
	}

	c.JSON(http.StatusOK, batch)
}

func (h *Handler) UpdateBatch(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	batch, err := h.service.UpdateBatch(c.Request.Context(), id, req)
	if err != nil {
		core.HTTPError(c, err, ErrBatchNotFound)
		return
	}

	c.JSON(http.StatusOK, batch)
}

func (h *Handler) DeleteBatch(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteBatch(c.Request.Context(), id); err != nil {
		core.HTTPError(c, err, ErrBatchNotFound)
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
