package menu

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
// DISHES
// --------------------------------------------------

func (h *Handler) CreateDish(c *gin.Context) {
	var req DishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	dish, err := h.service.CreateDish(c.Request.Context(), req)
	if err != nil {
		core.HTTPError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dish)
}

func (h *Handler) ListDishes(c *gin.Context) {
	dishes, err := h.service.ListDishes(c.Request.Context())
	if err != nil {
		core.HTTPError(c, err)
		return
	}
	if dishes == nil {
		dishes = []*Dish{}
	}

	c.JSON(http.StatusOK, dishes)
}

func (h *Handler) GetDish(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	dish, err := h.service.GetDish(c.Request.Context(), id)
	if err != nil {
		core.HTTPError(c, err, ErrDishNotFound)
		return
	}

	c.JSON(http.StatusOK, dish)
}

func (h *Handler) UpdateDish(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req DishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	dish, err := h.service.UpdateDish(c.Request.Context(), id, req)
	if err != nil {
		core.HTTPError(c, err, ErrDishNotFound)
		return
	}

	c.JSON(http.StatusOK, dish)
}

func (h *Handler) DeleteDish(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteDish(c.Request.Context(), id); err != nil {
		core.HTTPError(c, err, ErrDishNotFound)
		return
	}

	c.Status(http.StatusNoContent)
}

// --------------------------------------------------
// RECIPES
// --------------------------------------------------

func (h *Handler) CreateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recipe, err := h.service.CreateRecipe(c.Request.Context(), req)
	if err != nil {
		core.HTTPError(c, err, ErrDishNotFound)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *Handler) ListRecipes(c *gin.Context) {
	var dishID *int64
	if raw := c.Query("dish_id"); raw != "" {
		var id int64
		if _, err := fmt.Sscanf(raw, "%d", &id); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dish_id"})
			return
		}
		dishID = &id
	}

	recipes, err := h.service.ListRecipes(c.Request.Context(), dishID)
	if err != nil {
		core.HTTPError(c, err)
		return
	}
	if recipes == nil {
		recipes = []*Recipe{}
	}

	c.JSON(http.StatusOK, recipes)
}

func (h *Handler) GetRecipe(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	recipe, err := h.service.GetRecipe(c.Request.Context(), id)
	if err != nil {
		core.HTTPError(c, err, ErrRecipeNotFound)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *Handler) UpdateRecipe(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recipe, err := h.service.UpdateRecipe(c.Request.Context(), id, req)
	if err != nil {
		core.HTTPError(c, err, ErrRecipeNotFound)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *Handler) DeleteRecipe(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteRecipe(c.Request.Context(), id); err != nil {
		core.HTTPError(c, err, ErrRecipeNotFound)
		return
	}

	c.Status(http.StatusNoContent)
}

// --------------------------------------------------
// RECIPE ITEMS
// --------------------------------------------------

func (h *Handler) CreateRecipeItem(c *gin.Context) {
	var req RecipeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.service.CreateRecipeItem(c.Request.Context(), req)
	if err != nil {
		core.HTTPError(c, err, ErrRecipeNotFound)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *Handler) ListRecipeItems(c *gin.Context) {
	var recipeID *int64
	if raw := c.Query("recipe_id"); raw != "" {
		var id int64
		if _, err := fmt.Sscanf(raw, "%d", &id); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe_id"})
			return
		}
		recipeID = &id
	}

	items, err := h.service.ListRecipeItems(c.Request.Context(), recipeID)
	if err != nil {
		core.HTTPError(c, err)
		return
	}
	if items == nil {
		items = []*RecipeItem{}
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetRecipeItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	item, err := h.service.GetRecipeItem(c.Request.Context(), id)
	if err != nil {
		core.HTTPError(c, err, ErrRecipeItemNotFound)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) UpdateRecipeItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req RecipeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.service.UpdateRecipeItem(c.Request.Context(), id, req)
	if err != nil {
		core.HTTPError(c, err, ErrRecipeItemNotFound)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteRecipeItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteRecipeItem(c.Request.Context(), id); err != nil {
		core.HTTPError(c, err, ErrRecipeItemNotFound)
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
