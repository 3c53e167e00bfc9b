package menu

import (
	"context"

	"github.com/PHPdro/menu-engineering-api/internal/core"
	"github.com/shopspring/decimal"
)

type DishRequest struct {
	Name     string  `json:"name"`
	SKU      *string `json:"sku"`
	Price    float64 `json:"price"`
	IsActive *bool   `json:"is_active"`
}

type RecipeRequest struct {
	DishID   int64  `json:"dish_id"`
	Version  string `json:"version"`
	IsActive *bool  `json:"is_active"`
}

type RecipeItemRequest struct {
	RecipeID     int64   `json:"recipe_id"`
	IngredientID int64   `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
	Notes        *string `json:"notes"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// DISHES
// --------------------------------------------------

func (s *Service) CreateDish(ctx context.Context, req DishRequest) (*Dish, error) {
	if req.Name == "" {
		return nil, core.Validation("name is required")
	}
	if req.Price < 0 {
		return nil, core.Validation("price must not be negative")
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	d := &Dish{
		Name:     req.Name,
		SKU:      req.SKU,
		Price:    decimal.NewFromFloat(req.Price),
		IsActive: active,
	}
	if err := s.repo.CreateDish(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) ListDishes(ctx context.Context) ([]*Dish, error) {
	return s.repo.ListDishes(ctx)
}

func (s *Service) GetDish(ctx context.Context, id int64) (*Dish, error) {
	return s.repo.GetDish(ctx, id)
}

func (s *Service) UpdateDish(ctx context.Context, id int64, req DishRequest) (*Dish, error) {
	if req.Name == "" {
		return nil, core.Validation("name is required")
	}
	if req.Price < 0 {
		return nil, core.Validation("price must not be negative")
	}

	d, err := s.repo.GetDish(ctx, id)
	if err != nil {
		return nil, err
	}

	d.Name = req.Name
	d.SKU = req.SKU
	d.Price = decimal.NewFromFloat(req.Price)
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateDish(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) DeleteDish(ctx context.Context, id int64) error {
	return s.repo.DeleteDish(ctx, id)
}

// --------------------------------------------------
// RECIPES
// --------------------------------------------------

func (s *Service) CreateRecipe(ctx context.Context, req RecipeRequest) (*Recipe, error) {
	if req.DishID == 0 {
		return nil, core.Validation("dish_id is required")
	}

	// Dish must exist before hanging a recipe off it
	if _, err := s.repo.GetDish(ctx, req.DishID); err != nil {
		return nil, err
	}

	version := req.Version
	if version == "" {
		version = "v1"
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	rec := &Recipe{
		DishID:   req.DishID,
		Version:  version,
		IsActive: active,
	}
	if err := s.repo.CreateRecipe(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func (s *Service) ListRecipes(ctx context.Context, dishID *int64) ([]*Recipe, error) {
	return s.repo.ListRecipes(ctx, dishID)
}

func (s *Service) GetRecipe(ctx context.Context, id int64) (*Recipe, error) {
	return s.repo.GetRecipe(ctx, id)
}

func (s *Service) UpdateRecipe(ctx context.Context, id int64, req RecipeRequest) (*Recipe, error) {
	rec, err := s.repo.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Version != "" {
		rec.Version = req.Version
	}
	if req.IsActive != nil {
		rec.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateRecipe(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func (s *Service) DeleteRecipe(ctx context.Context, id int64) error {
	return s.repo.DeleteRecipe(ctx, id)
}

// --------------------------------------------------
// RECIPE ITEMS
// --------------------------------------------------

func (s *Service) CreateRecipeItem(ctx context.Context, req RecipeItemRequest) (*RecipeItem, error) {
	if req.RecipeID == 0 {
		return nil, core.Validation("recipe_id is required")
	}
	if req.IngredientID == 0 {
		return nil, core.Validation("ingredient_id is required")
	}
	if req.Quantity <= 0 {
		return nil, core.Validation("quantity must be positive")
	}

	item := &RecipeItem{
		RecipeID:     req.RecipeID,
		IngredientID: req.IngredientID,
		Quantity:     req.Quantity,
		Notes:        req.Notes,
	}
	if err := s.repo.CreateRecipeItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) ListRecipeItems(ctx context.Context, recipeID *int64) ([]*RecipeItem, error) {
	return s.repo.ListRecipeItems(ctx, recipeID)
}

func (s *Service) GetRecipeItem(ctx context.Context, id int64) (*RecipeItem, error) {
	return s.repo.GetRecipeItem(ctx, id)
}

func (s *Service) UpdateRecipeItem(ctx context.Context, id int64, req RecipeItemRequest) (*RecipeItem, error) {
	item, err := s.repo.GetRecipeItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Quantity <= 0 {
		return nil, core.Validation("quantity must be positive")
	}
	item.Quantity = req.Quantity
	item.Notes = req.Notes

	if err := s.repo.UpdateRecipeItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) DeleteRecipeItem(ctx context.Context, id int64) error {
	return s.repo.DeleteRecipeItem(ctx, id)
}
