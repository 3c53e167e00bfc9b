package menu

import (
	"context"
	"errors"
	"testing"

	"github.com/PHPdro/menu-engineering-api/internal/core"
	"github.com/shopspring/decimal"
)

type mockRepository struct {
	dishes  map[int64]*Dish
	recipes map[int64]*Recipe

	createdRecipe *Recipe
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		dishes:  make(map[int64]*Dish),
		recipes: make(map[int64]*Recipe),
	}
}

func (m *mockRepository) CreateDish(ctx context.Context, d *Dish) error {
	d.ID = int64(len(m.dishes) + 1)
	m.dishes[d.ID] = d
	return nil
}

func (m *mockRepository) ListDishes(ctx context.Context) ([]*Dish, error) { return nil, nil }

func (m *mockRepository) GetDish(ctx context.Context, id int64) (*Dish, error) {
	d, ok := m.dishes[id]
	if !ok {
		return nil, ErrDishNotFound
	}
	return d, nil
}

func (m *mockRepository) UpdateDish(ctx context.Context, d *Dish) error  { return nil }
func (m *mockRepository) DeleteDish(ctx context.Context, id int64) error { return nil }

func (m *mockRepository) CreateRecipe(ctx context.Context, r *Recipe) error {
	r.ID = int64(len(m.recipes) + 1)
	if r.IsActive {
		for _, other := range m.recipes {
			if other.DishID == r.DishID {
				other.IsActive = false
			}
		}
	}
	m.recipes[r.ID] = r
	m.createdRecipe = r
	return nil
}

func (m *mockRepository) ListRecipes(ctx context.Context, dishID *int64) ([]*Recipe, error) {
	return nil, nil
}

func (m *mockRepository) GetRecipe(ctx context.Context, id int64) (*Recipe, error) {
	r, ok := m.recipes[id]
	if !ok {
		return nil, ErrRecipeNotFound
	}
	return r, nil
}

func (m *mockRepository) UpdateRecipe(ctx context.Context, r *Recipe) error {
	if r.IsActive {
		for _, other := range m.recipes {
			if other.DishID == r.DishID && other.ID != r.ID {
				other.IsActive = false
			}
		}
	}
	return nil
}

func (m *mockRepository) DeleteRecipe(ctx context.Context, id int64) error { return nil }

func (m *mockRepository) CreateRecipeItem(ctx context.Context, item *RecipeItem) error { return nil }
func (m *mockRepository) ListRecipeItems(ctx context.Context, recipeID *int64) ([]*RecipeItem, error) {
	return nil, nil
}
func (m *mockRepository) GetRecipeItem(ctx context.Context, id int64) (*RecipeItem, error) {
	return nil, ErrRecipeItemNotFound
}
func (m *mockRepository) UpdateRecipeItem(ctx context.Context, item *RecipeItem) error { return nil }
func (m *mockRepository) DeleteRecipeItem(ctx context.Context, id int64) error         { return nil }

func TestCreateDish_DefaultsAndValidation(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)

	d, err := service.CreateDish(context.Background(), DishRequest{Name: "Moqueca", Price: 79.9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.IsActive {
		t.Error("dish should default to active")
	}
	if !d.Price.Equal(decimal.NewFromFloat(79.9)) {
		t.Errorf("price = %v, want 79.9", d.Price)
	}

	if _, err := service.CreateDish(context.Background(), DishRequest{Price: 10}); !core.IsValidation(err) {
		t.Errorf("expected validation error for missing name, got %v", err)
	}
	if _, err := service.CreateDish(context.Background(), DishRequest{Name: "X", Price: -1}); !core.IsValidation(err) {
		t.Errorf("expected validation error for negative price, got %v", err)
	}
}

func TestCreateRecipe_RequiresExistingDish(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)

	_, err := service.CreateRecipe(context.Background(), RecipeRequest{DishID: 42})
	if !errors.Is(err, ErrDishNotFound) {
		t.Errorf("expected ErrDishNotFound, got %v", err)
	}
}

func TestCreateRecipe_ActivationDeactivatesSiblings(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)

	d, err := service.CreateDish(context.Background(), DishRequest{Name: "Moqueca", Price: 79.9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := service.CreateRecipe(context.Background(), RecipeRequest{DishID: d.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Version != "v1" {
		t.Errorf("version = %q, want default v1", first.Version)
	}
	if !first.IsActive {
		t.Error("recipe should default to active")
	}

	second, err := service.CreateRecipe(context.Background(), RecipeRequest{DishID: d.ID, Version: "v2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.IsActive {
		t.Error("new recipe should be active")
	}
	if repo.recipes[first.ID].IsActive {
		t.Error("previous recipe should have been deactivated")
	}
}

func TestCreateRecipeItem_Validation(t *testing.T) {
	service := NewService(newMockRepository())

	cases := []struct {
		name string
		req  RecipeItemRequest
	}{
		{"missing recipe_id", RecipeItemRequest{IngredientID: 1, Quantity: 1}},
		{"missing ingredient_id", RecipeItemRequest{RecipeID: 1, Quantity: 1}},
		{"zero quantity", RecipeItemRequest{RecipeID: 1, IngredientID: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.CreateRecipeItem(context.Background(), tc.req); !core.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}
