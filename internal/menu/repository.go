package menu

import "context"

// Repository defines all database operations for dishes and recipes
type Repository interface {

	// -------------------------------
	// Dishes
	// -------------------------------

	CreateDish(ctx context.Context, d *Dish) error
	ListDishes(ctx context.Context) ([]*Dish, error)
	GetDish(ctx context.Context, id int64) (*Dish, error)
	UpdateDish(ctx context.Context, d *Dish) error
	DeleteDish(ctx context.Context, id int64) error

	// -------------------------------
	// Recipes
	// -------------------------------

	// CreateRecipe inserts the recipe; when active it deactivates the
	// dish's sibling recipes in the same transaction
	CreateRecipe(ctx context.Context, r *Recipe) error

	ListRecipes(ctx context.Context, dishID *int64) ([]*Recipe, error)
	GetRecipe(ctx context.Context, id int64) (*Recipe, error)

	// UpdateRecipe persists version/active changes; activation
	// deactivates siblings atomically
	UpdateRecipe(ctx context.Context, r *Recipe) error

	DeleteRecipe(ctx context.Context, id int64) error

	// -------------------------------
	// Recipe items
	// -------------------------------

	CreateRecipeItem(ctx context.Context, item *RecipeItem) error
	ListRecipeItems(ctx context.Context, recipeID *int64) ([]*RecipeItem, error)
	GetRecipeItem(ctx context.Context, id int64) (*RecipeItem, error)
	UpdateRecipeItem(ctx context.Context, item *RecipeItem) error
	DeleteRecipeItem(ctx context.Context, id int64) error
}
