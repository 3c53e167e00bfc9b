package menu

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Dish struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	SKU       *string         `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Recipe is a versioned bill of materials for a dish. At most one recipe
// per dish is active; activating one deactivates its siblings.
type Recipe struct {
	ID        int64     `json:"id"`
	DishID    int64     `json:"dish_id"`
	Version   string    `json:"version"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Dish  *Dish        `json:"dish,omitempty"`
	Items []RecipeItem `json:"items,omitempty"`
}

// RecipeItem maps one ingredient to the quantity required per single unit
// of the dish, in the ingredient's base unit.
type RecipeItem struct {
	ID           int64     `json:"id"`
	RecipeID     int64     `json:"recipe_id"`
	IngredientID int64     `json:"ingredient_id"`
	Quantity     float64   `json:"quantity"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NoActiveRecipeError aborts a sale when a sold dish has no active bill
// of materials.
type NoActiveRecipeError struct {
	DishID   int64
	DishName string
}

func (e *NoActiveRecipeError) Error() string {
	name := e.DishName
	if name == "" {
		name = fmt.Sprintf("#%d", e.DishID)
	}
	return fmt.Sprintf("dish %s does not have an active recipe", name)
}
