package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient is a purchasable stock item tracked in its base unit.
// Identity is (name, unit).
type Ingredient struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Unit          string    `json:"unit"`
	IsPerishable  bool      `json:"is_perishable"`
	ShelfLifeDays *int      `json:"shelf_life_days"`
	MinStock      float64   `json:"min_stock"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Batch is one delivery lot of an ingredient. Quantity is decremented by
// sales and never goes negative; drained batches stay as inert records.
type Batch struct {
	ID           int64           `json:"id"`
	IngredientID int64           `json:"ingredient_id"`
	Quantity     float64         `json:"quantity"`
	ReceivedAt   time.Time       `json:"received_at"`
	ExpiresAt    *time.Time      `json:"expires_at"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	Ingredient *Ingredient `json:"ingredient,omitempty"`
}
