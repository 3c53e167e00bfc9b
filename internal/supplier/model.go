package supplier

import (
	"time"

	"github.com/shopspring/decimal"
)

type Supplier struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ContactName *string   `json:"contact_name"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IngredientPrice is one row of the append-only supplier price history.
// Price covers PurchaseUnitQuantity of the ingredient's base unit and is
// valid from ValidFrom until ValidTo (open-ended when nil).
type IngredientPrice struct {
	ID                   int64           `json:"id"`
	IngredientID         int64           `json:"ingredient_id"`
	SupplierID           int64           `json:"supplier_id"`
	Price                decimal.Decimal `json:"price"`
	PurchaseUnitQuantity float64         `json:"purchase_unit_quantity"`
	PurchaseUnit         *string         `json:"purchase_unit"`
	ValidFrom            time.Time       `json:"valid_from"`
	ValidTo              *time.Time      `json:"valid_to"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}
