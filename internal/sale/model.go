package sale

import (
	"time"

	"github.com/PHPdro/menu-engineering-api/internal/menu"
	"github.com/shopspring/decimal"
)

// Sale is immutable once recorded; discount and tax are placeholders
// that stay zero.
type Sale struct {
	ID        int64           `json:"id"`
	SoldAt    time.Time       `json:"sold_at"`
	Channel   string          `json:"channel"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Items []SaleItem `json:"items"`
}

// SaleItem captures the unit price at sale time, independent of later
// dish price changes.
type SaleItem struct {
	ID         int64           `json:"id"`
	SaleID     int64           `json:"sale_id"`
	DishID     int64           `json:"dish_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`

	Dish *menu.Dish `json:"dish,omitempty"`
}

// Line is one requested (dish, quantity) pair. UnitPrice overrides the
// dish's current selling price when set.
type Line struct {
	DishID    int64
	Quantity  int
	UnitPrice *decimal.Decimal
}
