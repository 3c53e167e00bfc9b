package analytics

import "time"

// --------------------------------------------------
// MENU MATRIX (popularity x profitability)
// --------------------------------------------------

type MatrixThresholds struct {
	PopularityQty        float64 `json:"popularity_qty"`
	ProfitabilityPerDish float64 `json:"profitability_per_dish"`
}

// MatrixItem classifies one dish: 1 = popular & profitable,
// 2 = popular only, 3 = profitable only, 4 = neither.
type MatrixItem struct {
	DishID        int64   `json:"dish_id"`
	Name          string  `json:"name"`
	Qty           int     `json:"qty"`
	Revenue       float64 `json:"revenue"`
	CostPerDish   float64 `json:"cost_per_dish"`
	ProfitPerDish float64 `json:"profit_per_dish"`
	Profit        float64 `json:"profit"`
	Category      int     `json:"category"`
}

type MenuMatrix struct {
	Thresholds MatrixThresholds `json:"thresholds"`
	Items      []MatrixItem     `json:"items"`
}

type CategoryItem struct {
	MatrixItem
	Percentage float64 `json:"percentage"`
}

type MatrixCategory struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Color        string         `json:"color"`
	Items        []CategoryItem `json:"items"`
	TotalQty     int            `json:"total_qty"`
	TotalRevenue float64        `json:"total_revenue"`
	Percentage   float64        `json:"percentage"`
}

type MenuMatrixByCategory struct {
	Thresholds MatrixThresholds        `json:"thresholds"`
	TotalSales int                     `json:"total_sales"`
	Categories map[int]*MatrixCategory `json:"categories"`
}

// --------------------------------------------------
// PERISHABLES / PRICES / TRAFFIC / BREAKEVEN
// --------------------------------------------------

type PerishableAlert struct {
	IngredientID           int64     `json:"ingredient_id"`
	Ingredient             string    `json:"ingredient"`
	Unit                   string    `json:"unit"`
	BatchID                int64     `json:"batch_id"`
	Quantity               float64   `json:"quantity"`
	ExpiresAt              time.Time `json:"expires_at"`
	ForecastUseUntilExpiry float64   `json:"forecast_use_until_expiry"`
}

type PriceTrend struct {
	ID                   int64      `json:"id"`
	IngredientID         int64      `json:"ingredient_id"`
	Ingredient           string     `json:"ingredient"`
	Unit                 string     `json:"unit"`
	SupplierID           int64      `json:"supplier_id"`
	Supplier             string     `json:"supplier"`
	Price                float64    `json:"price"`
	PurchaseUnitQuantity float64    `json:"purchase_unit_quantity"`
	PurchaseUnit         *string    `json:"purchase_unit"`
	ValidFrom            time.Time  `json:"valid_from"`
	ValidTo              *time.Time `json:"valid_to"`
}

type TrafficBucket struct {
	Weekday int     `json:"weekday"`
	Hour    int     `json:"hour"`
	Revenue float64 `json:"revenue"`
	Sales   int     `json:"sales"`
}

type Breakeven struct {
	Date      string  `json:"date"`
	Breakeven float64 `json:"breakeven"`
	Revenue   float64 `json:"revenue"`
	Gap       float64 `json:"gap"`
}

// --------------------------------------------------
// READ-MODEL ROWS SUPPLIED BY THE REPOSITORY
// --------------------------------------------------

type DishSales struct {
	Qty     int
	Revenue float64
}

type RecipeUsage struct {
	IngredientID int64
	Quantity     float64
}

type DishWithRecipe struct {
	ID    int64
	Name  string
	Price float64
	Items []RecipeUsage
}

type ExpiringBatch struct {
	BatchID      int64
	IngredientID int64
	Ingredient   string
	Unit         string
	Quantity     float64
	ExpiresAt    time.Time
}
