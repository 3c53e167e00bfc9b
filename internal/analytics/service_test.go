package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/PHPdro/menu-engineering-api/internal/core"
)

type mockRepository struct {
	sales   map[int64]DishSales
	dishes  []DishWithRecipe
	costs   map[int64]float64
	batches []ExpiringBatch
	usage   map[int64]float64
	trends  []PriceTrend
	buckets []TrafficBucket
	revenue float64
}

func (m *mockRepository) SalesByDish(ctx context.Context, start, end time.Time) (map[int64]DishSales, error) {
	return m.sales, nil
}

func (m *mockRepository) DishesWithActiveRecipe(ctx context.Context) ([]DishWithRecipe, error) {
	return m.dishes, nil
}

func (m *mockRepository) LatestUnitCosts(ctx context.Context) (map[int64]float64, error) {
	return m.costs, nil
}

func (m *mockRepository) ExpiringBatches(ctx context.Context, from, to time.Time) ([]ExpiringBatch, error) {
	return m.batches, nil
}

func (m *mockRepository) IngredientUsageSince(ctx context.Context, since time.Time) (map[int64]float64, error) {
	return m.usage, nil
}

func (m *mockRepository) PriceTrends(ctx context.Context, ingredientID *int64) ([]PriceTrend, error) {
	return m.trends, nil
}

func (m *mockRepository) TrafficFlow(ctx context.Context, start, end time.Time) ([]TrafficBucket, error) {
	return m.buckets, nil
}

func (m *mockRepository) RevenueForDate(ctx context.Context, date time.Time) (float64, error) {
	return m.revenue, nil
}

// --------------------------------------------------
// MEDIAN
// --------------------------------------------------

func TestMedian(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{7}, 7},
		{"odd count", []float64{9, 1, 5}, 5},
		{"even count", []float64{0, 2, 5, 9}, 3.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := median(tc.values); got != tc.want {
				t.Errorf("median(%v) = %v, want %v", tc.values, got, tc.want)
			}
		})
	}
}

// --------------------------------------------------
// MENU MATRIX
// --------------------------------------------------

func TestMenuMatrix_ClassifiesQuadrants(t *testing.T) {
	// Two dishes sharing one ingredient at 2.00/unit. Star sells 5 at a
	// fat margin, Dog sells 2 with a thin one.
	repo := &mockRepository{
		sales: map[int64]DishSales{
			1: {Qty: 5, Revenue: 100},
			2: {Qty: 2, Revenue: 12},
		},
		dishes: []DishWithRecipe{
			{ID: 1, Name: "Moqueca", Price: 20, Items: []RecipeUsage{{IngredientID: 10, Quantity: 1}}},
			{ID: 2, Name: "Caldo", Price: 6, Items: []RecipeUsage{{IngredientID: 10, Quantity: 1.5}}},
		},
		costs: map[int64]float64{10: 2},
	}
	service := NewService(repo)

	matrix, err := service.MenuMatrix(context.Background(), time.Now().AddDate(0, 0, -30), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(matrix.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(matrix.Items))
	}

	// medians: qty [2,5] -> 3.5; profit-per-dish [18, 3] -> 10.5
	if matrix.Thresholds.PopularityQty != 3.5 {
		t.Errorf("popularity threshold = %v, want 3.5", matrix.Thresholds.PopularityQty)
	}
	if matrix.Thresholds.ProfitabilityPerDish != 10.5 {
		t.Errorf("profitability threshold = %v, want 10.5", matrix.Thresholds.ProfitabilityPerDish)
	}

	byID := map[int64]MatrixItem{}
	for _, item := range matrix.Items {
		byID[item.DishID] = item
	}

	if byID[1].Category != 1 {
		t.Errorf("dish 1 category = %d, want 1 (popular and profitable)", byID[1].Category)
	}
	if byID[2].Category != 4 {
		t.Errorf("dish 2 category = %d, want 4 (neither)", byID[2].Category)
	}
	if byID[1].CostPerDish != 2 || byID[1].ProfitPerDish != 18 {
		t.Errorf("dish 1 cost/profit = %v/%v, want 2/18", byID[1].CostPerDish, byID[1].ProfitPerDish)
	}
	if byID[1].Profit != 90 {
		t.Errorf("dish 1 total profit = %v, want 90", byID[1].Profit)
	}
}

func TestMenuMatrix_DishWithoutSalesStillListed(t *testing.T) {
	repo := &mockRepository{
		sales: map[int64]DishSales{},
		dishes: []DishWithRecipe{
			{ID: 1, Name: "Moqueca", Price: 20},
		},
		costs: map[int64]float64{},
	}
	service := NewService(repo)

	matrix, err := service.MenuMatrix(context.Background(), time.Now().AddDate(0, 0, -30), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(matrix.Items) != 1 {
		t.Fatalf("expected unsold dish to appear, got %d items", len(matrix.Items))
	}
	if matrix.Items[0].Qty != 0 || matrix.Items[0].Revenue != 0 {
		t.Errorf("unsold dish should have zero qty/revenue, got %d/%v", matrix.Items[0].Qty, matrix.Items[0].Revenue)
	}
}

func TestMenuMatrixByCategory_Percentages(t *testing.T) {
	repo := &mockRepository{
		sales: map[int64]DishSales{
			1: {Qty: 3, Revenue: 60},
			2: {Qty: 1, Revenue: 6},
		},
		dishes: []DishWithRecipe{
			{ID: 1, Name: "Moqueca", Price: 20, Items: []RecipeUsage{{IngredientID: 10, Quantity: 1}}},
			{ID: 2, Name: "Caldo", Price: 6, Items: []RecipeUsage{{IngredientID: 10, Quantity: 1.5}}},
		},
		costs: map[int64]float64{10: 2},
	}
	service := NewService(repo)

	result, err := service.MenuMatrixByCategory(context.Background(), time.Now().AddDate(0, 0, -30), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalSales != 4 {
		t.Errorf("total sales = %d, want 4", result.TotalSales)
	}
	if len(result.Categories) != 4 {
		t.Fatalf("expected all 4 categories present, got %d", len(result.Categories))
	}
	if result.Categories[1].Name != "Estrelas" || result.Categories[4].Name != "Cachorros" {
		t.Errorf("unexpected category names: %q / %q", result.Categories[1].Name, result.Categories[4].Name)
	}

	sum := 0.0
	for _, cat := range result.Categories {
		sum += cat.Percentage
	}
	if sum != 100 {
		t.Errorf("category percentages sum to %v, want 100", sum)
	}
}

func TestMenuMatrixByCategory_NoSalesYieldsZeroPercentages(t *testing.T) {
	repo := &mockRepository{
		sales: map[int64]DishSales{},
		dishes: []DishWithRecipe{
			{ID: 1, Name: "Moqueca", Price: 20},
		},
		costs: map[int64]float64{},
	}
	service := NewService(repo)

	result, err := service.MenuMatrixByCategory(context.Background(), time.Now().AddDate(0, 0, -30), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalSales != 0 {
		t.Errorf("total sales = %d, want 0", result.TotalSales)
	}
	for id, cat := range result.Categories {
		if cat.Percentage != 0 {
			t.Errorf("category %d percentage = %v, want 0", id, cat.Percentage)
		}
	}
}

// --------------------------------------------------
// PERISHABLES
// --------------------------------------------------

func TestPerishablesAlerts_ForecastFromTrailingUsage(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	repo := &mockRepository{
		batches: []ExpiringBatch{
			{BatchID: 5, IngredientID: 10, Ingredient: "Camarão", Unit: "kg", Quantity: 3, ExpiresAt: now.Add(48 * time.Hour)},
		},
		// 28 units over the 14-day window = 2/day; 48h ahead = 4 units
		usage: map[int64]float64{10: 28},
	}
	service := NewService(repo)

	alerts, err := service.PerishablesAlerts(context.Background(), now, 48)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].ForecastUseUntilExpiry != 4 {
		t.Errorf("forecast = %v, want 4", alerts[0].ForecastUseUntilExpiry)
	}
}

func TestPerishablesAlerts_FloorsHoursToExpiryAtOne(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	repo := &mockRepository{
		batches: []ExpiringBatch{
			{BatchID: 5, IngredientID: 10, Ingredient: "Camarão", Unit: "kg", Quantity: 3, ExpiresAt: now.Add(10 * time.Minute)},
		},
		usage: map[int64]float64{10: 28},
	}
	service := NewService(repo)

	alerts, err := service.PerishablesAlerts(context.Background(), now, 48)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 2/day over 1 floored hour = 2/24, rounded to 3 decimals
	if alerts[0].ForecastUseUntilExpiry != 0.083 {
		t.Errorf("forecast = %v, want 0.083", alerts[0].ForecastUseUntilExpiry)
	}
}

func TestPerishablesAlerts_NoUsageHistoryForecastsZero(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	repo := &mockRepository{
		batches: []ExpiringBatch{
			{BatchID: 5, IngredientID: 10, Ingredient: "Camarão", Unit: "kg", Quantity: 3, ExpiresAt: now.Add(24 * time.Hour)},
		},
		usage: map[int64]float64{},
	}
	service := NewService(repo)

	alerts, err := service.PerishablesAlerts(context.Background(), now, 48)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if alerts[0].ForecastUseUntilExpiry != 0 {
		t.Errorf("forecast = %v, want 0", alerts[0].ForecastUseUntilExpiry)
	}
}

// --------------------------------------------------
// BREAKEVEN / DATE RANGE
// --------------------------------------------------

func TestBreakeven_GapIsFixedCostMinusRevenue(t *testing.T) {
	repo := &mockRepository{revenue: 1500.5}
	service := NewService(repo)

	date := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	result, err := service.Breakeven(context.Background(), date, 2000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Date != "2026-08-20" {
		t.Errorf("date = %q, want 2026-08-20", result.Date)
	}
	if result.Revenue != 1500.5 {
		t.Errorf("revenue = %v, want 1500.5", result.Revenue)
	}
	if result.Gap != 499.5 {
		t.Errorf("gap = %v, want 499.5", result.Gap)
	}
}

func TestParseDateRange_DefaultsToTrailing30Days(t *testing.T) {
	now := time.Date(2026, 8, 20, 15, 30, 0, 0, time.UTC)

	start, end, err := ParseDateRange("", "", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStart := time.Date(2026, 7, 21, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if end.Day() != 20 || end.Hour() != 23 || end.Minute() != 59 {
		t.Errorf("end should be end of today, got %v", end)
	}
}

func TestParseDateRange_RejectsBadAndInvertedDates(t *testing.T) {
	now := time.Date(2026, 8, 20, 15, 30, 0, 0, time.UTC)

	if _, _, err := ParseDateRange("20/08/2026", "", now); !core.IsValidation(err) {
		t.Errorf("expected validation error for bad start, got %v", err)
	}
	if _, _, err := ParseDateRange("2026-08-10", "2026-08-01", now); !core.IsValidation(err) {
		t.Errorf("expected validation error for inverted range, got %v", err)
	}
}
