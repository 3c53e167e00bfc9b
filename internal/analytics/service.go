package analytics

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/PHPdro/menu-engineering-api/internal/core"
)

const (
	DefaultRangeDays  = 30
	DefaultAlertHours = 48
	DefaultDailyFixed = 2000.0
	usageWindowDays   = 14
	dateLayout        = "2006-01-02"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// MENU MATRIX
// --------------------------------------------------

func (s *Service) MenuMatrix(ctx context.Context, start, end time.Time) (*MenuMatrix, error) {
	items, thresholds, err := s.matrixRows(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &MenuMatrix{Thresholds: thresholds, Items: items}, nil
}

func (s *Service) MenuMatrixByCategory(ctx context.Context, start, end time.Time) (*MenuMatrixByCategory, error) {
	items, thresholds, err := s.matrixRows(ctx, start, end)
	if err != nil {
		return nil, err
	}

	totalSales := 0
	for _, item := range items {
		totalSales += item.Qty
	}

	categories := map[int]*MatrixCategory{
		1: {Name: "Estrelas", Description: "Popular e Rentável", Color: "#22c55e", Items: []CategoryItem{}},
		2: {Name: "Vacas Leiteiras", Description: "Popular mas não Rentável", Color: "#f59e0b", Items: []CategoryItem{}},
		3: {Name: "Interrogações", Description: "Rentável mas não Popular", Color: "#3b82f6", Items: []CategoryItem{}},
		4: {Name: "Cachorros", Description: "Nem Popular nem Rentável", Color: "#ef4444", Items: []CategoryItem{}},
	}

	for _, item := range items {
		cat := categories[item.Category]

		share := 0.0
		if totalSales > 0 {
			share = round2(float64(item.Qty) / float64(totalSales) * 100)
		}
		cat.Items = append(cat.Items, CategoryItem{MatrixItem: item, Percentage: share})
		cat.TotalQty += item.Qty
		cat.TotalRevenue = round2(cat.TotalRevenue + item.Revenue)
	}

	for _, cat := range categories {
		if totalSales > 0 {
			cat.Percentage = round2(float64(cat.TotalQty) / float64(totalSales) * 100)
		}
	}

	return &MenuMatrixByCategory{
		Thresholds: thresholds,
		TotalSales: totalSales,
		Categories: categories,
	}, nil
}

func (s *Service) matrixRows(ctx context.Context, start, end time.Time) ([]MatrixItem, MatrixThresholds, error) {
	sales, err := s.repo.SalesByDish(ctx, start, end)
	if err != nil {
		return nil, MatrixThresholds{}, err
	}
	dishes, err := s.repo.DishesWithActiveRecipe(ctx)
	if err != nil {
		return nil, MatrixThresholds{}, err
	}
	costs, err := s.repo.LatestUnitCosts(ctx)
	if err != nil {
		return nil, MatrixThresholds{}, err
	}

	items := make([]MatrixItem, 0, len(dishes))
	for _, dish := range dishes {
		ds := sales[dish.ID]

		costPerDish := 0.0
		for _, usage := range dish.Items {
			costPerDish += costs[usage.IngredientID] * usage.Quantity
		}
		profitPerDish := dish.Price - costPerDish

		items = append(items, MatrixItem{
			DishID:        dish.ID,
			Name:          dish.Name,
			Qty:           ds.Qty,
			Revenue:       round2(ds.Revenue),
			CostPerDish:   round2(costPerDish),
			ProfitPerDish: round2(profitPerDish),
			Profit:        round2(profitPerDish * float64(ds.Qty)),
		})
	}

	qtys := make([]float64, len(items))
	profits := make([]float64, len(items))
	for i, item := range items {
		qtys[i] = float64(item.Qty)
		profits[i] = item.ProfitPerDish
	}
	thresholds := MatrixThresholds{
		PopularityQty:        median(qtys),
		ProfitabilityPerDish: median(profits),
	}

	for i := range items {
		popular := float64(items[i].Qty) >= thresholds.PopularityQty
		profitable := items[i].ProfitPerDish >= thresholds.ProfitabilityPerDish
		switch {
		case popular && profitable:
			items[i].Category = 1
		case popular:
			items[i].Category = 2
		case profitable:
			items[i].Category = 3
		default:
			items[i].Category = 4
		}
	}

	return items, thresholds, nil
}

// --------------------------------------------------
// PERISHABLES ALERTS
// --------------------------------------------------

// PerishablesAlerts forecasts how much of each expiring batch will be
// used before it expires, from the trailing 14 days of recipe-implied
// consumption.
func (s *Service) PerishablesAlerts(ctx context.Context, now time.Time, hours int) ([]PerishableAlert, error) {
	if hours <= 0 {
		hours = DefaultAlertHours
	}
	limit := now.Add(time.Duration(hours) * time.Hour)

	expiring, err := s.repo.ExpiringBatches(ctx, now, limit)
	if err != nil {
		return nil, err
	}

	usage, err := s.repo.IngredientUsageSince(ctx, now.AddDate(0, 0, -usageWindowDays))
	if err != nil {
		return nil, err
	}

	alerts := make([]PerishableAlert, 0, len(expiring))
	for _, batch := range expiring {
		dailyUsage := usage[batch.IngredientID] / usageWindowDays

		hoursToExpire := int(batch.ExpiresAt.Sub(now).Hours())
		if hoursToExpire < 1 {
			hoursToExpire = 1
		}

		alerts = append(alerts, PerishableAlert{
			IngredientID:           batch.IngredientID,
			Ingredient:             batch.Ingredient,
			Unit:                   batch.Unit,
			BatchID:                batch.BatchID,
			Quantity:               batch.Quantity,
			ExpiresAt:              batch.ExpiresAt,
			ForecastUseUntilExpiry: round3(dailyUsage * float64(hoursToExpire) / 24),
		})
	}

	return alerts, nil
}

// --------------------------------------------------
// PRICE TRENDS / TRAFFIC FLOW / BREAKEVEN
// --------------------------------------------------

func (s *Service) PriceTrends(ctx context.Context, ingredientID *int64) ([]PriceTrend, error) {
	return s.repo.PriceTrends(ctx, ingredientID)
}

func (s *Service) TrafficFlow(ctx context.Context, start, end time.Time) ([]TrafficBucket, error) {
	return s.repo.TrafficFlow(ctx, start, end)
}

func (s *Service) Breakeven(ctx context.Context, date time.Time, fixedCost float64) (*Breakeven, error) {
	revenue, err := s.repo.RevenueForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	return &Breakeven{
		Date:      date.Format(dateLayout),
		Breakeven: round2(fixedCost),
		Revenue:   round2(revenue),
		Gap:       round2(fixedCost - revenue),
	}, nil
}

// --------------------------------------------------
// HELPERS
// --------------------------------------------------

// ParseDateRange resolves optional start/end date strings against now,
// defaulting to the trailing 30 days. Start of day / end of day bounds.
func ParseDateRange(startRaw, endRaw string, now time.Time) (time.Time, time.Time, error) {
	start := startOfDay(now.AddDate(0, 0, -DefaultRangeDays))
	if startRaw != "" {
		t, err := time.Parse(dateLayout, startRaw)
		if err != nil {
			return time.Time{}, time.Time{}, core.Validation("invalid date format, use YYYY-MM-DD (e.g. 2025-11-01)")
		}
		start = startOfDay(t)
	}

	end := endOfDay(now)
	if endRaw != "" {
		t, err := time.Parse(dateLayout, endRaw)
		if err != nil {
			return time.Time{}, time.Time{}, core.Validation("invalid date format, use YYYY-MM-DD (e.g. 2025-11-01)")
		}
		end = endOfDay(t)
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, core.Validation("start date must not be after end date")
	}

	return start, end, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

// median of an even-count list is the mean of the two middle values; an
// empty list yields 0
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
