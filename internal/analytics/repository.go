package analytics

import (
	"context"
	"time"
)

// Repository supplies the read models the analytics computations run on.
// Everything here is read-only; reports never mutate state.
type Repository interface {

	// SalesByDish aggregates sold quantity and revenue per dish over
	// [start, end]
	SalesByDish(ctx context.Context, start, end time.Time) (map[int64]DishSales, error)

	// DishesWithActiveRecipe returns every dish (active or not) with its
	// active recipe items, when it has any
	DishesWithActiveRecipe(ctx context.Context) ([]DishWithRecipe, error)

	// LatestUnitCosts maps ingredient id to the unit cost of its most
	// recently received batch
	LatestUnitCosts(ctx context.Context) (map[int64]float64, error)

	// ExpiringBatches returns live batches expiring within [from, to],
	// soonest first
	ExpiringBatches(ctx context.Context, from, to time.Time) ([]ExpiringBatch, error)

	// IngredientUsageSince sums recipe-implied ingredient consumption
	// from sales recorded at or after since
	IngredientUsageSince(ctx context.Context, since time.Time) (map[int64]float64, error)

	PriceTrends(ctx context.Context, ingredientID *int64) ([]PriceTrend, error)

	TrafficFlow(ctx context.Context, start, end time.Time) ([]TrafficBucket, error)

	// RevenueForDate sums Sale.total for the calendar day of date
	RevenueForDate(ctx context.Context, date time.Time) (float64, error)
}
