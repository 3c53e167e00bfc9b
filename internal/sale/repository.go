package sale

import (
	"context"
	"time"
)

// Repository defines all database operations for sales
type Repository interface {

	// CreateSale records the sale and deducts recipe-implied stock from
	// batches FIFO, all inside one transaction. Any failure (missing
	// dish, no active recipe, insufficient stock) rolls back every
	// effect of the call.
	CreateSale(ctx context.Context, soldAt time.Time, channel string, lines []Line) (*Sale, error)

	// ListSales returns sales newest first with items and dishes embedded
	ListSales(ctx context.Context) ([]*Sale, error)

	GetSale(ctx context.Context, id int64) (*Sale, error)
}
