package sale

import (
	"context"
	"time"

	"github.com/PHPdro/menu-engineering-api/internal/core"
	"github.com/shopspring/decimal"
)

type CreateSaleRequest struct {
	SoldAt  string            `json:"sold_at"`
	Channel string            `json:"channel"`
	Items   []SaleItemRequest `json:"items"`
}

type SaleItemRequest struct {
	DishID    int64    `json:"dish_id"`
	Quantity  int      `json:"quantity"`
	UnitPrice *float64 `json:"unit_price"`
}

var soldAtLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RecordSale validates the request and hands the whole thing to the
// repository as one transaction.
func (s *Service) RecordSale(ctx context.Context, req CreateSaleRequest) (*Sale, error) {
	soldAt, err := parseSoldAt(req.SoldAt)
	if err != nil {
		return nil, err
	}

	channel := req.Channel
	if channel == "" {
		channel = "pos"
	}

	if len(req.Items) == 0 {
		return nil, core.Validation("at least one item is required")
	}

	lines := make([]Line, len(req.Items))
	for i, item := range req.Items {
		if item.DishID == 0 {
			return nil, core.Validationf("item %d: dish_id is required", i+1)
		}
		if item.Quantity < 1 {
			return nil, core.Validationf("item %d: quantity must be at least 1", i+1)
		}

		lines[i] = Line{DishID: item.DishID, Quantity: item.Quantity}
		if item.UnitPrice != nil {
			if *item.UnitPrice < 0 {
				return nil, core.Validationf("item %d: unit_price must not be negative", i+1)
			}
			p := decimal.NewFromFloat(*item.UnitPrice)
			lines[i].UnitPrice = &p
		}
	}

	return s.repo.CreateSale(ctx, soldAt, channel, lines)
}

func (s *Service) ListSales(ctx context.Context) ([]*Sale, error) {
	return s.repo.ListSales(ctx)
}

func (s *Service) GetSale(ctx context.Context, id int64) (*Sale, error) {
	return s.repo.GetSale(ctx, id)
}

func parseSoldAt(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, core.Validation("sold_at is required")
	}
	for _, layout := range soldAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, core.Validation("invalid sold_at date")
}
