package sale

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PHPdro/menu-engineering-api/internal/core"
	"github.com/PHPdro/menu-engineering-api/internal/inventory"
	"github.com/PHPdro/menu-engineering-api/internal/menu"
	"github.com/shopspring/decimal"
)

type mockRepository struct {
	createErr error

	gotSoldAt  time.Time
	gotChannel string
	gotLines   []Line
}

func (m *mockRepository) CreateSale(ctx context.Context, soldAt time.Time, channel string, lines []Line) (*Sale, error) {
	m.gotSoldAt = soldAt
	m.gotChannel = channel
	m.gotLines = lines
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &Sale{ID: 1, SoldAt: soldAt, Channel: channel}, nil
}

func (m *mockRepository) ListSales(ctx context.Context) ([]*Sale, error) {
	return nil, nil
}

func (m *mockRepository) GetSale(ctx context.Context, id int64) (*Sale, error) {
	return nil, ErrSaleNotFound
}

func TestRecordSale_DefaultsChannelToPOS(t *testing.T) {
	repo := &mockRepository{}
	service := NewService(repo)

	_, err := service.RecordSale(context.Background(), CreateSaleRequest{
		SoldAt: "2026-08-20 19:30:00",
		Items:  []SaleItemRequest{{DishID: 3, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.gotChannel != "pos" {
		t.Errorf("expected channel 'pos', got %q", repo.gotChannel)
	}
	if repo.gotSoldAt.Hour() != 19 || repo.gotSoldAt.Minute() != 30 {
		t.Errorf("sold_at not parsed, got %v", repo.gotSoldAt)
	}
}

func TestRecordSale_AcceptsDateOnlySoldAt(t *testing.T) {
	repo := &mockRepository{}
	service := NewService(repo)

	_, err := service.RecordSale(context.Background(), CreateSaleRequest{
		SoldAt: "2026-08-20",
		Items:  []SaleItemRequest{{DishID: 1, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.gotSoldAt.Year() != 2026 || repo.gotSoldAt.Month() != time.August {
		t.Errorf("sold_at not parsed, got %v", repo.gotSoldAt)
	}
}

func TestRecordSale_ValidationFailures(t *testing.T) {
	price := -1.0
	cases := []struct {
		name string
		req  CreateSaleRequest
	}{
		{"missing sold_at", CreateSaleRequest{Items: []SaleItemRequest{{DishID: 1, Quantity: 1}}}},
		{"bad sold_at", CreateSaleRequest{SoldAt: "20/08/2026", Items: []SaleItemRequest{{DishID: 1, Quantity: 1}}}},
		{"no items", CreateSaleRequest{SoldAt: "2026-08-20"}},
		{"missing dish_id", CreateSaleRequest{SoldAt: "2026-08-20", Items: []SaleItemRequest{{Quantity: 1}}}},
		{"zero quantity", CreateSaleRequest{SoldAt: "2026-08-20", Items: []SaleItemRequest{{DishID: 1}}}},
		{"negative unit_price", CreateSaleRequest{SoldAt: "2026-08-20", Items: []SaleItemRequest{{DishID: 1, Quantity: 1, UnitPrice: &price}}}},
	}

	service := NewService(&mockRepository{})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.RecordSale(context.Background(), tc.req)
			if !core.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRecordSale_PassesUnitPriceOverride(t *testing.T) {
	repo := &mockRepository{}
	service := NewService(repo)

	price := 12.5
	_, err := service.RecordSale(context.Background(), CreateSaleRequest{
		SoldAt: "2026-08-20",
		Items:  []SaleItemRequest{{DishID: 1, Quantity: 3, UnitPrice: &price}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.gotLines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(repo.gotLines))
	}
	line := repo.gotLines[0]
	if line.UnitPrice == nil || !line.UnitPrice.Equal(decimal.NewFromFloat(12.5)) {
		t.Errorf("unit price override not passed through, got %v", line.UnitPrice)
	}
}

func TestRecordSale_PropagatesStockAndRecipeErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"no active recipe", &menu.NoActiveRecipeError{DishID: 7, DishName: "Feijoada"}},
		{"insufficient stock", &inventory.InsufficientStockError{IngredientID: 2, Required: 5, Short: 1.5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := NewService(&mockRepository{createErr: tc.err})

			_, err := service.RecordSale(context.Background(), CreateSaleRequest{
				SoldAt: "2026-08-20",
				Items:  []SaleItemRequest{{DishID: 7, Quantity: 1}},
			})
			if !errors.Is(err, tc.err) {
				t.Errorf("expected %v to propagate, got %v", tc.err, err)
			}
		})
	}
}
