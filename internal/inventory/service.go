package inventory

import (
	"context"
	"time"

	"github.com/PHPdro/menu-engineering-api/internal/core"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type CreateIngredientRequest struct {
	Name          string  `json:"name"`
	Unit          string  `json:"unit"`
	IsPerishable  bool    `json:"is_perishable"`
	ShelfLifeDays *int    `json:"shelf_life_days"`
	MinStock      float64 `json:"min_stock"`
}

type CreateBatchRequest struct {
	IngredientID int64   `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
	ReceivedAt   string  `json:"received_at"`
	ExpiresAt    *string `json:"expires_at"`
	UnitCost     float64 `json:"unit_cost"`
}

type UpdateBatchRequest struct {
	Quantity   *float64 `json:"quantity"`
	ReceivedAt *string  `json:"received_at"`
	ExpiresAt  *string  `json:"expires_at"`
	UnitCost   *float64 `json:"unit_cost"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// INGREDIENTS
// --------------------------------------------------

func (s *Service) CreateIngredient(ctx context.Context, req CreateIngredientRequest) (*Ingredient, error) {
	if err := validateIngredient(req); err != nil {
		return nil, err
	}

	ing := &Ingredient{
		Name:          req.Name,
		Unit:          req.Unit,
		IsPerishable:  req.IsPerishable,
		ShelfLifeDays: req.ShelfLifeDays,
		MinStock:      req.MinStock,
	}
	if err := s.repo.CreateIngredient(ctx, ing); err != nil {
		return nil, err
	}

	return ing, nil
}

func (s *Service) ListIngredients(ctx context.Context) ([]*Ingredient, error) {
	return s.repo.ListIngredients(ctx)
}

func (s *Service) GetIngredient(ctx context.Context, id int64) (*Ingredient, error) {
	return s.repo.GetIngredient(ctx, id)
}

func (s *Service) UpdateIngredient(ctx context.Context, id int64, req CreateIngredientRequest) (*Ingredient, error) {
	if err := validateIngredient(req); err != nil {
		return nil, err
	}

	ing, err := s.repo.GetIngredient(ctx, id)
	if err != nil {
		return nil, err
	}

	ing.Name = req.Name
	ing.Unit = req.Unit
	ing.IsPerishable = req.IsPerishable
	ing.ShelfLifeDays = req.ShelfLifeDays
	ing.MinStock = req.MinStock

	if err := s.repo.UpdateIngredient(ctx, ing); err != nil {
		return nil, err
	}

	return ing, nil
}

func (s *Service) DeleteIngredient(ctx context.Context, id int64) error {
	return s.repo.DeleteIngredient(ctx, id)
}

// --------------------------------------------------
// BATCHES
// --------------------------------------------------

func (s *Service) CreateBatch(ctx context.Context, req CreateBatchRequest) (*Batch, error) {
	if req.IngredientID == 0 {
		return nil, core.Validation("ingredient_id is required")
	}
	if req.Quantity < 0.001 {
		return nil, core.Validation("quantity must be at least 0.001")
	}
	if req.UnitCost < 0 {
		return nil, core.Validation("unit_cost must not be negative")
	}

	received, err := time.Parse(dateLayout, req.ReceivedAt)
	if err != nil {
		return nil, core.Validation("invalid received_at, expected YYYY-MM-DD")
	}

	var expires *time.Time
	if req.ExpiresAt != nil {
		t, err := time.Parse(dateLayout, *req.ExpiresAt)
		if err != nil {
			return nil, core.Validation("invalid expires_at, expected YYYY-MM-DD")
		}
		if t.Before(received) {
			return nil, core.Validation("expires_at must not be before received_at")
		}
		expires = &t
	}

	// Ensure the ingredient exists so the 404 is explicit, not an FK error
	if _, err := s.repo.GetIngredient(ctx, req.IngredientID); err != nil {
		return nil, err
	}

	batch := &Batch{
		IngredientID: req.IngredientID,
		Quantity:     req.Quantity,
		ReceivedAt:   received,
		ExpiresAt:    expires,
		UnitCost:     decimal.NewFromFloat(req.UnitCost),
	}
	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}

	return batch, nil
}

func (s *Service) ListBatches(ctx context.Context, ingredientID *int64) ([]*Batch, error) {
	return s.repo.ListBatches(ctx, ingredientID)
}

func (s *Service) GetBatch(ctx context.Context, id int64) (*Batch, error) {
	return s.repo.GetBatch(ctx, id)
}

func (s *Service) UpdateBatch(ctx context.Context, id int64, req UpdateBatchRequest) (*Batch, error) {
	batch, err := s.repo.GetBatch(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, core.Validation("quantity must not be negative")
		}
		batch.Quantity = *req.Quantity
	}
	if req.ReceivedAt != nil {
		t, err := time.Parse(dateLayout, *req.ReceivedAt)
		if err != nil {
			return nil, core.Validation("invalid received_at, expected YYYY-MM-DD")
		}
		batch.ReceivedAt = t
	}
	if req.ExpiresAt != nil {
		// Empty string clears the expiry back to null
		if *req.ExpiresAt == "" {
			batch.ExpiresAt = nil
		} else {
			t, err := time.Parse(dateLayout, *req.ExpiresAt)
			if err != nil {
				return nil, core.Validation("invalid expires_at, expected YYYY-MM-DD")
			}
			batch.ExpiresAt = &t
		}
	}
	if batch.ExpiresAt != nil && batch.ExpiresAt.Before(batch.ReceivedAt) {
		return nil, core.Validation("expires_at must not be before received_at")
	}
	if req.UnitCost != nil {
		if *req.UnitCost < 0 {
			return nil, core.Validation("unit_cost must not be negative")
		}
		batch.UnitCost = decimal.NewFromFloat(*req.UnitCost)
	}

	if err := s.repo.UpdateBatch(ctx, batch); err != nil {
		return nil, err
	}

	return batch, nil
}

func (s *Service) DeleteBatch(ctx context.Context, id int64) error {
	return s.repo.DeleteBatch(ctx, id)
}

func validateIngredient(req CreateIngredientRequest) error {
	if req.Name == "" {
		return core.Validation("name is required")
	}
	if req.Unit == "" {
		return core.Validation("unit is required")
	}
	if req.MinStock < 0 {
		return core.Validation("min_stock must not be negative")
	}
	if req.ShelfLifeDays != nil && *req.ShelfLifeDays < 0 {
		return core.Validation("shelf_life_days must not be negative")
	}
	return nil
}
