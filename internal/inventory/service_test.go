package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/PHPdro/menu-engineering-api/internal/core"
)

type mockRepository struct {
	ingredients map[int64]*Ingredient
	batches     map[int64]*Batch

	createdBatch *Batch
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		ingredients: make(map[int64]*Ingredient),
		batches:     make(map[int64]*Batch),
	}
}

func (m *mockRepository) CreateIngredient(ctx context.Context, ing *Ingredient) error {
	ing.ID = int64(len(m.ingredients) + 1)
	m.ingredients[ing.ID] = ing
	return nil
}

func (m *mockRepository) ListIngredients(ctx context.Context) ([]*Ingredient, error) {
	return nil, nil
}

func (m *mockRepository) GetIngredient(ctx context.Context, id int64) (*Ingredient, error) {
	ing, ok := m.ingredients[id]
	if !ok {
		return nil, ErrIngredientNotFound
	}
	return ing, nil
}

func (m *mockRepository) UpdateIngredient(ctx context.Context, ing *Ingredient) error { return nil }
func (m *mockRepository) DeleteIngredient(ctx context.Context, id int64) error        { return nil }

func (m *mockRepository) CreateBatch(ctx context.Context, batch *Batch) error {
	batch.ID = int64(len(m.batches) + 1)
	m.batches[batch.ID] = batch
	m.createdBatch = batch
	return nil
}

func (m *mockRepository) ListBatches(ctx context.Context, ingredientID *int64) ([]*Batch, error) {
	return nil, nil
}

func (m *mockRepository) GetBatch(ctx context.Context, id int64) (*Batch, error) {
	b, ok := m.batches[id]
	if !ok {
		return nil, ErrBatchNotFound
	}
	got := *b
	return &got, nil
}

func (m *mockRepository) UpdateBatch(ctx context.Context, batch *Batch) error {
	m.batches[batch.ID] = batch
	return nil
}
func (m *mockRepository) DeleteBatch(ctx context.Context, id int64) error     { return nil }

func TestCreateBatch_ParsesDatesAndChecksIngredient(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)

	ing, err := service.CreateIngredient(context.Background(), CreateIngredientRequest{
		Name: "Camarão", Unit: "kg", IsPerishable: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expires := "2026-08-25"
	batch, err := service.CreateBatch(context.Background(), CreateBatchRequest{
		IngredientID: ing.ID,
		Quantity:     5,
		ReceivedAt:   "2026-08-20",
		ExpiresAt:    &expires,
		UnitCost:     42.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if batch.ExpiresAt == nil || batch.ExpiresAt.Day() != 25 {
		t.Errorf("expires_at not parsed, got %v", batch.ExpiresAt)
	}
	if repo.createdBatch != batch {
		t.Error("batch not handed to repository")
	}
}

func TestCreateBatch_UnknownIngredient(t *testing.T) {
	service := NewService(newMockRepository())

	_, err := service.CreateBatch(context.Background(), CreateBatchRequest{
		IngredientID: 99,
		Quantity:     5,
		ReceivedAt:   "2026-08-20",
	})
	if !errors.Is(err, ErrIngredientNotFound) {
		t.Errorf("expected ErrIngredientNotFound, got %v", err)
	}
}

func TestCreateBatch_ValidationFailures(t *testing.T) {
	badExpiry := "2026-08-10"
	malformed := "20-08-2026"

	cases := []struct {
		name string
		req  CreateBatchRequest
	}{
		{"missing ingredient_id", CreateBatchRequest{Quantity: 1, ReceivedAt: "2026-08-20"}},
		{"quantity below minimum", CreateBatchRequest{IngredientID: 1, Quantity: 0.0001, ReceivedAt: "2026-08-20"}},
		{"negative unit_cost", CreateBatchRequest{IngredientID: 1, Quantity: 1, ReceivedAt: "2026-08-20", UnitCost: -1}},
		{"malformed received_at", CreateBatchRequest{IngredientID: 1, Quantity: 1, ReceivedAt: "yesterday"}},
		{"malformed expires_at", CreateBatchRequest{IngredientID: 1, Quantity: 1, ReceivedAt: "2026-08-20", ExpiresAt: &malformed}},
		{"expires before received", CreateBatchRequest{IngredientID: 1, Quantity: 1, ReceivedAt: "2026-08-20", ExpiresAt: &badExpiry}},
	}

	service := NewService(newMockRepository())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.CreateBatch(context.Background(), tc.req); !core.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUpdateBatch_ExpiryRules(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)

	ing, err := service.CreateIngredient(context.Background(), CreateIngredientRequest{
		Name: "Camarão", Unit: "kg", IsPerishable: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expires := "2026-08-25"
	batch, err := service.CreateBatch(context.Background(), CreateBatchRequest{
		IngredientID: ing.ID,
		Quantity:     5,
		ReceivedAt:   "2026-08-20",
		ExpiresAt:    &expires,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("rejects expiry before received date", func(t *testing.T) {
		early := "2026-08-19"
		_, err := service.UpdateBatch(context.Background(), batch.ID, UpdateBatchRequest{ExpiresAt: &early})
		if !core.IsValidation(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("rejects received date moved past expiry", func(t *testing.T) {
		late := "2026-08-30"
		_, err := service.UpdateBatch(context.Background(), batch.ID, UpdateBatchRequest{ReceivedAt: &late})
		if !core.IsValidation(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("empty string clears expiry", func(t *testing.T) {
		blank := ""
		updated, err := service.UpdateBatch(context.Background(), batch.ID, UpdateBatchRequest{ExpiresAt: &blank})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.ExpiresAt != nil {
			t.Errorf("expiry should be cleared, got %v", updated.ExpiresAt)
		}
	})
}

func TestValidateIngredient(t *testing.T) {
	negative := -1

	cases := []struct {
		name    string
		req     CreateIngredientRequest
		wantErr bool
	}{
		{"valid", CreateIngredientRequest{Name: "Sal", Unit: "kg"}, false},
		{"missing name", CreateIngredientRequest{Unit: "kg"}, true},
		{"missing unit", CreateIngredientRequest{Name: "Sal"}, true},
		{"negative min_stock", CreateIngredientRequest{Name: "Sal", Unit: "kg", MinStock: -1}, true},
		{"negative shelf life", CreateIngredientRequest{Name: "Sal", Unit: "kg", ShelfLifeDays: &negative}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateIngredient(tc.req)
			if tc.wantErr && !core.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
