package inventory

import "context"

// Repository defines all database operations for ingredients and batches
type Repository interface {

	// -------------------------------
	// Ingredients
	// -------------------------------

	CreateIngredient(ctx context.Context, ing *Ingredient) error
	ListIngredients(ctx context.Context) ([]*Ingredient, error)
	GetIngredient(ctx context.Context, id int64) (*Ingredient, error)
	UpdateIngredient(ctx context.Context, ing *Ingredient) error
	DeleteIngredient(ctx context.Context, id int64) error

	// -------------------------------
	// Batches
	// -------------------------------

	CreateBatch(ctx context.Context, batch *Batch) error

	// List batches ordered by expiry, optionally for one ingredient
	ListBatches(ctx context.Context, ingredientID *int64) ([]*Batch, error)

	GetBatch(ctx context.Context, id int64) (*Batch, error)
	UpdateBatch(ctx context.Context, batch *Batch) error
	DeleteBatch(ctx context.Context, id int64) error
}
