package supplier

import "context"

// Repository defines all database operations for suppliers and their
// price history
type Repository interface {
	CreateSupplier(ctx context.Context, s *Supplier) error
	ListSuppliers(ctx context.Context) ([]*Supplier, error)
	GetSupplier(ctx context.Context, id int64) (*Supplier, error)
	UpdateSupplier(ctx context.Context, s *Supplier) error
	DeleteSupplier(ctx context.Context, id int64) error

	CreatePrice(ctx context.Context, p *IngredientPrice) error
	ListPrices(ctx context.Context, ingredientID *int64) ([]*IngredientPrice, error)
	GetPrice(ctx context.Context, id int64) (*IngredientPrice, error)
	UpdatePrice(ctx context.Context, p *IngredientPrice) error
	DeletePrice(ctx context.Context, id int64) error
}
