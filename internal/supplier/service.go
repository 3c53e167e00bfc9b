package supplier

import (
	"context"
	"time"

	"github.com/PHPdro/menu-engineering-api/internal/core"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type SupplierRequest struct {
	Name        string  `json:"name"`
	ContactName *string `json:"contact_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Notes       *string `json:"notes"`
}

type PriceRequest struct {
	IngredientID         int64   `json:"ingredient_id"`
	SupplierID           int64   `json:"supplier_id"`
	Price                float64 `json:"price"`
	PurchaseUnitQuantity float64 `json:"purchase_unit_quantity"`
	PurchaseUnit         *string `json:"purchase_unit"`
	ValidFrom            string  `json:"valid_from"`
	ValidTo              *string `json:"valid_to"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// SUPPLIERS
// --------------------------------------------------

func (s *Service) CreateSupplier(ctx context.Context, req SupplierRequest) (*Supplier, error) {
	if req.Name == "" {
		return nil, core.Validation("name is required")
	}

	sup := &Supplier{
		Name:        req.Name,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Notes:       req.Notes,
	}
	if err := s.repo.CreateSupplier(ctx, sup); err != nil {
		return nil, err
	}

	return sup, nil
}

func (s *Service) ListSuppliers(ctx context.Context) ([]*Supplier, error) {
	return s.repo.ListSuppliers(ctx)
}

func (s *Service) GetSupplier(ctx context.Context, id int64) (*Supplier, error) {
	return s.repo.GetSupplier(ctx, id)
}

func (s *Service) UpdateSupplier(ctx context.Context, id int64, req SupplierRequest) (*Supplier, error) {
	if req.Name == "" {
		return nil, core.Validation("name is required")
	}

	sup, err := s.repo.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	sup.Name = req.Name
	sup.ContactName = req.ContactName
	sup.Email = req.Email
	sup.Phone = req.Phone
	sup.Notes = req.Notes

	if err := s.repo.UpdateSupplier(ctx, sup); err != nil {
		return nil, err
	}

	return sup, nil
}

func (s *Service) DeleteSupplier(ctx context.Context, id int64) error {
	return s.repo.DeleteSupplier(ctx, id)
}

// --------------------------------------------------
// INGREDIENT PRICES
// --------------------------------------------------

func (s *Service) CreatePrice(ctx context.Context, req PriceRequest) (*IngredientPrice, error) {
	if req.IngredientID == 0 {
		return nil, core.Validation("ingredient_id is required")
	}
	if req.SupplierID == 0 {
		return nil, core.Validation("supplier_id is required")
	}
	if req.Price < 0 {
		return nil, core.Validation("price must not be negative")
	}
	if req.PurchaseUnitQuantity <= 0 {
		req.PurchaseUnitQuantity = 1
	}

	validFrom, err := time.Parse(dateLayout, req.ValidFrom)
	if err != nil {
		return nil, core.Validation("invalid valid_from, expected YYYY-MM-DD")
	}

	var validTo *time.Time
	if req.ValidTo != nil {
		t, err := time.Parse(dateLayout, *req.ValidTo)
		if err != nil {
			return nil, core.Validation("invalid valid_to, expected YYYY-MM-DD")
		}
		if t.Before(validFrom) {
			return nil, core.Validation("valid_to must not be before valid_from")
		}
		validTo = &t
	}

	price := &IngredientPrice{
		IngredientID:         req.IngredientID,
		SupplierID:           req.SupplierID,
		Price:                decimal.NewFromFloat(req.Price),
		PurchaseUnitQuantity: req.PurchaseUnitQuantity,
		PurchaseUnit:         req.PurchaseUnit,
		ValidFrom:            validFrom,
		ValidTo:              validTo,
	}
	if err := s.repo.CreatePrice(ctx, price); err != nil {
		return nil, err
	}

	return price, nil
}

func (s *Service) ListPrices(ctx context.Context, ingredientID *int64) ([]*IngredientPrice, error) {
	return s.repo.ListPrices(ctx, ingredientID)
}

func (s *Service) GetPrice(ctx context.Context, id int64) (*IngredientPrice, error) {
	return s.repo.GetPrice(ctx, id)
}

func (s *Service) UpdatePrice(ctx context.Context, id int64, req PriceRequest) (*IngredientPrice, error) {
	price, err := s.repo.GetPrice(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Price < 0 {
		return nil, core.Validation("price must not be negative")
	}
	price.Price = decimal.NewFromFloat(req.Price)

	if req.PurchaseUnitQuantity > 0 {
		price.PurchaseUnitQuantity = req.PurchaseUnitQuantity
	}
	price.PurchaseUnit = req.PurchaseUnit

	if req.ValidFrom != "" {
		t, err := time.Parse(dateLayout, req.ValidFrom)
		if err != nil {
			return nil, core.Validation("invalid valid_from, expected YYYY-MM-DD")
		}
		price.ValidFrom = t
	}
	if req.ValidTo != nil {
		t, err := time.Parse(dateLayout, *req.ValidTo)
		if err != nil {
			return nil, core.Validation("invalid valid_to, expected YYYY-MM-DD")
		}
		price.ValidTo = &t
	}

	if err := s.repo.UpdatePrice(ctx, price); err != nil {
		return nil, err
	}

	return price, nil
}

func (s *Service) DeletePrice(ctx context.Context, id int64) error {
	return s.repo.DeletePrice(ctx, id)
}
