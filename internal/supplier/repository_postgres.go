package supplier

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrPriceNotFound    = errors.New("ingredient price not found")
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// SUPPLIERS
// --------------------------------------------------

func (r *PostgresRepository) CreateSupplier(ctx context.Context, s *Supplier) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO suppliers (name, contact_name, email, phone, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, s.Name, s.ContactName, s.Email, s.Phone, s.Notes).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *PostgresRepository) ListSuppliers(ctx context.Context) ([]*Supplier, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, contact_name, email, phone, notes, created_at, updated_at
		FROM suppliers
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []*Supplier
	for rows.Next() {
		var s Supplier
		if err := rows.Scan(
			&s.ID, &s.Name, &s.ContactName, &s.Email, &s.Phone, &s.Notes,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, &s)
	}

	return suppliers, rows.Err()
}

func (r *PostgresRepository) GetSupplier(ctx context.Context, id int64) (*Supplier, error) {
	var s Supplier
	err := r.db.QueryRow(ctx, `
		SELECT id, name, contact_name, email, phone, notes, created_at, updated_at
		FROM suppliers
		WHERE id = $1
	`, id).Scan(
		&s.ID, &s.Name, &s.ContactName, &s.Email, &s.Phone, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}

	return &s, nil
}

func (r *PostgresRepository) UpdateSupplier(ctx context.Context, s *Supplier) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE suppliers
		SET name = $1,
		    contact_name = $2,
		    email = $3,
		    phone = $4,
		    notes = $5,
		    updated_at = now()
		WHERE id = $6
	`, s.Name, s.ContactName, s.Email, s.Phone, s.Notes, s.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrSupplierNotFound
	}

	return nil
}

func (r *PostgresRepository) DeleteSupplier(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrSupplierNotFound
	}

	return nil
}

// --------------------------------------------------
// INGREDIENT PRICES
// --------------------------------------------------

func (r *PostgresRepository) CreatePrice(ctx context.Context, p *IngredientPrice) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO ingredient_prices
			(ingredient_id, supplier_id, price, purchase_unit_quantity, purchase_unit, valid_from, valid_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, p.IngredientID, p.SupplierID, p.Price, p.PurchaseUnitQuantity, p.PurchaseUnit, p.ValidFrom, p.ValidTo).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PostgresRepository) ListPrices(ctx context.Context, ingredientID *int64) ([]*IngredientPrice, error) {
	query := `
		SELECT id, ingredient_id, supplier_id, price, purchase_unit_quantity,
		       purchase_unit, valid_from, valid_to, created_at, updated_at
		FROM ingredient_prices
	`
	args := []any{}
	if ingredientID != nil {
		query += ` WHERE ingredient_id = $1`
		args = append(args, *ingredientID)
	}
	query += ` ORDER BY ingredient_id, supplier_id, valid_from`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prices []*IngredientPrice
	for rows.Next() {
		var p IngredientPrice
		if err := rows.Scan(
			&p.ID, &p.IngredientID, &p.SupplierID, &p.Price, &p.PurchaseUnitQuantity,
			&p.PurchaseUnit, &p.ValidFrom, &p.ValidTo, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		prices = append(prices, &p)
	}

	return prices, rows.Err()
}

func (r *PostgresRepository) GetPrice(ctx context.Context, id int64) (*IngredientPrice, error) {
	var p IngredientPrice
	err := r.db.QueryRow(ctx, `
		SELECT id, ingredient_id, supplier_id, price, purchase_unit_quantity,
		       purchase_unit, valid_from, valid_to, created_at, updated_at
		FROM ingredient_prices
		WHERE id = $1
	`, id).Scan(
		&p.ID, &p.IngredientID, &p.SupplierID, &p.Price, &p.PurchaseUnitQuantity,
		&p.PurchaseUnit, &p.ValidFrom, &p.ValidTo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPriceNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *PostgresRepository) UpdatePrice(ctx context.Context, p *IngredientPrice) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE ingredient_prices
		SET price = $1,
		    purchase_unit_quantity = $2,
		    purchase_unit = $3,
		    valid_from = $4,
		    valid_to = $5,
		    updated_at = now()
		WHERE id = $6
	`, p.Price, p.PurchaseUnitQuantity, p.PurchaseUnit, p.ValidFrom, p.ValidTo, p.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPriceNotFound
	}

	return nil
}

func (r *PostgresRepository) DeletePrice(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM ingredient_prices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPriceNotFound
	}

	return nil
}
