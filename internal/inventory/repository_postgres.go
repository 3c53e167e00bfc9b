package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrBatchNotFound      = errors.New("batch not found")
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// INGREDIENTS
// --------------------------------------------------

func (r *PostgresRepository) CreateIngredient(ctx context.Context, ing *Ingredient) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO ingredients (name, unit, is_perishable, shelf_life_days, min_stock)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, ing.Name, ing.Unit, ing.IsPerishable, ing.ShelfLifeDays, ing.MinStock).
		Scan(&ing.ID, &ing.CreatedAt, &ing.UpdatedAt)
}

func (r *PostgresRepository) ListIngredients(ctx context.Context) ([]*Ingredient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, unit, is_perishable, shelf_life_days, min_stock, created_at, updated_at
		FROM ingredients
		ORDER BY name, unit
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []*Ingredient
	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(
			&ing.ID,
			&ing.Name,
			&ing.Unit,
			&ing.IsPerishable,
			&ing.ShelfLifeDays,
			&ing.MinStock,
			&ing.CreatedAt,
			&ing.UpdatedAt,
		); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, &ing)
	}

	return ingredients, rows.Err()
}

func (r *PostgresRepository) GetIngredient(ctx context.Context, id int64) (*Ingredient, error) {
	var ing Ingredient
	err := r.db.QueryRow(ctx, `
		SELECT id, name, unit, is_perishable, shelf_life_days, min_stock, created_at, updated_at
		FROM ingredients
		WHERE id = $1
	`, id).Scan(
		&ing.ID,
		&ing.Name,
		&ing.Unit,
		&ing.IsPerishable,
		&ing.ShelfLifeDays,
		&ing.MinStock,
		&ing.CreatedAt,
		&ing.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}

	return &ing, nil
}

func (r *PostgresRepository) UpdateIngredient(ctx context.Context, ing *Ingredient) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE ingredients
		SET name = $1,
		    unit = $2,
		    is_perishable = $3,
		    shelf_life_days = $4,
		    min_stock = $5,
		    updated_at = now()
		WHERE id = $6
	`, ing.Name, ing.Unit, ing.IsPerishable, ing.ShelfLifeDays, ing.MinStock, ing.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrIngredientNotFound
	}

	return nil
}

func (r *PostgresRepository) DeleteIngredient(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrIngredientNotFound
	}

	return nil
}

// --------------------------------------------------
// BATCHES
// --------------------------------------------------

func (r *PostgresRepository) CreateBatch(ctx context.Context, batch *Batch) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO batches (ingredient_id, quantity, received_at, expires_at, unit_cost)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, batch.IngredientID, batch.Quantity, batch.ReceivedAt, batch.ExpiresAt, batch.UnitCost).
		Scan(&batch.ID, &batch.CreatedAt, &batch.UpdatedAt)
}

func (r *PostgresRepository) ListBatches(ctx context.Context, ingredientID *int64) ([]*Batch, error) {
	query := `
		SELECT
			b.id, b.ingredient_id, b.quantity, b.received_at, b.expires_at, b.unit_cost,
			b.created_at, b.updated_at,
			i.id, i.name, i.unit, i.is_perishable, i.shelf_life_days, i.min_stock,
			i.created_at, i.updated_at
		FROM batches b
		JOIN ingredients i ON i.id = b.ingredient_id
	`
	args := []any{}
	if ingredientID != nil {
		query += ` WHERE b.ingredient_id = $1`
		args = append(args, *ingredientID)
	}
	query += ` ORDER BY b.expires_at NULLS LAST, b.id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []*Batch
	for rows.Next() {
		var b Batch
		var ing Ingredient
		if err := rows.Scan(
			&b.ID, &b.IngredientID, &b.Quantity, &b.ReceivedAt, &b.ExpiresAt, &b.UnitCost,
			&b.CreatedAt, &b.UpdatedAt,
			&ing.ID, &ing.Name, &ing.Unit, &ing.IsPerishable, &ing.ShelfLifeDays, &ing.MinStock,
			&ing.CreatedAt, &ing.UpdatedAt,
		); err != nil {
			return nil, err
		}
		b.Ingredient = &ing
		batches = append(batches, &b)
	}

	return batches, rows.Err()
}

func (r *PostgresRepository) GetBatch(ctx context.Context, id int64) (*Batch, error) {
	var b Batch
	var ing Ingredient
	err := r.db.QueryRow(ctx, `
		SELECT
			b.id, b.ingredient_id, b.quantity, b.received_at, b.expires_at, b.unit_cost,
			b.created_at, b.updated_at,
			i.id, i.name, i.unit, i.is_perishable, i.shelf_life_days, i.min_stock,
			i.created_at, i.updated_at
		FROM batches b
		JOIN ingredients i ON i.id = b.ingredient_id
		WHERE b.id = $1
	`, id).Scan(
		&b.ID, &b.IngredientID, &b.Quantity, &b.ReceivedAt, &b.ExpiresAt, &b.UnitCost,
		&b.CreatedAt, &b.UpdatedAt,
		&ing.ID, &ing.Name, &ing.Unit, &ing.IsPerishable, &ing.ShelfLifeDays, &ing.MinStock,
		&ing.CreatedAt, &ing.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}
	b.Ingredient = &ing

	return &b, nil
}

func (r *PostgresRepository) UpdateBatch(ctx context.Context, batch *Batch) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE batches
		SET quantity = $1,
		    received_at = $2,
		    expires_at = $3,
		    unit_cost = $4,
		    updated_at = now()
		WHERE id = $5
	`, batch.Quantity, batch.ReceivedAt, batch.ExpiresAt, batch.UnitCost, batch.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrBatchNotFound
	}

	return nil
}

func (r *PostgresRepository) DeleteBatch(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrBatchNotFound
	}

	return nil
}
