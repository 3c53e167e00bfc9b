package menu

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrDishNotFound       = errors.New("dish not found")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrRecipeItemNotFound = errors.New("recipe item not found")
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// DISHES
// --------------------------------------------------

func (r *PostgresRepository) CreateDish(ctx context.Context, d *Dish) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO dishes (name, sku, price, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, d.Name, d.SKU, d.Price, d.IsActive).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *PostgresRepository) ListDishes(ctx context.Context) ([]*Dish, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, sku, price, is_active, created_at, updated_at
		FROM dishes
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dishes []*Dish
	for rows.Next() {
		var d Dish
		if err := rows.Scan(&d.ID, &d.Name, &d.SKU, &d.Price, &d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		dishes = append(dishes, &d)
	}

	return dishes, rows.Err()
}

func (r *PostgresRepository) GetDish(ctx context.Context, id int64) (*Dish, error) {
	var d Dish
	err := r.db.QueryRow(ctx, `
		SELECT id, name, sku, price, is_active, created_at, updated_at
		FROM dishes
		WHERE id = $1
	`, id).Scan(&d.ID, &d.Name, &d.SKU, &d.Price, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDishNotFound
		}
		return nil, err
	}

	return &d, nil
}

func (r *PostgresRepository) UpdateDish(ctx context.Context, d *Dish) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE dishes
		SET name = $1,
		    sku = $2,
		    price = $3,
		    is_active = $4,
		    updated_at = now()
		WHERE id = $5
	`, d.Name, d.SKU, d.Price, d.IsActive, d.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDishNotFound
	}

	return nil
}

func (r *PostgresRepository) DeleteDish(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM dishes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDishNotFound
	}

	return nil
}

// --------------------------------------------------
// RECIPES
// --------------------------------------------------

func (r *PostgresRepository) CreateRecipe(ctx context.Context, recipe *Recipe) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Activating a recipe deactivates its siblings first
	if recipe.IsActive {
		if _, err := tx.Exec(ctx, `
			UPDATE recipes SET is_active = FALSE, updated_at = now()
			WHERE dish_id = $1
		`, recipe.DishID); err != nil {
			return err
		}
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO recipes (dish_id, version, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, recipe.DishID, recipe.Version, recipe.IsActive).
		Scan(&recipe.ID, &recipe.CreatedAt, &recipe.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) ListRecipes(ctx context.Context, dishID *int64) ([]*Recipe, error) {
	query := `
		SELECT
			r.id, r.dish_id, r.version, r.is_active, r.created_at, r.updated_at,
			d.id, d.name, d.sku, d.price, d.is_active, d.created_at, d.updated_at
		FROM recipes r
		JOIN dishes d ON d.id = r.dish_id
	`
	args := []any{}
	if dishID != nil {
		query += ` WHERE r.dish_id = $1`
		args = append(args, *dishID)
	}
	query += ` ORDER BY r.dish_id, r.id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []*Recipe
	for rows.Next() {
		var rec Recipe
		var d Dish
		if err := rows.Scan(
			&rec.ID, &rec.DishID, &rec.Version, &rec.IsActive, &rec.CreatedAt, &rec.UpdatedAt,
			&d.ID, &d.Name, &d.SKU, &d.Price, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		rec.Dish = &d
		recipes = append(recipes, &rec)
	}

	return recipes, rows.Err()
}

func (r *PostgresRepository) GetRecipe(ctx context.Context, id int64) (*Recipe, error) {
	var rec Recipe
	err := r.db.QueryRow(ctx, `
		SELECT id, dish_id, version, is_active, created_at, updated_at
		FROM recipes
		WHERE id = $1
	`, id).Scan(&rec.ID, &rec.DishID, &rec.Version, &rec.IsActive, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	items, err := r.listItems(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	rec.Items = items

	return &rec, nil
}

func (r *PostgresRepository) UpdateRecipe(ctx context.Context, recipe *Recipe) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if recipe.IsActive {
		if _, err := tx.Exec(ctx, `
			UPDATE recipes SET is_active = FALSE, updated_at = now()
			WHERE dish_id = $1 AND id <> $2
		`, recipe.DishID, recipe.ID); err != nil {
			return err
		}
	}

	cmd, err := tx.Exec(ctx, `
		UPDATE recipes
		SET version = $1,
		    is_active = $2,
		    updated_at = now()
		WHERE id = $3
	`, recipe.Version, recipe.IsActive, recipe.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) DeleteRecipe(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

func (r *PostgresRepository) listItems(ctx context.Context, recipeID int64) ([]RecipeItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, recipe_id, ingredient_id, quantity, notes, created_at, updated_at
		FROM recipe_items
		WHERE recipe_id = $1
		ORDER BY ingredient_id
	`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []RecipeItem
	for rows.Next() {
		var item RecipeItem
		if err := rows.Scan(
			&item.ID, &item.RecipeID, &item.IngredientID, &item.Quantity,
			&item.Notes, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// --------------------------------------------------
// RECIPE ITEMS
// --------------------------------------------------

func (r *PostgresRepository) CreateRecipeItem(ctx context.Context, item *RecipeItem) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO recipe_items (recipe_id, ingredient_id, quantity, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, item.RecipeID, item.IngredientID, item.Quantity, item.Notes).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *PostgresRepository) ListRecipeItems(ctx context.Context, recipeID *int64) ([]*RecipeItem, error) {
	query := `
		SELECT id, recipe_id, ingredient_id, quantity, notes, created_at, updated_at
		FROM recipe_items
	`
	args := []any{}
	if recipeID != nil {
		query += ` WHERE recipe_id = $1`
		args = append(args, *recipeID)
	}
	query += ` ORDER BY recipe_id, ingredient_id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*RecipeItem
	for rows.Next() {
		var item RecipeItem
		if err := rows.Scan(
			&item.ID, &item.RecipeID, &item.IngredientID, &item.Quantity,
			&item.Notes, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

func (r *PostgresRepository) GetRecipeItem(ctx context.Context, id int64) (*RecipeItem, error) {
	var item RecipeItem
	err := r.db.QueryRow(ctx, `
		SELECT id, recipe_id, ingredient_id, quantity, notes, created_at, updated_at
		FROM recipe_items
		WHERE id = $1
	`, id).Scan(
		&item.ID, &item.RecipeID, &item.IngredientID, &item.Quantity,
		&item.Notes, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipeItemNotFound
		}
		return nil, err
	}

	return &item, nil
}

func (r *PostgresRepository) UpdateRecipeItem(ctx context.Context, item *RecipeItem) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE recipe_items
		SET quantity = $1,
		    notes = $2,
		    updated_at = now()
		WHERE id = $3
	`, item.Quantity, item.Notes, item.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrRecipeItemNotFound
	}

	return nil
}

func (r *PostgresRepository) DeleteRecipeItem(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM recipe_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrRecipeItemNotFound
	}

	return nil
}
