package analytics

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SalesByDish(ctx context.Context, start, end time.Time) (map[int64]DishSales, error) {
	rows, err := r.db.Query(ctx, `
		SELECT si.dish_id,
		       COALESCE(SUM(si.quantity), 0)::int,
		       COALESCE(SUM(si.total_price), 0)::float8
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE s.sold_at >= $1 AND s.sold_at <= $2
		GROUP BY si.dish_id
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64]DishSales)
	for rows.Next() {
		var dishID int64
		var ds DishSales
		if err := rows.Scan(&dishID, &ds.Qty, &ds.Revenue); err != nil {
			return nil, err
		}
		result[dishID] = ds
	}

	return result, rows.Err()
}

func (r *PostgresRepository) DishesWithActiveRecipe(ctx context.Context) ([]DishWithRecipe, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, price::float8
		FROM dishes
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dishes []DishWithRecipe
	index := make(map[int64]int)
	for rows.Next() {
		var d DishWithRecipe
		if err := rows.Scan(&d.ID, &d.Name, &d.Price); err != nil {
			return nil, err
		}
		index[d.ID] = len(dishes)
		dishes = append(dishes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.db.Query(ctx, `
		SELECT r.dish_id, ri.ingredient_id, ri.quantity::float8
		FROM recipes r
		JOIN recipe_items ri ON ri.recipe_id = r.id
		WHERE r.is_active = TRUE
		ORDER BY r.dish_id, ri.ingredient_id
	`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var dishID int64
		var usage RecipeUsage
		if err := itemRows.Scan(&dishID, &usage.IngredientID, &usage.Quantity); err != nil {
			return nil, err
		}
		if i, ok := index[dishID]; ok {
			dishes[i].Items = append(dishes[i].Items, usage)
		}
	}

	return dishes, itemRows.Err()
}

func (r *PostgresRepository) LatestUnitCosts(ctx context.Context) (map[int64]float64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT ON (ingredient_id) ingredient_id, unit_cost::float8
		FROM batches
		ORDER BY ingredient_id, received_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	costs := make(map[int64]float64)
	for rows.Next() {
		var ingredientID int64
		var cost float64
		if err := rows.Scan(&ingredientID, &cost); err != nil {
			return nil, err
		}
		costs[ingredientID] = cost
	}

	return costs, rows.Err()
}

func (r *PostgresRepository) ExpiringBatches(ctx context.Context, from, to time.Time) ([]ExpiringBatch, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.ingredient_id, i.name, i.unit, b.quantity::float8, b.expires_at
		FROM batches b
		JOIN ingredients i ON i.id = b.ingredient_id
		WHERE b.expires_at IS NOT NULL
		  AND b.expires_at >= $1::date
		  AND b.expires_at <= $2::date
		  AND b.quantity > 0
		ORDER BY b.expires_at, b.id
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []ExpiringBatch
	for rows.Next() {
		var b ExpiringBatch
		if err := rows.Scan(&b.BatchID, &b.IngredientID, &b.Ingredient, &b.Unit, &b.Quantity, &b.ExpiresAt); err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}

	return batches, rows.Err()
}

func (r *PostgresRepository) IngredientUsageSince(ctx context.Context, since time.Time) (map[int64]float64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ri.ingredient_id, COALESCE(SUM(si.quantity * ri.quantity), 0)::float8
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN recipes r ON r.dish_id = si.dish_id AND r.is_active = TRUE
		JOIN recipe_items ri ON ri.recipe_id = r.id
		WHERE s.sold_at >= $1
		GROUP BY ri.ingredient_id
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usage := make(map[int64]float64)
	for rows.Next() {
		var ingredientID int64
		var qty float64
		if err := rows.Scan(&ingredientID, &qty); err != nil {
			return nil, err
		}
		usage[ingredientID] = qty
	}

	return usage, rows.Err()
}

func (r *PostgresRepository) PriceTrends(ctx context.Context, ingredientID *int64) ([]PriceTrend, error) {
	query := `
		SELECT p.id, p.ingredient_id, i.name, i.unit, p.supplier_id, s.name,
		       p.price::float8, p.purchase_unit_quantity::float8, p.purchase_unit,
		       p.valid_from, p.valid_to
		FROM ingredient_prices p
		JOIN ingredients i ON i.id = p.ingredient_id
		JOIN suppliers s ON s.id = p.supplier_id
	`
	args := []any{}
	if ingredientID != nil {
		query += ` WHERE p.ingredient_id = $1`
		args = append(args, *ingredientID)
	}
	query += ` ORDER BY p.ingredient_id, p.supplier_id, p.valid_from`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trends []PriceTrend
	for rows.Next() {
		var t PriceTrend
		if err := rows.Scan(
			&t.ID, &t.IngredientID, &t.Ingredient, &t.Unit, &t.SupplierID, &t.Supplier,
			&t.Price, &t.PurchaseUnitQuantity, &t.PurchaseUnit, &t.ValidFrom, &t.ValidTo,
		); err != nil {
			return nil, err
		}
		trends = append(trends, t)
	}

	return trends, rows.Err()
}

func (r *PostgresRepository) TrafficFlow(ctx context.Context, start, end time.Time) ([]TrafficBucket, error) {
	rows, err := r.db.Query(ctx, `
		SELECT EXTRACT(DOW FROM sold_at)::int AS weekday,
		       EXTRACT(HOUR FROM sold_at)::int AS hour,
		       COALESCE(SUM(total), 0)::float8 AS revenue,
		       COUNT(*)::int AS sales
		FROM sales
		WHERE sold_at >= $1 AND sold_at <= $2
		GROUP BY 1, 2
		ORDER BY 1, 2
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []TrafficBucket
	for rows.Next() {
		var b TrafficBucket
		if err := rows.Scan(&b.Weekday, &b.Hour, &b.Revenue, &b.Sales); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}

	return buckets, rows.Err()
}

func (r *PostgresRepository) RevenueForDate(ctx context.Context, date time.Time) (float64, error) {
	var revenue float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0)::float8
		FROM sales
		WHERE sold_at::date = $1::date
	`, date).Scan(&revenue)

	return revenue, err
}
