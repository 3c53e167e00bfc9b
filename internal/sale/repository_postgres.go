package sale

import (
	"context"
	"errors"
	"time"

	"github.com/PHPdro/menu-engineering-api/internal/inventory"
	"github.com/PHPdro/menu-engineering-api/internal/menu"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrSaleNotFound = errors.New("sale not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// CREATE SALE (ATOMIC FIFO STOCK DEDUCTION)
// --------------------------------------------------

func (r *PostgresRepository) CreateSale(ctx context.Context, soldAt time.Time, channel string, lines []Line) (*Sale, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	sale := &Sale{
		SoldAt:   soldAt,
		Channel:  channel,
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
		Tax:      decimal.Zero,
		Total:    decimal.Zero,
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO sales (sold_at, channel, subtotal, discount, tax, total)
		VALUES ($1, $2, 0, 0, 0, 0)
		RETURNING id, created_at, updated_at
	`, soldAt, channel).Scan(&sale.ID, &sale.CreatedAt, &sale.UpdatedAt)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero

	for _, line := range lines {
		var dish menu.Dish
		err := tx.QueryRow(ctx, `
			SELECT id, name, sku, price, is_active, created_at, updated_at
			FROM dishes
			WHERE id = $1
		`, line.DishID).Scan(
			&dish.ID, &dish.Name, &dish.SKU, &dish.Price, &dish.IsActive,
			&dish.CreatedAt, &dish.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, menu.ErrDishNotFound
			}
			return nil, err
		}

		unitPrice := dish.Price
		if line.UnitPrice != nil {
			unitPrice = *line.UnitPrice
		}
		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineTotal)

		item := SaleItem{
			SaleID:     sale.ID,
			DishID:     dish.ID,
			Quantity:   line.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: lineTotal,
			Dish:       &dish,
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO sale_items (sale_id, dish_id, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, sale.ID, dish.ID, line.Quantity, unitPrice, lineTotal).Scan(&item.ID)
		if err != nil {
			return nil, err
		}

		// Consume stock by recipe, FIFO on batches by earliest expiry/received
		recipeItems, err := activeRecipeItems(ctx, tx, &dish)
		if err != nil {
			return nil, err
		}

		for _, ri := range recipeItems {
			required := ri.Quantity * float64(line.Quantity)
			if err := consumeIngredient(ctx, tx, ri.IngredientID, required); err != nil {
				return nil, err
			}
		}

		sale.Items = append(sale.Items, item)
	}

	sale.Subtotal = subtotal
	sale.Total = subtotal
	if _, err := tx.Exec(ctx, `
		UPDATE sales
		SET subtotal = $1,
		    total = $1,
		    updated_at = now()
		WHERE id = $2
	`, subtotal, sale.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return sale, nil
}

func activeRecipeItems(ctx context.Context, tx pgx.Tx, dish *menu.Dish) ([]menu.RecipeItem, error) {
	var recipeID int64
	err := tx.QueryRow(ctx, `
		SELECT id FROM recipes
		WHERE dish_id = $1 AND is_active = TRUE
		LIMIT 1
	`, dish.ID).Scan(&recipeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &menu.NoActiveRecipeError{DishID: dish.ID, DishName: dish.Name}
		}
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT ingredient_id, quantity
		FROM recipe_items
		WHERE recipe_id = $1
		ORDER BY ingredient_id
	`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []menu.RecipeItem
	for rows.Next() {
		var item menu.RecipeItem
		if err := rows.Scan(&item.IngredientID, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// consumeIngredient locks the ingredient's live batches for the duration
// of the transaction so concurrent sales cannot double-allocate the same
// stock, then applies the FIFO plan.
func consumeIngredient(ctx context.Context, tx pgx.Tx, ingredientID int64, required float64) error {
	rows, err := tx.Query(ctx, `
		SELECT id, quantity
		FROM batches
		WHERE ingredient_id = $1
		  AND quantity > 0
		ORDER BY COALESCE(expires_at, received_at) ASC, id ASC
		FOR UPDATE
	`, ingredientID)
	if err != nil {
		return err
	}

	var batches []inventory.Batch
	for rows.Next() {
		var b inventory.Batch
		if err := rows.Scan(&b.ID, &b.Quantity); err != nil {
			rows.Close()
			return err
		}
		batches = append(batches, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	plan, remaining := inventory.PlanConsumption(batches, required)
	if remaining > inventory.QuantityTolerance {
		return &inventory.InsufficientStockError{
			IngredientID: ingredientID,
			Required:     required,
			Short:        remaining,
		}
	}

	for _, d := range plan {
		if _, err := tx.Exec(ctx, `
			UPDATE batches
			SET quantity = $1,
			    updated_at = now()
			WHERE id = $2
		`, d.Remaining, d.BatchID); err != nil {
			return err
		}
	}

	return nil
}

// --------------------------------------------------
// LIST / GET
// --------------------------------------------------

func (r *PostgresRepository) ListSales(ctx context.Context) ([]*Sale, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, sold_at, channel, subtotal, discount, tax, total, created_at, updated_at
		FROM sales
		ORDER BY sold_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*Sale
	index := make(map[int64]*Sale)
	for rows.Next() {
		var s Sale
		if err := rows.Scan(
			&s.ID, &s.SoldAt, &s.Channel, &s.Subtotal, &s.Discount, &s.Tax, &s.Total,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		s.Items = []SaleItem{}
		sales = append(sales, &s)
		index[s.ID] = &s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.db.Query(ctx, `
		SELECT
			si.id, si.sale_id, si.dish_id, si.quantity, si.unit_price, si.total_price,
			d.id, d.name, d.sku, d.price, d.is_active, d.created_at, d.updated_at
		FROM sale_items si
		JOIN dishes d ON d.id = si.dish_id
		ORDER BY si.sale_id, si.id
	`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item SaleItem
		var d menu.Dish
		if err := itemRows.Scan(
			&item.ID, &item.SaleID, &item.DishID, &item.Quantity, &item.UnitPrice, &item.TotalPrice,
			&d.ID, &d.Name, &d.SKU, &d.Price, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		item.Dish = &d
		if s, ok := index[item.SaleID]; ok {
			s.Items = append(s.Items, item)
		}
	}

	return sales, itemRows.Err()
}

func (r *PostgresRepository) GetSale(ctx context.Context, id int64) (*Sale, error) {
	var s Sale
	err := r.db.QueryRow(ctx, `
		SELECT id, sold_at, channel, subtotal, discount, tax, total, created_at, updated_at
		FROM sales
		WHERE id = $1
	`, id).Scan(
		&s.ID, &s.SoldAt, &s.Channel, &s.Subtotal, &s.Discount, &s.Tax, &s.Total,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	s.Items = []SaleItem{}

	rows, err := r.db.Query(ctx, `
		SELECT
			si.id, si.sale_id, si.dish_id, si.quantity, si.unit_price, si.total_price,
			d.id, d.name, d.sku, d.price, d.is_active, d.created_at, d.updated_at
		FROM sale_items si
		JOIN dishes d ON d.id = si.dish_id
		WHERE si.sale_id = $1
		ORDER BY si.id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item SaleItem
		var d menu.Dish
		if err := rows.Scan(
			&item.ID, &item.SaleID, &item.DishID, &item.Quantity, &item.UnitPrice, &item.TotalPrice,
			&d.ID, &d.Name, &d.SKU, &d.Price, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		item.Dish = &d
		s.Items = append(s.Items, item)
	}

	return &s, rows.Err()
}
