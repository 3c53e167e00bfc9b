package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(pool); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return pool
}

// initSchema creates the database schema if it does not exist yet
func initSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// INGREDIENTS
	// -------------------------------
	ingredientsSQL := `
		CREATE TABLE IF NOT EXISTS ingredients (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			unit VARCHAR(32) NOT NULL,
			is_perishable BOOLEAN NOT NULL DEFAULT FALSE,
			shelf_life_days INTEGER NULL,
			min_stock NUMERIC(12,3) NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (name, unit)
		)
	`
	if _, err := pool.Exec(ctx, ingredientsSQL); err != nil {
		return err
	}

	// -------------------------------
	// SUPPLIERS
	// -------------------------------
	suppliersSQL := `
		CREATE TABLE IF NOT EXISTS suppliers (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			contact_name VARCHAR(255) NULL,
			email VARCHAR(255) NULL,
			phone VARCHAR(64) NULL,
			notes TEXT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, suppliersSQL); err != nil {
		return err
	}

	// -------------------------------
	// INGREDIENT PRICES (append-only history)
	// -------------------------------
	pricesSQL := `
		CREATE TABLE IF NOT EXISTS ingredient_prices (
			id BIGSERIAL PRIMARY KEY,
			ingredient_id BIGINT NOT NULL REFERENCES ingredients(id) ON DELETE CASCADE,
			supplier_id BIGINT NOT NULL REFERENCES suppliers(id) ON DELETE CASCADE,
			price NUMERIC(12,4) NOT NULL,
			purchase_unit_quantity NUMERIC(12,3) NOT NULL DEFAULT 1,
			purchase_unit VARCHAR(32) NULL,
			valid_from DATE NOT NULL,
			valid_to DATE NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (ingredient_id, supplier_id, valid_from)
		)
	`
	if _, err := pool.Exec(ctx, pricesSQL); err != nil {
		return err
	}

	// -------------------------------
	// BATCHES (one delivery lot per row)
	// -------------------------------
	batchesSQL := `
		CREATE TABLE IF NOT EXISTS batches (
			id BIGSERIAL PRIMARY KEY,
			ingredient_id BIGINT NOT NULL REFERENCES ingredients(id) ON DELETE CASCADE,
			quantity NUMERIC(12,3) NOT NULL,
			received_at DATE NOT NULL,
			expires_at DATE NULL,
			unit_cost NUMERIC(12,4) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, batchesSQL); err != nil {
		return err
	}

	batchesIndexSQL := `
		CREATE INDEX IF NOT EXISTS batches_ingredient_expiry_idx
		ON batches (ingredient_id, expires_at)
	`
	if _, err := pool.Exec(ctx, batchesIndexSQL); err != nil {
		return err
	}

	// -------------------------------
	// DISHES
	// -------------------------------
	dishesSQL := `
		CREATE TABLE IF NOT EXISTS dishes (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			sku VARCHAR(255) NULL UNIQUE,
			price NUMERIC(12,2) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, dishesSQL); err != nil {
		return err
	}

	// -------------------------------
	// RECIPES (versioned bill of materials, one active per dish)
	// -------------------------------
	recipesSQL := `
		CREATE TABLE IF NOT EXISTS recipes (
			id BIGSERIAL PRIMARY KEY,
			dish_id BIGINT NOT NULL REFERENCES dishes(id) ON DELETE CASCADE,
			version VARCHAR(255) NOT NULL DEFAULT 'v1',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (dish_id, version)
		)
	`
	if _, err := pool.Exec(ctx, recipesSQL); err != nil {
		return err
	}

	recipeItemsSQL := `
		CREATE TABLE IF NOT EXISTS recipe_items (
			id BIGSERIAL PRIMARY KEY,
			recipe_id BIGINT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
			ingredient_id BIGINT NOT NULL REFERENCES ingredients(id) ON DELETE CASCADE,
			quantity NUMERIC(12,3) NOT NULL,
			notes TEXT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (recipe_id, ingredient_id)
		)
	`
	if _, err := pool.Exec(ctx, recipeItemsSQL); err != nil {
		return err
	}

	// -------------------------------
	// SALES
	// -------------------------------
	salesSQL := `
		CREATE TABLE IF NOT EXISTS sales (
			id BIGSERIAL PRIMARY KEY,
			sold_at TIMESTAMP NOT NULL,
			channel VARCHAR(64) NOT NULL DEFAULT 'pos',
			subtotal NUMERIC(12,2) NOT NULL DEFAULT 0,
			discount NUMERIC(12,2) NOT NULL DEFAULT 0,
			tax NUMERIC(12,2) NOT NULL DEFAULT 0,
			total NUMERIC(12,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, salesSQL); err != nil {
		return err
	}

	salesIndexSQL := `CREATE INDEX IF NOT EXISTS sales_sold_at_idx ON sales (sold_at)`
	if _, err := pool.Exec(ctx, salesIndexSQL); err != nil {
		return err
	}

	saleItemsSQL := `
		CREATE TABLE IF NOT EXISTS sale_items (
			id BIGSERIAL PRIMARY KEY,
			sale_id BIGINT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
			dish_id BIGINT NOT NULL REFERENCES dishes(id),
			quantity INTEGER NOT NULL,
			unit_price NUMERIC(12,2) NOT NULL,
			total_price NUMERIC(12,2) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, saleItemsSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
