package main

import (
	"log"
	"os"
	"time"

	"github.com/PHPdro/menu-engineering-api/internal/analytics"
	"github.com/PHPdro/menu-engineering-api/internal/db"
	"github.com/PHPdro/menu-engineering-api/internal/inventory"
	"github.com/PHPdro/menu-engineering-api/internal/menu"
	"github.com/PHPdro/menu-engineering-api/internal/middleware"
	"github.com/PHPdro/menu-engineering-api/internal/sale"
	"github.com/PHPdro/menu-engineering-api/internal/supplier"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"DATABASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// Money fields serialize as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── REPOS ─────────────────────────
	inventoryRepo := inventory.NewPostgresRepository(pgDB)
	supplierRepo := supplier.NewPostgresRepository(pgDB)
	menuRepo := menu.NewPostgresRepository(pgDB)
	saleRepo := sale.NewPostgresRepository(pgDB)
	analyticsRepo := analytics.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES ─────────────────────────
	inventoryService := inventory.NewService(inventoryRepo)
	supplierService := supplier.NewService(supplierRepo)
	menuService := menu.NewService(menuRepo)
	saleService := sale.NewService(saleRepo)
	analyticsService := analytics.NewService(analyticsRepo)

	// ───────────────────────── HANDLERS ─────────────────────────
	inventoryHandler := inventory.NewHandler(inventoryService)
	supplierHandler := supplier.NewHandler(supplierService)
	menuHandler := menu.NewHandler(menuService)
	saleHandler := sale.NewHandler(saleService)
	analyticsHandler := analytics.NewHandler(analyticsService)

	// ───────────────────────── GIN ─────────────────────────
	r := setupRouter(inventoryHandler, supplierHandler, menuHandler, saleHandler, analyticsHandler)

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("🚀 API running at http://localhost:%s", port)
	r.Run(":" + port)
}

func setupRouter(
	inventoryHandler *inventory.Handler,
	supplierHandler *supplier.Handler,
	menuHandler *menu.Handler,
	saleHandler *sale.Handler,
	analyticsHandler *analytics.Handler,
) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestID())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── INVENTORY ROUTES ─────────────────────────
	ingredients := r.Group("/ingredients")
	{
		ingredients.POST("", inventoryHandler.CreateIngredient)
		ingredients.GET("", inventoryHandler.ListIngredients)
		ingredients.GET("/:id", inventoryHandler.GetIngredient)
		ingredients.PUT("/:id", inventoryHandler.UpdateIngredient)
		ingredients.DELETE("/:id", inventoryHandler.DeleteIngredient)
	}

	batches := r.Group("/batches")
	{
		batches.POST("", inventoryHandler.CreateBatch)
		batches.GET("", inventoryHandler.ListBatches)
		batches.GET("/:id", inventoryHandler.GetBatch)
		batches.PUT("/:id", inventoryHandler.UpdateBatch)
		batches.DELETE("/:id", inventoryHandler.DeleteBatch)
	}

	// ───────────────────────── SUPPLIER ROUTES ─────────────────────────
	suppliers := r.Group("/suppliers")
	{
		suppliers.POST("", supplierHandler.CreateSupplier)
		suppliers.GET("", supplierHandler.ListSuppliers)
		suppliers.GET("/:id", supplierHandler.GetSupplier)
		suppliers.PUT("/:id", supplierHandler.UpdateSupplier)
		suppliers.DELETE("/:id", supplierHandler.DeleteSupplier)
	}

	prices := r.Group("/ingredient-prices")
	{
		prices.POST("", supplierHandler.CreatePrice)
		prices.GET("", supplierHandler.ListPrices)
		prices.GET("/:id", supplierHandler.GetPrice)
		prices.PUT("/:id", supplierHandler.UpdatePrice)
		prices.DELETE("/:id", supplierHandler.DeletePrice)
	}

	// ───────────────────────── MENU ROUTES ─────────────────────────
	dishes := r.Group("/dishes")
	{
		dishes.POST("", menuHandler.CreateDish)
		dishes.GET("", menuHandler.ListDishes)
		dishes.GET("/:id", menuHandler.GetDish)
		dishes.PUT("/:id", menuHandler.UpdateDish)
		dishes.DELETE("/:id", menuHandler.DeleteDish)
	}

	recipes := r.Group("/recipes")
	{
		recipes.POST("", menuHandler.CreateRecipe)
		recipes.GET("", menuHandler.ListRecipes)
		recipes.GET("/:id", menuHandler.GetRecipe)
		recipes.PUT("/:id", menuHandler.UpdateRecipe)
		recipes.DELETE("/:id", menuHandler.DeleteRecipe)
	}

	recipeItems := r.Group("/recipe-items")
	{
		recipeItems.POST("", menuHandler.CreateRecipeItem)
		recipeItems.GET("", menuHandler.ListRecipeItems)
		recipeItems.GET("/:id", menuHandler.GetRecipeItem)
		recipeItems.PUT("/:id", menuHandler.UpdateRecipeItem)
		recipeItems.DELETE("/:id", menuHandler.DeleteRecipeItem)
	}

	// ───────────────────────── SALE ROUTES ─────────────────────────
	sales := r.Group("/sales")
	{
		sales.POST("", saleHandler.CreateSale)
		sales.GET("", saleHandler.ListSales)
		sales.GET("/:id", saleHandler.GetSale)
	}

	// ───────────────────────── ANALYTICS ROUTES ─────────────────────────
	analyticsGroup := r.Group("/analytics")
	{
		analyticsGroup.GET("/menu-matrix", analyticsHandler.MenuMatrix)
		analyticsGroup.GET("/menu-matrix-by-category", analyticsHandler.MenuMatrixByCategory)
		analyticsGroup.GET("/perishables-alerts", analyticsHandler.PerishablesAlerts)
		analyticsGroup.GET("/price-trends", analyticsHandler.PriceTrends)
		analyticsGroup.GET("/traffic-flow", analyticsHandler.TrafficFlow)
		analyticsGroup.GET("/breakeven", analyticsHandler.Breakeven)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
