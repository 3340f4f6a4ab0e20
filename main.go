package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/zaidqureshi-dev/menuorder-api/models"
	"github.com/zaidqureshi-dev/menuorder-api/routes"
	"github.com/zaidqureshi-dev/menuorder-api/services/stock"
	"github.com/zaidqureshi-dev/menuorder-api/session"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log.Println("Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.Category{},
		&models.MenuItem{},
		&models.MenuItemSize{},
		&models.CheckoutStep{},
		&models.StepOption{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemOption{},
		&models.OrderStockLine{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// First boot gets a usable wizard out of the box
	if err := seedDefaultSteps(db); err != nil {
		log.Fatalf("Step seeding failed: %v", err)
	}

	// Session manager + stock service
	sessions := session.NewManager()
	defer sessions.Close()
	stockSvc := stock.NewService(db)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, db, sessions, stockSvc)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect DB: %v", err)
	}
	return db
}

// seedDefaultSteps inserts a minimal wizard (delivery + name) when no step
// configuration exists yet. Admin replaces it through PUT /admin/steps.
func seedDefaultSteps(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.CheckoutStep{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	steps := []models.CheckoutStep{
		{
			Type:       models.StepDelivery,
			Title:      "Delivery or pickup",
			SortOrder:  1,
			Enabled:    true,
			Required:   true,
			Visibility: models.StepVisibility{Mode: models.VisibilityAlways},
		},
		{
			Type:       models.StepName,
			Title:      "Your details",
			SortOrder:  2,
			Enabled:    true,
			Required:   true,
			Visibility: models.StepVisibility{Mode: models.VisibilityAlways},
		},
	}
	return db.Create(&steps).Error
}
