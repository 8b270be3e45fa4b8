package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sellerhub/marketplace-api/cache"
	"github.com/sellerhub/marketplace-api/config"
	orderControllers "github.com/sellerhub/marketplace-api/controllers/order"
	"github.com/sellerhub/marketplace-api/events"
	"github.com/sellerhub/marketplace-api/models"
	"github.com/sellerhub/marketplace-api/notify"
	"github.com/sellerhub/marketplace-api/routes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()
	cfg := config.Load()

	// Init DB
	db := initDatabase(cfg.PostgresDSN)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Seller{},
		&models.Product{},
		&models.Category{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Coupon{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Optional collaborators; all nil-safe when unconfigured
	productCache := cache.NewProductCache(cfg.RedisAddr, cfg.CatalogCacheTTL)
	producer := events.NewProducer(cfg.KafkaBrokers, cfg.OrdersTopic)
	defer producer.Close()
	mailer := notify.NewSender(cfg.SMTPAddr, cfg.SMTPFrom)

	deps := orderControllers.Deps{
		Cache:  productCache,
		Events: producer,
		Mailer: mailer,
	}

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
	routes.SetupRoutes(r, db, deps)

	// Start server
	log.Printf("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}

func initDatabase(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	log.Println("✅ Connected to database")
	return db
}
