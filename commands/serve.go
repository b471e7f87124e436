package commands

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/dealstack/crm-backend/config"
	"github.com/dealstack/crm-backend/models"
	"github.com/dealstack/crm-backend/router"
	"github.com/dealstack/crm-backend/utils"

	"github.com/dealstack/crm-backend/middlewares"
)

// ServeCmd runs the API server.
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the CRM API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil {
				log.Printf("Warning: .env file not found or error loading: %v", err)
			}

			utils.InitLogger()

			db, err := config.InitDB()
			if err != nil {
				utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
			}
			utils.InitDB(db)

			if os.Getenv("GIN_MODE") == "release" {
				gin.SetMode(gin.ReleaseMode)
			}

			if err := AutoMigrate(db); err != nil {
				utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
			}

			// Sweep expired blacklist entries hourly
			go func() {
				for range time.Tick(1 * time.Hour) {
					utils.CleanupBlacklist()
				}
			}()

			rateLimiter := middlewares.NewRateLimiter(50, 1)

			r := router.SetupRouter(db, rateLimiter.RateLimit())

			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			utils.InfoLogger.Printf("Listening on port %s", port)
			return r.Run(":" + port)
		},
	}
}

// AutoMigrate creates or updates the schema for every entity.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Worksheet{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.SupportTicket{},
		&models.TicketMessage{},
	)
}
