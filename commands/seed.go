package commands

import (
	"fmt"
	"log"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dealstack/crm-backend/config"
	"github.com/dealstack/crm-backend/models"
	"github.com/dealstack/crm-backend/services"
	"github.com/dealstack/crm-backend/utils"
)

// SeedCmd loads a small demo dataset.
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo users, customers, and documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil {
				log.Printf("Warning: .env file not found or error loading: %v", err)
			}

			utils.InitLogger()

			db, err := config.InitDB()
			if err != nil {
				return err
			}
			if err := AutoMigrate(db); err != nil {
				return err
			}

			return seed(db)
		},
	}
}

func seed(db *gorm.DB) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Admin",
		Email:    "admin@dealstack.io",
		Password: string(hashed),
		Role:     "admin",
	}
	if err := db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
		return err
	}

	customers := []models.Customer{
		{Name: "Sarah Chen", Email: "sarah@acmecorp.com", Phone: "+1 555-0101", Company: "Acme Corp", Location: "San Francisco, CA", Status: "active"},
		{Name: "James Miller", Email: "james@globex.com", Phone: "+1 555-0102", Company: "Globex", Location: "Austin, TX", Status: "active"},
		{Name: "Ana Souza", Email: "ana@initech.com", Phone: "+1 555-0103", Company: "Initech", Location: "Denver, CO", Status: "inactive"},
	}
	for i := range customers {
		if err := db.Where("email = ?", customers[i].Email).FirstOrCreate(&customers[i]).Error; err != nil {
			return err
		}
	}

	due := time.Now().AddDate(0, 0, 14)
	worksheet := models.Worksheet{
		Title:       "Q3 onboarding review",
		Description: "Walk through the onboarding flow with the Acme team",
		Status:      "in-progress",
		Priority:    "high",
		DueDate:     &due,
		Progress:    40,
	}
	if err := db.Where("title = ?", worksheet.Title).FirstOrCreate(&worksheet).Error; err != nil {
		return err
	}

	items := []services.LineItemInput{
		{Description: "Consulting hours", Quantity: 10, UnitPrice: decimal.NewFromInt(150)},
		{Description: "Platform license", Quantity: 1, UnitPrice: decimal.NewFromInt(500)},
	}
	breakdown, err := services.InvoiceTotals(items, decimal.NewFromInt(120), decimal.NewFromInt(50))
	if err != nil {
		return err
	}

	invoice := models.Invoice{
		InvoiceNumber: utils.NewRefNumber("INV"),
		CustomerID:    customers[0].ID,
		Tax:           breakdown.Tax,
		Discount:      breakdown.Discount,
		IssueDate:     time.Now(),
		DueDate:       due,
		Status:        "pending",
		Total:         breakdown.Total,
	}
	var invoiceCount int64
	db.Model(&models.Invoice{}).Count(&invoiceCount)
	if invoiceCount == 0 {
		if err := db.Create(&invoice).Error; err != nil {
			return err
		}
		for _, item := range items {
			db.Create(&models.InvoiceItem{
				InvoiceID:   invoice.ID,
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Amount:      services.LineAmount(item.Quantity, item.UnitPrice),
			})
		}
	}

	orderBreakdown, err := services.OrderTotals([]services.LineItemInput{
		{Description: "Starter bundle", Quantity: 2, UnitPrice: decimal.NewFromInt(250)},
	})
	if err != nil {
		return err
	}
	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	if orderCount == 0 {
		order := models.Order{
			OrderNumber: utils.NewRefNumber("ORD"),
			CustomerID:  customers[1].ID,
			Type:        "product",
			Status:      "processing",
			OrderDate:   time.Now(),
			Total:       orderBreakdown.Total,
		}
		if err := db.Create(&order).Error; err != nil {
			return err
		}
		db.Create(&models.OrderItem{
			OrderID:   order.ID,
			Name:      "Starter bundle",
			Quantity:  2,
			UnitPrice: decimal.NewFromInt(250),
			Amount:    decimal.NewFromInt(500),
		})
	}

	ticket := models.SupportTicket{
		TicketNumber: utils.NewRefNumber("TKT"),
		CustomerID:   customers[0].ID,
		Subject:      "Cannot export worksheet report",
		Description:  "Export button returns an error on the worksheets page",
		Priority:     "medium",
		Status:       "open",
	}
	var ticketCount int64
	db.Model(&models.SupportTicket{}).Count(&ticketCount)
	if ticketCount == 0 {
		if err := db.Create(&ticket).Error; err != nil {
			return err
		}
	}

	green := color.New(color.FgGreen)
	green.Println("Seed completed.")
	fmt.Printf("  admin login:    admin@dealstack.io / admin12345\n")
	fmt.Printf("  customers:      %d\n", len(customers))
	fmt.Printf("  demo invoice:   %s\n", utils.FormatUSD(breakdown.Total))
	fmt.Printf("  demo order:     %s\n", utils.FormatUSD(orderBreakdown.Total))
	return nil
}
