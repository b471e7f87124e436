package commands

import (
	"log"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dealstack/crm-backend/config"
	"github.com/dealstack/crm-backend/utils"
)

// MigrateCmd runs the schema migration and exits.
func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
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

			color.New(color.FgGreen).Println("Migration completed.")
			return nil
		},
	}
}
