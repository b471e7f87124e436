package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dealstack/crm-backend/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "crm",
		Short: "DealStack CRM backend",
		Long:  `DealStack CRM API server managing customers, worksheets, invoices, orders, and support tickets.`,
	}

	rootCmd.AddCommand(commands.ServeCmd())
	rootCmd.AddCommand(commands.MigrateCmd())
	rootCmd.AddCommand(commands.SeedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
