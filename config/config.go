package config

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the database connection. Postgres is the production
// store; DB_DRIVER=sqlite switches to a local file for development.
func InitDB() (*gorm.DB, error) {
	gormConfig := &gorm.Config{}
	if os.Getenv("GIN_MODE") == "release" {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	if getEnv("DB_DRIVER", "postgres") == "sqlite" {
		path := getEnv("DB_PATH", "crm.db")
		return gorm.Open(sqlite.Open(path), gormConfig)
	}

	sslMode := "require"
	if os.Getenv("DB_SSL") == "false" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		getEnv("DB_NAME", "postgres"),
		getEnv("DB_PORT", "5432"),
		sslMode,
	)

	return gorm.Open(postgres.Open(dsn), gormConfig)
}
