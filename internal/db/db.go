// Package db wires the server's database connection and schema.
package db

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/rolodex-hq/rolodex/internal/config"
	"github.com/rolodex-hq/rolodex/pkg/database"
	"github.com/rolodex-hq/rolodex/pkg/models"
)

// NewDB returns a new migrated database connection.
func NewDB(cfg config.Postgres, log hclog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(database.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		DBName:   cfg.DBName,
		SSLMode:  cfg.SSLMode,
	}, log)
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// AutoMigrate creates or updates the schema for all registered models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.ModelsToAutoMigrate()...); err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}
	return nil
}
