package database

import (
	"fmt"

	"github.com/Kabachel/FeedingKittiesBot/internal/config"
	"github.com/Kabachel/FeedingKittiesBot/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgresDB opens a PostgreSQL connection and migrates the schema.
func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Cat{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
