// Package db owns connection, schema migration and seed data.
package db

import (
	"errors"
	"fmt"
	"time"

	"clientdesk/internal/models"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the PostgreSQL connection, retrying a few times so the
// database has time to come up alongside the app.
func Connect(dsn string) (*gorm.DB, error) {
	var conn *gorm.DB
	var err error
	for i := 0; i < 5; i++ {
		conn, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			return conn, nil
		}
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("connect database: %w", err)
}

// MigrateSQL runs the versioned SQL migrations under ./migrations.
// databaseURL is the URL-form connection string; selected in production
// via MIGRATIONS=1, with AutoMigrate as the dev fallback.
func MigrateSQL(databaseURL string) error {
	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Migrate applies GORM auto-migrations for all console models.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&models.Permission{},
		&models.Role{},
		&models.Employee{},
		&models.Client{},
		&models.ContactPerson{},
		&models.ClientAssignment{},
		&models.Document{},
		&models.Quotation{},
		&models.Asset{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
