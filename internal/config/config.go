// Package config provides application configuration loaded from
// environment variables (optionally via a .env file at bootstrap).
package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string `env:"PORT" envDefault:"8080"`
	ReadTimeout  int    `env:"SERVER_READ_TIMEOUT" envDefault:"15"`  // seconds
	WriteTimeout int    `env:"SERVER_WRITE_TIMEOUT" envDefault:"15"` // seconds
	IdleTimeout  int    `env:"SERVER_IDLE_TIMEOUT" envDefault:"60"`  // seconds
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"clientdesk"`
	Password string `env:"DB_PASSWORD" envDefault:"clientdesk123"`
	DBName   string `env:"DB_NAME" envDefault:"clientdesk"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// StorageConfig holds object storage settings.
type StorageConfig struct {
	// Root is the directory buckets live under.
	Root string `env:"STORAGE_ROOT" envDefault:"data/storage"`
	// PublicBase is the URL prefix stored objects are served from.
	PublicBase string `env:"STORAGE_PUBLIC_BASE" envDefault:"/files"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev bool `env:"DEV" envDefault:"true"`
	// Migrations selects the versioned SQL migrations (golang-migrate)
	// over the AutoMigrate dev fallback.
	Migrations bool `env:"MIGRATIONS" envDefault:"false"`
}

// URL returns the connection string in URL form, which golang-migrate
// expects.
func (d DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.DBName,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

// DSN returns the PostgreSQL connection string in key=value format.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
