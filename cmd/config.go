package cmd

import (
	"fmt"
	"time"
)

// Config carries every runtime setting. Values come from the environment
// (optionally seeded from a .env file) and are parsed with caarlos0/env.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// LockTimeout bounds row lock waits inside lifecycle transactions.
	LockTimeout time.Duration `env:"DB_LOCK_TIMEOUT" envDefault:"1s"`

	RabbitURL      string `env:"RABBIT_URL"`
	RabbitExchange string `env:"RABBIT_EXCHANGE" envDefault:"order_status_changed"`

	// ExchangeRateUZS is the USD to UZS rate pinned for the billing period.
	ExchangeRateUZS float64 `env:"EXCHANGE_RATE_UZS" envDefault:"12650"`
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
