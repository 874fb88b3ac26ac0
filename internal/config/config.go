// internal/config/config.go
package config

import (
	"fmt"
	"os"
)

// Config carries everything the binaries read from the environment.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Port the HTTP server listens on.
	Port string

	// AMQPURL enables the RabbitMQ-backed event queue when set.
	// Empty means the in-process queue is used instead.
	AMQPURL string
}

// Load reads the environment, falling back to local-dev defaults.
func Load() Config {
	return Config{
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", "postgres"),
		DBName:     getenv("DB_NAME", "customers"),
		Port:       getenv("PORT", "8080"),
		AMQPURL:    os.Getenv("AMQP_URL"),
	}
}

// DSN builds the lib/pq connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
