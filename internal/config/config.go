package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ServiceKindAll      = "all"
	ServiceKindUsers    = "users"
	ServiceKindProducts = "products"

	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds runtime configuration sourced from the environment (and an
// optional .env file).
type Config struct {
	AppPort     string
	ServiceName string
	ServiceKind string

	StoreDriver         string
	MongoURL            string
	DatabaseName        string
	MongoConnectTimeout time.Duration
	DatabaseDSN         string

	RabbitMQURL string

	CORSOrigins    []string
	LogLevel       string
	LogFormat      string
	SeedCount      int
	MetricsEnabled bool
	HealthTimeout  time.Duration
}

// Load reads configuration and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("SERVICE_NAME", "stockroom")
	v.SetDefault("SERVICE_KIND", ServiceKindAll)
	v.SetDefault("STORE_DRIVER", DriverMongo)
	v.SetDefault("MONGODB_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "stockroom")
	v.SetDefault("MONGODB_CONNECT_TIMEOUT", "10s")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SEED_COUNT", 100)
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("HEALTH_TIMEOUT", "2s")
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:             normalizePort(v.GetString("APP_PORT")),
		ServiceName:         strings.TrimSpace(v.GetString("SERVICE_NAME")),
		ServiceKind:         strings.ToLower(strings.TrimSpace(v.GetString("SERVICE_KIND"))),
		StoreDriver:         strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		MongoURL:            strings.TrimSpace(v.GetString("MONGODB_URL")),
		DatabaseName:        strings.TrimSpace(v.GetString("DATABASE_NAME")),
		MongoConnectTimeout: v.GetDuration("MONGODB_CONNECT_TIMEOUT"),
		DatabaseDSN:         strings.TrimSpace(v.GetString("DATABASE_DSN")),
		RabbitMQURL:         strings.TrimSpace(v.GetString("RABBITMQ_URL")),
		CORSOrigins:         parseCSV(v.GetString("CORS_ALLOWED_ORIGINS")),
		LogLevel:            v.GetString("LOG_LEVEL"),
		LogFormat:           v.GetString("LOG_FORMAT"),
		SeedCount:           v.GetInt("SEED_COUNT"),
		MetricsEnabled:      v.GetBool("METRICS_ENABLED"),
		HealthTimeout:       v.GetDuration("HEALTH_TIMEOUT"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.ServiceKind {
	case ServiceKindAll, ServiceKindUsers, ServiceKindProducts:
	default:
		return fmt.Errorf("SERVICE_KIND must be one of all, users, products; got %q", c.ServiceKind)
	}

	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURL == "" || c.DatabaseName == "" {
			return errors.New("MONGODB_URL and DATABASE_NAME are required for the mongo driver")
		}
	case DriverPostgres:
		if c.DatabaseDSN == "" {
			return errors.New("DATABASE_DSN is required for the postgres driver")
		}
	case DriverSQLite:
		if c.DatabaseDSN == "" {
			c.DatabaseDSN = "file:stockroom.db?cache=shared"
		}
	case DriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be one of mongo, postgres, sqlite, memory; got %q", c.StoreDriver)
	}

	if c.SeedCount <= 0 {
		return fmt.Errorf("SEED_COUNT must be positive; got %d", c.SeedCount)
	}
	if c.MongoConnectTimeout <= 0 {
		c.MongoConnectTimeout = 10 * time.Second
	}
	if c.HealthTimeout <= 0 {
		c.HealthTimeout = 2 * time.Second
	}
	return nil
}

// ServesUsers reports whether the user API is mounted.
func (c *Config) ServesUsers() bool {
	return c.ServiceKind == ServiceKindAll || c.ServiceKind == ServiceKindUsers
}

// ServesProducts reports whether the product API is mounted.
func (c *Config) ServesProducts() bool {
	return c.ServiceKind == ServiceKindAll || c.ServiceKind == ServiceKindProducts
}

// EventsEnabled reports whether record events are published to RabbitMQ.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}

func normalizePort(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		return ":8080"
	}
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

func parseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
