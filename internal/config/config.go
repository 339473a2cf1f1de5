package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/brightpaws/service-boarding/internal/pkg/database"
)

// ServiceConfig holds all configuration for the boarding service.
type ServiceConfig struct {
	Port   string `envconfig:"SERVICE_PORT" default:":8084"`
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	DB    DBConfig
	JWT   JWTConfig
	Kafka KafkaConfig
	CORS  CORSConfig

	// Timezone is the business-local zone used for unit counting. Drop-off
	// and pick-up timestamps are interpreted in this zone; mixing zones
	// would make night/day counts meaningless.
	Timezone string `envconfig:"TIMEZONE" default:"America/New_York"`

	// SweepSchedule is the cron expression for the status sweeper.
	SweepSchedule string `envconfig:"SWEEP_SCHEDULE" default:"*/10 * * * *"`
}

// DBConfig holds the Postgres connection settings.
type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" default:"boarding"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret        string        `envconfig:"JWT_SECRET" required:"true"`
	TokenDuration time.Duration `envconfig:"JWT_TOKEN_DURATION" default:"15m"`
}

// KafkaConfig holds event bus settings.
type KafkaConfig struct {
	Brokers     []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	GroupPrefix string   `envconfig:"KAFKA_GROUP_PREFIX" default:"brightpaws."`
}

// CORSConfig holds the allowed origins for browser clients.
type CORSConfig struct {
	AllowOrigins []string `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000"`
}

// Load reads configuration from BOARDING_-prefixed environment variables.
func Load() (*ServiceConfig, error) {
	var cfg ServiceConfig
	if err := envconfig.Process("BOARDING", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}
	return &cfg, nil
}

// PostgresConfig converts the DB settings into a database connection config.
func (c *ServiceConfig) PostgresConfig() database.PostgresConfig {
	return database.PostgresConfig{
		Host:     c.DB.Host,
		Port:     c.DB.Port,
		User:     c.DB.User,
		Password: c.DB.Password,
		DBName:   c.DB.DBName,
		SSLMode:  c.DB.SSLMode,
	}
}

// Location resolves the configured business time zone.
func (c *ServiceConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
