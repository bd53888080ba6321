package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite"
)

// Body modes accepted by BODY_MODE.
const (
	BodyModePermissive = "permissive"
	BodyModeStrict     = "strict"
)

// Config aggregates runtime configuration for the service and the directory client.
type Config struct {
	App       AppConfig
	Store     StoreConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	SQLite    SQLiteConfig
	Logger    LoggerConfig
	Tracing   TracingConfig
	Directory DirectoryConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string `env:"APP_NAME" envDefault:"user-directory"`
	Env                   string `env:"APP_ENV" envDefault:"development"`
	Host                  string `env:"APP_HOST"`
	Port                  string `env:"PORT" envDefault:"3001"`
	Version               string `env:"APP_VERSION" envDefault:"dev"`
	RequestTimeoutSeconds int    `env:"HTTP_REQUEST_TIMEOUT_SECONDS" envDefault:"0"`
	CORSAllowOrigins      string `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	BodyMode              string `env:"BODY_MODE" envDefault:"permissive"`
}

// StoreConfig selects the backing store for the user collection.
type StoreConfig struct {
	Driver     string `env:"STORE_DRIVER" envDefault:"file"`
	DataFile   string `env:"DATA_FILE" envDefault:"heliverse_mock_data.json"`
	Collection string `env:"STORE_COLLECTION" envDefault:"users"`
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN             string `env:"POSTGRES_DSN"`
	MaxConns        int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	MinConns        int32  `env:"POSTGRES_MIN_CONNS" envDefault:"2"`
	RunMigrations   bool   `env:"POSTGRES_RUN_MIGRATIONS" envDefault:"true"`
	ConnMaxIdleSec  int32  `env:"POSTGRES_CONN_MAX_IDLE_SECONDS" envDefault:"30"`
	ConnMaxLifeSec  int32  `env:"POSTGRES_CONN_MAX_LIFE_SECONDS" envDefault:"300"`
	ConnectAttempts int    `env:"POSTGRES_CONNECT_ATTEMPTS" envDefault:"5"`
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB" envDefault:"0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"user-directory:"`
}

// SQLiteConfig points at the SQLite database file.
type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH" envDefault:"users.db"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Output string `env:"LOG_OUTPUT" envDefault:"stdout"`
}

// TracingConfig enables OTLP trace export when an endpoint is set.
type TracingConfig struct {
	Enabled  bool   `env:"OTEL_ENABLED" envDefault:"true"`
	Endpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// DirectoryConfig configures the directory client.
type DirectoryConfig struct {
	APIURL         string `env:"DIRECTORY_API_URL" envDefault:"http://localhost:3001"`
	TimeoutSeconds int    `env:"DIRECTORY_TIMEOUT_SECONDS" envDefault:"10"`
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	switch cfg.Store.Driver {
	case DriverFile, DriverMemory, DriverPostgres, DriverRedis, DriverSQLite:
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q", cfg.Store.Driver)
	}

	cfg.App.BodyMode = strings.ToLower(strings.TrimSpace(cfg.App.BodyMode))
	switch cfg.App.BodyMode {
	case BodyModePermissive, BodyModeStrict:
	default:
		return nil, fmt.Errorf("invalid BODY_MODE %q", cfg.App.BodyMode)
	}

	if cfg.Store.Driver == DriverPostgres && cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required for the postgres driver")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// StrictBodies reports whether request bodies are schema-checked.
func (a AppConfig) StrictBodies() bool {
	return a.BodyMode == BodyModeStrict
}

// Timeout returns the client request timeout.
func (d DirectoryConfig) Timeout() time.Duration {
	if d.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(d.TimeoutSeconds) * time.Second
}
