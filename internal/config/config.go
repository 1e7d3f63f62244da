package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "STOREFRONT"

// State backends for the persisted client records.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	API    APIConfig
	State  StateConfig
	DB     DBConfig
	Redis  RedisConfig
	Shop   ShopConfig
	DevAPI DevAPIConfig
}

type AppConfig struct {
	ServiceName string `envconfig:"STOREFRONT_SERVICE_NAME" default:"fireworks-storefront"`
	LogLevel    string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"STOREFRONT_LOG_FORMAT" default:"json"`
}

type HTTPConfig struct {
	Addr            string        `envconfig:"STOREFRONT_HTTP_ADDR" default:":8080"`
	ShutdownTimeout time.Duration `envconfig:"STOREFRONT_SHUTDOWN_TIMEOUT" default:"10s"`
	CORSOrigins     []string      `envconfig:"STOREFRONT_CORS_ORIGINS" default:"*"`
}

// APIConfig points the client at the remote commerce API.
type APIConfig struct {
	BaseURL            string        `envconfig:"STOREFRONT_API_BASE_URL" default:"http://localhost:5000/api"`
	Timeout            time.Duration `envconfig:"STOREFRONT_API_TIMEOUT" default:"10s"`
	BreakerMaxFailures uint32        `envconfig:"STOREFRONT_API_BREAKER_MAX_FAILURES" default:"5"`
	BreakerOpenTimeout time.Duration `envconfig:"STOREFRONT_API_BREAKER_OPEN_TIMEOUT" default:"30s"`
}

// StateConfig selects where the session (and optionally the cart) survives restarts.
type StateConfig struct {
	Backend string `envconfig:"STOREFRONT_STATE_BACKEND" default:"file"`
	Dir     string `envconfig:"STOREFRONT_STATE_DIR"`
	Scope   string `envconfig:"STOREFRONT_STATE_SCOPE" default:"default"`
}

type DBConfig struct {
	DSN             string        `envconfig:"STOREFRONT_DB_DSN"`
	MaxConns        int32         `envconfig:"STOREFRONT_DB_MAX_CONNS" default:"4"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"30m"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"5m"`
}

type RedisConfig struct {
	Addr     string        `envconfig:"STOREFRONT_REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB       int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	TTL      time.Duration `envconfig:"STOREFRONT_REDIS_TTL" default:"720h"`
}

// ShopConfig tunes storefront behavior.
type ShopConfig struct {
	PersistCart  bool          `envconfig:"STOREFRONT_PERSIST_CART" default:"false"`
	PaymentDelay time.Duration `envconfig:"STOREFRONT_PAYMENT_DELAY" default:"3s"`
}

// DevAPIConfig configures the local stand-in for the commerce API.
type DevAPIConfig struct {
	Addr          string        `envconfig:"STOREFRONT_DEVAPI_ADDR" default:":5000"`
	JWTSecret     string        `envconfig:"STOREFRONT_DEVAPI_JWT_SECRET" default:"dev-only-secret"`
	TokenTTL      time.Duration `envconfig:"STOREFRONT_DEVAPI_TOKEN_TTL" default:"24h"`
	AdminEmail    string        `envconfig:"STOREFRONT_DEVAPI_ADMIN_EMAIL" default:"admin@fireworks.test"`
	AdminPassword string        `envconfig:"STOREFRONT_DEVAPI_ADMIN_PASSWORD" default:"admin123"`
	ImportCSV     string        `envconfig:"STOREFRONT_DEVAPI_IMPORT_CSV"`
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.State.Backend = strings.ToLower(strings.TrimSpace(c.State.Backend))
	switch c.State.Backend {
	case BackendFile, BackendMemory, BackendRedis:
	case BackendPostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("STOREFRONT_DB_DSN is required for the %s state backend", BackendPostgres)
		}
	default:
		return fmt.Errorf("unknown state backend %q", c.State.Backend)
	}
	if c.Shop.PaymentDelay < 0 {
		return fmt.Errorf("payment delay must not be negative")
	}
	return nil
}

// StateDir resolves the directory for the file backend.
func (s StateConfig) StateDir() string {
	if s.Dir != "" {
		return s.Dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "fireworks-storefront")
}

// AllowAllOrigins reports whether CORS is left open.
func (h HTTPConfig) AllowAllOrigins() bool {
	return len(h.CORSOrigins) == 0 || (len(h.CORSOrigins) == 1 && h.CORSOrigins[0] == "*")
}
