package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/foodcritique/critique-web/pkg/logger"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	// LogFormat is json or console; empty picks console in development.
	LogFormat string `env:"LOG_FORMAT"`

	API        APIConfig
	Session    SessionConfig
	Credential CredentialConfig

	Mongo MongoConfig
	Redis RedisConfig

	CLICredentialsFile string `env:"CLI_CREDENTIALS_FILE"`
}

// APIConfig points at the remote restaurant-review API.
type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:4000"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=15s"`
}

type SessionConfig struct {
	VisitorSecret    string        `env:"VISITOR_SECRET"`
	StaleCredentials string        `env:"STALE_CREDENTIALS, default=keep"`
	NotificationTTL  time.Duration `env:"NOTIFICATION_TTL,  default=5s"`
	IdleTTL          time.Duration `env:"SESSION_IDLE_TTL,  default=30m"`
}

// CredentialConfig selects where visitors' token and user id are kept.
type CredentialConfig struct {
	Store  string        `env:"CREDENTIAL_STORE, default=memory"`
	Secret string        `env:"CREDENTIAL_SECRET"`
	TTL    time.Duration `env:"CREDENTIAL_TTL,   default=720h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=critique"`
}

type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR,       default=localhost:6379"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB,         default=0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX, default=critique"`
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Format returns the log encoding, console in development unless LOG_FORMAT
// says otherwise.
func (c *Config) Format() logger.Format {
	fallback := logger.FormatJSON
	if c.IsDevelopment() {
		fallback = logger.FormatConsole
	}
	f, _ := logger.ParseFormat(c.LogFormat, fallback)
	return f
}

// Validate rejects combinations the service cannot start with.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: LOG_LEVEL: %w", err)
	}
	if _, err := logger.ParseFormat(c.LogFormat, logger.FormatJSON); err != nil {
		return fmt.Errorf("config: LOG_FORMAT: %w", err)
	}
	switch c.Credential.Store {
	case StoreMemory, StoreRedis, StoreMongo:
	default:
		return fmt.Errorf("config: CREDENTIAL_STORE must be one of memory, redis, mongo; got %q", c.Credential.Store)
	}
	switch c.Session.StaleCredentials {
	case "keep", "clear":
	default:
		return fmt.Errorf("config: STALE_CREDENTIALS must be keep or clear; got %q", c.Session.StaleCredentials)
	}
	if c.Credential.TTL <= 0 {
		return errors.New("config: CREDENTIAL_TTL must be positive")
	}
	if c.API.BaseURL == "" {
		return errors.New("config: API_BASE_URL is required")
	}
	if !c.IsDevelopment() && c.Session.VisitorSecret == "" {
		return errors.New("config: VISITOR_SECRET is required outside development")
	}
	if !c.IsDevelopment() && c.Credential.Store != StoreMemory && c.Credential.Secret == "" {
		return errors.New("config: CREDENTIAL_SECRET is required for a shared credential store outside development")
	}
	return nil
}

// Load reads an optional .env file, then configuration from environment
// variables using go-envconfig. Variables already set win over the file.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
