package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Database drivers.
const (
	DriverMemory   = "memory"
	DriverBolt     = "bolt"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds the aiportalx API configuration.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Database    DatabaseConfig    `yaml:"database"`
	Cache       CacheConfig       `yaml:"cache"`
	Seed        SeedConfig        `yaml:"seed"`
	Auth        AuthConfig        `yaml:"auth"`
	Categorizer CategorizerConfig `yaml:"categorizer"`
	CORS        CORSConfig        `yaml:"cors"`
	Catalog     CatalogConfig     `yaml:"catalog"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds admin API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig selects a driver and holds the settings of each.
type DatabaseConfig struct {
	Driver           string         `yaml:"driver"` // memory, bolt, mongo, postgres, redis (default: memory)
	ReadinessTimeout int            `yaml:"readiness_timeout_sec"`
	Bolt             BoltConfig     `yaml:"bolt"`
	Mongo            MongoConfig    `yaml:"mongo"`
	Postgres         PostgresConfig `yaml:"postgres"`
	Redis            RedisConfig    `yaml:"redis"`
}

// BoltConfig holds bbolt file settings.
type BoltConfig struct {
	Path string `yaml:"path"`
}

// MongoConfig holds MongoDB settings.
type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
	PoolSize   uint64 `yaml:"pool_size"`
}

// PostgresConfig holds PostgreSQL settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"max_conns"`
}

// RedisConfig holds Redis settings.
type RedisConfig struct {
	Addrs     []string `yaml:"addrs"`
	Username  string   `yaml:"username"`
	Password  string   `yaml:"password"`
	DB        int      `yaml:"db"`
	KeyPrefix string   `yaml:"key_prefix"`
	IndexName string   `yaml:"index_name"`
}

// CacheConfig holds facet listing cache settings.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	TTLSec  int  `yaml:"ttl_sec"`
}

// SeedConfig holds dataset seeding settings.
type SeedConfig struct {
	Path       string `yaml:"path"`
	OnStart    bool   `yaml:"on_start"`
	Force      bool   `yaml:"force"`
	Watch      bool   `yaml:"watch"`
	DebounceMS int    `yaml:"debounce_ms"`
}

// CategorizerConfig holds task categorizer settings.
type CategorizerConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Provider   string `yaml:"provider"`
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	DailyLimit int64  `yaml:"daily_limit"` // 0 = unlimited
	Action     string `yaml:"action"`      // "reject" | "warn" (default)
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	Origins []string `yaml:"origins"`
}

// CatalogConfig holds listing page settings. 0 means no limit.
type CatalogConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A .env file in the working directory, if any, is loaded first.
func Load(env string) (Config, error) {
	_ = godotenv.Load(".env")

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse expands environment variables in data and decodes it.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverMemory
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Database.Bolt.Path == "" {
		c.Database.Bolt.Path = "./data/aiportalx.db"
	}
	if c.Database.Redis.KeyPrefix == "" {
		c.Database.Redis.KeyPrefix = "aiportalx:model:"
	}
	if c.Database.Redis.IndexName == "" {
		c.Database.Redis.IndexName = "aiportalx-models"
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 600
	}
	if c.Seed.DebounceMS <= 0 {
		c.Seed.DebounceMS = 500
	}
	if c.Categorizer.Provider == "" {
		c.Categorizer.Provider = "openai"
	}
	if c.Categorizer.Model == "" {
		c.Categorizer.Model = "gpt-4o-mini"
	}
	if c.Catalog.MaxPageSize <= 0 {
		c.Catalog.MaxPageSize = 500
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}

	switch c.Database.Driver {
	case DriverMemory, DriverBolt:
	case DriverMongo:
		if c.Database.Mongo.URI == "" {
			return errors.New("database.mongo.uri is required")
		}
	case DriverPostgres:
		if c.Database.Postgres.DSN == "" {
			return errors.New("database.postgres.dsn is required")
		}
	case DriverRedis:
		if len(c.Database.Redis.Addrs) == 0 {
			return errors.New("database.redis.addrs is required")
		}
	default:
		return fmt.Errorf("database.driver must be one of memory, bolt, mongo, postgres, redis, got %q",
			c.Database.Driver)
	}

	if (c.Seed.OnStart || c.Seed.Watch) && c.Seed.Path == "" {
		return errors.New("seed.path is required when seed.on_start or seed.watch is set")
	}

	if c.Categorizer.Enabled {
		if c.Categorizer.APIKey == "" {
			return errors.New("categorizer.api_key is required when the categorizer is enabled")
		}
		switch c.Categorizer.Action {
		case "", "warn", "reject":
		default:
			return fmt.Errorf("categorizer.action must be \"warn\" or \"reject\", got %q", c.Categorizer.Action)
		}
	}

	if c.Catalog.DefaultPageSize < 0 || c.Catalog.DefaultPageSize > c.Catalog.MaxPageSize {
		return fmt.Errorf("catalog.default_page_size must be between 0 and %d, got %d",
			c.Catalog.MaxPageSize, c.Catalog.DefaultPageSize)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
