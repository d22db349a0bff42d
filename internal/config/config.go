package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// ErrUnknownDriver is returned by Validate when STORE_DRIVER is not supported.
var ErrUnknownDriver = errors.New("driver de armazenamento desconhecido")

const (
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	DatabaseURL  string
	StoreDriver  string
	RedisURL     string
	CacheTTL     time.Duration
	MetricsPort  string
	Brand        string
	CatalogURL   string
	OutputFile   string
	LogLevel     string
	LogFormat    string
	FetchTimeout time.Duration
	AuxTimeout   time.Duration

	invalid []string
}

func Load() *Config {
	// Carrega .env da raiz do projeto
	_ = godotenv.Load("../../.env")
	// Se não encontrar, tenta no diretório atual
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		StoreDriver: getEnv("STORE_DRIVER", DriverPgx),
		RedisURL:    os.Getenv("REDIS_URL"),
		MetricsPort: lookupEnv("METRICS_PORT", "9090"),
		Brand:       getEnv("BRAND", "citroen"),
		CatalogURL:  getEnv("CATALOG_URL", "https://www.citroen.com.br/"),
		OutputFile:  getEnv("OUTPUT_FILE", "citroen_data.json"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "console"),
	}
	cfg.CacheTTL = cfg.getDuration("CACHE_TTL", 30*time.Minute)
	cfg.FetchTimeout = cfg.getDuration("FETCH_TIMEOUT", 60*time.Second)
	cfg.AuxTimeout = cfg.getDuration("AUX_TIMEOUT", 10*time.Second)
	return cfg
}

// Validate reports settings that could not be used as given. Load never fails;
// bad durations are replaced by their defaults and listed here.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverPgx, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.StoreDriver)
	}
	if len(c.invalid) > 0 {
		return fmt.Errorf("valores inválidos (usando padrão): %v", c.invalid)
	}
	return nil
}

// DedupEnabled is false when no store is configured, as in a run without credentials.
func (c *Config) DedupEnabled() bool {
	return c.DatabaseURL != ""
}

func (c *Config) getDuration(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	parsed, err := time.ParseDuration(v)
	if err != nil || parsed <= 0 {
		c.invalid = append(c.invalid, k)
		return d
	}
	return parsed
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// lookupEnv is getEnv where a variable set to "" stays empty.
func lookupEnv(k, d string) string {
	if v, ok := os.LookupEnv(k); ok {
		return v
	}
	return d
}
