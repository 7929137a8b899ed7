package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

const (
	SourceExcel    = "excel"
	SourcePostgres = "postgres"

	DefaultAddr        = ":3000"
	DefaultGeminiModel = "gemini-1.5-pro-latest"
	DefaultTokenTTL    = 12 * time.Hour
)

// Config holds the application configuration.
type Config struct {
	Addr    string
	Verbose bool

	// Sales source.
	Source      string
	SalesFile   string
	SalesSheet  string
	DatabaseURL string
	SalesTable  string

	// Optional access control; disabled while JWTSecret is empty.
	JWTSecret             string
	DashboardPasswordHash string
	TokenTTL              time.Duration

	// Optional Gemini insights; disabled while GeminiAPIKey is empty.
	GeminiAPIKey string
	GeminiModel  string
}

// AppConfig holds the application-wide configuration
var AppConfig Config

// FromEnv reads the configuration from environment variables, applying defaults.
func FromEnv() Config {
	cfg := Config{
		Addr:                  getenv("ADDR", DefaultAddr),
		Verbose:               getbool("VERBOSE"),
		Source:                getenv("SALES_SOURCE", SourceExcel),
		SalesFile:             os.Getenv("SALES_FILE"),
		SalesSheet:            os.Getenv("SALES_SHEET"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		SalesTable:            os.Getenv("SALES_TABLE"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		DashboardPasswordHash: os.Getenv("DASHBOARD_PASSWORD_HASH"),
		TokenTTL:              DefaultTokenTTL,
		GeminiAPIKey:          os.Getenv("GEMINI_API_KEY"),
		GeminiModel:           getenv("GEMINI_MODEL", DefaultGeminiModel),
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TokenTTL = d
		}
	}
	return cfg
}

// BindFlags registers command line overrides for cfg on fs.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "address to serve the dashboard on")
	fs.StringVar(&cfg.Source, "source", cfg.Source, "sales source: excel or postgres")
	fs.StringVar(&cfg.SalesFile, "file", cfg.SalesFile, "path of the sales workbook")
	fs.StringVar(&cfg.SalesSheet, "sheet", cfg.SalesSheet, "sheet holding the sales table")
	fs.StringVar(&cfg.SalesTable, "table", cfg.SalesTable, "Postgres table holding the sales rows")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable debug logging")
}

// Validate checks that the selected source has what it needs.
func (c Config) Validate() error {
	switch c.Source {
	case SourceExcel:
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is not set")
		}
	default:
		return fmt.Errorf("unknown sales source %q", c.Source)
	}
	if c.JWTSecret != "" && c.DashboardPasswordHash == "" {
		return errors.New("DASHBOARD_PASSWORD_HASH is required when JWT_SECRET is set")
	}
	return nil
}

// AuthEnabled reports whether the API requires a bearer token.
func (c Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// InsightsEnabled reports whether Gemini insights can be requested.
func (c Config) InsightsEnabled() bool {
	return c.GeminiAPIKey != ""
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}
