package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Storage backend selectors.
const (
	BackendSQLite   = "sqlite"
	BackendSupabase = "supabase"
)

type Config struct {
	TelegramToken  string
	ExchangeAPIKey string

	Backend     string
	SQLitePath  string
	SupabaseURL string
	SupabaseKey string
}

// LoadConfig reads configuration from the environment. A .env file is loaded
// if present; a missing file is not an error (webhook deployments configure
// the environment directly).
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		ExchangeAPIKey: os.Getenv("EXCHANGE_API_KEY"),
		Backend:        os.Getenv("STORAGE_BACKEND"),
		SQLitePath:     os.Getenv("SQLITE_PATH"),
		SupabaseURL:    os.Getenv("SUPABASE_URL"),
		SupabaseKey:    os.Getenv("SUPABASE_KEY"),
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendSQLite
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "spending.db"
	}
	if cfg.Backend == BackendSupabase && (cfg.SupabaseURL == "" || cfg.SupabaseKey == "") {
		return nil, fmt.Errorf("SUPABASE_URL and SUPABASE_KEY are required for the supabase backend")
	}

	return cfg, nil
}
