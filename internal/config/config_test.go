package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "test-token")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("SQLITE_PATH", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("default backend = %q, want sqlite", cfg.Backend)
	}
	if cfg.SQLitePath != "spending.db" {
		t.Errorf("default sqlite path = %q, want spending.db", cfg.SQLitePath)
	}
}

func TestLoadConfigRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig accepted an empty TELEGRAM_TOKEN")
	}
}

func TestLoadConfigSupabaseRequiresCredentials(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "test-token")
	t.Setenv("STORAGE_BACKEND", BackendSupabase)
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_KEY", "")

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig accepted the supabase backend without credentials")
	}
}
