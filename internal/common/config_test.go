package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_DefaultPort(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 8080)
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("GREENINVEST_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_GeminiKeyEnvOverride(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Clients.Gemini.APIKey != "test-key" {
		t.Errorf("Gemini.APIKey = %q, want %q", cfg.Clients.Gemini.APIKey, "test-key")
	}
}

func TestLoadConfig_MissingFileSkipped(t *testing.T) {
	cfg, err := LoadConfig("does/not/exist.toml")
	if err != nil {
		t.Fatalf("LoadConfig with missing file: %v", err)
	}
	if cfg.Storage.Namespace != "greeninvest" {
		t.Errorf("Storage.Namespace = %q, want default", cfg.Storage.Namespace)
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greeninvest.toml")
	content := `
environment = "production"

[server]
port = 9999

[clients.gdelt]
days_back = 7
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if !cfg.IsProduction() {
		t.Error("expected production environment")
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Clients.GDELT.DaysBack != 7 {
		t.Errorf("GDELT.DaysBack = %d, want 7", cfg.Clients.GDELT.DaysBack)
	}
	// Untouched sections keep defaults
	if cfg.Clients.GDELT.MaxRecords != 250 {
		t.Errorf("GDELT.MaxRecords = %d, want default 250", cfg.Clients.GDELT.MaxRecords)
	}
}

func TestYahooConfig_TimeoutFallback(t *testing.T) {
	c := YahooConfig{Timeout: "bogus"}
	if c.GetTimeout().Seconds() != 30 {
		t.Errorf("GetTimeout = %v, want 30s fallback", c.GetTimeout())
	}
}
