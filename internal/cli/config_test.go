package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigSaveAndLoad(t *testing.T) {
	// Use a temp dir as home
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	cfg := CLIConfig{
		ServerURL: "http://myhost:9090",
		Token:     "token123",
		StripeKey: "pk_test_123",
	}

	if err := saveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Verify file exists
	path := filepath.Join(tmp, ".config", "rf", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not found: %v", err)
	}

	loaded, err := loadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ServerURL != cfg.ServerURL {
		t.Errorf("server_url = %q, want %q", loaded.ServerURL, cfg.ServerURL)
	}
	if loaded.Token != cfg.Token {
		t.Errorf("token = %q, want %q", loaded.Token, cfg.Token)
	}
	if loaded.StripeKey != cfg.StripeKey {
		t.Errorf("stripe_key = %q, want %q", loaded.StripeKey, cfg.StripeKey)
	}
}

func TestConfigLoadMissing(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if cfg.ServerURL != "" || cfg.Token != "" {
		t.Error("expected zero-value config for missing file")
	}
}

func TestGetServerURLFromEnv(t *testing.T) {
	t.Setenv("RF_SERVER_URL", "http://custom:1234")
	t.Setenv("HOME", t.TempDir())

	url := getServerURL()
	if url != "http://custom:1234" {
		t.Errorf("url = %q, want %q", url, "http://custom:1234")
	}
}

func TestGetServerURLDefault(t *testing.T) {
	t.Setenv("RF_SERVER_URL", "")
	t.Setenv("HOME", t.TempDir())

	url := getServerURL()
	if url != "http://localhost:5000" {
		t.Errorf("url = %q, want default", url)
	}
}

func TestGetTokenPrefersEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if err := saveConfig(CLIConfig{Token: "from-config"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	t.Setenv("RF_TOKEN", "from-env")

	if got := getToken(); got != "from-env" {
		t.Errorf("token = %q, want from-env", got)
	}
}

func TestLogoutClearsToken(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if err := saveConfig(CLIConfig{ServerURL: "http://h:1", Token: "tok"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := runLogout(); err != nil {
		t.Fatalf("logout: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Token != "" {
		t.Error("token should be cleared")
	}
	if cfg.ServerURL != "http://h:1" {
		t.Error("server_url must survive logout")
	}
}
