package app

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ExecBaseURL == "" || cfg.ChatBaseURL == "" {
		t.Fatal("default config missing service endpoints")
	}
	if !KnownLanguage(cfg.LanguageID) {
		t.Fatalf("default language id %d is not in the catalog", cfg.LanguageID)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ExecBaseURL != DefaultConfig().ExecBaseURL {
		t.Fatalf("exec base url = %q, want default", cfg.ExecBaseURL)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	want := DefaultConfig()
	want.ExecAPIKey = "exec-key"
	want.ChatAPIKey = "chat-key"
	want.Model = "my-model"
	want.LanguageID = 71
	want.CompilerOptions = "-O2"

	if err := SaveConfig(want, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestLoadConfigNormalizesUnknownLanguage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	cfg := DefaultConfig()
	cfg.LanguageID = 9999
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !KnownLanguage(got.LanguageID) {
		t.Fatalf("language id %d not normalized", got.LanguageID)
	}
}
