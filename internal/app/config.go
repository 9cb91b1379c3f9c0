package app

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ExecBaseURL     string `yaml:"exec_base_url"`
	ExecAPIKey      string `yaml:"exec_api_key"`
	ChatBaseURL     string `yaml:"chat_base_url"`
	ChatAPIKey      string `yaml:"chat_api_key"`
	Model           string `yaml:"model"`
	LanguageID      int    `yaml:"language_id"`
	CompilerOptions string `yaml:"compiler_options"`
	CLIArguments    string `yaml:"cli_arguments"`
	Debug           bool   `yaml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		ExecBaseURL: "https://ce.judge0.com",
		ChatBaseURL: "https://api.openai.com/v1",
		Model:       "gpt-4o-mini",
		LanguageID:  54, // C++ (GCC 9.2.0)
	}
}

// LoadConfig reads the yaml config at path, falling back to defaults for a
// missing file and to environment variables for the API keys.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return cfg, err
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.ExecAPIKey == "" {
		cfg.ExecAPIKey = os.Getenv("CODEBOX_EXEC_KEY")
	}
	if cfg.ChatAPIKey == "" {
		cfg.ChatAPIKey = os.Getenv("CODEBOX_CHAT_KEY")
	}
	if cfg.ExecBaseURL == "" {
		cfg.ExecBaseURL = "https://ce.judge0.com"
	}
	if cfg.ChatBaseURL == "" {
		cfg.ChatBaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if !KnownLanguage(cfg.LanguageID) {
		cfg.LanguageID = 54
	}
	return cfg, nil
}

func SaveConfig(cfg Config, path string) error {
	if path == "" {
		return errors.New("no path provided for config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func DefaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "codebox", "config.yml")
}
