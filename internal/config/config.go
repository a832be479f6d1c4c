package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnrichmentConfig configures the optional generative-text client.
type EnrichmentConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model"`
	// TimeoutSecs zero keeps the call unbounded, matching the best-effort
	// await semantics.
	TimeoutSecs int `yaml:"timeout_secs"`
}

// LogConfig configures the diagnostic log file. The TUI owns the terminal,
// so logs never go to stdout.
type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Log        LogConfig        `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/selectly/config.yaml.
// If neither exists, it writes defaults to ~/.config/selectly/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "selectly", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Enrichment: EnrichmentConfig{
			BaseURL:   "https://generativelanguage.googleapis.com/v1beta",
			APIKeyEnv: "GEMINI_API_KEY",
			Model:     "gemini-pro",
		},
		Log: LogConfig{Path: "selectly.log", Level: "info"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Enrichment.BaseURL == "" {
		cfg.Enrichment.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Enrichment.APIKeyEnv == "" {
		cfg.Enrichment.APIKeyEnv = "GEMINI_API_KEY"
	}
	if cfg.Enrichment.Model == "" {
		cfg.Enrichment.Model = "gemini-pro"
	}
	if cfg.Log.Path == "" {
		cfg.Log.Path = "selectly.log"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
