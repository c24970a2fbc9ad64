package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigFile is the config file name looked up in the working
// directory when no explicit path is given.
const DefaultConfigFile = "dealflow.config.json"

// DetectConfigFile checks the working directory for the default config file.
func DetectConfigFile() (string, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	path := filepath.Join(cwd, DefaultConfigFile)
	if _, err := os.Stat(path); err == nil {
		return path, true
	}
	return "", false
}

// LoadFile overlays settings from a JSON config file onto the receiver.
// Environment variables are re-applied afterwards so they stay the highest
// precedence source.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	c.loadFromEnv()
	return nil
}

// SaveFile persists the configuration as JSON, writing atomically through a
// temp file. API keys are cleared first; they belong in the environment, not
// on disk.
func (c *Config) SaveFile(path string) error {
	if path == "" {
		return fmt.Errorf("config path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	clean := *c
	clean.OpenAIAPIKey = ""
	clean.DeepSeekAPIKey = ""
	clean.TavilyAPIKey = ""
	clean.FirecrawlAPIKey = ""

	data, err := json.MarshalIndent(&clean, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
