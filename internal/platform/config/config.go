package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File holds the optional user-editable settings read from config.yaml in
// the data directory. A missing file means first run and yields defaults.
type File struct {
	UserName       string `yaml:"user_name"`
	CurrencySymbol string `yaml:"currency_symbol"`
}

type Config struct {
	DataDir        string
	DBPath         string
	TimerPath      string
	UserName       string
	CurrencySymbol string
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".grind")
	}

	cfg := Config{
		DataDir:        dataDir,
		DBPath:         filepath.Join(dataDir, "grind.db"),
		TimerPath:      filepath.Join(dataDir, "active-timer.json"),
		UserName:       "User",
		CurrencySymbol: "R",
	}

	raw, err := os.ReadFile(filepath.Join(dataDir, "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config.yaml: %w", err)
	}
	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Config{}, fmt.Errorf("parse config.yaml: %w", err)
	}
	if file.UserName != "" {
		cfg.UserName = file.UserName
	}
	if file.CurrencySymbol != "" {
		cfg.CurrencySymbol = file.CurrencySymbol
	}
	return cfg, nil
}
