package config

import (
	"github.com/caarlos0/env"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("Error: Failed to parse configuration: %s", err)
	}
	return cfg
}

// Parse builds a Config from the current environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if err := env.Parse(&cfg.Slack); err != nil {
		return Config{}, err
	}
	if err := env.Parse(&cfg.Turso); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
