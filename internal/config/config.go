// Package config loads all runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Gemini settings
	GeminiAPIKey string
	GeminiModel  string

	// Pipeline settings
	EditionsConfigPath string
	MaxArticles        int // total cap across all feeds of one edition
	PerSourceLimit     int // entries taken from the top of each feed

	// Assets
	SponsorsPath   string
	TemplatePath   string
	StylesheetPath string

	// Layout settings
	Timezone string // zone used for the dateline on the front page

	// App settings
	Debug          bool
	RequestTimeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		GeminiModel:        "gemini-1.5-flash",
		EditionsConfigPath: "configs/editions.yaml",
		MaxArticles:        20,
		PerSourceLimit:     7,
		SponsorsPath:       "sponsors.json",
		TemplatePath:       "templates/template.html",
		StylesheetPath:     "templates/style.css",
		Timezone:           "Asia/Kolkata",
		RequestTimeout:     30 * time.Second,
	}

	// Load from environment
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	cfg.GeminiModel = getEnvOrDefault("GEMINI_MODEL", cfg.GeminiModel)
	cfg.EditionsConfigPath = getEnvOrDefault("EDITIONS_CONFIG_PATH", cfg.EditionsConfigPath)
	cfg.SponsorsPath = getEnvOrDefault("SPONSORS_PATH", cfg.SponsorsPath)
	cfg.TemplatePath = getEnvOrDefault("TEMPLATE_PATH", cfg.TemplatePath)
	cfg.StylesheetPath = getEnvOrDefault("STYLESHEET_PATH", cfg.StylesheetPath)
	cfg.Timezone = getEnvOrDefault("PAPER_TIMEZONE", cfg.Timezone)

	if v := os.Getenv("MAX_ARTICLES"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.MaxArticles = val
		}
	}
	if v := os.Getenv("PER_SOURCE_LIMIT"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.PerSourceLimit = val
		}
	}

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}
