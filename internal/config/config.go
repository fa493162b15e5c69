// Package config loads dirtrace-ics settings from the environment and an
// optional .env file in the working directory.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pfrederiksen/dirtrace-ics/internal/logger"
	"github.com/pfrederiksen/dirtrace-ics/internal/scraper"
)

type Config struct {
	SourceURL string
	YearMode  scraper.YearMode
	Year      int
	Timeout   time.Duration
	LogLevel  logger.Level
}

// Load reads .env if present and then the DIRTRACE_* variables.
// Variables already set in the environment win over .env.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		SourceURL: getEnv("DIRTRACE_URL", scraper.DefaultURL),
		Timeout:   scraper.DefaultTimeout,
	}

	mode, err := scraper.ParseYearMode(getEnv("DIRTRACE_YEAR_MODE", string(scraper.YearFromHeading)))
	if err != nil {
		return Config{}, fmt.Errorf("DIRTRACE_YEAR_MODE: %w", err)
	}
	cfg.YearMode = mode

	if v := os.Getenv("DIRTRACE_YEAR"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil || year <= 0 {
			return Config{}, fmt.Errorf("DIRTRACE_YEAR must be a positive number: %q", v)
		}
		cfg.Year = year
	}

	if v := os.Getenv("DIRTRACE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("DIRTRACE_TIMEOUT must be a positive duration: %q", v)
		}
		cfg.Timeout = d
	}

	level, err := logger.ParseLevel(getEnv("DIRTRACE_LOG_LEVEL", string(logger.LevelInfo)))
	if err != nil {
		return Config{}, fmt.Errorf("DIRTRACE_LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	return cfg, nil
}

// YearStrategy returns the year resolution configured for extraction.
func (c Config) YearStrategy() scraper.YearStrategy {
	return scraper.YearStrategy{Mode: c.YearMode, Year: c.Year}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
