// Package config loads tool configuration for the pricing commands.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all command-line tool configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Market   MarketConfig   `mapstructure:"market"`
}

// DatabaseConfig holds the market-data store connection settings.
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	File     bool   `mapstructure:"file"`
	FilePath string `mapstructure:"file_path"`
}

// MarketConfig holds default market conventions for the commands.
type MarketConfig struct {
	Calendar       string `mapstructure:"calendar"`        // null, weekends, target
	Convention     string `mapstructure:"convention"`      // unadjusted, following, modifiedfollowing, preceding
	DayCount       string `mapstructure:"day_count"`       // act360, act365f, 30e360
	SettlementDays int    `mapstructure:"settlement_days"`
	Currency       string `mapstructure:"currency"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/caplib"
	}
	return filepath.Join(home, ".config", "caplib")
}

// Load reads config.toml from configDir, falling back to defaults when the
// file is absent. Environment variables prefixed CAPLIB_ override file
// values.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", false)
	v.SetDefault("market.calendar", "weekends")
	v.SetDefault("market.convention", "modifiedfollowing")
	v.SetDefault("market.day_count", "act360")
	v.SetDefault("market.settlement_days", 0)
	v.SetDefault("market.currency", "EUR")

	v.SetEnvPrefix("CAPLIB")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
