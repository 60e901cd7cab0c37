// Package config loads tablens configuration from file and
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	CSV   CSVConfig
	Cache CacheConfig
	UI    UIConfig
}

// CSVConfig holds delimited-file settings.
type CSVConfig struct {
	Delimiter string
}

// CacheConfig holds index-cache settings.
type CacheConfig struct {
	Enabled bool
	Path    string
	Keep    int
}

// UIConfig holds presentation settings.
type UIConfig struct {
	NumRows int `mapstructure:"num_rows"`
}

// Load reads configuration from file and env. Env var overrides use
// prefix TABLENS_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "tablens", "index.db"))
	v.SetDefault("cache.keep", 50)
	v.SetDefault("ui.num_rows", 20)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TABLENS_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "tablens"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TABLENS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Delimiter returns the configured CSV delimiter as a rune, falling
// back to comma for empty values. The literal string "\t" or "tab"
// selects a tab.
func (c Config) Delimiter() rune {
	switch c.CSV.Delimiter {
	case `\t`, "tab":
		return '\t'
	}
	r := []rune(c.CSV.Delimiter)
	if len(r) != 1 {
		return ','
	}
	return r[0]
}
