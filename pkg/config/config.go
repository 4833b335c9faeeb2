// Package config loads go-logindex settings from defaults, an optional config
// file and LOGINDEX_ environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/adfharrison1/go-logindex/pkg/domain"
	"github.com/adfharrison1/go-logindex/pkg/storage"
)

const (
	DefaultLogPath     = "sample-log.log"
	DefaultResultsPath = "results.json"
	DefaultCompression = "lz4"
	DefaultListenAddr  = ":8080"
)

// Config holds the settings shared by the CLI and the HTTP server.
type Config struct {
	LogPath     string `mapstructure:"log-path"`
	ResultsPath string `mapstructure:"results-path"`
	Limit       int    `mapstructure:"limit"`
	Lenient     bool   `mapstructure:"lenient"`
	Compression string `mapstructure:"compression"`
	ListenAddr  string `mapstructure:"listen-addr"`
}

// Load reads the configuration. An empty configPath uses defaults and
// environment only; a configPath naming a missing or unreadable file is an error.
func Load(configPath string) (Config, error) {
	var cfg Config

	v := viper.New()
	v.SetEnvPrefix("LOGINDEX")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("log-path", DefaultLogPath)
	v.SetDefault("results-path", DefaultResultsPath)
	v.SetDefault("limit", domain.DefaultLimit)
	v.SetDefault("lenient", false)
	v.SetDefault("compression", DefaultCompression)
	v.SetDefault("listen-addr", DefaultListenAddr)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	if c.LogPath == "" {
		return errors.New("log-path must not be empty")
	}
	if c.ResultsPath == "" {
		return errors.New("results-path must not be empty")
	}
	if c.Limit < 0 {
		return fmt.Errorf("%w: limit %d", domain.ErrInvalidLimit, c.Limit)
	}
	if _, err := storage.ParseCompression(c.Compression); err != nil {
		return err
	}
	return nil
}

// StoreOptions translates the storage settings into store options.
func (c Config) StoreOptions() []storage.StorageOption {
	codec, err := storage.ParseCompression(c.Compression)
	if err != nil {
		codec = storage.CompressionLZ4
	}
	return []storage.StorageOption{storage.WithCompression(codec)}
}
