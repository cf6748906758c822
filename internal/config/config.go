// Package config loads CLI settings through viper and resolves the waitlist base URL.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultLocalBaseURL      = "http://localhost:8000"
	DefaultProductionBaseURL = "https://masalfabrikasi-production.up.railway.app"
	DefaultLang              = "tr"
	DefaultDBPath            = "./data/waitlist.db"
	DefaultConcurrency       = 4

	envPrefix = "WAITLIST"
)

type Config struct {
	Host              string        `mapstructure:"host" json:"host"`
	LocalBaseURL      string        `mapstructure:"local_base_url" json:"local_base_url"`
	ProductionBaseURL string        `mapstructure:"production_base_url" json:"production_base_url"`
	Lang              string        `mapstructure:"lang" json:"lang"`
	DBPath            string        `mapstructure:"db" json:"db"`
	History           bool          `mapstructure:"history" json:"history"`
	Timeout           time.Duration `mapstructure:"timeout" json:"timeout"`
	Concurrency       int           `mapstructure:"concurrency" json:"concurrency"`
	SingleFlight      bool          `mapstructure:"single_flight" json:"single_flight"`
	Verbose           bool          `mapstructure:"verbose" json:"verbose"`
}

// BaseURL resolves the base URL for c.Host.
func (c Config) BaseURL() string {
	return ResolveBaseURL(c.Host, c.LocalBaseURL, c.ProductionBaseURL)
}

// ResolveBaseURL picks local for the loopback host names "localhost" and
// "127.0.0.1" and production for every other host, including "".
func ResolveBaseURL(host, local, production string) string {
	if host == "localhost" || host == "127.0.0.1" {
		return local
	}
	return production
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("host", "")
	v.SetDefault("local_base_url", DefaultLocalBaseURL)
	v.SetDefault("production_base_url", DefaultProductionBaseURL)
	v.SetDefault("lang", DefaultLang)
	v.SetDefault("db", DefaultDBPath)
	v.SetDefault("history", false)
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("concurrency", DefaultConcurrency)
	v.SetDefault("single_flight", false)
	v.SetDefault("verbose", false)
}

// New returns a viper instance with defaults and WAITLIST_* environment
// binding. When configFile is empty, ./waitlist.yaml is read if present.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("waitlist")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return v, nil
}

// Load decodes v into a Config and fills in zero values that would make the
// client unusable.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.LocalBaseURL == "" {
		cfg.LocalBaseURL = DefaultLocalBaseURL
	}
	if cfg.ProductionBaseURL == "" {
		cfg.ProductionBaseURL = DefaultProductionBaseURL
	}
	if cfg.Lang == "" {
		cfg.Lang = DefaultLang
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative: %s", cfg.Timeout)
	}

	return &cfg, nil
}
