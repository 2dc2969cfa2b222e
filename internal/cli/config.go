package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	Backend   string        `mapstructure:"backend"` // file, redis or none
	Dir       string        `mapstructure:"dir"`
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// StoreConfig selects the snapshot store.
type StoreConfig struct {
	Backend       string `mapstructure:"backend"` // memory or mongo
	MongoURI      string `mapstructure:"mongo_uri"`
	MongoDatabase string `mapstructure:"mongo_database"`
}

// ServeConfig configures the HTTP API.
type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

// Config holds the runtime configuration. Values come from anchor.toml,
// ANCHOR_* environment variables and command flags.
type Config struct {
	StandardSpacing float64     `mapstructure:"standard_spacing"`
	DefaultFit      string      `mapstructure:"default_fit"`
	ViewMargins     bool        `mapstructure:"view_margins"`
	Cache           CacheConfig `mapstructure:"cache"`
	Store           StoreConfig `mapstructure:"store"`
	Serve           ServeConfig `mapstructure:"serve"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("standard_spacing", 8.0)
	v.SetDefault("default_fit", "margin")
	v.SetDefault("view_margins", false)
	v.SetDefault("cache.backend", "file")
	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.mongo_uri", "")
	v.SetDefault("store.mongo_database", "anchor")
	v.SetDefault("serve.addr", ":8080")
}

// loadConfig reads the config file (explicit path, or anchor.toml in the
// working directory or the config directory) into v. A missing default
// config file is not an error.
func loadConfig(v *viper.Viper, path string) (Config, error) {
	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(appName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}
	v.SetEnvPrefix("ANCHOR")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	switch cfg.Cache.Backend {
	case "file", "redis", "none":
	default:
		return Config{}, fmt.Errorf("cache.backend must be file, redis or none, got %q", cfg.Cache.Backend)
	}
	switch cfg.Store.Backend {
	case "memory", "mongo":
	default:
		return Config{}, fmt.Errorf("store.backend must be memory or mongo, got %q", cfg.Store.Backend)
	}
	return cfg, nil
}

// configDir returns $XDG_CONFIG_HOME/anchor, falling back to ~/.config/anchor.
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/anchor/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
