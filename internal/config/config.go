// Package config loads the configuration of the clusterpanel render service.
//
// Values come from an optional config file (any format viper reads, usually
// TOML or YAML) and from CLUSTERPANEL_* environment variables, with dots in
// keys replaced by underscores:
//
//	CLUSTERPANEL_ADDR=:9090
//	CLUSTERPANEL_CACHE_BACKEND=redis
//	CLUSTERPANEL_CACHE_REDIS_URL=redis://localhost:6379/0
package config

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/matzehuels/clusterpanel/pkg/cache"
	"github.com/matzehuels/clusterpanel/pkg/errors"
	"github.com/matzehuels/clusterpanel/pkg/panel"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "CLUSTERPANEL"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config holds all service configuration.
type Config struct {
	Addr   string       `mapstructure:"addr"`
	Log    LogConfig    `mapstructure:"log"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Panel  PanelConfig  `mapstructure:"panel"`
	Render RenderConfig `mapstructure:"render"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CacheConfig struct {
	Backend         string `mapstructure:"backend"`
	Dir             string `mapstructure:"dir"`
	RedisURL        string `mapstructure:"redis_url"`
	MongoURI        string `mapstructure:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection"`
	Scope           string `mapstructure:"scope"`
}

// PanelConfig holds the panel defaults applied to requests that leave an
// option unset.
type PanelConfig struct {
	Color           string  `mapstructure:"color"`
	Text            string  `mapstructure:"text"`
	ShowSeriesCount bool    `mapstructure:"show_series_count"`
	Width           float64 `mapstructure:"width"`
	Height          float64 `mapstructure:"height"`
	ShowEdges       bool    `mapstructure:"show_edges"`
	Labels          bool    `mapstructure:"labels"`
}

type RenderConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	MaxBody int64         `mapstructure:"max_body"`
}

// Options converts the panel defaults to render options.
func (p PanelConfig) Options() panel.Options {
	return panel.Options{
		Color:           p.Color,
		Text:            p.Text,
		ShowSeriesCount: p.ShowSeriesCount,
		Width:           p.Width,
		Height:          p.Height,
		ShowEdges:       p.ShowEdges,
		Labels:          p.Labels,
	}
}

func setDefaults(v *viper.Viper) {
	def := panel.DefaultOptions()

	v.SetDefault("addr", ":8080")
	v.SetDefault("log.level", "info")

	v.SetDefault("cache.backend", BackendFile)
	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.mongo_uri", "")
	v.SetDefault("cache.mongo_database", "clusterpanel")
	v.SetDefault("cache.mongo_collection", "cache")
	v.SetDefault("cache.scope", "")

	v.SetDefault("panel.color", def.Color)
	v.SetDefault("panel.text", def.Text)
	v.SetDefault("panel.show_series_count", def.ShowSeriesCount)
	v.SetDefault("panel.width", def.Width)
	v.SetDefault("panel.height", def.Height)
	v.SetDefault("panel.show_edges", def.ShowEdges)
	v.SetDefault("panel.labels", def.Labels)

	v.SetDefault("render.timeout", 30*time.Second)
	v.SetDefault("render.max_body", int64(8<<20))
}

// Load reads configuration from path (optional) and the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidOptions, err, "read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidOptions, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the service cannot start with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New(errors.ErrCodeInvalidOptions, "addr is required")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidOptions, "cache.redis_url is required for the redis backend")
		}
	case BackendMongo:
		if c.Cache.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidOptions, "cache.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidOptions, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Render.Timeout <= 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "render.timeout must be positive")
	}
	if c.Render.MaxBody <= 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "render.max_body must be positive")
	}
	opts := c.Panel.Options()
	return opts.Validate()
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (log.Level, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidOptions, err, "log.level")
	}
	return level, nil
}

// OpenCache connects the configured cache backend and returns it with the
// keyer to use against it.
func (c CacheConfig) OpenCache(ctx context.Context) (cache.Cache, cache.Keyer, error) {
	keyer := cache.NewDefaultKeyer()
	if c.Scope != "" {
		keyer = cache.NewScopedKeyer(keyer, c.Scope)
	}

	switch c.Backend {
	case BackendNone:
		return cache.NewNullCache(), keyer, nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, c.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return rc, keyer, nil
	case BackendMongo:
		mc, err := cache.NewMongoCache(ctx, c.MongoURI, c.MongoDatabase, c.MongoCollection)
		if err != nil {
			return nil, nil, err
		}
		return mc, keyer, nil
	default:
		dir := c.Dir
		if dir == "" {
			d, err := cache.DefaultDir()
			if err != nil {
				return nil, nil, errors.Wrap(errors.ErrCodeCacheUnavailable, err, "locate cache directory")
			}
			dir = d
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, nil, err
		}
		return fc, keyer, nil
	}
}
