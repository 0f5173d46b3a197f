package cli

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/visualencer/pkg/errors"
)

// Environment variables that override the config file.
const (
	envRedisAddr = "VISUALENCER_REDIS_ADDR"
	envMongoURI  = "VISUALENCER_MONGO_URI"
	envAddr      = "VISUALENCER_ADDR"
)

const defaultAddr = ":8080"

// defaultRedisPrefix scopes the server's keys in a shared Redis.
const defaultRedisPrefix = "visualencer:api:"

// Config is the user configuration read from config.toml.
type Config struct {
	// Standalone wraps compiled scripts with sequence construction and play.
	Standalone bool   `toml:"standalone"`
	CacheDir   string `toml:"cache_dir"`
	GraphsDir  string `toml:"graphs_dir"`

	Server ServerConfig `toml:"server"`
	Redis  RedisConfig  `toml:"redis"`
	Mongo  MongoConfig  `toml:"mongo"`
}

// ServerConfig configures `visualencer serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// RedisConfig enables the Redis script cache when Addr is set.
type RedisConfig struct {
	Addr     string   `toml:"addr"`
	Password string   `toml:"password"`
	DB       int      `toml:"db"`
	TTL      duration `toml:"ttl"`
	// Prefix is prepended to every key the server writes.
	Prefix string `toml:"prefix"`
}

// MongoConfig enables the MongoDB graph store when URI is set.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// duration decodes TOML strings like "12h".
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// loadConfig reads path (or the default location when path is empty).
// A missing default file yields the zero config; a missing explicit file
// is an error. A .env file in the working directory is loaded first so its
// variables take part in the environment overrides.
func loadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err == nil {
			path = filepath.Join(dir, "config.toml")
		}
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
			}
			if explicit {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
			}
		}
	}

	cfg.applyEnv()
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultAddr
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(envRedisAddr); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv(envMongoURI); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv(envAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("VISUALENCER_STANDALONE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Standalone = b
		}
	}
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/visualencer/).
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

// cacheDir returns the cache directory using XDG standard (~/.cache/visualencer/).
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

// graphsDir returns the file store directory (~/.config/visualencer/graphs/).
func graphsDir() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "graphs"), nil
}
