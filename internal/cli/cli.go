package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/visualencer/pkg/buildinfo"
	"github.com/matzehuels/visualencer/pkg/cache"
	"github.com/matzehuels/visualencer/pkg/pipeline"
	"github.com/matzehuels/visualencer/pkg/storage"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "visualencer"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     *Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Visualencer compiles node graphs into Sequencer scripts",
		Long:         `Visualencer turns visual node graphs into Sequencer fluent-API scripts for Foundry VTT macros, and serves the compiler to editors over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/visualencer/config.toml)")

	// Register all subcommands
	root.AddCommand(c.compileCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.nodesCommand())
	root.AddCommand(c.graphsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// cfg returns the loaded config, or defaults when PersistentPreRunE did
// not run (e.g. commands invoked directly in tests).
func (c *CLI) cfg() *Config {
	if c.config == nil {
		c.config = &Config{Server: ServerConfig{Addr: defaultAddr}}
	}
	return c.config
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir := c.cfg().CacheDir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// newServerCache prefers Redis when configured so several servers share
// compiled scripts; it falls back to the file cache.
func (c *CLI) newServerCache(ctx context.Context) (cache.Cache, error) {
	rc := c.cfg().Redis
	if rc.Addr == "" {
		return c.newCache(false)
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	redisCache, err := cache.NewRedisCache(connectCtx, cache.RedisConfig{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
	})
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using redis cache", "addr", rc.Addr, "ttl", rc.TTL.Duration)
	return cache.WithTTL(redisCache, rc.TTL.Duration), nil
}

// serverKeyer prefixes the server's cache keys when they go to Redis, so
// its entries stay apart from other clients of the same instance. It
// returns nil (the default keyer) for the local file cache.
func (c *CLI) serverKeyer() cache.Keyer {
	rc := c.cfg().Redis
	if rc.Addr == "" {
		return nil
	}
	prefix := rc.Prefix
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return cache.NewScopedKeyer(nil, prefix)
}

// newStore opens MongoDB when configured, otherwise the file store.
func (c *CLI) newStore(ctx context.Context) (storage.Store, error) {
	cfg := c.cfg()
	if cfg.Mongo.URI != "" {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return storage.NewMongoStore(connectCtx, storage.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	}
	dir := cfg.GraphsDir
	if dir == "" {
		var err error
		if dir, err = graphsDir(); err != nil {
			return nil, err
		}
	}
	return storage.NewFileStore(dir)
}
