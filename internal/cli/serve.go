package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/visualencer/pkg/api"
	"github.com/matzehuels/visualencer/pkg/observability"
	"github.com/matzehuels/visualencer/pkg/pipeline"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noMetrics bool
		noStore   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for live editor previews",
		Long: `Run the HTTP API.

Compiled scripts are cached in Redis when [redis] addr (or
VISUALENCER_REDIS_ADDR) is set, otherwise in the local cache directory.
Redis keys are prefixed with [redis] prefix (default "visualencer:api:").
Graphs are stored in MongoDB when [mongo] uri (or VISUALENCER_MONGO_URI)
is set, otherwise in the local graphs directory.

Prometheus metrics are served at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg().Server.Addr
			}
			return c.runServe(cmd.Context(), addr, !noMetrics, !noStore)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "disable the /graphs endpoints")

	return cmd
}

// runServe wires cache, store and metrics into the API server and blocks
// until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string, metrics, store bool) error {
	scriptCache, err := c.newServerCache(ctx)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	runner := pipeline.NewRunner(scriptCache, c.serverKeyer(), c.Logger)
	defer runner.Close()

	cfg := api.Config{Runner: runner, Logger: c.Logger}

	if metrics {
		prom := observability.NewPrometheusHooks()
		observability.SetPipelineHooks(prom)
		observability.SetCacheHooks(prom)
		observability.SetHTTPHooks(prom)
		defer observability.Reset()
		cfg.Metrics = prom.Handler()
	}

	if store {
		s, err := c.newStore(ctx)
		if err != nil {
			return fmt.Errorf("open graph store: %w", err)
		}
		defer s.Close()
		cfg.Store = s
	}

	c.Logger.Info("starting server",
		"addr", addr,
		"node_types", runner.Registry.Len(),
		"metrics", metrics,
		"store", store)

	err = api.New(cfg).ListenAndServe(ctx, addr)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
