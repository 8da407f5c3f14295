package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clusterpanel/internal/config"
	"github.com/matzehuels/clusterpanel/internal/server"
	"github.com/matzehuels/clusterpanel/pkg/buildinfo"
	"github.com/matzehuels/clusterpanel/pkg/observability"
	"github.com/matzehuels/clusterpanel/pkg/observability/metrics"
	"github.com/matzehuels/clusterpanel/pkg/pipeline"
)

// serveCommand creates the serve command that runs the HTTP render service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
		noMetrics  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Run the HTTP render service.

Configuration is read from --config (TOML or YAML) and CLUSTERPANEL_*
environment variables, e.g. CLUSTERPANEL_CACHE_BACKEND=redis and
CLUSTERPANEL_CACHE_REDIS_URL=redis://localhost:6379/0.

The service stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			if !cmd.Flags().Changed("verbose") {
				level, err := cfg.LogLevel()
				if err != nil {
					return err
				}
				c.SetLogLevel(level)
			}

			ctx := cmd.Context()
			store, keyer, err := cfg.Cache.OpenCache(ctx)
			if err != nil {
				return fmt.Errorf("open %s cache: %w", cfg.Cache.Backend, err)
			}
			runner := pipeline.NewRunner(store, keyer, c.Logger)
			defer runner.Close()

			var reg *metrics.Registry
			if !noMetrics {
				reg = metrics.NewRegistry()
				observability.SetPipelineHooks(reg)
				observability.SetCacheHooks(reg)
				observability.SetHTTPHooks(reg)
				defer observability.Reset()
			}

			printSuccess("Serving clusterpanel %s", buildinfo.Version)
			printKeyValue("Address", cfg.Addr)
			printKeyValue("Cache", cfg.Cache.Backend)
			if reg != nil {
				printKeyValue("Metrics", "/metrics")
			} else {
				printWarning("Metrics disabled")
			}
			printNewline()

			return server.New(cfg, runner, reg, c.Logger).Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint")

	return cmd
}
