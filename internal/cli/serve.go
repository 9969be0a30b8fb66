package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/depflow/internal/api"
	"github.com/matzehuels/depflow/pkg/config"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string
	backend string
	noCache bool
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the depflow HTTP API.

Clients that scan on their own side post file facts to /v1/analyze and get a
laid out graph back. Saved graphs can be re-laid out via /v1/layout and
rendered via /v1/render. The server stops gracefully on interrupt.

The listen address comes from --addr, then DEPFLOW_ADDR, then the [server]
section of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&opts.backend, "cache", "", "cache backend: file, memory, redis, none")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts serveOpts) error {
	ctx := cmd.Context()

	cfg, err := c.loadConfig(".")
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.backend != "" {
		cfg.Cache.Backend = opts.backend
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := api.New(runner, c.Logger, api.Options{MaxBodyBytes: cfg.Server.MaxBodyBytes})
	printInfo("Serving on %s", StyleHighlight.Render(cfg.Server.Addr))
	printDetail("Cache: %s", backendName(cfg, opts.noCache))
	if err := srv.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
		return err
	}
	printSuccess("Server stopped")
	return nil
}

func backendName(cfg config.Config, noCache bool) string {
	if noCache {
		return config.BackendNone
	}
	return cfg.Cache.Backend
}
