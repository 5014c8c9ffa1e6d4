package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netchart/pkg/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the drawing pipeline over HTTP",
		Long: `Serve the drawing pipeline over HTTP.

Endpoints:
  POST /api/v1/draw    {graph, positions?, layout?, options?} -> Vega-Lite spec
  POST /api/v1/layout  {graph, layout?}                       -> positions
  GET  /healthz

Layout and style defaults come from the config file. The server shares the
configured cache with the CLI under its own key prefix.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: [server] addr or :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}
	defaults, err := c.pipelineOptions()
	if err != nil {
		return err
	}
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	srv := server.New(server.Options{
		Cache:    cc,
		Defaults: defaults,
		Logger:   c.Logger,
	})
	defer srv.Close()

	printInfo("Serving on %s", StyleHighlight.Render(addr))
	printDetail("cache: %s, layout: %s", cacheName(cfg, noCache), defaults.Layout)
	return srv.ListenAndServe(ctx, addr)
}
