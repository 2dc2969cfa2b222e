package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/anchor/pkg/api"
)

// serveCommand creates the HTTP API command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve grid plans, scene checks, overlays and snapshots over HTTP.

Plans, reports and overlays are cached in the configured cache backend;
snapshots go to the configured store (memory or mongo).`,
		Example: `  anchor serve --addr :9090
  ANCHOR_CACHE_BACKEND=redis ANCHOR_STORE_BACKEND=mongo anchor serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Serve.Addr
			}

			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(context.WithoutCancel(ctx))

			artifacts := c.openCache(ctx, noCache)
			defer artifacts.Close()

			srv := api.New(
				api.WithLogger(c.Logger),
				api.WithCache(artifacts, c.Config.Cache.TTL),
				api.WithKeyer(keyer()),
				api.WithStore(store),
			)
			c.Logger.Info("serving", "addr", addr, "cache", c.Config.Cache.Backend, "store", c.Config.Store.Backend)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default serve.addr)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
