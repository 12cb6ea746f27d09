package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/wrapped/internal/server"
)

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		noCache  bool
		capacity int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the Wrapped API over HTTP",
		Long: `Serve the Wrapped API over HTTP.

POST /api/wrapped with {"username": "..."} generates a result and returns its
id; GET /api/wrapped/{id}/pages/{n}.png draws page n. Results are kept in
memory and are lost when the server stops.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyStringConfig(cmd, "addr", &addr, c.cfg.Server.Addr)

			ctx := withLogger(cmd.Context(), c.Logger)
			runner, closeCache, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer closeCache()

			srv := server.New(runner, server.NewStore(capacity), c.Logger)
			printInfo("Listening on %s", StyleLink.Render("http://"+displayAddr(addr)))
			printDetail("Press Ctrl+C to stop")
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().IntVar(&capacity, "capacity", server.DefaultCapacity, "results kept in memory")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache")

	return cmd
}

// displayAddr turns a bare ":port" listen address into a clickable host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
