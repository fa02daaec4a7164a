package main

import (
	"github.com/spf13/cobra"
)

// defaultMetricsAddr is used when neither --addr nor metrics.addr is set.
const defaultMetricsAddr = "localhost:9464"

func (c *cli) serveMetricsCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve-metrics",
		Short: "Serve /metrics, /healthz and /debug/state",
		Long: `Start the debug HTTP server. It exposes the Prometheus metrics of
this process, a health check and a JSON summary of the app state, and
stops on interrupt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.load(cmd)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = app.Config().Metrics.Addr
			}
			if addr == "" {
				addr = defaultMetricsAddr
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			info(cmd.OutOrStdout(), "Debug server on http://%s (metrics, healthz, debug/state)", addr)
			return app.DebugServer(addr).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from metrics.addr, then "+defaultMetricsAddr+")")

	return cmd
}
