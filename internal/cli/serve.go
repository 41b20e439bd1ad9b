package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/biobank/internal/api"
	"github.com/mesh-intelligence/biobank/internal/crud"
)

func (a *app) newServeCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the CRUD API over HTTP",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			backend, err := a.attachBackend(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := backend.Detach(); err != nil {
					a.log.Warn().Err(err).Msg("detach failed")
				}
			}()

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			dbStats, err := backend.Collector()
			if err != nil {
				return err
			}
			if err := reg.Register(dbStats); err != nil {
				return fmt.Errorf("register db stats: %w", err)
			}
			metrics, err := crud.NewMetrics(reg)
			if err != nil {
				return fmt.Errorf("register metrics: %w", err)
			}

			if listen == "" {
				listen = a.settings.ListenAddr
			}
			server := api.NewServer(backend, crud.New(a.log, metrics), a.log, api.Options{
				Prefix:          a.settings.APIPrefix,
				ListenAddr:      listen,
				CORSOrigins:     a.settings.CORSOrigins,
				DefaultPageSize: a.settings.DefaultPageSize,
				MaxPageSize:     a.settings.MaxPageSize,
				Gatherer:        reg,
			})
			return server.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default: listen_addr from config)")
	return cmd
}
