package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/ieee0824/pronounce-go/internal/observe"
	"github.com/ieee0824/pronounce-go/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scoring API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{})
			if err != nil {
				return err
			}
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					a.log.WithError(err).Warn("telemetry shutdown")
				}
			}()
			metrics := observe.DefaultMetrics()

			scorer, closeFn, err := a.newScorer(true)
			if err != nil {
				return err
			}
			defer closeFn()
			cat, err := loadCatalog(a.cfg)
			if err != nil {
				return err
			}

			srv := server.New(scorer,
				server.WithCatalog(cat),
				server.WithMetrics(metrics),
				server.WithRequestTimeout(a.cfg.Server.RequestTimeout),
				server.WithLogger(a.log),
			)
			return srv.ListenAndServe(ctx, a.cfg.Server.ListenAddr)
		},
	}
	cmd.Flags().String("listen", ":8080", "listen address")
	return cmd
}
