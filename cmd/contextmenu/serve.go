package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/example/contextmenu/internal/bridge"
	"github.com/example/contextmenu/internal/config"
	"github.com/example/contextmenu/internal/ipc"
	"github.com/example/contextmenu/internal/logging"
	"github.com/example/contextmenu/internal/metrics"
	"github.com/example/contextmenu/internal/native"
	"github.com/example/contextmenu/internal/security"
	"github.com/example/contextmenu/pkg/contextmenu"
)

const metricsShutdownTimeout = 5 * time.Second

func newServeCommand(opts *globalOptions) *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve popup requests from the host shell over the loopback bridge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg

			presenter, err := native.New(firstNonEmpty(backend, cfg.Backend), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer presenter.Close()

			registry := prometheus.NewRegistry()
			gw := contextmenu.New(presenter,
				contextmenu.WithCounter(metrics.NewPopupCounter(registry)),
				contextmenu.WithRejectEmpty(cfg.RejectEmpty),
			)

			token := security.ResolveBridgeToken(cfg.Bridge.Token, cfg.Bridge.Secret)
			srv, err := bridge.New(gw, ipc.NewEndpoint(cfg.Bridge.Listen), token)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return ignoreCanceled(srv.Run(gctx))
			})

			if cfg.Metrics.Listen != "" {
				startMetrics(gctx, g, cfg.Metrics.Listen, registry)
			}

			if path, err := opts.resolvedConfigPath(); err == nil {
				if _, statErr := os.Stat(filepath.Dir(path)); statErr == nil {
					g.Go(func() error {
						return ignoreCanceled(config.Watch(gctx, path, func(next *config.Config) {
							logging.SetDebug(opts.debug || next.Debug)
							gw.SetRejectEmpty(next.RejectEmpty)
						}))
					})
				}
			}

			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&backend, "backend", "", "menu backend: stub, systray, terminal (default from config)")
	return cmd
}

func startMetrics(ctx context.Context, g *errgroup.Group, addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HandlerForRegistry(reg))
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		log.Printf("metrics listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
}
