package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/parley/internal/presentation/tui"
	httpAdapter "github.com/aretw0/parley/pkg/adapters/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func (a *app) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP editor backend",
		Long:  `Serves the parse, render and graph operations as a JSON API over HTTP.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := a.cfg.HTTPAddr
			if cmd.Flags().Changed("addr") {
				addr, _ = cmd.Flags().GetString("addr")
			}
			withMetrics := a.cfg.Metrics
			if cmd.Flags().Changed("metrics") {
				withMetrics, _ = cmd.Flags().GetBool("metrics")
			}

			opts := []httpAdapter.Option{
				httpAdapter.WithLogger(a.logger),
				httpAdapter.WithMaxScriptSize(a.cfg.MaxScriptSize),
				httpAdapter.WithMaxBodySize(a.cfg.MaxBodySize),
			}
			if withMetrics {
				reg := prometheus.NewRegistry()
				reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
				opts = append(opts, httpAdapter.WithMetrics(reg))
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           httpAdapter.NewHandler(opts...),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.serve(ctx, srv)
		},
	}
	cmd.Flags().String("addr", "", "Address to listen on (default from PARLEY_HTTP_ADDR)")
	cmd.Flags().Bool("metrics", true, "Expose Prometheus metrics on /metrics (default from PARLEY_METRICS)")
	return cmd
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func (a *app) serve(ctx context.Context, srv *http.Server) error {
	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		tui.PrintBanner(os.Stderr)
		a.logger.Info("Starting Parley Server", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		a.logger.Info("Shutdown signal received, shutting down server")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			if cerr := srv.Close(); cerr != nil {
				a.logger.Error("Error killing server", "error", cerr)
			}
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
		}
		a.logger.Info("Parley Server stopped gracefully")
		return nil
	}
}
