package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vinay2231/Edututor-AI/internal/adapters/http/api"
	"github.com/vinay2231/Edututor-AI/internal/adapters/repository"
	"github.com/vinay2231/Edututor-AI/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func newServeCmd(env *runtimeEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve health, metrics and read-only student reports",
		Long:  "Serve exposes /healthz, /metrics, /overview and /students/{id}/report over the in-memory store. With --batch the given jobs are graded into the store before serving.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			addr := env.cfg.MetricsAddr
			if a, _ := cmd.Flags().GetString("addr"); a != "" {
				addr = a
			}
			store := repository.NewShardedStore(repository.WithShardCount(env.cfg.ShardCount))
			engine := env.engine()

			if path, _ := cmd.Flags().GetString("batch"); path != "" {
				stats, err := env.runBatchFile(ctx, path, engine, store)
				if err != nil {
					return err
				}
				env.log.Info(ctx, "preloaded batch",
					logger.Int("processed", int(stats.Processed)),
					logger.Int("failed", int(stats.Failed)),
				)
			}

			mux := http.NewServeMux()
			api.NewServer(store, engine).Register(mux)
			return serve(ctx, env.log, &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadTimeout:       readTimeout,
				WriteTimeout:      writeTimeout,
				IdleTimeout:       idleTimeout,
				ReadHeaderTimeout: readHeaderTimeout,
			})
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides metrics_addr)")
	cmd.Flags().String("batch", "", "Jobs file to grade before serving")
	return cmd
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, log logger.Logger, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}
	log.Info(ctx, "server stopped")
	return nil
}
