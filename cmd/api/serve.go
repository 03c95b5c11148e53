// ABOUTME: serve command running the HTTP API
// ABOUTME: Starts the optional refresh worker and shuts down gracefully on SIGINT or SIGTERM

package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mentions-api/api"
	"mentions-api/api/handlers"
	"mentions-api/core/workers"
	"mentions-api/pkg/featureflags"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, configFile(cmd))
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := a.cfg
	a.logger.Info("Starting Mentions API", map[string]interface{}{
		"port":           cfg.Server.Port,
		"cache_type":     cfg.Cache.Type,
		"cache_ttl":      cfg.Cache.TTL.String(),
		"recency_policy": a.recencyPolicy(ctx).String(),
		"watchlist":      len(cfg.Refresh.Watchlist),
	})

	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:     a.logger,
		Secrets:    a.secrets,
		RateLimit:  cfg.Server.RateLimit,
		RateWindow: time.Minute,
		Tracing:    a.flags.IsEnabled(ctx, featureflags.RequestTracing),
	})

	handlers.NewNewsHandler(a.news).RegisterRoutes(humaAPI)
	handlers.NewPersonHandler(a.person).RegisterRoutes(humaAPI)
	handlers.NewSummaryHandler(a.summary).RegisterRoutes(humaAPI)
	handlers.NewVerifyHandler().RegisterRoutes(humaAPI)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	if a.flags.IsEnabled(ctx, featureflags.RefreshWorker) && len(cfg.Refresh.Watchlist) > 0 {
		worker := workers.NewRefreshWorker(a.news, a.logger, workers.WorkerConfig{
			Watchlist:  cfg.Refresh.Watchlist,
			Interval:   cfg.Refresh.Interval,
			MaxWorkers: cfg.Refresh.Workers,
		})
		if err := worker.Start(); err != nil {
			return fmt.Errorf("failed to start refresh worker: %w", err)
		}
		defer worker.Stop()
	}

	// Write timeout leaves room for one provider call plus the summarizer
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Search.Timeout + 40*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	a.logger.Info("Server stopped", nil)
	return nil
}
