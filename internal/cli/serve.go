package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healthdash/internal/api"
	"healthdash/internal/hub"
	"healthdash/internal/ttl"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Run:   runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (default: $HTTP_ADDR or :8080)")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.HTTPAddr = addr
	}

	a := newApp(cfg, true)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Session cleaner
	cleaner := ttl.NewCleaner(a.assistant, cfg.CleanupInterval, a.logger.With("ttl"), a.metrics)
	go cleaner.Start(ctx)

	// Heartbeats
	heartbeat := hub.NewHeartbeatWorker(a.hub, a.hubConfig)
	go heartbeat.Start(ctx)

	// API
	handler := api.NewHandler(a.store, a.assistant, a.hub, a.metrics, a.logger)
	mux := http.NewServeMux()
	httpHandler := api.RegisterRoutes(mux, handler, api.Options{
		LoadDelay:   cfg.LoadDelay,
		CORSOrigins: cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("server started on %s (%s)", cfg.HTTPAddr, cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			exitErr("listen", err)
		}
		return
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.hub.Close()
	if err := server.Shutdown(shutdownCtx); err != nil {
		exitErr("shutdown", err)
	}
	a.logger.Info("server stopped")
}
