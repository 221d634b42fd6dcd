package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	_ "talkschedule/docs"
	httpdelivery "talkschedule/internal/delivery/http"
	"talkschedule/internal/delivery/http/controllers"
	"talkschedule/internal/delivery/http/middleware"
)

var serveShutdownTimeout time.Duration

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().DurationVar(&serveShutdownTimeout, "shutdown-timeout", 10*time.Second, "Grace period for in-flight requests on shutdown")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.close()

	notifier, err := newBookingNotifier(cfg, logger)
	if err != nil {
		return err
	}
	svc := newTalkService(cfg, st.repo, notifier, logger)
	if cfg.SeedOnStart {
		if _, err := svc.Seed(ctx); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: httpdelivery.NewRouter(httpdelivery.RouterConfig{
			Logger:         logger,
			Talks:          controllers.NewTalkController(logger, svc),
			Metrics:        middleware.NewMetrics(reg),
			AllowedOrigins: cfg.CORSAllowedOrigins,
			StaticDir:      cfg.StaticDir,
			Ping:           st.ping,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "store", cfg.StoreDriver, "timezone", cfg.Location.String(), "roster", cfg.Roster.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := notifier.Wait(shutdownCtx); err != nil {
		logger.Warn("pending booking notifications dropped", "err", err)
	}
	return nil
}
