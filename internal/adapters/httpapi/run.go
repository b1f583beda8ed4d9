package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"studytrack/internal/logging"
	"studytrack/internal/metrics"
	"studytrack/internal/ports"
)

// shutdownTimeout bounds how long in-flight requests may finish
const shutdownTimeout = 10 * time.Second

// connectionReporter is implemented by stores that export pool metrics
type connectionReporter interface {
	UpdateConnectionMetrics()
}

// Run serves the API on listenAddr and Prometheus metrics on metricsAddr
// (skipped when empty) until ctx is cancelled.
func Run(ctx context.Context, store ports.ProgressStore, listenAddr, metricsAddr string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var metricsServer *http.Server
	if metricsAddr != "" {
		metricsServer = &http.Server{
			Addr:    metricsAddr,
			Handler: metrics.Handler(),
		}
		go func() {
			logging.Info("metrics server listening", zap.String("addr", metricsAddr))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error("metrics server error", zap.Error(err))
			}
		}()
	}

	if r, ok := store.(connectionReporter); ok {
		go func() {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					r.UpdateConnectionMetrics()
				}
			}
		}()
	}

	httpServer := &http.Server{
		Addr:              listenAddr,
		Handler:           NewServer(store).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("server listening (HTTP)",
			zap.String("addr", listenAddr),
			zap.Bool("database", store.Configured()))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if metricsServer != nil {
			metricsServer.Close()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logging.Info("shutting down...")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if metricsServer != nil {
		metricsServer.Shutdown(shutdownCtx)
	}
	return httpServer.Shutdown(shutdownCtx)
}
