package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"

	"github.com/okian/pitchside/internal/adapters/http/api"
	"github.com/okian/pitchside/internal/adapters/refresh"
	"github.com/okian/pitchside/internal/adapters/source"
	app "github.com/okian/pitchside/internal/app"
	"github.com/okian/pitchside/internal/config"
	"github.com/okian/pitchside/pkg/logger"
	"github.com/okian/pitchside/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	loggerInstance := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Init(metrics.WithNamespace(cfg.MetricsNamespace))

	err = run(ctx, cfg, loggerInstance)
	if syncErr := logger.Sync(); syncErr != nil {
		os.Stderr.WriteString("failed to sync logger: " + syncErr.Error() + "\n")
	}
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// components is everything run starts and stops.
type components struct {
	svc *app.Service
	job *refresh.Job
	srv *http.Server
}

// build wires the loader, service, refresh job and HTTP server from cfg.
func build(ctx context.Context, cfg *config.Config, log logger.Logger) *components {
	loader, err := source.Select(cfg.DataFile, cfg.DataURL, source.WithTimeout(cfg.FetchTimeout()))
	if err != nil {
		log.Warn(ctx, "no data source configured; serving an empty dataset", logger.Error(err))
		loader = source.NewStatic(nil)
	}

	svc := app.New(
		app.WithLoader(loader),
		app.WithLogger(log.Named("app")),
		app.WithCacheSize(cfg.CacheSize),
		app.WithCalendarOrder(cfg.CalendarOrder),
	)

	job := refresh.New(svc,
		refresh.WithInterval(cfg.RefreshInterval()),
		refresh.WithLogger(log.Named("refresh")),
	)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	api.NewServer(svc, svc, api.WithLogger(log.Named("http"))).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return &components{svc: svc, job: job, srv: srv}
}

// run serves until ctx is cancelled or the listener fails.
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	c := build(ctx, cfg, log)

	if err := c.svc.Start(ctx); err != nil {
		return errors.Wrap(err, "start service")
	}
	defer c.svc.Stop()

	if err := c.job.Start(ctx); err != nil {
		return errors.Wrap(err, "start refresh job")
	}
	defer func() {
		if err := c.job.Stop(); err != nil {
			log.Error(context.Background(), "refresh job stop failed", logger.Error(err))
		}
	}()

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, c.svc)

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := c.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- errors.Mark(errors.Wrap(err, "listen"), api.ErrServe)
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}
	log.Info(context.Background(), "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := c.srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}

	log.Info(shutdownCtx, "server stopped")
	return nil
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater starts a background goroutine that updates service metrics.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc)
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}

// updateServiceMetrics copies service gauges that are not updated inline.
func updateServiceMetrics(svc *app.Service) {
	stats := svc.GetStats()
	if cached, ok := stats["cachedViews"].(int); ok {
		metrics.UpdateCacheEntries(cached)
	}
}
