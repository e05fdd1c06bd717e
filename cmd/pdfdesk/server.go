package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"pdfdesk/internal/config"
	handlers "pdfdesk/internal/http/handler"
	"pdfdesk/internal/http/middleware"
	"pdfdesk/internal/logging"
	"pdfdesk/internal/metrics"
	appotel "pdfdesk/internal/otel"
	"pdfdesk/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// server holds what both subcommands build before registering their routes.
type server struct {
	cfg      *config.AppConfig
	log      zerolog.Logger
	reg      *prometheus.Registry
	pipeline *metrics.Pipeline
	store    storage.Storage
	app      *fiber.App
	closers  []func() error
}

func newServer(ctx context.Context, service, defaultPort, port string) (_ *server, err error) {
	cfg := config.Load(defaultPort)
	if port != "" {
		cfg.Port = port
	}
	log := logging.New(service, cfg.LogLevel, nil)

	shutdownTracing, err := appotel.Init(ctx, service, log)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err != nil {
			_ = shutdownTracing(context.Background())
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return nil, fmt.Errorf("register http metrics: %w", err)
	}
	pipeline, err := metrics.NewPipeline(reg)
	if err != nil {
		return nil, fmt.Errorf("register pipeline metrics: %w", err)
	}

	store, err := storage.NewLocal(cfg.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("init workspace: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               service,
		BodyLimit:             cfg.MaxUploadBytes,
		ErrorHandler:          handlers.ErrorHandler(log),
		DisableStartupMessage: true,
	})

	// RequestID first so every later middleware and the error handler see it.
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(log))
	app.Use(prom.Handler())

	s := &server{
		cfg:      cfg,
		log:      log,
		reg:      reg,
		pipeline: pipeline,
		store:    store,
		app:      app,
	}
	s.onClose(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return shutdownTracing(ctx)
	})
	return s, nil
}

// tracedClient is the outbound HTTP client for model and payment providers.
func tracedClient() *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   2 * time.Minute,
	}
}

func (s *server) onClose(f func() error) {
	s.closers = append(s.closers, f)
}

// run serves until ctx is cancelled, then drains in-flight requests and closes s.
func (s *server) run(ctx context.Context) error {
	addr := ":" + s.cfg.Port
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Str("work_dir", s.cfg.WorkDir).Msg("server starting")
		errCh <- s.app.Listen(addr)
	}()

	var err error
	select {
	case err = <-errCh:
		if err != nil {
			err = fmt.Errorf("failed to start server: %w", err)
		}
	case <-ctx.Done():
		s.log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err = s.app.ShutdownWithContext(sctx)
		cancel()
	}

	return errors.Join(err, s.close())
}

// close releases resources in reverse order of acquisition.
func (s *server) close() error {
	var err error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if cerr := s.closers[i](); cerr != nil {
			s.log.Warn().Err(cerr).Msg("close failed")
			err = errors.Join(err, cerr)
		}
	}
	s.closers = nil
	return err
}
