package app

import (
	"context"
	"fmt"
	"net"

	"github.com/yungbote/stock-gateway/internal/config"
	apphttp "github.com/yungbote/stock-gateway/internal/http"
	"github.com/yungbote/stock-gateway/internal/observability"
	"github.com/yungbote/stock-gateway/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	Cfg      *config.Config
	Services Services

	server       *apphttp.Server
	otelShutdown func(context.Context) error
}

// NewGateway wires the upload gateway: config, logger, tracing, the engine
// chosen by the aggregation mode, and the public router.
func NewGateway(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	otelShutdown := observability.InitOTel(ctx, log, cfg.Env, cfg.OTel)

	services, err := wireServices(cfg, log)
	if err != nil {
		_ = otelShutdown(ctx)
		log.Sync()
		return nil, err
	}
	handlers := wireHandlers(log, services)
	router := wireGatewayRouter(cfg, log, services, handlers)

	log.Info("gateway configured",
		"addr", cfg.HTTP.Addr,
		"aggregation_mode", services.Engine.Name(),
		"worker_url", cfg.Worker.URL,
		"worker_timeout", cfg.Worker.Timeout.Duration.String(),
		"cors_origins", cfg.CORS.Origins,
	)

	return &App{
		Log:          log,
		Cfg:          cfg,
		Services:     services,
		server:       apphttp.NewServer(cfg.HTTP, router, log),
		otelShutdown: otelShutdown,
	}, nil
}

// NewWorker wires the aggregation worker. It always aggregates in-process.
func NewWorker(ctx context.Context) (*App, error) {
	cfg, err := config.LoadWorker()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	otelShutdown := observability.InitOTel(ctx, log, cfg.Env, cfg.OTel)

	cfg.Aggregation.Mode = config.ModeLocal
	services, err := wireServices(cfg, log)
	if err != nil {
		_ = otelShutdown(ctx)
		log.Sync()
		return nil, err
	}
	router := wireWorkerRouter(cfg, log, services)

	log.Info("worker configured", "addr", cfg.HTTP.Addr)

	return &App{
		Log:          log,
		Cfg:          cfg,
		Services:     services,
		server:       apphttp.NewServer(cfg.HTTP, router, log),
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves until ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.server.Run(ctx)
}

// Serve is Run on an existing listener.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	if a == nil || a.server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.server.Serve(ctx, ln)
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		a.otelShutdown = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
