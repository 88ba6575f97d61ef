package app

import (
	"fmt"

	"github.com/yungbote/stock-gateway/internal/config"
	"github.com/yungbote/stock-gateway/internal/engine"
	"github.com/yungbote/stock-gateway/internal/observability"
	"github.com/yungbote/stock-gateway/internal/pipeline"
	"github.com/yungbote/stock-gateway/internal/platform/logger"
)

type Services struct {
	Engine   engine.Engine
	Pipeline *pipeline.Pipeline
	Metrics  *observability.Metrics
}

func wireServices(cfg *config.Config, log *logger.Logger) (Services, error) {
	log.Info("Wiring services...")
	eng, err := engine.New(cfg, log)
	if err != nil {
		return Services{}, fmt.Errorf("init engine: %w", err)
	}

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics()
		eng = instrumentEngine(eng, metrics)
	}

	return Services{
		Engine:   eng,
		Pipeline: pipeline.New(eng, log),
		Metrics:  metrics,
	}, nil
}
