package app

import (
	"context"
	"errors"
	"time"

	"github.com/yungbote/stock-gateway/internal/engine"
	"github.com/yungbote/stock-gateway/internal/engine/workerhttp"
	"github.com/yungbote/stock-gateway/internal/observability"
	"github.com/yungbote/stock-gateway/internal/stocks"
)

type instrumentedEngine struct {
	inner   engine.Engine
	metrics *observability.Metrics
}

func instrumentEngine(inner engine.Engine, m *observability.Metrics) engine.Engine {
	if inner == nil || m == nil {
		return inner
	}
	return &instrumentedEngine{inner: inner, metrics: m}
}

func (e *instrumentedEngine) Name() string { return e.inner.Name() }

func (e *instrumentedEngine) Aggregate(ctx context.Context, records []stocks.Record) (*stocks.Summary, error) {
	start := time.Now()
	out, err := e.inner.Aggregate(ctx, records)
	e.metrics.ObserveAggregation(e.inner.Name(), outcome(err), time.Since(start))
	return out, err
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}
	var ve *stocks.ValidationError
	if errors.As(err, &ve) {
		return "rejected"
	}
	var we *workerhttp.WorkerError
	if errors.As(err, &we) {
		return "worker_error"
	}
	return "error"
}
