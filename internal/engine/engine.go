package engine

import (
	"context"

	"github.com/yungbote/stock-gateway/internal/stocks"
)

// Engine produces one Summary from a record list. The gateway holds exactly
// one, chosen at startup.
type Engine interface {
	Name() string
	Aggregate(ctx context.Context, records []stocks.Record) (*stocks.Summary, error)
}
