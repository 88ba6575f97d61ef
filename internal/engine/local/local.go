// Package local aggregates records in-process.
//
// Averages are computed in exact decimal arithmetic over the shortest
// decimal representation of each input value and rounded half away from
// zero: price, day_high, day_low and previous_close to 2 places, change to 4,
// change_percent to 6.
package local

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yungbote/stock-gateway/internal/platform/clock"
	"github.com/yungbote/stock-gateway/internal/stocks"
)

const TimestampLayout = "2006-01-02T15:04:05Z"

type numericField struct {
	name   string
	places int32
	set    func(s *stocks.Summary, v float64)
}

var numericFields = []numericField{
	{"price", 2, func(s *stocks.Summary, v float64) { s.Price = v }},
	{"change", 4, func(s *stocks.Summary, v float64) { s.Change = v }},
	{"change_percent", 6, func(s *stocks.Summary, v float64) { s.ChangePercent = v }},
	{"day_high", 2, func(s *stocks.Summary, v float64) { s.DayHigh = v }},
	{"day_low", 2, func(s *stocks.Summary, v float64) { s.DayLow = v }},
	{"previous_close", 2, func(s *stocks.Summary, v float64) { s.PreviousClose = v }},
}

type Engine struct {
	clock clock.Clock
}

func New(c clock.Clock) *Engine {
	if c == nil {
		c = clock.System{}
	}
	return &Engine{clock: c}
}

func (e *Engine) Name() string { return "local" }

func (e *Engine) Aggregate(ctx context.Context, records []stocks.Record) (*stocks.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Aggregate(records, e.clock.Now())
}

// Aggregate averages records into a Summary stamped with now.
//
// Only the first record is checked for field presence. A later record that
// lacks a field, or any record holding a non-numeric value, is reported as
// KindInvalidField.
func Aggregate(records []stocks.Record, now time.Time) (*stocks.Summary, error) {
	if len(records) == 0 {
		return nil, stocks.ErrEmptyInput()
	}

	first := records[0]
	if missing := first.Missing(); len(missing) > 0 {
		return nil, stocks.ErrMissingFields(missing)
	}

	symbol, ok := first.Text("symbol")
	if !ok {
		return nil, stocks.ErrInvalidField("symbol", 0)
	}
	name, ok := first.Text("name")
	if !ok {
		return nil, stocks.ErrInvalidField("name", 0)
	}

	out := &stocks.Summary{
		Symbol:    symbol,
		Name:      name,
		Timestamp: now.UTC().Format(TimestampLayout),
	}

	count := decimal.NewFromInt(int64(len(records)))
	for _, f := range numericFields {
		sum := decimal.Zero
		for i, r := range records {
			v, ok := r.Number(f.name)
			if !ok {
				return nil, stocks.ErrInvalidField(f.name, i)
			}
			sum = sum.Add(decimal.NewFromFloat(v))
		}
		mean, _ := sum.Div(count).Round(f.places).Float64()
		f.set(out, mean)
	}

	return out, nil
}
