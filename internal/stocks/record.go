package stocks

import "fmt"

// Required fields every aggregation input must carry, in output order.
var RequiredFields = []string{
	"symbol",
	"name",
	"price",
	"change",
	"change_percent",
	"day_high",
	"day_low",
	"previous_close",
}

// Record is one raw stock snapshot exactly as uploaded. Keys beyond the
// required set (timestamp, exchange, ...) are kept so they can be forwarded
// to the worker untouched.
type Record map[string]any

// Missing lists the required fields absent from r, in RequiredFields order.
func (r Record) Missing() []string {
	var out []string
	for _, f := range RequiredFields {
		if _, ok := r[f]; !ok {
			out = append(out, f)
		}
	}
	return out
}

// Number returns the numeric value stored under field.
func (r Record) Number(field string) (float64, bool) {
	switch v := r[field].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func (r Record) Text(field string) (string, bool) {
	s, ok := r[field].(string)
	return s, ok
}

// Summary is the aggregate of a record list.
type Summary struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	DayHigh       float64 `json:"day_high"`
	DayLow        float64 `json:"day_low"`
	PreviousClose float64 `json:"previous_close"`
	Timestamp     string  `json:"timestamp"`
}

func (s *Summary) String() string {
	if s == nil {
		return "<nil summary>"
	}
	return fmt.Sprintf("%s price=%.2f ts=%s", s.Symbol, s.Price, s.Timestamp)
}

// ProcessRequest is the body of POST /process on the worker.
type ProcessRequest struct {
	Records []Record `json:"records"`
}

// Envelope is the worker's response wrapper. Data is set iff Success.
type Envelope struct {
	Success bool     `json:"success"`
	Data    *Summary `json:"data,omitempty"`
	Error   string   `json:"error,omitempty"`
}
