package workerhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/stock-gateway/internal/platform/ctxutil"
	"github.com/yungbote/stock-gateway/internal/stocks"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

func newTestClient(t *testing.T, rt roundTripperFunc) *Client {
	t.Helper()
	c, err := New(Options{
		BaseURL:    "http://worker:8080/",
		Timeout:    2 * time.Second,
		HTTPClient: &http.Client{Transport: rt},
	})
	require.NoError(t, err)
	return c
}

func requireWorkerError(t *testing.T, err error) *WorkerError {
	t.Helper()
	var we *WorkerError
	require.True(t, errors.As(err, &we), "expected *WorkerError, got %T: %v", err, err)
	return we
}

func TestAggregateSuccess(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		calls++
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "http://worker:8080/process", req.URL.String())
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		assert.Equal(t, "req-123", req.Header.Get("X-Request-Id"))

		var in map[string][]map[string]any
		require.NoError(t, json.NewDecoder(req.Body).Decode(&in))
		assert.Equal(t, []map[string]any{{"symbol": "^AXJO", "price": 100.0}}, in["records"])

		return jsonResponse(http.StatusOK, `{
			"success": true,
			"data": {
				"symbol": "^AXJO",
				"name": "S&P/ASX 200",
				"price": 8950.56,
				"change": 9.885,
				"change_percent": 0.110507,
				"day_high": 8972.37,
				"day_low": 8926.7,
				"previous_close": 8940.68,
				"timestamp": "2026-01-28T12:42:18Z"
			}
		}`), nil
	})

	ctx := ctxutil.WithTraceData(context.Background(), &ctxutil.TraceData{RequestID: "req-123"})
	got, err := c.Aggregate(ctx, []stocks.Record{{"symbol": "^AXJO", "price": 100.0}})
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "^AXJO", got.Symbol)
	assert.Equal(t, 8950.56, got.Price)
	assert.Equal(t, 8940.68, got.PreviousClose)
	assert.Equal(t, "2026-01-28T12:42:18Z", got.Timestamp)
}

// Data is decoded into the fixed Summary shape: unknown keys the worker adds
// are not passed through.
func TestAggregateDropsUnknownDataKeys(t *testing.T) {
	c := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{
			"success": true,
			"data": {
				"symbol": "NVDA",
				"name": "NVIDIA Corporation",
				"price": 100.5,
				"change": 1,
				"change_percent": 1,
				"day_high": 101,
				"day_low": 99,
				"previous_close": 99.5,
				"timestamp": "2026-01-28T12:42:18Z",
				"exchange": "NASDAQ",
				"volume": 12345
			}
		}`), nil
	})

	got, err := c.Aggregate(context.Background(), []stocks.Record{{"symbol": "NVDA"}})
	require.NoError(t, err)

	out, err := json.Marshal(got)
	require.NoError(t, err)
	var keys map[string]any
	require.NoError(t, json.Unmarshal(out, &keys))
	assert.NotContains(t, keys, "exchange")
	assert.NotContains(t, keys, "volume")
	assert.Len(t, keys, 9)
	assert.Equal(t, "NVDA", got.Symbol)
	assert.Equal(t, 100.5, got.Price)
}

func TestAggregateConnectionError(t *testing.T) {
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("Connection refused")
	})

	_, err := c.Aggregate(context.Background(), []stocks.Record{{"symbol": "TEST"}})

	we := requireWorkerError(t, err)
	assert.Contains(t, we.Error(), "Worker unavailable")
	assert.Contains(t, we.Error(), "Connection refused")
}

func TestAggregateRealConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(Options{BaseURL: url, Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.Aggregate(context.Background(), []stocks.Record{{"symbol": "TEST"}})
	assert.Contains(t, requireWorkerError(t, err).Error(), "Worker unavailable")
}

func TestAggregateErrorEnvelope(t *testing.T) {
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"success": false, "error": "input data cannot be empty"}`), nil
	})

	_, err := c.Aggregate(context.Background(), []stocks.Record{})

	assert.Equal(t, "input data cannot be empty", requireWorkerError(t, err).Error())
}

func TestAggregateErrorEnvelopeWithoutMessage(t *testing.T) {
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"success": false}`), nil
	})

	_, err := c.Aggregate(context.Background(), []stocks.Record{{"symbol": "TEST"}})

	assert.Equal(t, "Unknown worker error", requireWorkerError(t, err).Error())
}

func TestAggregateNon200(t *testing.T) {
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, ``), nil
	})

	_, err := c.Aggregate(context.Background(), []stocks.Record{{"symbol": "TEST"}})

	we := requireWorkerError(t, err)
	assert.Contains(t, we.Error(), "status 500")
	assert.Equal(t, http.StatusInternalServerError, we.StatusCode)
}

func TestAggregateMalformedBody(t *testing.T) {
	for name, body := range map[string]string{
		"not json":     `<html>oops</html>`,
		"missing data": `{"success": true}`,
	} {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, body), nil
			})

			_, err := c.Aggregate(context.Background(), []stocks.Record{{"symbol": "TEST"}})
			assert.Contains(t, requireWorkerError(t, err).Error(), "Invalid worker response")
		})
	}
}

func TestAggregateTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	start := time.Now()
	_, err = c.Aggregate(context.Background(), []stocks.Record{{"symbol": "TEST"}})

	we := requireWorkerError(t, err)
	assert.Contains(t, we.Error(), "Worker unavailable")
	assert.Less(t, time.Since(start), time.Second)
}

func TestNewDefaults(t *testing.T) {
	c, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, DefaultTimeout, c.Timeout())
	assert.Equal(t, "worker", c.Name())

	_, err = New(Options{BaseURL: "worker:8080"})
	assert.Error(t, err)
}
