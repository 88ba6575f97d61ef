package workerhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/yungbote/stock-gateway/internal/platform/ctxutil"
	"github.com/yungbote/stock-gateway/internal/platform/logger"
	"github.com/yungbote/stock-gateway/internal/stocks"
)

const (
	DefaultBaseURL = "http://localhost:8080"
	DefaultTimeout = 30 * time.Second

	ProcessPath = "/process"

	maxResponseBytes = 1 << 20
)

type Options struct {
	BaseURL string
	Timeout time.Duration

	// HTTPClient overrides the default traced client.
	HTTPClient *http.Client
	Log        *logger.Logger
}

// Client delegates aggregation to a remote worker with one POST per call.
// It never retries.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	log        *logger.Logger
}

func New(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, errors.New("worker base url must start with http:// or https://")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	log := opts.Log
	if log == nil {
		log = logger.NewNop()
	}

	return &Client{
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: hc,
		log:        log.With("component", "WorkerClient"),
	}, nil
}

func (c *Client) Name() string { return "worker" }

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Timeout() time.Duration { return c.timeout }

// Aggregate sends records as {"records": [...]} to the worker and returns
// the envelope's data. Every failure is a *WorkerError.
func (c *Client) Aggregate(ctx context.Context, records []stocks.Record) (*stocks.Summary, error) {
	if records == nil {
		records = []stocks.Record{}
	}
	body, err := json.Marshal(stocks.ProcessRequest{Records: records})
	if err != nil {
		return nil, &WorkerError{Message: "encode worker request: " + err.Error(), Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ProcessPath, bytes.NewReader(body))
	if err != nil {
		return nil, errUnavailable(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id := ctxutil.RequestID(ctx); id != "" {
		req.Header.Set("X-Request-Id", id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errUnavailable(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errUnavailable(err)
	}

	c.log.Debug("worker responded",
		"status", resp.StatusCode,
		"records", len(records),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, errStatus(resp.StatusCode)
	}

	var env stocks.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errMalformed(err)
	}
	if !env.Success {
		return nil, errRejected(env.Error)
	}
	if env.Data == nil {
		return nil, errMalformed(errors.New("success envelope without data"))
	}
	return env.Data, nil
}
