// Package pipeline validates an uploaded record file and turns it into a
// Summary using the configured engine. Failures come back as *apierr.Error
// carrying the status and message the client should see.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/yungbote/stock-gateway/internal/engine"
	"github.com/yungbote/stock-gateway/internal/engine/workerhttp"
	"github.com/yungbote/stock-gateway/internal/platform/apierr"
	"github.com/yungbote/stock-gateway/internal/platform/ctxutil"
	"github.com/yungbote/stock-gateway/internal/platform/logger"
	"github.com/yungbote/stock-gateway/internal/stocks"
)

const (
	RequiredExtension = ".json"

	MsgInvalidFileType   = "Invalid file type. Only JSON files are accepted."
	MsgExpectedArray     = "Expected a JSON array of records"
	MsgWorkerUnavailable = "Worker unavailable"
	MsgInternal          = "Internal server error"

	CodeInvalidFileType   = "invalid_file_type"
	CodeInvalidJSON       = "invalid_json"
	CodeExpectedArray     = "expected_array"
	CodeInvalidRecord     = "invalid_record"
	CodeValidation        = "validation_error"
	CodeWorkerUnavailable = "worker_unavailable"
	CodeInternal          = "internal_error"
)

type Pipeline struct {
	engine engine.Engine
	log    *logger.Logger
}

func New(eng engine.Engine, log *logger.Logger) *Pipeline {
	if log == nil {
		log = logger.NewNop()
	}
	return &Pipeline{engine: eng, log: log.With("component", "UploadPipeline", "engine", eng.Name())}
}

// Process runs one upload through filename check, JSON decode, shape check
// and aggregation. Nothing is retained after it returns.
func (p *Pipeline) Process(ctx context.Context, filename string, content []byte) (*stocks.Summary, error) {
	if !strings.HasSuffix(filename, RequiredExtension) {
		return nil, apierr.BadRequest(CodeInvalidFileType, MsgInvalidFileType)
	}

	records, err := Decode(content)
	if err != nil {
		return nil, err
	}

	summary, err := p.engine.Aggregate(ctx, records)
	if err != nil {
		return nil, p.classify(ctx, filename, len(records), err)
	}

	p.log.Info("upload aggregated",
		"request_id", ctxutil.RequestID(ctx),
		"filename", filename,
		"records", len(records),
		"summary", summary.String(),
	)
	return summary, nil
}

// Decode parses content as a JSON array of objects.
func Decode(content []byte) ([]stocks.Record, error) {
	var doc any
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, apierr.BadRequest(CodeInvalidJSON, "Invalid JSON: "+err.Error())
	}

	items, ok := doc.([]any)
	if !ok {
		return nil, apierr.BadRequest(CodeExpectedArray, MsgExpectedArray)
	}

	records := make([]stocks.Record, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, apierr.BadRequest(CodeInvalidRecord, fmt.Sprintf("Record %d is not a JSON object", i))
		}
		records = append(records, stocks.Record(obj))
	}
	return records, nil
}

func (p *Pipeline) classify(ctx context.Context, filename string, n int, err error) error {
	reqID := ctxutil.RequestID(ctx)

	var ve *stocks.ValidationError
	if errors.As(err, &ve) {
		p.log.Info("upload rejected", "request_id", reqID, "filename", filename, "records", n, "kind", string(ve.Kind), "error", ve.Error())
		return apierr.BadRequest(CodeValidation, ve.Error())
	}

	var we *workerhttp.WorkerError
	if errors.As(err, &we) {
		p.log.Warn("worker unavailable", "request_id", reqID, "filename", filename, "records", n, "status", we.StatusCode, "error", we.Error())
		return apierr.New(http.StatusServiceUnavailable, CodeWorkerUnavailable, errors.New(MsgWorkerUnavailable)).WithCause(err)
	}

	p.log.Error("aggregation failed", "request_id", reqID, "filename", filename, "records", n, "error", err)
	return apierr.New(http.StatusInternalServerError, CodeInternal, errors.New(MsgInternal)).WithCause(err)
}
