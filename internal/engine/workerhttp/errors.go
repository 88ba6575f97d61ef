package workerhttp

import "fmt"

// WorkerError is any failure to obtain a summary from the worker. Message is
// the full diagnostic; it is meant for logs, not for API clients.
type WorkerError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *WorkerError) Error() string {
	if e == nil {
		return "worker error"
	}
	return e.Message
}

func (e *WorkerError) Unwrap() error { return e.Err }

func errUnavailable(err error) *WorkerError {
	return &WorkerError{Message: fmt.Sprintf("Worker unavailable: %v", err), Err: err}
}

func errStatus(code int) *WorkerError {
	return &WorkerError{Message: fmt.Sprintf("Worker returned status %d", code), StatusCode: code}
}

func errRejected(msg string) *WorkerError {
	if msg == "" {
		msg = "Unknown worker error"
	}
	return &WorkerError{Message: msg, StatusCode: 200}
}

func errMalformed(err error) *WorkerError {
	return &WorkerError{Message: fmt.Sprintf("Invalid worker response: %v", err), StatusCode: 200, Err: err}
}
