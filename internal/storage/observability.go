package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// RequestEvent records one round trip to a remote store.
type RequestEvent struct {
	Method    string
	Endpoint  string
	Status    int
	Attempts  int
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about remote requests.
type Observer interface {
	OnRequest(ctx context.Context, event RequestEvent)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnRequest(context.Context, RequestEvent) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes request events to w.
func NewLogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logObserver) OnRequest(ctx context.Context, e RequestEvent) {
	attrs := []any{
		"method", e.Method,
		"endpoint", e.Endpoint,
		"status", e.Status,
		"attempts", e.Attempts,
		"latency_ms", e.LatencyMs,
	}
	if !e.Success {
		attrs = append(attrs, "error_code", e.ErrorCode)
		o.logger.WarnContext(ctx, "remote_request", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "remote_request", attrs...)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrStaleWrite):
		return "STALE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}
