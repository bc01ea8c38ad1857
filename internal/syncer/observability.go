package syncer

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/syllabus/internal/repository"
)

// SyncEvent records one sync attempt.
type SyncEvent struct {
	Outcome  repository.SyncOutcome
	SHA      string
	Duration time.Duration
	Err      error
}

// Observer receives sync events.
type Observer interface {
	OnSync(ctx context.Context, event SyncEvent)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) OnSync(context.Context, SyncEvent) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes sync events to w.
func NewLogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logObserver) OnSync(ctx context.Context, e SyncEvent) {
	attrs := []any{
		"outcome", string(e.Outcome),
		"sha", e.SHA,
		"duration_ms", e.Duration.Milliseconds(),
	}
	if e.Err != nil {
		attrs = append(attrs, "error", e.Err.Error())
		o.logger.ErrorContext(ctx, "sync", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "sync", attrs...)
}
