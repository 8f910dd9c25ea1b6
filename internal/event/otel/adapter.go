package otel

import (
	"context"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"account-platform/backend/internal/event"
	"account-platform/backend/internal/event/domain"
)

// recordEmitter is the subset of otellog.Logger the emitter needs. Narrow so
// tests can capture records.
type recordEmitter interface {
	Emit(ctx context.Context, rec otellog.Record)
}

// NewEventEmitter returns an Emitter that sends events as OTel log records via the given LoggerProvider.
// If provider is nil, returns a no-op emitter.
func NewEventEmitter(provider *sdklog.LoggerProvider) event.Emitter {
	if provider == nil {
		return noopEmitter{}
	}
	return &otelEmitter{logger: provider.Logger("accountd.events")}
}

// NewEventEmitterWithLogger returns an Emitter over the given logger. Used by tests.
func NewEventEmitterWithLogger(l recordEmitter) event.Emitter {
	return &otelEmitter{logger: l}
}

type noopEmitter struct{}

func (noopEmitter) Emit(context.Context, *domain.Event) error { return nil }

type otelEmitter struct {
	logger recordEmitter
}

// Emit converts the event to an OTel log record and emits it. Best-effort; errors are logged.
func (e *otelEmitter) Emit(ctx context.Context, ev *domain.Event) error {
	if ev == nil {
		return nil
	}
	rec := otellog.Record{}
	if !ev.CreatedAt.IsZero() {
		rec.SetTimestamp(ev.CreatedAt)
	}
	if len(ev.Metadata) > 0 {
		rec.SetBody(otellog.BytesValue(ev.Metadata))
	}
	if ev.UserID != "" {
		rec.AddAttributes(otellog.String("user_id", ev.UserID))
	}
	if ev.SessionID != "" {
		rec.AddAttributes(otellog.String("session_id", ev.SessionID))
	}
	if ev.EventType != "" {
		rec.AddAttributes(otellog.String("event_type", ev.EventType))
	}
	if ev.Source != "" {
		rec.AddAttributes(otellog.String("source", ev.Source))
	}
	if ev.IP != "" {
		rec.AddAttributes(otellog.String("ip", ev.IP))
	}
	if ev.UserAgent != "" {
		rec.AddAttributes(otellog.String("user_agent", ev.UserAgent))
	}
	if rec.Timestamp().IsZero() {
		rec.SetTimestamp(time.Now().UTC())
	}
	e.logger.Emit(ctx, rec)
	return nil
}
