package event

import (
	"context"

	"account-platform/backend/internal/event/domain"
)

// Emitter emits security events (e.g. to OTel Logs or Kafka). Best-effort;
// callers log and ignore errors.
type Emitter interface {
	Emit(ctx context.Context, event *domain.Event) error
}

// Fanout returns an Emitter that emits to every given emitter, skipping nil
// entries. Each emitter is attempted even if an earlier one fails; the first
// error is returned.
func Fanout(emitters ...Emitter) Emitter {
	out := make(fanoutEmitter, 0, len(emitters))
	for _, e := range emitters {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

type fanoutEmitter []Emitter

func (f fanoutEmitter) Emit(ctx context.Context, ev *domain.Event) error {
	var firstErr error
	for _, e := range f {
		if err := e.Emit(ctx, ev); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
