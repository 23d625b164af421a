package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/taskboard/internal/events"
)

// emit publishes a change event. A failing handler is logged and never
// fails the mutation, which has already been committed.
func emit(ctx context.Context, emitter events.EventEmitter, log *slog.Logger, event *events.ChangeEvent) {
	if err := emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit change event",
			slog.String("error", err.Error()),
			slog.String("entity", string(event.Entity)),
			slog.String("action", string(event.Action)),
			slog.String("entity_id", event.EntityID.String()))
	}
}

func emitterOrNop(e events.EventEmitter) events.EventEmitter {
	if e == nil {
		return events.NopEmitter{}
	}
	return e
}
