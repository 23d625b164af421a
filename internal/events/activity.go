package events

import (
	"context"
	"log/slog"
	"sort"

	"github.com/phrazzld/taskboard/internal/platform/logger"
)

// ActivityLogHandler writes every change event to the log at info level,
// using the request logger from the context when there is one.
type ActivityLogHandler struct {
	logger *slog.Logger
}

// NewActivityLogHandler creates an ActivityLogHandler.
func NewActivityLogHandler(l *slog.Logger) *ActivityLogHandler {
	if l == nil {
		l = slog.Default()
	}
	return &ActivityLogHandler{logger: l.With(slog.String("component", "activity"))}
}

// HandleEvent implements EventHandler.
func (h *ActivityLogHandler) HandleEvent(ctx context.Context, event *ChangeEvent) error {
	log := logger.FromContextOrDefault(ctx, h.logger)

	attrs := []slog.Attr{
		slog.String("event_id", event.ID.String()),
		slog.String("entity", string(event.Entity)),
		slog.String("action", string(event.Action)),
		slog.String("entity_id", event.EntityID.String()),
	}

	keys := make([]string, 0, len(event.Details))
	for k := range event.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, event.Details[k]))
	}

	log.LogAttrs(ctx, slog.LevelInfo, "board changed", attrs...)
	return nil
}
