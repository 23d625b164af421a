package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entity names the kind of record a ChangeEvent is about.
type Entity string

// Action names what happened to the record.
type Action string

const (
	EntitySwimlane Entity = "swimlane"
	EntityProject  Entity = "project"
	EntityTask     Entity = "task"
	EntityBoard    Entity = "board"

	ActionCreated  Action = "created"
	ActionUpdated  Action = "updated"
	ActionDeleted  Action = "deleted"
	ActionToggled  Action = "toggled"
	ActionExpanded Action = "expanded"
	ActionSeeded   Action = "seeded"
)

// ChangeEvent records one committed mutation of the board.
type ChangeEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	Entity   Entity    `json:"entity"`
	Action   Action    `json:"action"`
	EntityID uuid.UUID `json:"entity_id"`

	// Details holds small, loggable facts about the change, e.g. the new
	// completion state of a toggled task.
	Details map[string]any `json:"details,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}

// NewChangeEvent creates a ChangeEvent stamped with the current time.
func NewChangeEvent(entity Entity, action Action, entityID uuid.UUID) *ChangeEvent {
	return &ChangeEvent{
		ID:         uuid.New(),
		Entity:     entity,
		Action:     action,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	}
}

// With adds a detail and returns the event for chaining.
func (e *ChangeEvent) With(key string, value any) *ChangeEvent {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *ChangeEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *ChangeEvent) error
}

// NopEmitter discards every event.
type NopEmitter struct{}

// EmitEvent implements EventEmitter.
func (NopEmitter) EmitEvent(context.Context, *ChangeEvent) error { return nil }
