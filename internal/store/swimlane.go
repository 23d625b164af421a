package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
)

// SwimlaneStore defines the interface for swimlane data persistence.
type SwimlaneStore interface {
	// Create saves a new swimlane. Returns ErrInvalidEntity if the swimlane
	// fails validation.
	Create(ctx context.Context, swimlane *domain.Swimlane) error

	// GetByID returns ErrSwimlaneNotFound if no swimlane has the ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Swimlane, error)

	// List returns every swimlane ordered by creation time.
	List(ctx context.Context) ([]*domain.Swimlane, error)

	// Count returns the number of swimlanes.
	Count(ctx context.Context) (int, error)

	// Update writes every mutable column of the swimlane.
	// Returns ErrSwimlaneNotFound if the swimlane does not exist.
	Update(ctx context.Context, swimlane *domain.Swimlane) error

	// Delete removes a swimlane together with its projects and their tasks.
	// Returns ErrSwimlaneNotFound if the swimlane does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new SwimlaneStore instance that uses the provided transaction.
	WithTx(tx DBTX) SwimlaneStore
}
