package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
)

// ProjectStore defines the interface for project data persistence.
type ProjectStore interface {
	// Create saves a new project. Returns ErrSwimlaneNotFound if the owning
	// swimlane does not exist and ErrInvalidEntity on validation failure.
	Create(ctx context.Context, project *domain.Project) error

	// GetByID returns ErrProjectNotFound if no project has the ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)

	// ListBySwimlane returns the swimlane's projects ordered by creation time.
	ListBySwimlane(ctx context.Context, swimlaneID uuid.UUID) ([]*domain.Project, error)

	// ListAll returns every project ordered by creation time.
	ListAll(ctx context.Context) ([]*domain.Project, error)

	// Update writes title and description.
	// Returns ErrProjectNotFound if the project does not exist.
	Update(ctx context.Context, project *domain.Project) error

	// Delete removes a project and its tasks.
	// Returns ErrProjectNotFound if the project does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ProjectStore instance that uses the provided transaction.
	WithTx(tx DBTX) ProjectStore
}
