package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
)

// TaskStore defines the interface for task data persistence. Tasks come back
// as flat rows; the hierarchy is assembled by the caller.
type TaskStore interface {
	// Create saves a new task. Returns ErrInvalidEntity if the task fails
	// validation or its project or parent does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID returns ErrTaskNotFound if no task has the ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByProject returns every task of the project, roots and subtasks,
	// ordered by sort order then creation time.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error)

	// ListSubtasks returns the direct subtasks of a task in display order.
	ListSubtasks(ctx context.Context, parentID uuid.UUID) ([]*domain.Task, error)

	// ListAll returns every task in display order.
	ListAll(ctx context.Context) ([]*domain.Task, error)

	// Update writes every mutable column of the task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// SetCompleted sets the completion flag of a single task.
	// Returns ErrTaskNotFound if the task does not exist.
	SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error

	// Delete removes a task and its subtasks.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx DBTX) TaskStore
}
