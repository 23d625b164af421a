package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/events"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/store"
)

// CreateTaskInput holds the fields accepted when creating a task.
type CreateTaskInput struct {
	ProjectID uuid.UUID
	// ParentTaskID is uuid.Nil for a root task.
	ParentTaskID uuid.UUID
	Title        string
	DueDate      *domain.Date
}

// TaskService provides task operations.
type TaskService interface {
	// Create adds a task. When ParentTaskID is set the parent must be a root
	// task of the same project, and it is marked expanded so the new subtask
	// is visible.
	Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error)

	// Update applies a partial update. Moving a task under a new parent is
	// subject to the same rules as Create; a task that has subtasks of its
	// own cannot become a subtask.
	Update(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

	// Toggle flips the completion state and returns the stored row.
	Toggle(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ToggleExpanded flips whether the task's subtasks are shown.
	ToggleExpanded(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Delete removes the task and its subtasks.
	Delete(ctx context.Context, id uuid.UUID) error
}

type taskServiceImpl struct {
	db       *sql.DB
	projects store.ProjectStore
	tasks    store.TaskStore
	events   events.EventEmitter
	logger   *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	db *sql.DB,
	projects store.ProjectStore,
	tasks store.TaskStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (TaskService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if projects == nil {
		return nil, domain.NewValidationError("projectStore", "cannot be nil", domain.ErrValidation)
	}
	if tasks == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		db:       db,
		projects: projects,
		tasks:    tasks,
		events:   emitterOrNop(emitter),
		logger:   logger.With(slog.String("component", "task_service")),
	}, nil
}

// Create implements TaskService.Create.
func (s *taskServiceImpl) Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(in.ProjectID, in.ParentTaskID, in.Title, in.DueDate)
	if err != nil {
		return nil, err
	}

	var expandedParent bool
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		projects := s.projects.WithTx(tx)
		tasks := s.tasks.WithTx(tx)

		if _, err := projects.GetByID(ctx, in.ProjectID); err != nil {
			if store.IsNotFoundError(err) {
				return NewServiceError("create_task", "unknown project", ErrProjectMissing)
			}
			return NewServiceError("create_task", "failed to load project", err)
		}

		var parent *domain.Task
		if task.IsSubtask() {
			parent, err = s.loadParent(ctx, tasks, "create_task", in.ProjectID, in.ParentTaskID)
			if err != nil {
				return err
			}
		}

		if err := tasks.Create(ctx, task); err != nil {
			return NewServiceError("create_task", "failed to save task", err)
		}

		if parent != nil && !parent.Expanded {
			parent.Expanded = true
			parent.Touch()
			if err := tasks.Update(ctx, parent); err != nil {
				return NewServiceError("create_task", "failed to expand parent task", err)
			}
			expandedParent = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("project_id", task.ProjectID.String()),
		slog.Bool("subtask", task.IsSubtask()))
	emit(ctx, s.events, log, events.NewChangeEvent(events.EntityTask, events.ActionCreated, task.ID).
		With("project_id", task.ProjectID.String()))
	if expandedParent {
		emit(ctx, s.events, log, events.NewChangeEvent(events.EntityTask, events.ActionExpanded, in.ParentTaskID).
			With("expanded", true))
	}
	return task, nil
}

// loadParent fetches a prospective parent and checks that a task in
// projectID may be nested under it.
func (s *taskServiceImpl) loadParent(
	ctx context.Context,
	tasks store.TaskStore,
	op string,
	projectID, parentID uuid.UUID,
) (*domain.Task, error) {
	parent, err := tasks.GetByID(ctx, parentID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewServiceError(op, "unknown parent task", ErrParentNotFound)
		}
		return nil, NewServiceError(op, "failed to load parent task", err)
	}
	if parent.ProjectID != projectID {
		return nil, NewServiceError(op, "invalid parent task", ErrParentInOtherProject)
	}
	if parent.IsSubtask() {
		return nil, NewServiceError(op, "invalid parent task", ErrNestingTooDeep)
	}
	return parent, nil
}

// Update implements TaskService.Update.
func (s *taskServiceImpl) Update(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.tasks.WithTx(tx)

		task, err := tasks.GetByID(ctx, id)
		if err != nil {
			return NewServiceError("update_task", "failed to load task", err)
		}

		if newParent := reparentTarget(task, patch); newParent != uuid.Nil && newParent != id {
			if _, err := s.loadParent(ctx, tasks, "update_task", task.ProjectID, newParent); err != nil {
				return err
			}
			children, err := tasks.ListSubtasks(ctx, id)
			if err != nil {
				return NewServiceError("update_task", "failed to load subtasks", err)
			}
			if len(children) > 0 {
				return NewServiceError("update_task", "task has subtasks", ErrNestingTooDeep)
			}
		}

		if err := task.Apply(patch); err != nil {
			return err
		}
		if err := tasks.Update(ctx, task); err != nil {
			return NewServiceError("update_task", "failed to save task", err)
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	emit(ctx, s.events, log, events.NewChangeEvent(events.EntityTask, events.ActionUpdated, id))
	return updated, nil
}

// reparentTarget returns the parent a patch moves the task under, or uuid.Nil
// when the patch keeps the current parent or makes the task a root.
func reparentTarget(task *domain.Task, patch domain.TaskPatch) uuid.UUID {
	if !patch.ParentTaskID.Set || patch.ParentTaskID.Value == nil {
		return uuid.Nil
	}
	target := *patch.ParentTaskID.Value
	if task.ParentTaskID.Valid && task.ParentTaskID.UUID == target {
		return uuid.Nil
	}
	return target
}

// Toggle implements TaskService.Toggle.
func (s *taskServiceImpl) Toggle(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var toggled *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.tasks.WithTx(tx)

		task, err := tasks.GetByID(ctx, id)
		if err != nil {
			return NewServiceError("toggle_task", "failed to load task", err)
		}
		if err := tasks.SetCompleted(ctx, id, !task.Completed); err != nil {
			return NewServiceError("toggle_task", "failed to save task", err)
		}
		toggled, err = tasks.GetByID(ctx, id)
		if err != nil {
			return NewServiceError("toggle_task", "failed to reload task", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	emit(ctx, s.events, log, events.NewChangeEvent(events.EntityTask, events.ActionToggled, id).
		With("completed", toggled.Completed))
	return toggled, nil
}

// ToggleExpanded implements TaskService.ToggleExpanded.
func (s *taskServiceImpl) ToggleExpanded(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var task *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.tasks.WithTx(tx)

		var err error
		task, err = tasks.GetByID(ctx, id)
		if err != nil {
			return NewServiceError("expand_task", "failed to load task", err)
		}
		task.ToggleExpanded()
		if err := tasks.Update(ctx, task); err != nil {
			return NewServiceError("expand_task", "failed to save task", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	emit(ctx, s.events, log, events.NewChangeEvent(events.EntityTask, events.ActionExpanded, id).
		With("expanded", task.Expanded))
	return task, nil
}

// Delete implements TaskService.Delete.
func (s *taskServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.tasks.Delete(ctx, id); err != nil {
		return NewServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted", slog.String("task_id", id.String()))
	emit(ctx, s.events, log, events.NewChangeEvent(events.EntityTask, events.ActionDeleted, id))
	return nil
}
