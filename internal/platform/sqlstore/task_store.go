package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/store"
)

var taskColumns = []string{
	"id", "title", "completed", "due_date", "project_id", "parent_task_id",
	"expanded", "sort_order", "created_at", "updated_at",
}

// taskOrder is the display order of sibling tasks.
var taskOrder = []string{"sort_order ASC", "created_at ASC", "id ASC"}

// TaskStore implements store.TaskStore.
type TaskStore struct {
	db      store.DBTX
	dialect Dialect
	sb      sq.StatementBuilderType
	logger  *slog.Logger
}

// NewTaskStore creates a TaskStore on a connection or transaction.
func NewTaskStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		db:      db,
		dialect: dialect,
		sb:      dialect.Builder(),
		logger:  logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

// WithTx implements store.TaskStore.WithTx.
func (s *TaskStore) WithTx(tx store.DBTX) store.TaskStore {
	return &TaskStore{db: tx, dialect: s.dialect, sb: s.sb, logger: s.logger}
}

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query, args, err := s.sb.Insert("tasks").
		Columns(taskColumns...).
		Values(
			task.ID,
			task.Title,
			task.Completed,
			dueDateArg(task.DueDate),
			task.ProjectID,
			task.ParentTaskID,
			task.Expanded,
			task.SortOrder,
			task.CreatedAt,
			task.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("project_id", task.ProjectID.String()))
		return WrapError("task", "create", err)
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("project_id", task.ProjectID.String()),
		slog.Bool("subtask", task.IsSubtask()))
	return nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query, args, err := s.sb.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	task, err := scanTask(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, WrapError("task", "get", err)
	}
	return task, nil
}

// ListByProject implements store.TaskStore.ListByProject.
func (s *TaskStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
	return s.list(ctx, sq.Eq{"project_id": projectID})
}

// ListSubtasks implements store.TaskStore.ListSubtasks.
func (s *TaskStore) ListSubtasks(ctx context.Context, parentID uuid.UUID) ([]*domain.Task, error) {
	return s.list(ctx, sq.Eq{"parent_task_id": parentID})
}

// ListAll implements store.TaskStore.ListAll.
func (s *TaskStore) ListAll(ctx context.Context) ([]*domain.Task, error) {
	return s.list(ctx, nil)
}

func (s *TaskStore) list(ctx context.Context, where sq.Sqlizer) ([]*domain.Task, error) {
	builder := s.sb.Select(taskColumns...).From("tasks")
	if where != nil {
		builder = builder.Where(where)
	}
	query, args, err := builder.OrderBy(taskOrder...).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks",
			slog.String("error", err.Error()))
		return nil, WrapError("task", "list", err)
	}
	return collect(rows, scanTask)
}

// Update implements store.TaskStore.Update.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query, args, err := s.sb.Update("tasks").
		Set("title", task.Title).
		Set("completed", task.Completed).
		Set("due_date", dueDateArg(task.DueDate)).
		Set("parent_task_id", task.ParentTaskID).
		Set("expanded", task.Expanded).
		Set("sort_order", task.SortOrder).
		Set("updated_at", task.UpdatedAt).
		Where(sq.Eq{"id": task.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return WrapError("task", "update", err)
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// SetCompleted implements store.TaskStore.SetCompleted.
func (s *TaskStore) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	query, args, err := s.sb.Update("tasks").
		Set("completed", completed).
		Set("updated_at", time.Now().UTC().Truncate(time.Microsecond)).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to set task completion",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return WrapError("task", "complete", err)
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// Delete implements store.TaskStore.Delete. Subtasks go with it through
// ON DELETE CASCADE on parent_task_id.
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := s.sb.Delete("tasks").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return WrapError("task", "delete", err)
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t   domain.Task
		due sql.NullString
	)
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Completed,
		&due,
		&t.ProjectID,
		&t.ParentTaskID,
		&t.Expanded,
		&t.SortOrder,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if t.DueDate, err = parseDueDate(due); err != nil {
		return nil, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return &t, nil
}
