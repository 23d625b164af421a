package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/store"
)

var projectColumns = []string{"id", "title", "description", "swimlane_id", "created_at", "updated_at"}

// ProjectStore implements store.ProjectStore.
type ProjectStore struct {
	db      store.DBTX
	dialect Dialect
	sb      sq.StatementBuilderType
	logger  *slog.Logger
}

// NewProjectStore creates a ProjectStore on a connection or transaction.
func NewProjectStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *ProjectStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectStore{
		db:      db,
		dialect: dialect,
		sb:      dialect.Builder(),
		logger:  logger.With(slog.String("component", "project_store")),
	}
}

var _ store.ProjectStore = (*ProjectStore)(nil)

// WithTx implements store.ProjectStore.WithTx.
func (s *ProjectStore) WithTx(tx store.DBTX) store.ProjectStore {
	return &ProjectStore{db: tx, dialect: s.dialect, sb: s.sb, logger: s.logger}
}

// Create implements store.ProjectStore.Create. The only foreign key on
// projects is the swimlane, so a violation means the swimlane is missing.
func (s *ProjectStore) Create(ctx context.Context, project *domain.Project) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := project.Validate(); err != nil {
		log.Warn("project validation failed during create",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query, args, err := s.sb.Insert("projects").
		Columns(projectColumns...).
		Values(
			project.ID,
			project.Title,
			project.Description,
			project.SwimlaneID,
			project.CreatedAt,
			project.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during project creation",
				slog.String("project_id", project.ID.String()),
				slog.String("swimlane_id", project.SwimlaneID.String()))
			return store.ErrSwimlaneNotFound
		}
		log.Error("failed to create project",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return WrapError("project", "create", err)
	}

	log.Debug("project created",
		slog.String("project_id", project.ID.String()),
		slog.String("swimlane_id", project.SwimlaneID.String()))
	return nil
}

// GetByID implements store.ProjectStore.GetByID.
func (s *ProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	query, args, err := s.sb.Select(projectColumns...).
		From("projects").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	project, err := scanProject(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProjectNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get project",
			slog.String("error", err.Error()),
			slog.String("project_id", id.String()))
		return nil, WrapError("project", "get", err)
	}
	return project, nil
}

// ListBySwimlane implements store.ProjectStore.ListBySwimlane.
func (s *ProjectStore) ListBySwimlane(ctx context.Context, swimlaneID uuid.UUID) ([]*domain.Project, error) {
	return s.list(ctx, sq.Eq{"swimlane_id": swimlaneID})
}

// ListAll implements store.ProjectStore.ListAll.
func (s *ProjectStore) ListAll(ctx context.Context) ([]*domain.Project, error) {
	return s.list(ctx, nil)
}

func (s *ProjectStore) list(ctx context.Context, where sq.Sqlizer) ([]*domain.Project, error) {
	builder := s.sb.Select(projectColumns...).From("projects")
	if where != nil {
		builder = builder.Where(where)
	}
	query, args, err := builder.OrderBy("created_at ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list projects",
			slog.String("error", err.Error()))
		return nil, WrapError("project", "list", err)
	}
	return collect(rows, scanProject)
}

// Update implements store.ProjectStore.Update. A project never moves
// between swimlanes, so swimlane_id is left alone.
func (s *ProjectStore) Update(ctx context.Context, project *domain.Project) error {
	if err := project.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query, args, err := s.sb.Update("projects").
		Set("title", project.Title).
		Set("description", project.Description).
		Set("updated_at", project.UpdatedAt).
		Where(sq.Eq{"id": project.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update project",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return WrapError("project", "update", err)
	}
	return CheckRowsAffected(result, store.ErrProjectNotFound)
}

// Delete implements store.ProjectStore.Delete.
func (s *ProjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := s.sb.Delete("projects").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete project",
			slog.String("error", err.Error()),
			slog.String("project_id", id.String()))
		return WrapError("project", "delete", err)
	}
	return CheckRowsAffected(result, store.ErrProjectNotFound)
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.SwimlaneID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}
