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

var swimlaneColumns = []string{"id", "title", "color", "created_at", "updated_at"}

// SwimlaneStore implements store.SwimlaneStore.
type SwimlaneStore struct {
	db      store.DBTX
	dialect Dialect
	sb      sq.StatementBuilderType
	logger  *slog.Logger
}

// NewSwimlaneStore creates a SwimlaneStore on a connection or transaction.
// If logger is nil, a default logger will be used.
func NewSwimlaneStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *SwimlaneStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SwimlaneStore{
		db:      db,
		dialect: dialect,
		sb:      dialect.Builder(),
		logger:  logger.With(slog.String("component", "swimlane_store")),
	}
}

var _ store.SwimlaneStore = (*SwimlaneStore)(nil)

// WithTx implements store.SwimlaneStore.WithTx.
func (s *SwimlaneStore) WithTx(tx store.DBTX) store.SwimlaneStore {
	return &SwimlaneStore{db: tx, dialect: s.dialect, sb: s.sb, logger: s.logger}
}

// Create implements store.SwimlaneStore.Create.
func (s *SwimlaneStore) Create(ctx context.Context, swimlane *domain.Swimlane) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := swimlane.Validate(); err != nil {
		log.Warn("swimlane validation failed during create",
			slog.String("error", err.Error()),
			slog.String("swimlane_id", swimlane.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query, args, err := s.sb.Insert("swimlanes").
		Columns(swimlaneColumns...).
		Values(swimlane.ID, swimlane.Title, swimlane.Color, swimlane.CreatedAt, swimlane.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to create swimlane",
			slog.String("error", err.Error()),
			slog.String("swimlane_id", swimlane.ID.String()))
		return WrapError("swimlane", "create", err)
	}

	log.Debug("swimlane created", slog.String("swimlane_id", swimlane.ID.String()))
	return nil
}

// GetByID implements store.SwimlaneStore.GetByID.
func (s *SwimlaneStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Swimlane, error) {
	query, args, err := s.sb.Select(swimlaneColumns...).
		From("swimlanes").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	swimlane, err := scanSwimlane(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSwimlaneNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get swimlane",
			slog.String("error", err.Error()),
			slog.String("swimlane_id", id.String()))
		return nil, WrapError("swimlane", "get", err)
	}
	return swimlane, nil
}

// List implements store.SwimlaneStore.List.
func (s *SwimlaneStore) List(ctx context.Context) ([]*domain.Swimlane, error) {
	query, args, err := s.sb.Select(swimlaneColumns...).
		From("swimlanes").
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list swimlanes",
			slog.String("error", err.Error()))
		return nil, WrapError("swimlane", "list", err)
	}
	return collect(rows, scanSwimlane)
}

// Count implements store.SwimlaneStore.Count.
func (s *SwimlaneStore) Count(ctx context.Context) (int, error) {
	query, args, err := s.sb.Select("COUNT(*)").From("swimlanes").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count: %w", err)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, WrapError("swimlane", "count", err)
	}
	return n, nil
}

// Update implements store.SwimlaneStore.Update.
func (s *SwimlaneStore) Update(ctx context.Context, swimlane *domain.Swimlane) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := swimlane.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query, args, err := s.sb.Update("swimlanes").
		Set("title", swimlane.Title).
		Set("color", swimlane.Color).
		Set("updated_at", swimlane.UpdatedAt).
		Where(sq.Eq{"id": swimlane.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update swimlane",
			slog.String("error", err.Error()),
			slog.String("swimlane_id", swimlane.ID.String()))
		return WrapError("swimlane", "update", err)
	}
	return CheckRowsAffected(result, store.ErrSwimlaneNotFound)
}

// Delete implements store.SwimlaneStore.Delete. Projects and tasks go with
// it through ON DELETE CASCADE.
func (s *SwimlaneStore) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := s.sb.Delete("swimlanes").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete swimlane",
			slog.String("error", err.Error()),
			slog.String("swimlane_id", id.String()))
		return WrapError("swimlane", "delete", err)
	}
	return CheckRowsAffected(result, store.ErrSwimlaneNotFound)
}

func scanSwimlane(row rowScanner) (*domain.Swimlane, error) {
	var sl domain.Swimlane
	if err := row.Scan(&sl.ID, &sl.Title, &sl.Color, &sl.CreatedAt, &sl.UpdatedAt); err != nil {
		return nil, err
	}
	sl.CreatedAt = sl.CreatedAt.UTC()
	sl.UpdatedAt = sl.UpdatedAt.UTC()
	return &sl, nil
}
