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

// SwimlaneService provides swimlane operations.
type SwimlaneService interface {
	Create(ctx context.Context, title, color string) (*domain.Swimlane, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.SwimlanePatch) (*domain.Swimlane, error)
	// Delete removes the swimlane with all of its projects and tasks.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.Swimlane, error)
}

type swimlaneServiceImpl struct {
	db        *sql.DB
	swimlanes store.SwimlaneStore
	events    events.EventEmitter
	logger    *slog.Logger
}

// NewSwimlaneService creates a new SwimlaneService.
// It returns an error if any of the required dependencies are nil.
func NewSwimlaneService(
	db *sql.DB,
	swimlanes store.SwimlaneStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (SwimlaneService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if swimlanes == nil {
		return nil, domain.NewValidationError("swimlaneStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &swimlaneServiceImpl{
		db:        db,
		swimlanes: swimlanes,
		events:    emitterOrNop(emitter),
		logger:    logger.With(slog.String("component", "swimlane_service")),
	}, nil
}

// Create implements SwimlaneService.Create.
func (s *swimlaneServiceImpl) Create(ctx context.Context, title, color string) (*domain.Swimlane, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	swimlane, err := domain.NewSwimlane(title, color)
	if err != nil {
		return nil, err
	}

	if err := s.swimlanes.Create(ctx, swimlane); err != nil {
		return nil, NewServiceError("create_swimlane", "failed to save swimlane", err)
	}

	log.Info("swimlane created", slog.String("swimlane_id", swimlane.ID.String()))
	emit(ctx, s.events, log, events.NewChangeEvent(events.EntitySwimlane, events.ActionCreated, swimlane.ID))
	return swimlane, nil
}

// Update implements SwimlaneService.Update.
func (s *swimlaneServiceImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.SwimlanePatch,
) (*domain.Swimlane, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Swimlane
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.swimlanes.WithTx(tx)

		swimlane, err := txStore.GetByID(ctx, id)
		if err != nil {
			return NewServiceError("update_swimlane", "failed to load swimlane", err)
		}
		if err := swimlane.Apply(patch); err != nil {
			return err
		}
		if err := txStore.Update(ctx, swimlane); err != nil {
			return NewServiceError("update_swimlane", "failed to save swimlane", err)
		}
		updated = swimlane
		return nil
	})
	if err != nil {
		return nil, err
	}

	emit(ctx, s.events, log, events.NewChangeEvent(events.EntitySwimlane, events.ActionUpdated, id))
	return updated, nil
}

// Delete implements SwimlaneService.Delete.
func (s *swimlaneServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.swimlanes.Delete(ctx, id); err != nil {
		return NewServiceError("delete_swimlane", "failed to delete swimlane", err)
	}

	log.Info("swimlane deleted", slog.String("swimlane_id", id.String()))
	emit(ctx, s.events, log, events.NewChangeEvent(events.EntitySwimlane, events.ActionDeleted, id))
	return nil
}

// List implements SwimlaneService.List.
func (s *swimlaneServiceImpl) List(ctx context.Context) ([]*domain.Swimlane, error) {
	swimlanes, err := s.swimlanes.List(ctx)
	if err != nil {
		return nil, NewServiceError("list_swimlanes", "failed to list swimlanes", err)
	}
	return swimlanes, nil
}
