package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/domain/tasktree"
	"github.com/phrazzld/taskboard/internal/events"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/store"
)

// ProjectService provides project operations.
type ProjectService interface {
	// Create adds a project to an existing swimlane. An empty description
	// becomes domain.DefaultProjectDescription.
	Create(ctx context.Context, swimlaneID uuid.UUID, title, description string) (*domain.Project, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Get returns the project with its task tree and stats.
	Get(ctx context.Context, id uuid.UUID) (*tasktree.ProjectTree, error)
}

type projectServiceImpl struct {
	db       *sql.DB
	projects store.ProjectStore
	tasks    store.TaskStore
	schedule Schedule
	events   events.EventEmitter
	logger   *slog.Logger
}

// NewProjectService creates a new ProjectService.
// It returns an error if any of the required dependencies are nil.
func NewProjectService(
	db *sql.DB,
	projects store.ProjectStore,
	tasks store.TaskStore,
	schedule Schedule,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (ProjectService, error) {
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

	return &projectServiceImpl{
		db:       db,
		projects: projects,
		tasks:    tasks,
		schedule: schedule,
		events:   emitterOrNop(emitter),
		logger:   logger.With(slog.String("component", "project_service")),
	}, nil
}

// Create implements ProjectService.Create.
func (s *projectServiceImpl) Create(
	ctx context.Context,
	swimlaneID uuid.UUID,
	title, description string,
) (*domain.Project, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	project, err := domain.NewProject(swimlaneID, title, description)
	if err != nil {
		return nil, err
	}

	if err := s.projects.Create(ctx, project); err != nil {
		if errors.Is(err, store.ErrSwimlaneNotFound) {
			return nil, NewServiceError("create_project", "unknown swimlane", ErrSwimlaneMissing)
		}
		return nil, NewServiceError("create_project", "failed to save project", err)
	}

	log.Info("project created",
		slog.String("project_id", project.ID.String()),
		slog.String("swimlane_id", swimlaneID.String()))
	emit(ctx, s.events, log, events.NewChangeEvent(events.EntityProject, events.ActionCreated, project.ID))
	return project, nil
}

// Update implements ProjectService.Update.
func (s *projectServiceImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.ProjectPatch,
) (*domain.Project, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Project
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.projects.WithTx(tx)

		project, err := txStore.GetByID(ctx, id)
		if err != nil {
			return NewServiceError("update_project", "failed to load project", err)
		}
		if err := project.Apply(patch); err != nil {
			return err
		}
		if err := txStore.Update(ctx, project); err != nil {
			return NewServiceError("update_project", "failed to save project", err)
		}
		updated = project
		return nil
	})
	if err != nil {
		return nil, err
	}

	emit(ctx, s.events, log, events.NewChangeEvent(events.EntityProject, events.ActionUpdated, id))
	return updated, nil
}

// Delete implements ProjectService.Delete.
func (s *projectServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.projects.Delete(ctx, id); err != nil {
		return NewServiceError("delete_project", "failed to delete project", err)
	}

	log.Info("project deleted", slog.String("project_id", id.String()))
	emit(ctx, s.events, log, events.NewChangeEvent(events.EntityProject, events.ActionDeleted, id))
	return nil
}

// Get implements ProjectService.Get.
func (s *projectServiceImpl) Get(ctx context.Context, id uuid.UUID) (*tasktree.ProjectTree, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("get_project", "failed to load project", err)
	}

	rows, err := s.tasks.ListByProject(ctx, id)
	if err != nil {
		return nil, NewServiceError("get_project", "failed to load tasks", err)
	}

	return tasktree.NewProjectTree(project, rows, s.schedule.Today()), nil
}
