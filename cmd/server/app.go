package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/events"
	"github.com/phrazzld/taskboard/internal/platform/sqlstore"
	"github.com/phrazzld/taskboard/internal/service"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	eventEmitter *events.InMemoryEventEmitter

	swimlaneService service.SwimlaneService
	projectService  service.ProjectService
	taskService     service.TaskService
	boardService    service.BoardService
}

// newApplication creates a new application instance with all dependencies initialized.
// The database must already be connected and migrated.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	dialect sqlstore.Dialect,
) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if db == nil {
		return nil, fmt.Errorf("database cannot be nil")
	}

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	swimlaneStore := sqlstore.NewSwimlaneStore(db, dialect, logger)
	projectStore := sqlstore.NewProjectStore(db, dialect, logger)
	taskStore := sqlstore.NewTaskStore(db, dialect, logger)

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewActivityLogHandler(logger))

	schedule := service.Schedule{
		Location:    cfg.Board.Location(),
		DueSoonDays: cfg.Board.DueSoonDays,
	}

	var err error
	app.swimlaneService, err = service.NewSwimlaneService(db, swimlaneStore, app.eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create swimlane service: %w", err)
	}

	app.projectService, err = service.NewProjectService(
		db, projectStore, taskStore, schedule, app.eventEmitter, logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create project service: %w", err)
	}

	app.taskService, err = service.NewTaskService(db, projectStore, taskStore, app.eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.boardService, err = service.NewBoardService(
		db, swimlaneStore, projectStore, taskStore, schedule, app.eventEmitter, logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create board service: %w", err)
	}

	logger.Info("Application initialized successfully",
		slog.String("timezone", cfg.Board.Timezone),
		slog.Int("due_soon_days", cfg.Board.DueSoonDays))
	return app, nil
}

// Run serves the API until ctx is canceled, then shuts down and releases
// the application's resources.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("Application shutdown completed")
}
