package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/domain/tasktree"
	"github.com/phrazzld/taskboard/internal/events"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/store"
)

// BoardService provides the whole-board read models and seeding.
type BoardService interface {
	// GetBoard returns every swimlane with its projects and their task trees.
	// A swimlane whose projects cannot be loaded, or a project whose tasks
	// cannot be loaded, is returned with no children rather than failing
	// the whole board.
	GetBoard(ctx context.Context) ([]*tasktree.SwimlaneTree, error)

	// Calendar returns every dated task on the board, earliest first.
	Calendar(ctx context.Context) (*tasktree.Calendar, error)

	// InitializeSampleData inserts the starter board when no swimlanes exist.
	// It reports whether anything was inserted.
	InitializeSampleData(ctx context.Context) (bool, error)
}

type boardServiceImpl struct {
	db        *sql.DB
	swimlanes store.SwimlaneStore
	projects  store.ProjectStore
	tasks     store.TaskStore
	schedule  Schedule
	events    events.EventEmitter
	logger    *slog.Logger
}

// NewBoardService creates a new BoardService.
// It returns an error if any of the required dependencies are nil.
func NewBoardService(
	db *sql.DB,
	swimlanes store.SwimlaneStore,
	projects store.ProjectStore,
	tasks store.TaskStore,
	schedule Schedule,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (BoardService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if swimlanes == nil {
		return nil, domain.NewValidationError("swimlaneStore", "cannot be nil", domain.ErrValidation)
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

	return &boardServiceImpl{
		db:        db,
		swimlanes: swimlanes,
		projects:  projects,
		tasks:     tasks,
		schedule:  schedule,
		events:    emitterOrNop(emitter),
		logger:    logger.With(slog.String("component", "board_service")),
	}, nil
}

// GetBoard implements BoardService.GetBoard.
func (s *boardServiceImpl) GetBoard(ctx context.Context) ([]*tasktree.SwimlaneTree, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	today := s.schedule.Today()

	swimlanes, err := s.swimlanes.List(ctx)
	if err != nil {
		return nil, NewServiceError("get_board", "failed to list swimlanes", err)
	}

	board := make([]*tasktree.SwimlaneTree, 0, len(swimlanes))
	for _, lane := range swimlanes {
		tree := &tasktree.SwimlaneTree{Swimlane: lane, Projects: []*tasktree.ProjectTree{}}
		board = append(board, tree)

		projects, err := s.projects.ListBySwimlane(ctx, lane.ID)
		if err != nil {
			log.Error("failed to load projects for swimlane",
				slog.String("error", err.Error()),
				slog.String("swimlane_id", lane.ID.String()))
			continue
		}

		for _, project := range projects {
			rows, err := s.tasks.ListByProject(ctx, project.ID)
			if err != nil {
				log.Error("failed to load tasks for project",
					slog.String("error", err.Error()),
					slog.String("project_id", project.ID.String()))
				rows = nil
			}
			tree.Projects = append(tree.Projects, tasktree.NewProjectTree(project, rows, today))
		}
	}

	return board, nil
}

// Calendar implements BoardService.Calendar.
func (s *boardServiceImpl) Calendar(ctx context.Context) (*tasktree.Calendar, error) {
	today := s.schedule.Today()

	swimlanes, err := s.swimlanes.List(ctx)
	if err != nil {
		return nil, NewServiceError("calendar", "failed to list swimlanes", err)
	}
	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, NewServiceError("calendar", "failed to list projects", err)
	}
	tasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, NewServiceError("calendar", "failed to list tasks", err)
	}

	return tasktree.BuildCalendar(assembleBoard(swimlanes, projects, tasks, today), today, s.schedule.DueSoonDays), nil
}

// assembleBoard groups bulk-loaded rows into swimlane trees. Input order is
// kept within each group.
func assembleBoard(
	swimlanes []*domain.Swimlane,
	projects []*domain.Project,
	tasks []*domain.Task,
	today domain.Date,
) []*tasktree.SwimlaneTree {
	tasksByProject := make(map[uuid.UUID][]*domain.Task)
	for _, t := range tasks {
		tasksByProject[t.ProjectID] = append(tasksByProject[t.ProjectID], t)
	}

	projectsByLane := make(map[uuid.UUID][]*tasktree.ProjectTree)
	for _, p := range projects {
		projectsByLane[p.SwimlaneID] = append(projectsByLane[p.SwimlaneID],
			tasktree.NewProjectTree(p, tasksByProject[p.ID], today))
	}

	board := make([]*tasktree.SwimlaneTree, 0, len(swimlanes))
	for _, lane := range swimlanes {
		trees := projectsByLane[lane.ID]
		if trees == nil {
			trees = []*tasktree.ProjectTree{}
		}
		board = append(board, &tasktree.SwimlaneTree{Swimlane: lane, Projects: trees})
	}
	return board
}

// InitializeSampleData implements BoardService.InitializeSampleData.
func (s *boardServiceImpl) InitializeSampleData(ctx context.Context) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sample, err := loadSampleBoard()
	if err != nil {
		return false, NewServiceError("initialize_sample_data", "invalid sample data", err)
	}

	var seeded bool
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		swimlanes := s.swimlanes.WithTx(tx)
		projects := s.projects.WithTx(tx)
		tasks := s.tasks.WithTx(tx)

		count, err := swimlanes.Count(ctx)
		if err != nil {
			return NewServiceError("initialize_sample_data", "failed to count swimlanes", err)
		}
		if count > 0 {
			return nil
		}

		for _, sl := range sample.Swimlanes {
			lane, err := domain.NewSwimlane(sl.Title, sl.Color)
			if err != nil {
				return err
			}
			if err := swimlanes.Create(ctx, lane); err != nil {
				return NewServiceError("initialize_sample_data", "failed to save swimlane", err)
			}

			for _, sp := range sl.Projects {
				project, err := domain.NewProject(lane.ID, sp.Title, sp.Description)
				if err != nil {
					return err
				}
				if err := projects.Create(ctx, project); err != nil {
					return NewServiceError("initialize_sample_data", "failed to save project", err)
				}

				for _, st := range sp.Tasks {
					if err := seedTask(ctx, tasks, project.ID, st); err != nil {
						return err
					}
				}
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if seeded {
		log.Info("sample data initialized", slog.Int("swimlanes", len(sample.Swimlanes)))
		emit(ctx, s.events, log, events.NewChangeEvent(events.EntityBoard, events.ActionSeeded, uuid.Nil).
			With("swimlanes", len(sample.Swimlanes)))
	}
	return seeded, nil
}

func seedTask(ctx context.Context, tasks store.TaskStore, projectID uuid.UUID, st sampleTask) error {
	root, err := st.build(projectID, uuid.Nil)
	if err != nil {
		return err
	}
	if err := tasks.Create(ctx, root); err != nil {
		return NewServiceError("initialize_sample_data", "failed to save task", err)
	}

	for _, sub := range st.Subtasks {
		child, err := sub.build(projectID, root.ID)
		if err != nil {
			return err
		}
		if err := tasks.Create(ctx, child); err != nil {
			return NewServiceError("initialize_sample_data", "failed to save task", err)
		}
	}
	return nil
}
