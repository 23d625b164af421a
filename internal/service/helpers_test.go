package service_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/events"
	"github.com/phrazzld/taskboard/internal/platform/sqlstore"
	"github.com/phrazzld/taskboard/internal/service"
	"github.com/phrazzld/taskboard/internal/testdb"
	"github.com/stretchr/testify/require"
)

// fixedToday is the calendar day every service test runs on.
var fixedToday = time.Date(2024, 12, 19, 10, 0, 0, 0, time.UTC)

// recordingEmitter keeps every event it receives.
type recordingEmitter struct {
	mu     sync.Mutex
	events []*events.ChangeEvent
}

func (r *recordingEmitter) EmitEvent(_ context.Context, event *events.ChangeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingEmitter) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, string(e.Entity)+"."+string(e.Action))
	}
	return out
}

func (r *recordingEmitter) last() *events.ChangeEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

// fixture wires every service to one in-memory database.
type fixture struct {
	db        *sql.DB
	emitter   *recordingEmitter
	swimlanes service.SwimlaneService
	projects  service.ProjectService
	tasks     service.TaskService
	board     service.BoardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testdb.NewSQLite(t)
	swimlaneStore := sqlstore.NewSwimlaneStore(db, sqlstore.DialectSQLite, nil)
	projectStore := sqlstore.NewProjectStore(db, sqlstore.DialectSQLite, nil)
	taskStore := sqlstore.NewTaskStore(db, sqlstore.DialectSQLite, nil)

	schedule := service.DefaultSchedule()
	schedule.Now = func() time.Time { return fixedToday }

	f := &fixture{db: db, emitter: &recordingEmitter{}}
	var err error

	f.swimlanes, err = service.NewSwimlaneService(db, swimlaneStore, f.emitter, nil)
	require.NoError(t, err)
	f.projects, err = service.NewProjectService(db, projectStore, taskStore, schedule, f.emitter, nil)
	require.NoError(t, err)
	f.tasks, err = service.NewTaskService(db, projectStore, taskStore, f.emitter, nil)
	require.NoError(t, err)
	f.board, err = service.NewBoardService(db, swimlaneStore, projectStore, taskStore, schedule, f.emitter, nil)
	require.NoError(t, err)

	return f
}

// project creates a swimlane holding a single project.
func (f *fixture) project(t *testing.T, title string) *domain.Project {
	t.Helper()
	ctx := context.Background()

	sl, err := f.swimlanes.Create(ctx, title, "bg-blue-500")
	require.NoError(t, err)
	p, err := f.projects.Create(ctx, sl.ID, title+" project", "")
	require.NoError(t, err)
	return p
}

// task creates a task and pauses so creation times stay distinct.
func (f *fixture) task(t *testing.T, projectID, parentID uuid.UUID, title string) *domain.Task {
	t.Helper()
	task, err := f.tasks.Create(context.Background(), service.CreateTaskInput{
		ProjectID:    projectID,
		ParentTaskID: parentID,
		Title:        title,
	})
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	return task
}
