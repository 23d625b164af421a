package sqlstore_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/sqlstore"
	"github.com/phrazzld/taskboard/internal/testdb"
	"github.com/stretchr/testify/require"
)

// fixture bundles the three stores on one in-memory database.
type fixture struct {
	db        *sql.DB
	swimlanes *sqlstore.SwimlaneStore
	projects  *sqlstore.ProjectStore
	tasks     *sqlstore.TaskStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.NewSQLite(t)
	return &fixture{
		db:        db,
		swimlanes: sqlstore.NewSwimlaneStore(db, sqlstore.DialectSQLite, nil),
		projects:  sqlstore.NewProjectStore(db, sqlstore.DialectSQLite, nil),
		tasks:     sqlstore.NewTaskStore(db, sqlstore.DialectSQLite, nil),
	}
}

func (f *fixture) swimlane(t *testing.T, title string) *domain.Swimlane {
	t.Helper()
	sl, err := domain.NewSwimlane(title, "bg-blue-500")
	require.NoError(t, err)
	require.NoError(t, f.swimlanes.Create(context.Background(), sl))
	return sl
}

func (f *fixture) project(t *testing.T, swimlaneID uuid.UUID, title string) *domain.Project {
	t.Helper()
	p, err := domain.NewProject(swimlaneID, title, "")
	require.NoError(t, err)
	require.NoError(t, f.projects.Create(context.Background(), p))
	return p
}

func (f *fixture) task(t *testing.T, projectID, parentID uuid.UUID, title string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(projectID, parentID, title, nil)
	require.NoError(t, err)
	require.NoError(t, f.tasks.Create(context.Background(), task))
	// Keeps created_at strictly increasing between fixtures.
	time.Sleep(time.Millisecond)
	return task
}
