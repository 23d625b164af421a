//go:build integration

package sqlstore_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/sqlstore"
	"github.com/phrazzld/taskboard/internal/store"
	"github.com/phrazzld/taskboard/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPostgres_BoardLifecycle runs the same store code against PostgreSQL.
// Everything happens inside a transaction that is rolled back.
func TestPostgres_BoardLifecycle(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		swimlanes := sqlstore.NewSwimlaneStore(tx, sqlstore.DialectPostgres, nil)
		projects := sqlstore.NewProjectStore(tx, sqlstore.DialectPostgres, nil)
		tasks := sqlstore.NewTaskStore(tx, sqlstore.DialectPostgres, nil)

		sl, err := domain.NewSwimlane("Personal", "bg-blue-500")
		require.NoError(t, err)
		require.NoError(t, swimlanes.Create(ctx, sl))

		p, err := domain.NewProject(sl.ID, "Health & Fitness", "")
		require.NoError(t, err)
		require.NoError(t, projects.Create(ctx, p))

		due := domain.MustParseDate("2024-12-20")
		parent, err := domain.NewTask(p.ID, uuid.Nil, "Morning workout routine", &due)
		require.NoError(t, err)
		require.NoError(t, tasks.Create(ctx, parent))

		child, err := domain.NewTask(p.ID, parent.ID, "30 min cardio", nil)
		require.NoError(t, err)
		require.NoError(t, tasks.Create(ctx, child))

		got, err := tasks.GetByID(ctx, parent.ID)
		require.NoError(t, err)
		require.NotNil(t, got.DueDate)
		assert.Equal(t, "2024-12-20", got.DueDate.String())
		assert.True(t, parent.CreatedAt.Equal(got.CreatedAt))

		require.NoError(t, tasks.SetCompleted(ctx, child.ID, true))
		subs, err := tasks.ListSubtasks(ctx, parent.ID)
		require.NoError(t, err)
		require.Len(t, subs, 1)
		assert.True(t, subs[0].Completed)

		orphan, err := domain.NewProject(uuid.New(), "Orphan", "")
		require.NoError(t, err)
		assert.ErrorIs(t, projects.Create(ctx, orphan), store.ErrSwimlaneNotFound)
	})
}

func TestPostgres_DeleteCascades(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		swimlanes := sqlstore.NewSwimlaneStore(tx, sqlstore.DialectPostgres, nil)
		projects := sqlstore.NewProjectStore(tx, sqlstore.DialectPostgres, nil)
		tasks := sqlstore.NewTaskStore(tx, sqlstore.DialectPostgres, nil)

		sl, err := domain.NewSwimlane("Work", "bg-green-500")
		require.NoError(t, err)
		require.NoError(t, swimlanes.Create(ctx, sl))
		p, err := domain.NewProject(sl.ID, "Q1 Project Launch", "")
		require.NoError(t, err)
		require.NoError(t, projects.Create(ctx, p))
		task, err := domain.NewTask(p.ID, uuid.Nil, "Release notes", nil)
		require.NoError(t, err)
		require.NoError(t, tasks.Create(ctx, task))

		require.NoError(t, swimlanes.Delete(ctx, sl.ID))

		_, err = tasks.GetByID(ctx, task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}
