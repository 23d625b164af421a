package sqlstore_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskStore_CreateAndGet(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, f.swimlane(t, "Personal").ID, "Health & Fitness")

	due := domain.MustParseDate("2024-12-20")
	task, err := domain.NewTask(p.ID, uuid.Nil, "Morning workout routine", &due)
	require.NoError(t, err)
	require.NoError(t, f.tasks.Create(ctx, task))

	got, err := f.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Morning workout routine", got.Title)
	assert.False(t, got.Completed)
	assert.False(t, got.Expanded)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "2024-12-20", got.DueDate.String())
	assert.False(t, got.ParentTaskID.Valid)
	assert.Equal(t, p.ID, got.ProjectID)

	sub := f.task(t, p.ID, task.ID, "30 min cardio")
	gotSub, err := f.tasks.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.True(t, gotSub.ParentTaskID.Valid)
	assert.Equal(t, task.ID, gotSub.ParentTaskID.UUID)
	assert.Nil(t, gotSub.DueDate)
}

func TestTaskStore_CreateWithMissingReferences(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, f.swimlane(t, "Personal").ID, "Health & Fitness")

	noProject, err := domain.NewTask(uuid.New(), uuid.Nil, "Lost", nil)
	require.NoError(t, err)
	assert.ErrorIs(t, f.tasks.Create(ctx, noProject), store.ErrInvalidEntity)

	noParent, err := domain.NewTask(p.ID, uuid.New(), "Lost child", nil)
	require.NoError(t, err)
	assert.ErrorIs(t, f.tasks.Create(ctx, noParent), store.ErrInvalidEntity)
}

func TestTaskStore_ListOrdering(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, f.swimlane(t, "Personal").ID, "Health & Fitness")
	other := f.project(t, f.swimlane(t, "Work").ID, "Q1 Project Launch")

	a := f.task(t, p.ID, uuid.Nil, "a")
	b := f.task(t, p.ID, uuid.Nil, "b")
	c := f.task(t, p.ID, a.ID, "c")
	f.task(t, other.ID, uuid.Nil, "elsewhere")

	// Moving b to the front via sort order.
	order := 0
	a.SortOrder = 1
	require.NoError(t, f.tasks.Update(ctx, a))
	require.NoError(t, b.Apply(domain.TaskPatch{SortOrder: &order}))
	require.NoError(t, f.tasks.Update(ctx, b))

	list, err := f.tasks.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []uuid.UUID{b.ID, c.ID, a.ID}, ids(list))

	subs, err := f.tasks.ListSubtasks(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{c.ID}, ids(subs))

	all, err := f.tasks.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestTaskStore_UpdateClearsDueDateAndParent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, f.swimlane(t, "Personal").ID, "Health & Fitness")
	parent := f.task(t, p.ID, uuid.Nil, "parent")
	child := f.task(t, p.ID, parent.ID, "child")

	require.NoError(t, child.Apply(domain.TaskPatch{DueDate: domain.Some(domain.MustParseDate("2025-01-02"))}))
	require.NoError(t, f.tasks.Update(ctx, child))
	got, err := f.tasks.GetByID(ctx, child.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DueDate)

	require.NoError(t, got.Apply(domain.TaskPatch{
		DueDate:      domain.Null[domain.Date](),
		ParentTaskID: domain.Null[uuid.UUID](),
	}))
	require.NoError(t, f.tasks.Update(ctx, got))

	got, err = f.tasks.GetByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DueDate)
	assert.False(t, got.ParentTaskID.Valid)
}

func TestTaskStore_SetCompleted(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, f.swimlane(t, "Personal").ID, "Health & Fitness")
	task := f.task(t, p.ID, uuid.Nil, "Stretch")

	require.NoError(t, f.tasks.SetCompleted(ctx, task.ID, true))
	got, err := f.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.False(t, got.UpdatedAt.Before(task.UpdatedAt))

	assert.ErrorIs(t, f.tasks.SetCompleted(ctx, uuid.New(), true), store.ErrTaskNotFound)
}

func TestTaskStore_DeleteCascadesToSubtasks(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, f.swimlane(t, "Personal").ID, "Health & Fitness")
	parent := f.task(t, p.ID, uuid.Nil, "Morning workout routine")
	f.task(t, p.ID, parent.ID, "30 min cardio")
	f.task(t, p.ID, parent.ID, "Strength training")
	keep := f.task(t, p.ID, uuid.Nil, "Groceries")

	require.NoError(t, f.tasks.Delete(ctx, parent.ID))

	list, err := f.tasks.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{keep.ID}, ids(list))

	assert.ErrorIs(t, f.tasks.Delete(ctx, parent.ID), store.ErrTaskNotFound)
	_, err = f.tasks.GetByID(ctx, parent.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskStore_RejectsNegativeSortOrder(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	p := f.project(t, f.swimlane(t, "Personal").ID, "Health & Fitness")
	task := f.task(t, p.ID, uuid.Nil, "Stretch")

	task.SortOrder = -1
	err := f.tasks.Update(context.Background(), task)

	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.ErrorIs(t, err, domain.ErrTaskSortOrderNegative)
}

func TestTaskStore_DriverFailureNamesOperation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	p := f.project(t, f.swimlane(t, "Personal").ID, "Health & Fitness")
	task := f.task(t, p.ID, uuid.Nil, "Stretch")
	require.NoError(t, f.db.Close())

	err := f.tasks.SetCompleted(context.Background(), task.ID, true)

	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "task", storeErr.Entity)
	assert.Equal(t, "complete", storeErr.Operation)
	assert.False(t, store.IsNotFoundError(err))

	_, err = f.projects.ListAll(context.Background())
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "project", storeErr.Entity)
	assert.Equal(t, "list", storeErr.Operation)
}

func ids(tasks []*domain.Task) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}
