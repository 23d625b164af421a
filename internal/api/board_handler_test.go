package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/domain/tasktree"
	"github.com/phrazzld/taskboard/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCalendar(t *testing.T) {
	lane := sampleSwimlane()
	project := sampleProject(lane.ID)
	task := sampleTask(project.ID, "Strength training")
	due := domain.MustParseDate("2024-12-18")
	task.DueDate = &due
	today := domain.DateOf(testTime)

	board := &mocks.MockBoardService{
		CalendarFn: func(ctx context.Context) (*tasktree.Calendar, error) {
			trees := []*tasktree.SwimlaneTree{{
				Swimlane: lane,
				Projects: []*tasktree.ProjectTree{tasktree.NewProjectTree(project, []*domain.Task{task}, today)},
			}}
			return tasktree.BuildCalendar(trees, today, tasktree.DefaultDueSoonDays), nil
		},
	}
	h := NewBoardHandler(board)

	w := httptest.NewRecorder()
	h.GetCalendar(w, newRequest(http.MethodGet, "/api/calendar", "", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var got CalendarResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "2024-12-19", got.Today.String())
	assert.Equal(t, tasktree.CalendarSummary{WithDates: 1, Overdue: 1}, got.Summary)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, "Strength training", got.Tasks[0].Title)
	assert.Equal(t, "Health & Fitness", got.Tasks[0].ProjectTitle)
	assert.Equal(t, "bg-blue-500", got.Tasks[0].SwimlaneColor)
	assert.Equal(t, "overdue", got.Tasks[0].Status)
	assert.Equal(t, -1, got.Tasks[0].DaysUntilDue)
}

func TestGetCalendarFailure(t *testing.T) {
	board := &mocks.MockBoardService{
		CalendarFn: func(ctx context.Context) (*tasktree.Calendar, error) {
			return nil, errors.New("boom")
		},
	}

	w := httptest.NewRecorder()
	NewBoardHandler(board).GetCalendar(w, newRequest(http.MethodGet, "/api/calendar", "", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch calendar")
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h := NewHealthHandler(pingerFunc(func(context.Context) error { return nil }), discardLogger())

		w := httptest.NewRecorder()
		h.Health(w, newRequest(http.MethodGet, "/health", "", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok","database":"ok"}`, w.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		h := NewHealthHandler(pingerFunc(func(context.Context) error {
			return errors.New("dial tcp 10.0.0.1:5432: connection refused")
		}), nil)

		w := httptest.NewRecorder()
		h.Health(w, newRequest(http.MethodGet, "/health", "", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "Database unavailable")
		assert.NotContains(t, w.Body.String(), "10.0.0.1")
	})
}

