package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/domain/tasktree"
	"github.com/phrazzld/taskboard/internal/mocks"
	"github.com/phrazzld/taskboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSwimlaneHandlerPanicsWithoutLogger(t *testing.T) {
	assert.Panics(t, func() {
		NewSwimlaneHandler(&mocks.MockSwimlaneService{}, &mocks.MockBoardService{}, nil)
	})
}

func TestListSwimlanes(t *testing.T) {
	lane := sampleSwimlane()
	project := sampleProject(lane.ID)
	root := sampleTask(project.ID, "Morning workout routine")
	child := sampleTask(project.ID, "30 min cardio")
	child.ParentTaskID = uuid.NullUUID{UUID: root.ID, Valid: true}
	child.Completed = true

	board := &mocks.MockBoardService{
		GetBoardFn: func(ctx context.Context) ([]*tasktree.SwimlaneTree, error) {
			return []*tasktree.SwimlaneTree{{
				Swimlane: lane,
				Projects: []*tasktree.ProjectTree{
					tasktree.NewProjectTree(project, []*domain.Task{root, child}, domain.DateOf(testTime)),
				},
			}}, nil
		},
	}
	h := NewSwimlaneHandler(&mocks.MockSwimlaneService{}, board, discardLogger())

	w := httptest.NewRecorder()
	h.ListSwimlanes(w, newRequest(http.MethodGet, "/api/swimlanes", "", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var got []SwimlaneTreeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Personal", got[0].Title)
	require.Len(t, got[0].Projects, 1)
	assert.Equal(t, tasktree.Stats{Total: 2, Completed: 1}, got[0].Projects[0].Stats)
	require.Len(t, got[0].Projects[0].Tasks, 1)
	assert.Equal(t, 1, got[0].Projects[0].Tasks[0].SubtasksCompleted)
	require.Len(t, got[0].Projects[0].Tasks[0].Subtasks, 1)
	assert.Equal(t, root.ID, *got[0].Projects[0].Tasks[0].Subtasks[0].ParentTaskID)
}

func TestListSwimlanesFailure(t *testing.T) {
	board := &mocks.MockBoardService{
		GetBoardFn: func(ctx context.Context) ([]*tasktree.SwimlaneTree, error) {
			return nil, errors.New("database is locked")
		},
	}
	h := NewSwimlaneHandler(&mocks.MockSwimlaneService{}, board, discardLogger())

	w := httptest.NewRecorder()
	h.ListSwimlanes(w, newRequest(http.MethodGet, "/api/swimlanes", "", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch swimlanes")
	assert.NotContains(t, w.Body.String(), "locked")
}

func TestCreateSwimlane(t *testing.T) {
	created := sampleSwimlane()

	tests := []struct {
		name       string
		body       string
		createErr  error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "created",
			body:       `{"title":"Personal","color":"bg-blue-500"}`,
			wantStatus: http.StatusCreated,
			wantBody:   `"title":"Personal"`,
		},
		{
			name:       "missing color",
			body:       `{"title":"Personal"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid color: required field",
		},
		{
			name:       "malformed json",
			body:       `{"title":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid request format",
		},
		{
			name:       "unknown action",
			body:       `{"action":"explode"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Unknown action",
		},
		{
			name:       "domain validation",
			body:       `{"title":"   ","color":"bg-blue-500"}`,
			createErr:  domain.NewValidationError("title", "is required", domain.ErrTitleEmpty),
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid title: is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mocks.MockSwimlaneService{
				CreateFn: func(ctx context.Context, title, color string) (*domain.Swimlane, error) {
					if tt.createErr != nil {
						return nil, tt.createErr
					}
					return created, nil
				},
			}
			h := NewSwimlaneHandler(svc, &mocks.MockBoardService{}, discardLogger())

			w := httptest.NewRecorder()
			h.CreateSwimlane(w, newRequest(http.MethodPost, "/api/swimlanes", tt.body, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestCreateSwimlaneInitialize(t *testing.T) {
	var initialized bool
	board := &mocks.MockBoardService{
		InitializeSampleDataFn: func(ctx context.Context) (bool, error) {
			initialized = true
			return true, nil
		},
		GetBoardFn: func(ctx context.Context) ([]*tasktree.SwimlaneTree, error) {
			return []*tasktree.SwimlaneTree{{Swimlane: sampleSwimlane()}}, nil
		},
	}
	h := NewSwimlaneHandler(&mocks.MockSwimlaneService{}, board, discardLogger())

	w := httptest.NewRecorder()
	h.CreateSwimlane(w, newRequest(http.MethodPost, "/api/swimlanes", `{"action":"initialize"}`, nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, initialized)

	var got []SwimlaneTreeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.NotNil(t, got[0].Projects, "projects serialize as [] rather than null")
}

func TestUpdateSwimlane(t *testing.T) {
	lane := sampleSwimlane()

	t.Run("updated", func(t *testing.T) {
		var gotPatch domain.SwimlanePatch
		svc := &mocks.MockSwimlaneService{
			UpdateFn: func(ctx context.Context, id uuid.UUID, patch domain.SwimlanePatch) (*domain.Swimlane, error) {
				assert.Equal(t, lane.ID, id)
				gotPatch = patch
				lane.Color = *patch.Color
				return lane, nil
			},
		}
		h := NewSwimlaneHandler(svc, &mocks.MockBoardService{}, discardLogger())

		w := httptest.NewRecorder()
		h.UpdateSwimlane(w, newRequest(http.MethodPut, "/api/swimlanes/"+lane.ID.String(),
			`{"color":"bg-red-500"}`, map[string]string{"id": lane.ID.String()}))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, gotPatch.Title)
		assert.Contains(t, w.Body.String(), `"color":"bg-red-500"`)
	})

	t.Run("bad id", func(t *testing.T) {
		h := NewSwimlaneHandler(&mocks.MockSwimlaneService{}, &mocks.MockBoardService{}, discardLogger())

		w := httptest.NewRecorder()
		h.UpdateSwimlane(w, newRequest(http.MethodPut, "/api/swimlanes/nope", `{}`, map[string]string{"id": "nope"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid id: has invalid format")
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mocks.MockSwimlaneService{
			UpdateFn: func(ctx context.Context, id uuid.UUID, patch domain.SwimlanePatch) (*domain.Swimlane, error) {
				return nil, store.ErrSwimlaneNotFound
			},
		}
		h := NewSwimlaneHandler(svc, &mocks.MockBoardService{}, discardLogger())

		id := uuid.NewString()
		w := httptest.NewRecorder()
		h.UpdateSwimlane(w, newRequest(http.MethodPut, "/api/swimlanes/"+id, `{"title":"x"}`, map[string]string{"id": id}))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Swimlane not found")
	})
}

func TestDeleteSwimlane(t *testing.T) {
	id := uuid.New()
	var deleted uuid.UUID
	svc := &mocks.MockSwimlaneService{
		DeleteFn: func(ctx context.Context, got uuid.UUID) error {
			deleted = got
			return nil
		},
	}
	h := NewSwimlaneHandler(svc, &mocks.MockBoardService{}, discardLogger())

	w := httptest.NewRecorder()
	h.DeleteSwimlane(w, newRequest(http.MethodDelete, "/api/swimlanes/"+id.String(), "", map[string]string{"id": id.String()}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.Equal(t, id, deleted)
}
