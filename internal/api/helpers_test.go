package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
)

var testTime = time.Date(2024, 12, 19, 9, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newRequest builds a request with chi URL params already resolved.
func newRequest(method, target, body string, params map[string]string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}
	return req
}

func sampleSwimlane() *domain.Swimlane {
	return &domain.Swimlane{
		ID:        uuid.New(),
		Title:     "Personal",
		Color:     "bg-blue-500",
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

func sampleProject(swimlaneID uuid.UUID) *domain.Project {
	return &domain.Project{
		ID:          uuid.New(),
		Title:       "Health & Fitness",
		Description: domain.DefaultProjectDescription,
		SwimlaneID:  swimlaneID,
		CreatedAt:   testTime,
		UpdatedAt:   testTime,
	}
}

func sampleTask(projectID uuid.UUID, title string) *domain.Task {
	return &domain.Task{
		ID:        uuid.New(),
		Title:     title,
		ProjectID: projectID,
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}
