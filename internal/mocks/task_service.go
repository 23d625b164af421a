package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/service"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	CreateFn         func(ctx context.Context, in service.CreateTaskInput) (*domain.Task, error)
	UpdateFn         func(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)
	ToggleFn         func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ToggleExpandedFn func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	DeleteFn         func(ctx context.Context, id uuid.UUID) error

	// Default return values
	Task         *domain.Task
	DefaultError error
}

// Create implements the TaskService.Create method
func (m *MockTaskService) Create(ctx context.Context, in service.CreateTaskInput) (*domain.Task, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, in)
	}
	return m.Task, m.DefaultError
}

// Update implements the TaskService.Update method
func (m *MockTaskService) Update(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return m.Task, m.DefaultError
}

// Toggle implements the TaskService.Toggle method
func (m *MockTaskService) Toggle(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.ToggleFn != nil {
		return m.ToggleFn(ctx, id)
	}
	return m.Task, m.DefaultError
}

// ToggleExpanded implements the TaskService.ToggleExpanded method
func (m *MockTaskService) ToggleExpanded(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.ToggleExpandedFn != nil {
		return m.ToggleExpandedFn(ctx, id)
	}
	return m.Task, m.DefaultError
}

// Delete implements the TaskService.Delete method
func (m *MockTaskService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.DefaultError
}
