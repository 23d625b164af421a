package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
)

// MockSwimlaneService implements service.SwimlaneService for testing
type MockSwimlaneService struct {
	CreateFn func(ctx context.Context, title, color string) (*domain.Swimlane, error)
	UpdateFn func(ctx context.Context, id uuid.UUID, patch domain.SwimlanePatch) (*domain.Swimlane, error)
	DeleteFn func(ctx context.Context, id uuid.UUID) error
	ListFn   func(ctx context.Context) ([]*domain.Swimlane, error)

	// Default return values
	Swimlane     *domain.Swimlane
	DefaultError error
}

// Create implements the SwimlaneService.Create method
func (m *MockSwimlaneService) Create(ctx context.Context, title, color string) (*domain.Swimlane, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, title, color)
	}
	return m.Swimlane, m.DefaultError
}

// Update implements the SwimlaneService.Update method
func (m *MockSwimlaneService) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.SwimlanePatch,
) (*domain.Swimlane, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return m.Swimlane, m.DefaultError
}

// Delete implements the SwimlaneService.Delete method
func (m *MockSwimlaneService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.DefaultError
}

// List implements the SwimlaneService.List method
func (m *MockSwimlaneService) List(ctx context.Context) ([]*domain.Swimlane, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	if m.Swimlane != nil {
		return []*domain.Swimlane{m.Swimlane}, m.DefaultError
	}
	return []*domain.Swimlane{}, m.DefaultError
}
