package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/domain/tasktree"
)

// MockProjectService implements service.ProjectService for testing
type MockProjectService struct {
	CreateFn func(ctx context.Context, swimlaneID uuid.UUID, title, description string) (*domain.Project, error)
	UpdateFn func(ctx context.Context, id uuid.UUID, patch domain.ProjectPatch) (*domain.Project, error)
	DeleteFn func(ctx context.Context, id uuid.UUID) error
	GetFn    func(ctx context.Context, id uuid.UUID) (*tasktree.ProjectTree, error)

	// Default return values
	Project      *domain.Project
	Tree         *tasktree.ProjectTree
	DefaultError error
}

// Create implements the ProjectService.Create method
func (m *MockProjectService) Create(
	ctx context.Context,
	swimlaneID uuid.UUID,
	title, description string,
) (*domain.Project, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, swimlaneID, title, description)
	}
	return m.Project, m.DefaultError
}

// Update implements the ProjectService.Update method
func (m *MockProjectService) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.ProjectPatch,
) (*domain.Project, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return m.Project, m.DefaultError
}

// Delete implements the ProjectService.Delete method
func (m *MockProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.DefaultError
}

// Get implements the ProjectService.Get method
func (m *MockProjectService) Get(ctx context.Context, id uuid.UUID) (*tasktree.ProjectTree, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return m.Tree, m.DefaultError
}
