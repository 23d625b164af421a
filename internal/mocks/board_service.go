package mocks

import (
	"context"

	"github.com/phrazzld/taskboard/internal/domain/tasktree"
)

// MockBoardService implements service.BoardService for testing
type MockBoardService struct {
	GetBoardFn             func(ctx context.Context) ([]*tasktree.SwimlaneTree, error)
	CalendarFn             func(ctx context.Context) (*tasktree.Calendar, error)
	InitializeSampleDataFn func(ctx context.Context) (bool, error)

	// Default return values
	Board          []*tasktree.SwimlaneTree
	CalendarResult *tasktree.Calendar
	DefaultError   error
}

// GetBoard implements the BoardService.GetBoard method
func (m *MockBoardService) GetBoard(ctx context.Context) ([]*tasktree.SwimlaneTree, error) {
	if m.GetBoardFn != nil {
		return m.GetBoardFn(ctx)
	}
	return m.Board, m.DefaultError
}

// Calendar implements the BoardService.Calendar method
func (m *MockBoardService) Calendar(ctx context.Context) (*tasktree.Calendar, error) {
	if m.CalendarFn != nil {
		return m.CalendarFn(ctx)
	}
	return m.CalendarResult, m.DefaultError
}

// InitializeSampleData implements the BoardService.InitializeSampleData method
func (m *MockBoardService) InitializeSampleData(ctx context.Context) (bool, error) {
	if m.InitializeSampleDataFn != nil {
		return m.InitializeSampleDataFn(ctx)
	}
	return false, m.DefaultError
}
