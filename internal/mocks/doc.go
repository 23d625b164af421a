// Package mocks provides centralized mock implementations of the service
// interfaces for handler tests.
//
// Each mock has one function field per method. A method whose field is nil
// returns the mock's default values and DefaultError:
//
//	svc := &mocks.MockTaskService{
//	    ToggleFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
//	        return nil, store.ErrTaskNotFound
//	    },
//	}
package mocks
