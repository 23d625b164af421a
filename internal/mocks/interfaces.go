package mocks

import "github.com/phrazzld/taskboard/internal/service"

var (
	_ service.SwimlaneService = (*MockSwimlaneService)(nil)
	_ service.ProjectService  = (*MockProjectService)(nil)
	_ service.TaskService     = (*MockTaskService)(nil)
	_ service.BoardService    = (*MockBoardService)(nil)
)
