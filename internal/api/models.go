package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/domain/tasktree"
)

// Request payloads. JSON names are camelCase to match the browser client.

// CreateSwimlaneRequest is the body of POST /api/swimlanes. When Action is
// "initialize" the other fields are ignored and the sample board is seeded.
type CreateSwimlaneRequest struct {
	Action string `json:"action"`
	Title  string `json:"title"  validate:"required,max=200"`
	Color  string `json:"color"  validate:"required,max=64"`
}

// UpdateSwimlaneRequest is the body of PUT /api/swimlanes/{id}.
type UpdateSwimlaneRequest struct {
	Title *string `json:"title" validate:"omitempty,max=200"`
	Color *string `json:"color" validate:"omitempty,max=64"`
}

// CreateProjectRequest is the body of POST /api/projects.
type CreateProjectRequest struct {
	Title       string    `json:"title"       validate:"required,max=200"`
	Description string    `json:"description"`
	SwimlaneID  uuid.UUID `json:"swimlaneId"  validate:"required"`
}

// UpdateProjectRequest is the body of PUT /api/projects/{id}.
type UpdateProjectRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description"`
}

// CreateTaskRequest is the body of POST /api/tasks. Empty strings for
// parentTaskId and dueDate mean "none".
type CreateTaskRequest struct {
	Title        string    `json:"title"        validate:"required,max=500"`
	ProjectID    uuid.UUID `json:"projectId"    validate:"required"`
	ParentTaskID *string   `json:"parentTaskId"`
	DueDate      *string   `json:"dueDate"`
}

// UpdateTaskRequest is the body of PUT /api/tasks/{id}. Action "toggle"
// flips completion and ignores the patch fields.
type UpdateTaskRequest struct {
	Action string `json:"action"`
	domain.TaskPatch
}

// ActionToggle and ActionInitialize are the recognized request actions.
const (
	ActionToggle     = "toggle"
	ActionInitialize = "initialize"
)

// Response payloads.

// SwimlaneResponse is a swimlane without its projects.
type SwimlaneResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProjectResponse is a project without its tasks.
type ProjectResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SwimlaneID  uuid.UUID `json:"swimlaneId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskResponse is a single task row.
type TaskResponse struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	Completed    bool         `json:"completed"`
	DueDate      *domain.Date `json:"dueDate"`
	ProjectID    uuid.UUID    `json:"projectId"`
	ParentTaskID *uuid.UUID   `json:"parentTaskId"`
	Expanded     bool         `json:"expanded"`
	SortOrder    int          `json:"sortOrder"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// TaskNodeResponse is a task with its subtasks.
type TaskNodeResponse struct {
	TaskResponse
	Overdue           bool               `json:"overdue"`
	SubtasksCompleted int                `json:"subtasksCompleted"`
	Subtasks          []TaskNodeResponse `json:"subtasks"`
}

// ProjectTreeResponse is a project with its task tree and stats.
type ProjectTreeResponse struct {
	ProjectResponse
	Tasks []TaskNodeResponse `json:"tasks"`
	Stats tasktree.Stats     `json:"stats"`
}

// SwimlaneTreeResponse is a swimlane with its projects, as returned by
// GET /api/swimlanes.
type SwimlaneTreeResponse struct {
	SwimlaneResponse
	Projects []ProjectTreeResponse `json:"projects"`
}

// UpcomingTaskResponse is one calendar row.
type UpcomingTaskResponse struct {
	TaskResponse
	ProjectTitle  string `json:"projectTitle"`
	SwimlaneTitle string `json:"swimlaneTitle"`
	SwimlaneColor string `json:"swimlaneColor"`
	DaysUntilDue  int    `json:"daysUntilDue"`
	Status        string `json:"status"`
}

// CalendarResponse is the body of GET /api/calendar.
type CalendarResponse struct {
	Today   domain.Date              `json:"today"`
	Tasks   []UpcomingTaskResponse   `json:"tasks"`
	Summary tasktree.CalendarSummary `json:"summary"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func swimlaneToResponse(s *domain.Swimlane) SwimlaneResponse {
	return SwimlaneResponse{
		ID:        s.ID,
		Title:     s.Title,
		Color:     s.Color,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func projectToResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		SwimlaneID:  p.SwimlaneID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func taskToResponse(t *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		DueDate:   t.DueDate,
		ProjectID: t.ProjectID,
		Expanded:  t.Expanded,
		SortOrder: t.SortOrder,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.ParentTaskID.Valid {
		parent := t.ParentTaskID.UUID
		resp.ParentTaskID = &parent
	}
	return resp
}

func nodesToResponse(nodes []*tasktree.TaskNode) []TaskNodeResponse {
	out := make([]TaskNodeResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, TaskNodeResponse{
			TaskResponse:      taskToResponse(n.Task),
			Overdue:           n.Overdue,
			SubtasksCompleted: n.SubtasksCompleted,
			Subtasks:          nodesToResponse(n.Subtasks),
		})
	}
	return out
}

func projectTreeToResponse(pt *tasktree.ProjectTree) ProjectTreeResponse {
	return ProjectTreeResponse{
		ProjectResponse: projectToResponse(pt.Project),
		Tasks:           nodesToResponse(pt.Tasks),
		Stats:           pt.Stats,
	}
}

func boardToResponse(board []*tasktree.SwimlaneTree) []SwimlaneTreeResponse {
	out := make([]SwimlaneTreeResponse, 0, len(board))
	for _, lane := range board {
		projects := make([]ProjectTreeResponse, 0, len(lane.Projects))
		for _, p := range lane.Projects {
			projects = append(projects, projectTreeToResponse(p))
		}
		out = append(out, SwimlaneTreeResponse{
			SwimlaneResponse: swimlaneToResponse(lane.Swimlane),
			Projects:         projects,
		})
	}
	return out
}

func calendarToResponse(cal *tasktree.Calendar) CalendarResponse {
	tasks := make([]UpcomingTaskResponse, 0, len(cal.Tasks))
	for _, u := range cal.Tasks {
		tasks = append(tasks, UpcomingTaskResponse{
			TaskResponse:  taskToResponse(u.Task),
			ProjectTitle:  u.ProjectTitle,
			SwimlaneTitle: u.SwimlaneTitle,
			SwimlaneColor: u.SwimlaneColor,
			DaysUntilDue:  u.DaysUntilDue,
			Status:        string(u.Status),
		})
	}
	return CalendarResponse{Today: cal.Today, Tasks: tasks, Summary: cal.Summary}
}
