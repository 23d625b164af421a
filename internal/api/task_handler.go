package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/api/shared"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/service"
)

// TaskHandler handles /api/tasks requests.
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}
	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /api/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	input, err := req.toInput()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.Create(r.Context(), input)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// toInput parses the optional string fields of the request.
func (req CreateTaskRequest) toInput() (service.CreateTaskInput, error) {
	in := service.CreateTaskInput{ProjectID: req.ProjectID, Title: req.Title}

	if req.ParentTaskID != nil && strings.TrimSpace(*req.ParentTaskID) != "" {
		parentID, err := uuid.Parse(strings.TrimSpace(*req.ParentTaskID))
		if err != nil {
			return in, domain.NewValidationError("parentTaskId", "has invalid format", domain.ErrInvalidID)
		}
		in.ParentTaskID = parentID
	}

	if req.DueDate != nil && strings.TrimSpace(*req.DueDate) != "" {
		due, err := domain.ParseDate(strings.TrimSpace(*req.DueDate))
		if err != nil {
			return in, domain.NewValidationError("dueDate", "must be YYYY-MM-DD", domain.ErrInvalidDate)
		}
		in.DueDate = &due
	}
	return in, nil
}

// UpdateTask handles PUT /api/tasks/{id}. Only the fields present in the
// body change; "dueDate": null clears the due date and "parentTaskId": null
// makes the task a root. {"action": "toggle"} flips completion instead.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateTaskRequest
	if !decode(w, r, &req) {
		return
	}

	switch req.Action {
	case "":
	case ActionToggle:
		h.toggle(w, r, id)
		return
	default:
		shared.RespondWithError(w, r, http.StatusBadRequest, "Unknown action")
		return
	}

	task, err := h.tasks.Update(r.Context(), id, req.TaskPatch)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// ToggleTask handles POST /api/tasks/{id}/toggle.
func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	h.toggle(w, r, id)
}

func (h *TaskHandler) toggle(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	task, err := h.tasks.Toggle(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("task toggled",
		slog.String("task_id", id.String()),
		slog.Bool("completed", task.Completed))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// ExpandTask handles POST /api/tasks/{id}/expand.
func (h *TaskHandler) ExpandTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.ToggleExpanded(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /api/tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.tasks.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}
	shared.RespondWithSuccess(w, r)
}
