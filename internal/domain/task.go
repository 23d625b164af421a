package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskProjectIDEmpty is returned when a task has no owning project.
	ErrTaskProjectIDEmpty = errors.New("task project ID cannot be empty")

	// ErrTaskSelfParent is returned when a task names itself as its parent.
	ErrTaskSelfParent = errors.New("task cannot be its own parent")

	// ErrTaskSortOrderNegative is returned for a negative sort order.
	ErrTaskSortOrderNegative = errors.New("task sort order cannot be negative")
)

// Task is an actionable item inside a project. A task with a ParentTaskID is
// a subtask; nesting is one level deep.
type Task struct {
	ID           uuid.UUID     `json:"id"`
	Title        string        `json:"title"`
	Completed    bool          `json:"completed"`
	DueDate      *Date         `json:"dueDate"`
	ProjectID    uuid.UUID     `json:"projectId"`
	ParentTaskID uuid.NullUUID `json:"parentTaskId"`
	Expanded     bool          `json:"expanded"`
	SortOrder    int           `json:"sortOrder"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// TaskPatch holds the fields of a task update. Pointer fields are left
// unchanged when nil; Optional fields distinguish "absent" from "clear".
type TaskPatch struct {
	Title        *string             `json:"title"`
	Completed    *bool               `json:"completed"`
	DueDate      Optional[Date]      `json:"dueDate"`
	Expanded     *bool               `json:"expanded"`
	SortOrder    *int                `json:"sortOrder"`
	ParentTaskID Optional[uuid.UUID] `json:"parentTaskId"`
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Completed == nil && !p.DueDate.Set &&
		p.Expanded == nil && p.SortOrder == nil && !p.ParentTaskID.Set
}

// NewTask creates a new, incomplete, collapsed Task in the given project.
// parentID may be uuid.Nil for a root task; dueDate may be nil.
func NewTask(projectID uuid.UUID, parentID uuid.UUID, title string, dueDate *Date) (*Task, error) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	t := &Task{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(title),
		DueDate:   dueDate,
		ProjectID: projectID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if parentID != uuid.Nil {
		t.ParentTaskID = uuid.NullUUID{UUID: parentID, Valid: true}
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// IsSubtask reports whether the task has a parent.
func (t *Task) IsSubtask() bool {
	return t.ParentTaskID.Valid
}

// Validate checks if the Task has valid data. Cross-row rules (parent in the
// same project, single-level nesting) are enforced by the service layer.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}
	if t.ProjectID == uuid.Nil {
		return NewValidationError("projectId", "is required", ErrTaskProjectIDEmpty)
	}
	if err := validateTitle("title", t.Title, MaxTaskTitleLength); err != nil {
		return err
	}
	if t.ParentTaskID.Valid && t.ParentTaskID.UUID == t.ID {
		return NewValidationError("parentTaskId", "is invalid", ErrTaskSelfParent)
	}
	if t.SortOrder < 0 {
		return NewValidationError("sortOrder", "must not be negative", ErrTaskSortOrderNegative)
	}
	return nil
}

// Apply copies the set fields of p onto t, bumps UpdatedAt and re-validates.
func (t *Task) Apply(p TaskPatch) error {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.DueDate.Set {
		t.DueDate = p.DueDate.Value
	}
	if p.Expanded != nil {
		t.Expanded = *p.Expanded
	}
	if p.SortOrder != nil {
		t.SortOrder = *p.SortOrder
	}
	if p.ParentTaskID.Set {
		if p.ParentTaskID.Value == nil || *p.ParentTaskID.Value == uuid.Nil {
			t.ParentTaskID = uuid.NullUUID{}
		} else {
			t.ParentTaskID = uuid.NullUUID{UUID: *p.ParentTaskID.Value, Valid: true}
		}
	}
	t.Touch()
	return t.Validate()
}

// ToggleCompleted flips the completion flag.
func (t *Task) ToggleCompleted() {
	t.Completed = !t.Completed
	t.Touch()
}

// ToggleExpanded flips the expanded flag.
func (t *Task) ToggleExpanded() {
	t.Expanded = !t.Expanded
	t.Touch()
}

// Touch bumps UpdatedAt to now.
func (t *Task) Touch() {
	t.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
}
