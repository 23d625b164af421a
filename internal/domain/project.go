package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultProjectDescription is used when a project is created without one.
const DefaultProjectDescription = "Click to edit description"

// Project-specific validation errors
var (
	// ErrProjectIDEmpty is returned when a project ID is nil.
	ErrProjectIDEmpty = errors.New("project ID cannot be empty")

	// ErrProjectSwimlaneIDEmpty is returned when a project has no owning swimlane.
	ErrProjectSwimlaneIDEmpty = errors.New("project swimlane ID cannot be empty")
)

// Project is a unit of work inside a swimlane. Description is free text that
// the client edits in its notepad view.
type Project struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SwimlaneID  uuid.UUID `json:"swimlaneId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectPatch holds the fields of a project update; nil fields are left unchanged.
type ProjectPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// NewProject creates a new Project in the given swimlane.
// An empty description is replaced with DefaultProjectDescription.
func NewProject(swimlaneID uuid.UUID, title, description string) (*Project, error) {
	if strings.TrimSpace(description) == "" {
		description = DefaultProjectDescription
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	p := &Project{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		Description: description,
		SwimlaneID:  swimlaneID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks if the Project has valid data.
func (p *Project) Validate() error {
	if p.ID == uuid.Nil {
		return ErrProjectIDEmpty
	}
	if p.SwimlaneID == uuid.Nil {
		return NewValidationError("swimlaneId", "is required", ErrProjectSwimlaneIDEmpty)
	}
	return validateTitle("title", p.Title, MaxProjectTitleLength)
}

// Apply copies the set fields of patch onto p, bumps UpdatedAt and re-validates.
func (p *Project) Apply(patch ProjectPatch) error {
	if patch.Title != nil {
		p.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	p.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	return p.Validate()
}
