package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Swimlane-specific validation errors
var (
	// ErrSwimlaneIDEmpty is returned when a swimlane ID is nil.
	ErrSwimlaneIDEmpty = errors.New("swimlane ID cannot be empty")

	// ErrSwimlaneColorEmpty is returned when a swimlane has no color tag.
	ErrSwimlaneColorEmpty = errors.New("swimlane color cannot be empty")

	// ErrSwimlaneColorTooLong is returned when the color tag exceeds MaxColorLength.
	ErrSwimlaneColorTooLong = errors.New("swimlane color is too long")
)

// Swimlane is a top-level grouping of projects, one per life domain
// ("Personal", "Work", ...). Color is an opaque style tag chosen by the client.
type Swimlane struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SwimlanePatch holds the fields of a swimlane update; nil fields are left unchanged.
type SwimlanePatch struct {
	Title *string `json:"title"`
	Color *string `json:"color"`
}

// NewSwimlane creates a new Swimlane with a fresh ID and timestamps.
// Returns an error if validation fails.
func NewSwimlane(title, color string) (*Swimlane, error) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	s := &Swimlane{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(title),
		Color:     strings.TrimSpace(color),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks if the Swimlane has valid data.
func (s *Swimlane) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSwimlaneIDEmpty
	}
	if err := validateTitle("title", s.Title, MaxSwimlaneTitleLength); err != nil {
		return err
	}
	if strings.TrimSpace(s.Color) == "" {
		return NewValidationError("color", "is required", ErrSwimlaneColorEmpty)
	}
	if len(s.Color) > MaxColorLength {
		return NewValidationError("color", "is too long", ErrSwimlaneColorTooLong)
	}
	return nil
}

// Apply copies the set fields of p onto s, bumps UpdatedAt and re-validates.
func (s *Swimlane) Apply(p SwimlanePatch) error {
	if p.Title != nil {
		s.Title = strings.TrimSpace(*p.Title)
	}
	if p.Color != nil {
		s.Color = strings.TrimSpace(*p.Color)
	}
	s.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	return s.Validate()
}
