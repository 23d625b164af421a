package service

import (
	"time"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/domain/tasktree"
)

// Schedule decides what "today" is for overdue and due-soon checks.
type Schedule struct {
	// Location is the board timezone; nil means UTC.
	Location *time.Location
	// DueSoonDays is the window, in days, for the due_soon status.
	DueSoonDays int
	// Now overrides the clock in tests; nil means time.Now.
	Now func() time.Time
}

// DefaultSchedule is UTC with the standard one-day due-soon window.
func DefaultSchedule() Schedule {
	return Schedule{Location: time.UTC, DueSoonDays: tasktree.DefaultDueSoonDays}
}

// Today returns the current calendar day in the schedule's location.
func (s Schedule) Today() domain.Date {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return tasktree.Today(now(), s.Location)
}
