package tasktree

import (
	"sort"
	"time"

	"github.com/phrazzld/taskboard/internal/domain"
)

// DueStatus classifies a dated task relative to today.
type DueStatus string

// Due statuses, in the order the calendar highlights them.
const (
	DueStatusOverdue   DueStatus = "overdue"
	DueStatusDueSoon   DueStatus = "due_soon"
	DueStatusScheduled DueStatus = "scheduled"
	DueStatusCompleted DueStatus = "completed"
)

// DefaultDueSoonDays is how many days ahead a task counts as due soon.
const DefaultDueSoonDays = 1

// Today returns the calendar day of now in loc. A nil loc means UTC.
func Today(now time.Time, loc *time.Location) domain.Date {
	if loc == nil {
		loc = time.UTC
	}
	return domain.DateOf(now.In(loc))
}

// IsOverdue reports whether an incomplete task's due date is before today.
// Tasks without a due date are never overdue.
func IsOverdue(due *domain.Date, completed bool, today domain.Date) bool {
	if due == nil || completed {
		return false
	}
	return due.Before(today)
}

// DaysUntilDue is the number of days from today to due, negative once past.
func DaysUntilDue(due domain.Date, today domain.Date) int {
	return due.DaysSince(today)
}

// Classify returns the due status of a dated task. dueSoonDays is the
// inclusive look-ahead window for DueStatusDueSoon.
func Classify(due domain.Date, completed bool, today domain.Date, dueSoonDays int) DueStatus {
	if completed {
		return DueStatusCompleted
	}
	if IsOverdue(&due, completed, today) {
		return DueStatusOverdue
	}
	if DaysUntilDue(due, today) <= dueSoonDays {
		return DueStatusDueSoon
	}
	return DueStatusScheduled
}

// UpcomingTask is one row of the calendar view.
type UpcomingTask struct {
	Task          *domain.Task
	ProjectTitle  string
	SwimlaneTitle string
	SwimlaneColor string
	DaysUntilDue  int
	Status        DueStatus
}

// CalendarSummary holds the counters shown beside the calendar.
type CalendarSummary struct {
	WithDates int `json:"withDates"`
	Overdue   int `json:"overdue"`
	DueSoon   int `json:"dueSoon"`
}

// Calendar is every dated task on the board, earliest first.
type Calendar struct {
	Today   domain.Date
	Tasks   []UpcomingTask
	Summary CalendarSummary
}

// BuildCalendar collects every task with a due date from the board, at any
// depth, sorted by due date then title.
func BuildCalendar(board []*SwimlaneTree, today domain.Date, dueSoonDays int) *Calendar {
	cal := &Calendar{Today: today, Tasks: []UpcomingTask{}}

	for _, lane := range board {
		for _, proj := range lane.Projects {
			Walk(proj.Tasks, func(n *TaskNode, _ int) bool {
				if n.DueDate == nil {
					return true
				}
				status := Classify(*n.DueDate, n.Completed, today, dueSoonDays)
				cal.Tasks = append(cal.Tasks, UpcomingTask{
					Task:          n.Task,
					ProjectTitle:  proj.Project.Title,
					SwimlaneTitle: lane.Swimlane.Title,
					SwimlaneColor: lane.Swimlane.Color,
					DaysUntilDue:  DaysUntilDue(*n.DueDate, today),
					Status:        status,
				})
				switch status {
				case DueStatusOverdue:
					cal.Summary.Overdue++
				case DueStatusDueSoon:
					cal.Summary.DueSoon++
				}
				return true
			})
		}
	}

	sort.SliceStable(cal.Tasks, func(i, j int) bool {
		a, b := cal.Tasks[i].Task, cal.Tasks[j].Task
		if d := a.DueDate.DaysSince(*b.DueDate); d != 0 {
			return d < 0
		}
		return a.Title < b.Title
	})
	cal.Summary.WithDates = len(cal.Tasks)
	return cal
}
