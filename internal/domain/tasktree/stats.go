package tasktree

import "github.com/phrazzld/taskboard/internal/domain"

// Stats are the counts shown on a project card.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

// Annotate fills Overdue and SubtasksCompleted on every node relative to today.
func Annotate(nodes []*TaskNode, today domain.Date) {
	Walk(nodes, func(n *TaskNode, _ int) bool {
		n.Overdue = IsOverdue(n.DueDate, n.Completed, today)
		n.SubtasksCompleted = 0
		for _, sub := range n.Subtasks {
			if sub.Completed {
				n.SubtasksCompleted++
			}
		}
		return true
	})
}

// ComputeStats counts every task at every depth of the tree.
func ComputeStats(nodes []*TaskNode, today domain.Date) Stats {
	var s Stats
	Walk(nodes, func(n *TaskNode, _ int) bool {
		s.Total++
		if n.Completed {
			s.Completed++
		}
		if IsOverdue(n.DueDate, n.Completed, today) {
			s.Overdue++
		}
		return true
	})
	return s
}

// ProjectTree is a project with its task tree and stats, as shown in the
// notepad view and on the board.
type ProjectTree struct {
	Project *domain.Project
	Tasks   []*TaskNode
	Stats   Stats
}

// NewProjectTree builds and annotates the tree for one project's rows.
func NewProjectTree(p *domain.Project, rows []*domain.Task, today domain.Date) *ProjectTree {
	nodes := BuildHierarchy(rows)
	Annotate(nodes, today)
	return &ProjectTree{
		Project: p,
		Tasks:   nodes,
		Stats:   ComputeStats(nodes, today),
	}
}

// SwimlaneTree is a swimlane with its projects.
type SwimlaneTree struct {
	Swimlane *domain.Swimlane
	Projects []*ProjectTree
}
