package tasktree

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
)

// TaskNode is a task together with its subtasks. Overdue and
// SubtasksCompleted are filled in by Annotate.
type TaskNode struct {
	*domain.Task
	Subtasks          []*TaskNode
	Overdue           bool
	SubtasksCompleted int
}

// SortTasks orders tasks by sort order, then creation time, then ID so the
// result is stable regardless of the order rows came back from the store.
func SortTasks(tasks []*domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	})
}

// BuildHierarchy links flat rows into a forest. A row whose parent ID
// resolves to another row becomes that row's subtask; every other row is a
// root. Siblings keep SortTasks order.
//
// Rows whose parent chain loops back on itself never reach a root. The first
// such row in sort order is promoted to a root, which keeps every row in the
// result exactly once.
func BuildHierarchy(rows []*domain.Task) []*TaskNode {
	sorted := make([]*domain.Task, len(rows))
	copy(sorted, rows)
	SortTasks(sorted)

	nodes := make(map[uuid.UUID]*TaskNode, len(sorted))
	for _, t := range sorted {
		nodes[t.ID] = &TaskNode{Task: t, Subtasks: []*TaskNode{}}
	}

	parentOf := func(t *domain.Task) (*TaskNode, bool) {
		if !t.ParentTaskID.Valid {
			return nil, false
		}
		p, ok := nodes[t.ParentTaskID.UUID]
		return p, ok
	}

	promoted := findCycleBreakers(sorted, parentOf)

	roots := make([]*TaskNode, 0, len(sorted))
	for _, t := range sorted {
		node := nodes[t.ID]
		parent, ok := parentOf(t)
		if ok && !promoted[t.ID] {
			parent.Subtasks = append(parent.Subtasks, node)
			continue
		}
		roots = append(roots, node)
	}
	return roots
}

// findCycleBreakers returns the rows to promote so that every parent chain
// terminates. Rows are walked in sort order; walking a chain marks every row
// on it, and a chain that revisits a row on the current walk is a cycle.
func findCycleBreakers(
	sorted []*domain.Task,
	parentOf func(*domain.Task) (*TaskNode, bool),
) map[uuid.UUID]bool {
	const (
		unvisited = iota
		walking
		done
	)
	state := make(map[uuid.UUID]int, len(sorted))
	promoted := make(map[uuid.UUID]bool)

	for _, start := range sorted {
		if state[start.ID] != unvisited {
			continue
		}

		var path []*domain.Task
		cur := start
		for {
			st := state[cur.ID]
			if st == done {
				break
			}
			if st == walking {
				// cur closes a loop; promote the earliest member of it.
				promoted[earliestInCycle(path, cur.ID).ID] = true
				break
			}
			state[cur.ID] = walking
			path = append(path, cur)

			parent, ok := parentOf(cur)
			if !ok {
				break
			}
			cur = parent.Task
		}

		for _, t := range path {
			state[t.ID] = done
		}
	}
	return promoted
}

// earliestInCycle returns the cycle member that sorts first. path ends with
// the loop that starts at entry.
func earliestInCycle(path []*domain.Task, entry uuid.UUID) *domain.Task {
	start := 0
	for i, t := range path {
		if t.ID == entry {
			start = i
			break
		}
	}
	cycle := make([]*domain.Task, len(path)-start)
	copy(cycle, path[start:])
	SortTasks(cycle)
	return cycle[0]
}

// Walk visits every node depth-first in display order. Returning false from
// fn stops the walk.
func Walk(nodes []*TaskNode, fn func(node *TaskNode, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []*TaskNode, depth int, fn func(*TaskNode, int) bool) bool {
	for _, n := range nodes {
		if !fn(n, depth) {
			return false
		}
		if !walk(n.Subtasks, depth+1, fn) {
			return false
		}
	}
	return true
}

// Flatten returns the tasks of the tree in display order.
func Flatten(nodes []*TaskNode) []*domain.Task {
	var out []*domain.Task
	Walk(nodes, func(n *TaskNode, _ int) bool {
		out = append(out, n.Task)
		return true
	})
	return out
}

// FindNode returns the node with the given ID, or nil.
func FindNode(nodes []*TaskNode, id uuid.UUID) *TaskNode {
	var found *TaskNode
	Walk(nodes, func(n *TaskNode, _ int) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}
