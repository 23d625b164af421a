package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/phrazzld/taskboard/internal/domain/tasktree"
)

// printBoard writes the board as an indented outline:
//
//	Personal [bg-blue-500]
//	  Health & Fitness (1/3 done, 1 overdue)
//	    [ ] Morning workout routine (due 2024-12-20)
//	      [x] 30 min cardio
func printBoard(out io.Writer, board []*tasktree.SwimlaneTree) error {
	w := bufio.NewWriter(out)

	if len(board) == 0 {
		fmt.Fprintln(w, "Board is empty. Run `taskboard seed` to insert the sample board.")
		return w.Flush()
	}

	for _, lane := range board {
		fmt.Fprintf(w, "%s [%s]\n", lane.Swimlane.Title, lane.Swimlane.Color)
		if len(lane.Projects) == 0 {
			fmt.Fprintln(w, "  (no projects)")
		}
		for _, proj := range lane.Projects {
			fmt.Fprintf(w, "  %s (%d/%d done", proj.Project.Title, proj.Stats.Completed, proj.Stats.Total)
			if proj.Stats.Overdue > 0 {
				fmt.Fprintf(w, ", %d overdue", proj.Stats.Overdue)
			}
			fmt.Fprintln(w, ")")

			tasktree.Walk(proj.Tasks, func(n *tasktree.TaskNode, depth int) bool {
				fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth+2), formatNode(n))
				return true
			})
		}
	}
	return w.Flush()
}

// printTaskList writes one line per task in display order, prefixed with its
// swimlane and project:
//
//	Personal / Health & Fitness / [ ] Morning workout routine (due 2024-12-20)
func printTaskList(out io.Writer, board []*tasktree.SwimlaneTree) error {
	w := bufio.NewWriter(out)
	for _, lane := range board {
		for _, proj := range lane.Projects {
			for _, task := range tasktree.Flatten(proj.Tasks) {
				mark := "[ ]"
				if task.Completed {
					mark = "[x]"
				}
				fmt.Fprintf(w, "%s / %s / %s %s", lane.Swimlane.Title, proj.Project.Title, mark, task.Title)
				if task.DueDate != nil {
					fmt.Fprintf(w, " (due %s)", task.DueDate)
				}
				fmt.Fprintln(w)
			}
		}
	}
	return w.Flush()
}

func formatNode(n *tasktree.TaskNode) string {
	var b strings.Builder
	if n.Completed {
		b.WriteString("[x] ")
	} else {
		b.WriteString("[ ] ")
	}
	b.WriteString(n.Title)

	if n.DueDate != nil {
		fmt.Fprintf(&b, " (due %s", n.DueDate)
		if n.Overdue {
			b.WriteString(", overdue")
		}
		b.WriteString(")")
	}
	if len(n.Subtasks) > 0 {
		fmt.Fprintf(&b, " [%d/%d subtasks]", n.SubtasksCompleted, len(n.Subtasks))
	}
	return b.String()
}
