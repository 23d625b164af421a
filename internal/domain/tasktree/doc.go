// Package tasktree assembles flat task rows into the nested tree the client
// renders, and derives the read-side numbers shown next to it: per-project
// completion stats, overdue flags and the calendar of dated tasks.
//
// Everything here is pure: callers pass in rows and "today", nothing touches
// the store or the clock.
package tasktree
