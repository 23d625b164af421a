package sqlstore

import (
	"database/sql"
	"fmt"

	"github.com/phrazzld/taskboard/internal/domain"
)

// rowScanner is implemented by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// dueDateArg converts an optional due date to a query argument.
func dueDateArg(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// parseDueDate converts a nullable due_date column back to a *domain.Date.
func parseDueDate(s sql.NullString) (*domain.Date, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(s.String)
	if err != nil {
		return nil, fmt.Errorf("invalid stored due date: %w", err)
	}
	return &d, nil
}

// collect scans every row with scan and closes rows. Rows are always drained
// before returning so that a single-connection pool is free for the next query.
func collect[T any](rows *sql.Rows, scan func(rowScanner) (*T, error)) ([]*T, error) {
	defer func() { _ = rows.Close() }()

	out := []*T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
