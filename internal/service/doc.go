// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and stores
// (defined in internal/store) to fulfill application features.
//
// Key components:
//
//   - SwimlaneService, ProjectService and TaskService apply partial updates
//     as load, patch, validate and write inside a single transaction.
//   - TaskService enforces the cross-row task rules: a parent must exist,
//     live in the same project and be a root task.
//   - BoardService assembles the full board and the calendar, and seeds the
//     sample board on request.
//
// Every committed mutation emits an events.ChangeEvent.
//
// The service layer depends on domain entities and store interfaces, never
// on a specific SQL dialect.
package service
