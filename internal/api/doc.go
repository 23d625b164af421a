// Package api exposes the board over JSON/HTTP. Handlers decode and validate
// requests, call the service layer and translate its errors into the
// {"error", "trace_id"} envelope; they hold no business rules of their own.
package api
