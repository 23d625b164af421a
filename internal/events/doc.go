// Package events provides types and interfaces for an event-driven architecture.
//
// Services emit a ChangeEvent after every committed mutation of the board
// without knowing which handlers will process it. The server registers an
// ActivityLogHandler that records each change through slog.
//
// The primary components are:
// - ChangeEvent: a committed create, update, delete or toggle
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
