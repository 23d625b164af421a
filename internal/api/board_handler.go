package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/taskboard/internal/api/shared"
	"github.com/phrazzld/taskboard/internal/service"
)

// BoardHandler serves the read-only whole-board views.
type BoardHandler struct {
	board service.BoardService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(board service.BoardService) *BoardHandler {
	return &BoardHandler{board: board}
}

// GetCalendar handles GET /api/calendar.
func (h *BoardHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	cal, err := h.board.Calendar(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch calendar")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, calendarToResponse(cal))
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// healthTimeout bounds the database ping in the health check.
const healthTimeout = 2 * time.Second

// HealthHandler reports liveness and database reachability.
type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{db: db, logger: logger.With(slog.String("component", "health_handler"))}
}

// Health handles GET /health: 200 when the database answers a ping, 503 otherwise.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Database unavailable", err,
			shared.WithElevatedLogLevel())
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok", Database: "ok"})
}
