package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskboard/internal/api/shared"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/service"
)

// SwimlaneHandler handles /api/swimlanes requests. Listing returns the whole
// board, so it also depends on the board service.
type SwimlaneHandler struct {
	swimlanes service.SwimlaneService
	board     service.BoardService
	logger    *slog.Logger
}

// NewSwimlaneHandler creates a new SwimlaneHandler.
func NewSwimlaneHandler(
	swimlanes service.SwimlaneService,
	board service.BoardService,
	logger *slog.Logger,
) *SwimlaneHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SwimlaneHandler")
	}
	return &SwimlaneHandler{
		swimlanes: swimlanes,
		board:     board,
		logger:    logger.With(slog.String("component", "swimlane_handler")),
	}
}

// ListSwimlanes handles GET /api/swimlanes.
func (h *SwimlaneHandler) ListSwimlanes(w http.ResponseWriter, r *http.Request) {
	board, err := h.board.GetBoard(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch swimlanes")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, boardToResponse(board))
}

// CreateSwimlane handles POST /api/swimlanes. The body either describes a
// new swimlane or is {"action": "initialize"}, which seeds the sample board
// and returns the full board.
func (h *SwimlaneHandler) CreateSwimlane(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateSwimlaneRequest
	if !decode(w, r, &req) {
		return
	}

	switch req.Action {
	case "":
	case ActionInitialize:
		h.initialize(w, r, log)
		return
	default:
		shared.RespondWithError(w, r, http.StatusBadRequest, "Unknown action")
		return
	}

	if !validate(w, r, &req) {
		return
	}

	swimlane, err := h.swimlanes.Create(r.Context(), req.Title, req.Color)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create swimlane")
		return
	}

	log.Debug("swimlane created", slog.String("swimlane_id", swimlane.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, swimlaneToResponse(swimlane))
}

func (h *SwimlaneHandler) initialize(w http.ResponseWriter, r *http.Request, log *slog.Logger) {
	seeded, err := h.board.InitializeSampleData(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to initialize sample data")
		return
	}
	log.Debug("sample data requested", slog.Bool("seeded", seeded))

	h.ListSwimlanes(w, r)
}

// UpdateSwimlane handles PUT /api/swimlanes/{id}.
func (h *SwimlaneHandler) UpdateSwimlane(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateSwimlaneRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	swimlane, err := h.swimlanes.Update(r.Context(), id, domain.SwimlanePatch{
		Title: req.Title,
		Color: req.Color,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update swimlane")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, swimlaneToResponse(swimlane))
}

// DeleteSwimlane handles DELETE /api/swimlanes/{id}.
func (h *SwimlaneHandler) DeleteSwimlane(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.swimlanes.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete swimlane")
		return
	}
	shared.RespondWithSuccess(w, r)
}
