// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/courtside/matchday/internal/domain/model"
)

// GameDependencies defines the interface for game scheduling operations.
type GameDependencies interface {
	CreateGame(ctx context.Context, g model.Game) (model.Game, error)
	GetGame(ctx context.Context, id string) (model.Game, error)
}

// GamesHandler handles game scheduling requests.
type GamesHandler struct {
	deps GameDependencies
}

// NewGamesHandler creates a new games handler.
func NewGamesHandler(deps GameDependencies) *GamesHandler {
	return &GamesHandler{deps: deps}
}

// HandleCreateGame handles POST /games requests.
func (h *GamesHandler) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_game"
	var req gameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	game := model.Game{
		Title: req.Title,
		Venue: req.Venue,
	}
	if req.StartsAt != "" {
		// Already validated as RFC3339.
		game.StartsAt, _ = time.Parse(time.RFC3339, req.StartsAt)
	}

	created, err := h.deps.CreateGame(r.Context(), game)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleGetGame handles GET /games/{id} requests.
func (h *GamesHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.deps.GetGame(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}
