// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/courtside/matchday/internal/domain/types"
)

// TeamDependencies defines the interface for team generation and reads.
type TeamDependencies interface {
	GenerateTeams(ctx context.Context, gameID string) (types.AssignmentView, error)
	GetAssignment(ctx context.Context, gameID string) (types.AssignmentView, error)
}

// TeamsHandler handles team generation requests.
type TeamsHandler struct {
	deps TeamDependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamDependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

// HandleGenerateTeams handles POST /games/{id}/teams requests, running
// the balancer on the current attending roster and publishing the result.
func (h *TeamsHandler) HandleGenerateTeams(w http.ResponseWriter, r *http.Request) {
	view, err := h.deps.GenerateTeams(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// HandleGetTeams handles GET /games/{id}/teams requests.
func (h *TeamsHandler) HandleGetTeams(w http.ResponseWriter, r *http.Request) {
	view, err := h.deps.GetAssignment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
