// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/courtside/matchday/internal/domain/model"
)

// VoteDependencies defines the interface for attendance voting.
type VoteDependencies interface {
	CastVote(ctx context.Context, gameID string, playerID int64, status model.VoteStatus) error
}

// VotesHandler handles attendance vote requests.
type VotesHandler struct {
	deps VoteDependencies
}

// NewVotesHandler creates a new votes handler.
func NewVotesHandler(deps VoteDependencies) *VotesHandler {
	return &VotesHandler{deps: deps}
}

// HandleCastVote handles PUT /games/{id}/votes/{playerID} requests.
// Votes are upserts; the last one per player wins.
func (h *VotesHandler) HandleCastVote(w http.ResponseWriter, r *http.Request) {
	const op = "api.cast_vote"
	vars := mux.Vars(r)
	playerID, err := strconv.ParseInt(vars["playerID"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	if err := h.deps.CastVote(r.Context(), vars["id"], playerID, model.VoteStatus(req.Status)); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "recorded"})
}
