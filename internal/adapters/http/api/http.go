// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/courtside/matchday/internal/adapters/repository"
	service "github.com/courtside/matchday/internal/app"
	"github.com/courtside/matchday/internal/domain/balance"
	"github.com/courtside/matchday/internal/domain/model"
	"github.com/courtside/matchday/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CreatePlayer(ctx context.Context, p model.Player) (model.Player, error)
	GetPlayer(ctx context.Context, id int64) (model.Player, error)
	ListPlayers(ctx context.Context, limit int) []types.RosterEntry

	CreateGame(ctx context.Context, g model.Game) (model.Game, error)
	GetGame(ctx context.Context, id string) (model.Game, error)

	CastVote(ctx context.Context, gameID string, playerID int64, status model.VoteStatus) error

	GenerateTeams(ctx context.Context, gameID string) (types.AssignmentView, error)
	GetAssignment(ctx context.Context, gameID string) (types.AssignmentView, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	playersHandler *PlayersHandler
	gamesHandler   *GamesHandler
	votesHandler   *VotesHandler
	teamsHandler   *TeamsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxRosterLimit int) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		playersHandler: NewPlayersHandler(deps, maxRosterLimit),
		gamesHandler:   NewGamesHandler(deps),
		votesHandler:   NewVotesHandler(deps),
		teamsHandler:   NewTeamsHandler(deps),
	}
}

// Register attaches all HTTP routes to the router.
func (s *Server) Register(_ context.Context, router *mux.Router) {
	router.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")).
		Methods(http.MethodGet)
	router.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats")).
		Methods(http.MethodGet)

	router.HandleFunc("/players", MetricsMiddleware(s.playersHandler.HandleCreatePlayer, "players")).
		Methods(http.MethodPost)
	router.HandleFunc("/players", MetricsMiddleware(s.playersHandler.HandleListPlayers, "players")).
		Methods(http.MethodGet)
	router.HandleFunc("/players/{id:[0-9]+}", MetricsMiddleware(s.playersHandler.HandleGetPlayer, "player")).
		Methods(http.MethodGet)

	router.HandleFunc("/games", MetricsMiddleware(s.gamesHandler.HandleCreateGame, "games")).
		Methods(http.MethodPost)
	router.HandleFunc("/games/{id}", MetricsMiddleware(s.gamesHandler.HandleGetGame, "game")).
		Methods(http.MethodGet)

	router.HandleFunc("/games/{id}/votes/{playerID:[0-9]+}", MetricsMiddleware(s.votesHandler.HandleCastVote, "votes")).
		Methods(http.MethodPut)

	router.HandleFunc("/games/{id}/teams", MetricsMiddleware(s.teamsHandler.HandleGenerateTeams, "teams")).
		Methods(http.MethodPost)
	router.HandleFunc("/games/{id}/teams", MetricsMiddleware(s.teamsHandler.HandleGetTeams, "teams")).
		Methods(http.MethodGet)
}

// playerRequest mirrors the OpenAPI schema for POST /players.
type playerRequest struct {
	Name         string  `json:"name"`
	Offense      float64 `json:"offense"`
	Defense      float64 `json:"defense"`
	BallHandling float64 `json:"ball_handling"`
	Overall      float64 `json:"overall,omitempty"`
}

func (p playerRequest) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("missing name")
	}
	return nil
}

// gameRequest mirrors the OpenAPI schema for POST /games.
type gameRequest struct {
	Title    string `json:"title"`
	Venue    string `json:"venue"`
	StartsAt string `json:"starts_at"`
}

func (g gameRequest) validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return errors.New("missing title")
	}
	if g.StartsAt != "" {
		if _, err := time.Parse(time.RFC3339, g.StartsAt); err != nil {
			return errors.New("invalid starts_at; must be RFC3339")
		}
	}
	return nil
}

// voteRequest mirrors the OpenAPI schema for PUT vote endpoints.
type voteRequest struct {
	Status string `json:"status"`
}

type ackResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service and repository errors into HTTP
// responses so each handler shares one mapping.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrInvalidPlayer),
		errors.Is(err, service.ErrInvalidGame),
		errors.Is(err, service.ErrInvalidVote):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, service.ErrBelowThreshold),
		errors.Is(err, balance.ErrInsufficientPlayers):
		writeError(w, http.StatusConflict, "below_threshold", err)
	case errors.Is(err, repository.ErrDuplicateGame):
		writeError(w, http.StatusConflict, "duplicate_game", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
