package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/courtside/matchday/internal/domain/model"
)

func newTestStore(t *testing.T) *MemStore {
	t.Helper()
	return NewMemStore(context.Background())
}

func addPlayer(t *testing.T, s *MemStore, name string, overall float64) model.Player {
	t.Helper()
	p, err := s.CreatePlayer(context.Background(), model.Player{
		Name:         name,
		Offense:      overall,
		Defense:      overall,
		BallHandling: overall,
		Overall:      overall,
	})
	if err != nil {
		t.Fatalf("CreatePlayer(%s): %v", name, err)
	}
	return p
}

func TestMemStore_Players(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p1 := addPlayer(t, s, "ana", 7.5)
	p2 := addPlayer(t, s, "ben", 9.0)
	p3 := addPlayer(t, s, "cal", 7.5)

	if p1.ID == p2.ID || p2.ID == p3.ID {
		t.Fatalf("ids not unique: %d %d %d", p1.ID, p2.ID, p3.ID)
	}

	got, err := s.GetPlayer(ctx, p2.ID)
	if err != nil {
		t.Fatalf("GetPlayer: %v", err)
	}
	if got.Name != "ben" {
		t.Errorf("GetPlayer name = %q, want ben", got.Name)
	}

	if _, err := s.GetPlayer(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPlayer(999) err = %v, want ErrNotFound", err)
	}

	// Ladder order: rating desc, id asc for ties.
	roster := s.ListPlayers(ctx)
	if len(roster) != 3 {
		t.Fatalf("ListPlayers len = %d, want 3", len(roster))
	}
	wantOrder := []int64{p2.ID, p1.ID, p3.ID}
	for i, want := range wantOrder {
		if roster[i].ID != want {
			t.Errorf("roster[%d].ID = %d, want %d", i, roster[i].ID, want)
		}
	}
}

func TestMemStore_GamesAndVotes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	game := model.Game{ID: "g1", Title: "tuesday run", StartsAt: time.Now()}
	if err := s.CreateGame(ctx, game); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if err := s.CreateGame(ctx, game); !errors.Is(err, ErrDuplicateGame) {
		t.Errorf("duplicate CreateGame err = %v, want ErrDuplicateGame", err)
	}

	p1 := addPlayer(t, s, "ana", 8)
	p2 := addPlayer(t, s, "ben", 6)
	p3 := addPlayer(t, s, "cal", 4)

	vote := func(playerID int64, status model.VoteStatus) error {
		return s.SetVote(ctx, model.Vote{GameID: "g1", PlayerID: playerID, Status: status, CastAt: time.Now()})
	}

	if err := vote(p1.ID, model.VoteGoing); err != nil {
		t.Fatalf("SetVote: %v", err)
	}
	if err := vote(p2.ID, model.VoteMaybe); err != nil {
		t.Fatalf("SetVote: %v", err)
	}
	if err := vote(p3.ID, model.VoteGoing); err != nil {
		t.Fatalf("SetVote: %v", err)
	}

	if err := s.SetVote(ctx, model.Vote{GameID: "nope", PlayerID: p1.ID, Status: model.VoteGoing}); !errors.Is(err, ErrNotFound) {
		t.Errorf("vote on unknown game err = %v, want ErrNotFound", err)
	}
	if err := s.SetVote(ctx, model.Vote{GameID: "g1", PlayerID: 999, Status: model.VoteGoing}); !errors.Is(err, ErrNotFound) {
		t.Errorf("vote by unknown player err = %v, want ErrNotFound", err)
	}

	attending, err := s.Attending(ctx, "g1")
	if err != nil {
		t.Fatalf("Attending: %v", err)
	}
	if len(attending) != 2 || attending[0].ID != p1.ID || attending[1].ID != p3.ID {
		t.Errorf("attending = %v, want [ana cal] in vote order", attending)
	}

	// Last vote wins: ben flips to going, cal bails.
	if err := vote(p2.ID, model.VoteGoing); err != nil {
		t.Fatalf("SetVote: %v", err)
	}
	if err := vote(p3.ID, model.VoteOut); err != nil {
		t.Fatalf("SetVote: %v", err)
	}

	attending, err = s.Attending(ctx, "g1")
	if err != nil {
		t.Fatalf("Attending: %v", err)
	}
	if len(attending) != 2 || attending[0].ID != p1.ID || attending[1].ID != p2.ID {
		t.Errorf("attending after flips = %v, want [ana ben]", attending)
	}
}

func TestMemStore_Assignments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateGame(ctx, model.Game{ID: "g1"}); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	if _, err := s.GetAssignment(ctx, "g1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAssignment before save err = %v, want ErrNotFound", err)
	}

	first := model.TeamAssignment{
		GameID:      "g1",
		TeamA:       []model.Player{{ID: 1, Overall: 8}},
		TeamB:       []model.Player{{ID: 2, Overall: 7}},
		GeneratedAt: time.Now(),
	}
	if err := s.SaveAssignment(ctx, first); err != nil {
		t.Fatalf("SaveAssignment: %v", err)
	}

	// Last write wins.
	second := first
	second.TeamA = []model.Player{{ID: 2, Overall: 7}}
	second.TeamB = []model.Player{{ID: 1, Overall: 8}}
	if err := s.SaveAssignment(ctx, second); err != nil {
		t.Fatalf("SaveAssignment: %v", err)
	}

	got, err := s.GetAssignment(ctx, "g1")
	if err != nil {
		t.Fatalf("GetAssignment: %v", err)
	}
	if got.TeamA[0].ID != 2 {
		t.Errorf("assignment not overwritten, teamA[0].ID = %d", got.TeamA[0].ID)
	}

	// Returned slices are copies.
	got.TeamA[0].ID = 42
	again, _ := s.GetAssignment(ctx, "g1")
	if again.TeamA[0].ID != 2 {
		t.Error("GetAssignment leaked internal slice")
	}

	if err := s.SaveAssignment(ctx, model.TeamAssignment{GameID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("SaveAssignment for unknown game err = %v, want ErrNotFound", err)
	}
}

func TestMemStore_Counts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	addPlayer(t, s, "ana", 5)
	addPlayer(t, s, "ben", 6)
	if err := s.CreateGame(ctx, model.Game{ID: "g1"}); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	players, games := s.Counts(ctx)
	if players != 2 || games != 1 {
		t.Errorf("Counts = (%d, %d), want (2, 1)", players, games)
	}
}
