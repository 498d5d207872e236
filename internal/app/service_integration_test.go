package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	service "github.com/courtside/matchday/internal/app"
	"github.com/courtside/matchday/internal/domain/model"
	"github.com/courtside/matchday/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func assignmentSize(v types.AssignmentView) int {
	return len(v.TeamA.Players) + len(v.TeamB.Players) + len(v.Bench.Players)
}

// waitForSize polls until the published assignment covers want players
// or the deadline passes.
func waitForSize(ctx context.Context, svc *service.Service, gameID string, want int) bool {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		view, err := svc.GetAssignment(ctx, gameID)
		if err == nil && assignmentSize(view) == want {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given a running service with a full roster", t, func() {
		svc := service.New(
			service.WithWorkerCount(2),
			service.WithQueueSize(1000),
			service.WithGenerationThreshold(2),
		)
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		game, err := svc.CreateGame(ctx, model.Game{Title: "Saturday run", Venue: "Main gym"})
		So(err, ShouldBeNil)

		players := make([]model.Player, 0, 8)
		for i := 0; i < 8; i++ {
			rating := float64(2 + i)
			p, createErr := svc.CreatePlayer(ctx, model.Player{
				Name:    fmt.Sprintf("player-%d", i),
				Offense: rating, Defense: rating, BallHandling: rating,
			})
			So(createErr, ShouldBeNil)
			So(svc.CastVote(ctx, game.ID, p.ID, model.VoteGoing), ShouldBeNil)
			players = append(players, p)
		}

		Convey("When teams are generated", func() {
			view, genErr := svc.GenerateTeams(ctx, game.ID)
			So(genErr, ShouldBeNil)
			So(assignmentSize(view), ShouldEqual, 8)

			Convey("And a player then drops out", func() {
				So(svc.CastVote(ctx, game.ID, players[0].ID, model.VoteOut), ShouldBeNil)

				Convey("Then the assignment is regenerated for the smaller roster", func() {
					So(waitForSize(ctx, svc, game.ID, 7), ShouldBeTrue)
				})
			})

			Convey("And a non-attending vote flips to going", func() {
				extra, createErr := svc.CreatePlayer(ctx, model.Player{
					Name: "late-joiner", Offense: 5, Defense: 5, BallHandling: 5,
				})
				So(createErr, ShouldBeNil)
				So(svc.CastVote(ctx, game.ID, extra.ID, model.VoteGoing), ShouldBeNil)

				Convey("Then the assignment grows to cover the new player", func() {
					So(waitForSize(ctx, svc, game.ID, 9), ShouldBeTrue)
				})
			})

			Convey("And the roster collapses below the allocator minimum", func() {
				for _, p := range players[:7] {
					So(svc.CastVote(ctx, game.ID, p.ID, model.VoteOut), ShouldBeNil)
				}

				Convey("Then the previous assignment stays published", func() {
					// Rebalance fails with one player; workers keep the
					// last good assignment in place.
					time.Sleep(200 * time.Millisecond)
					view, getErr := svc.GetAssignment(ctx, game.ID)
					So(getErr, ShouldBeNil)
					So(assignmentSize(view), ShouldBeGreaterThanOrEqualTo, 2)
				})
			})
		})

		Convey("When stats are read", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["players"], ShouldEqual, 8)
			So(stats["games"], ShouldEqual, 1)
		})
	})
}
