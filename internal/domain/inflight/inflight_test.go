package inflight_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	inflight "github.com/courtside/matchday/internal/domain/inflight"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryTracker(t *testing.T) {
	Convey("Given a new in-flight tracker", t, func() {
		Convey("When created with default options", func() {
			tr := inflight.NewInMemoryTracker()

			Convey("Then it should start empty", func() {
				So(tr, ShouldNotBeNil)
				So(tr.Size(), ShouldEqual, 0)
			})
		})

		Convey("When acquiring ids", func() {
			tr := inflight.NewInMemoryTracker()
			ctx := context.Background()

			Convey("And the id is free", func() {
				ok := tr.Acquire(ctx, "game-1")

				Convey("Then the claim succeeds", func() {
					So(ok, ShouldBeTrue)
					So(tr.Size(), ShouldEqual, 1)
				})
			})

			Convey("And the id is already held", func() {
				tr.Acquire(ctx, "game-1")
				ok := tr.Acquire(ctx, "game-1")

				Convey("Then the second claim is refused", func() {
					So(ok, ShouldBeFalse)
					So(tr.Size(), ShouldEqual, 1)
				})
			})

			Convey("And the id was released in between", func() {
				tr.Acquire(ctx, "game-1")
				tr.Release(ctx, "game-1")
				ok := tr.Acquire(ctx, "game-1")

				Convey("Then the claim succeeds again", func() {
					So(ok, ShouldBeTrue)
					So(tr.Size(), ShouldEqual, 1)
				})
			})
		})

		Convey("When releasing an id that was never acquired", func() {
			tr := inflight.NewInMemoryTracker()
			tr.Release(context.Background(), "ghost")

			Convey("Then nothing changes", func() {
				So(tr.Size(), ShouldEqual, 0)
			})
		})

		Convey("When the tracker is at capacity", func() {
			tr := inflight.NewInMemoryTracker(inflight.WithMaxSize(2))
			ctx := context.Background()
			So(tr.Acquire(ctx, "a"), ShouldBeTrue)
			So(tr.Acquire(ctx, "b"), ShouldBeTrue)

			Convey("Then new claims are refused until something frees up", func() {
				So(tr.Acquire(ctx, "c"), ShouldBeFalse)
				tr.Release(ctx, "a")
				So(tr.Acquire(ctx, "c"), ShouldBeTrue)
			})
		})
	})
}

func TestInMemoryTracker_Concurrent(t *testing.T) {
	Convey("Given concurrent claims on the same ids", t, func() {
		tr := inflight.NewInMemoryTracker()
		ctx := context.Background()

		const goroutines = 16
		const ids = 10

		var wg sync.WaitGroup
		wins := make(chan string, goroutines*ids)

		for g := 0; g < goroutines; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < ids; i++ {
					id := fmt.Sprintf("game-%d", i)
					if tr.Acquire(ctx, id) {
						wins <- id
					}
				}
			}()
		}
		wg.Wait()
		close(wins)

		Convey("Then each id is claimed exactly once", func() {
			counts := make(map[string]int)
			for id := range wins {
				counts[id]++
			}
			So(counts, ShouldHaveLength, ids)
			for _, c := range counts {
				So(c, ShouldEqual, 1)
			}
			So(tr.Size(), ShouldEqual, ids)
		})
	})
}
