package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with empty or nil option values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithRegistry(registry),
			)

			Convey("Then defaults should be kept and creation succeed", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording allocation metrics", func() {
			Convey("Then it should record allocations", func() {
				So(func() {
					RecordAllocation()
					RecordAllocation()
				}, ShouldNotPanic)
			})

			Convey("And it should record allocation errors", func() {
				So(func() {
					RecordAllocationError()
				}, ShouldNotPanic)
			})

			Convey("And it should record allocation latency", func() {
				So(func() {
					RecordAllocationLatency(1.0)
					RecordAllocationLatency(15.0)
				}, ShouldNotPanic)
			})

			Convey("And it should record saved assignments", func() {
				So(func() {
					RecordAssignmentSaved()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording store metrics", func() {
			Convey("Then it should record votes by status", func() {
				So(func() {
					RecordVote("going")
					RecordVote("maybe")
					RecordVote("out")
				}, ShouldNotPanic)
			})

			Convey("And it should update roster and game gauges", func() {
				So(func() {
					UpdateRosterSize(24)
					UpdateGameCount(3)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording queue metrics", func() {
			So(func() {
				UpdateQueueCapacity(10000)
				UpdateQueueSize(12)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError("queue_full")
				RecordQueueEnqueueError("closed")
			}, ShouldNotPanic)
		})

		Convey("When recording worker metrics", func() {
			So(func() {
				UpdateWorkerCount(4)
				RecordWorkerError()
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("/players", "POST", "201")
				RecordHTTPRequest("/games", "GET", "200")
				RecordHTTPRequestDuration("/players", "POST", "201", 5.0)
				RecordHTTPRequestDuration("/games", "GET", "200", 2.5)
			}, ShouldNotPanic)
		})

		Convey("When recording system metrics", func() {
			So(func() {
				UpdateSystemMemoryUsage(1024 * 1024 * 100)
				UpdateSystemGoroutineCount(42)
			}, ShouldNotPanic)
		})
	})
}

func TestMetricsEdgeCases(t *testing.T) {
	Convey("Given metrics edge cases", t, func() {
		Convey("When using zero values", func() {
			So(func() {
				UpdateRosterSize(0)
				UpdateGameCount(0)
				UpdateQueueSize(0)
				UpdateWorkerCount(0)
				RecordAllocationLatency(0.0)
			}, ShouldNotPanic)
		})

		Convey("When using negative gauge values", func() {
			So(func() {
				UpdateQueueSize(-1)
				UpdateWorkerCount(-10)
			}, ShouldNotPanic)
		})

		Convey("When using empty label values", func() {
			So(func() {
				RecordVote("")
				RecordQueueEnqueueError("")
				RecordHTTPRequest("", "", "200")
				RecordHTTPRequestDuration("", "", "200", 1.0)
			}, ShouldNotPanic)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given metrics concurrency", t, func() {
		Convey("When recording metrics concurrently", func() {
			done := make(chan bool, 10)

			for i := 0; i < 10; i++ {
				go func() {
					for j := 0; j < 100; j++ {
						RecordAllocation()
						UpdateQueueSize(j)
						RecordAllocationLatency(float64(j))
						RecordHTTPRequest("/games", "GET", "200")
					}
					done <- true
				}()
			}

			for i := 0; i < 10; i++ {
				<-done
			}

			Convey("Then it should handle concurrent access without panics", func() {
				So(true, ShouldBeTrue)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the global registry", t, func() {
		Convey("When fetching it", func() {
			registry := GetRegistry()

			Convey("Then it should be non-nil and gatherable", func() {
				So(registry, ShouldNotBeNil)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldNotBeNil)
			})
		})
	})
}
