package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording through the package helpers", func() {
			recorders := []func(){
				RecordScoreUpdate,
				RecordScoreRejection,
				RecordRankQuery,
				RecordRangeQuery,
				func() { UpdateBoardSize(10) },
				func() { UpdateCustomersTotal(20) },
				func() { UpdateStoreLevel(4) },
				func() { RecordStoreUpdateLatency(1.5) },
				func() { RecordStoreQueryLatency(0.5) },
				func() { RecordHTTPRequest("leaderboard", "GET", "200") },
				func() { RecordHTTPRequestDuration("leaderboard", "GET", "200", 2.0) },
				func() { RecordErrorByComponent("repository", "not_found") },
				func() { RecordErrorByEndpoint("leaderboard", "GET", "client_error") },
				func() { UpdateSystemMemoryUsage(1024) },
				func() { UpdateSystemGoroutineCount(8) },
				func() { RecordSystemGCPauseTime(0.1) },
			}

			Convey("Then none of them should panic", func() {
				for _, record := range recorders {
					So(record, ShouldNotPanic)
				}
			})
		})

		Convey("When gathering the custom registry", func() {
			RecordScoreUpdate()
			families, err := GetRegistry().Gather()

			Convey("Then registered metrics are exposed", func() {
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)

				found := false
				for _, f := range families {
					if f.GetName() == "podium_leaderboard_score_updates_total" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}
