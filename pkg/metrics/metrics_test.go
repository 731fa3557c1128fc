package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

// value reads the current counter, gauge or histogram sample count.
func value(c prometheus.Metric) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return -1
	}
	switch {
	case m.Counter != nil:
		return m.Counter.GetValue()
	case m.Gauge != nil:
		return m.Gauge.GetValue()
	case m.Histogram != nil:
		return float64(m.Histogram.GetSampleCount())
	}
	return -1
}

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("grading"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			m.RecordGradingError("invalid_rubric")

			Convey("Then metric names and labels follow the options", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				var names []string
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_grading_grading_errors_total")
				So(m.latencyBuckets, ShouldResemble, []float64{1, 10, 100})

				for _, f := range families {
					if f.GetName() == "test_grading_grading_errors_total" {
						labels := f.GetMetric()[0].GetLabel()
						found := false
						for _, l := range labels {
							if l.GetName() == "env" && l.GetValue() == "test" {
								found = true
							}
						}
						So(found, ShouldBeTrue)
					}
				}
			})
		})

		Convey("When empty options are given", func() {
			m := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then defaults are kept", func() {
				So(m.namespace, ShouldEqual, defaultNamespace)
				So(m.subsystem, ShouldEqual, defaultSubsystem)
				So(m.latencyBuckets, ShouldResemble, defaultLatencyBuckets)
			})
		})
	})
}

func TestManagerRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When grading outcomes are recorded", func() {
			m.RecordGraded("Math", 82.5, false)
			m.RecordGraded("Math", 40, true)
			m.RecordGraded("Science", 91, false)
			m.RecordGradingLatency(1.5)

			Convey("Then counters reflect them", func() {
				So(value(m.graded.WithLabelValues("Math")), ShouldEqual, 2)
				So(value(m.graded.WithLabelValues("Science")), ShouldEqual, 1)
				So(value(m.lengthViolations), ShouldEqual, 1)
				So(value(m.totalScore.WithLabelValues("Math").(prometheus.Metric)), ShouldEqual, 2)
			})
		})

		Convey("When recommendations are recorded", func() {
			m.RecordRecommendation("Beginner", "remediation")
			m.RecordRecommendation("Beginner", "remediation")
			m.RecordEnrichmentPlan()
			m.RecordMasteryWarnings(3)
			m.RecordWeakSubject("History")

			Convey("Then counters reflect them", func() {
				So(value(m.recommendations.WithLabelValues("Beginner", "remediation")), ShouldEqual, 2)
				So(value(m.enrichmentPlans), ShouldEqual, 1)
				So(value(m.masteryWarnings), ShouldEqual, 3)
				So(value(m.weakSubjects.WithLabelValues("History")), ShouldEqual, 1)
			})
		})

		Convey("When queue and worker state changes", func() {
			m.UpdateQueue(25, 100)
			m.RecordQueueEnqueue()
			m.RecordQueueDequeue()
			m.RecordQueueEnqueueError()
			m.UpdateWorkerCount(4)
			m.UpdateWorkerActive(2)
			m.RecordWorkerError()
			m.RecordWorkerProcessingLatency(3)

			Convey("Then gauges reflect it", func() {
				So(value(m.queueSize), ShouldEqual, 25)
				So(value(m.queueUtilization), ShouldEqual, 0.25)
				So(value(m.queueEnqueueErrors), ShouldEqual, 1)
				So(value(m.workerCount), ShouldEqual, 4)
				So(value(m.workerActive), ShouldEqual, 2)
				So(value(m.workerErrors), ShouldEqual, 1)
			})
		})

		Convey("When repository and HTTP activity is recorded", func() {
			m.UpdateRepositoryShards(8)
			m.UpdateRepositoryRecords("results", 12)
			m.RecordRepositoryUpdateLatency(0.2)
			m.RecordHTTPRequest("/healthz", "GET", "200", 0.4)

			Convey("Then values are exported", func() {
				So(value(m.repositoryShards), ShouldEqual, 8)
				So(value(m.repositoryRecords.WithLabelValues("results")), ShouldEqual, 12)
				So(value(m.httpRequests.WithLabelValues("/healthz", "GET", "200")), ShouldEqual, 1)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global registry", t, func() {
		So(func() {
			RecordGraded("History", 77, false)
			RecordGradingError("empty_submission")
			RecordGradingLatency(2)
			RecordRecommendation("Advanced", "enrichment")
			RecordEnrichmentPlan()
			RecordMasteryWarnings(1)
			RecordWeakSubject("Math")
			UpdateQueue(1, 10)
			RecordQueueEnqueue()
			RecordQueueDequeue()
			RecordQueueEnqueueError()
			UpdateWorkerCount(2)
			UpdateWorkerActive(1)
			RecordWorkerProcessingLatency(1)
			RecordWorkerError()
			UpdateRepositoryShards(4)
			UpdateRepositoryRecords("vectors", 3)
			RecordRepositoryUpdateLatency(0.1)
			RecordHTTPRequest("/metrics", "GET", "200", 1)
		}, ShouldNotPanic)

		Convey("Then the global registry exposes the engine metrics", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			var enrichment float64
			for _, f := range families {
				if f.GetName() == "edututor_engine_enrichment_plans_total" {
					enrichment = f.GetMetric()[0].GetCounter().GetValue()
				}
			}
			So(enrichment, ShouldEqual, 1)
		})
	})
}
