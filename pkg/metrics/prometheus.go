// Package metrics provides Prometheus metrics for the assessment engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metric naming.
const (
	defaultNamespace = "edututor"
	defaultSubsystem = "engine"
)

var (
	defaultLatencyBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250}
	scoreBuckets          = []float64{10, 20, 30, 40, 50, 60, 70, 75, 80, 85, 90, 95, 100}
)

// Manager owns every engine metric on one registry.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	constLabels    prometheus.Labels
	registry       prometheus.Registerer

	// Grading
	graded           *prometheus.CounterVec
	gradingErrors    *prometheus.CounterVec
	gradingLatency   prometheus.Histogram
	totalScore       *prometheus.HistogramVec
	lengthViolations prometheus.Counter

	// Mastery and recommendations
	recommendations *prometheus.CounterVec
	enrichmentPlans prometheus.Counter
	masteryWarnings prometheus.Counter
	weakSubjects    *prometheus.CounterVec

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Workers
	workerCount             prometheus.Gauge
	workerActive            prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// Repository
	repositoryShards        prometheus.Gauge
	repositoryRecords       *prometheus.GaugeVec
	repositoryUpdateLatency prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      defaultNamespace,
		subsystem:      defaultSubsystem,
		latencyBuckets: defaultLatencyBuckets,
		registry:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gauge(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets, ConstLabels: m.constLabels}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	auto := promauto.With(m.registry)

	m.graded = auto.NewCounterVec(m.counter("submissions_graded_total", "Submissions graded, by rubric subject"), []string{"subject"})
	m.gradingErrors = auto.NewCounterVec(m.counter("grading_errors_total", "Grading failures, by reason"), []string{"reason"})
	m.gradingLatency = auto.NewHistogram(m.histogram("grading_latency_milliseconds", "Time to grade one submission in milliseconds", m.latencyBuckets))
	m.totalScore = auto.NewHistogramVec(m.histogram("total_score", "Distribution of total scores, by subject", scoreBuckets), []string{"subject"})
	m.lengthViolations = auto.NewCounter(m.counter("length_violations_total", "Submissions outside the rubric word range"))

	m.recommendations = auto.NewCounterVec(m.counter("recommendations_total", "Recommendations produced, by tier and kind"), []string{"tier", "kind"})
	m.enrichmentPlans = auto.NewCounter(m.counter("enrichment_plans_total", "Plans that took the enrichment branch"))
	m.masteryWarnings = auto.NewCounter(m.counter("mastery_warnings_total", "Out-of-range scores clamped during evaluation"))
	m.weakSubjects = auto.NewCounterVec(m.counter("weak_subjects_total", "Weak-area flags raised, by subject"), []string{"subject"})

	m.queueSize = auto.NewGauge(m.gauge("queue_size", "Current submission queue depth"))
	m.queueCapacity = auto.NewGauge(m.gauge("queue_capacity", "Maximum submission queue depth"))
	m.queueUtilization = auto.NewGauge(m.gauge("queue_utilization_ratio", "Queue depth divided by capacity"))
	m.queueEnqueued = auto.NewCounter(m.counter("queue_enqueued_total", "Submissions enqueued"))
	m.queueDequeued = auto.NewCounter(m.counter("queue_dequeued_total", "Submissions dequeued"))
	m.queueEnqueueErrors = auto.NewCounter(m.counter("queue_enqueue_errors_total", "Submissions rejected by a full or closed queue"))

	m.workerCount = auto.NewGauge(m.gauge("worker_count", "Configured grading workers"))
	m.workerActive = auto.NewGauge(m.gauge("worker_active", "Workers currently grading"))
	m.workerProcessingLatency = auto.NewHistogram(m.histogram("worker_processing_latency_milliseconds", "Per-job worker latency in milliseconds", m.latencyBuckets))
	m.workerErrors = auto.NewCounter(m.counter("worker_errors_total", "Jobs that failed in a worker"))

	m.repositoryShards = auto.NewGauge(m.gauge("repository_shards", "Shards in the result store"))
	m.repositoryRecords = auto.NewGaugeVec(m.gauge("repository_records", "Records held in the result store, by kind"), []string{"kind"})
	m.repositoryUpdateLatency = auto.NewHistogram(m.histogram("repository_update_latency_milliseconds", "Result store write latency in milliseconds", m.latencyBuckets))

	m.httpRequests = auto.NewCounterVec(m.counter("http_requests_total", "HTTP requests by endpoint, method and status"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogram("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.latencyBuckets), []string{"endpoint", "method", "status_code"})
}

// Grading.

// RecordGraded counts a graded submission and observes its total.
func (m *Manager) RecordGraded(subject string, total float64, lengthViolation bool) {
	m.graded.WithLabelValues(subject).Inc()
	m.totalScore.WithLabelValues(subject).Observe(total)
	if lengthViolation {
		m.lengthViolations.Inc()
	}
}

// RecordGradingError counts a failed grading attempt.
func (m *Manager) RecordGradingError(reason string) {
	m.gradingErrors.WithLabelValues(reason).Inc()
}

// RecordGradingLatency observes grading latency in milliseconds.
func (m *Manager) RecordGradingLatency(latencyMs float64) {
	m.gradingLatency.Observe(latencyMs)
}

// Mastery and recommendations.

// RecordRecommendation counts one recommendation.
func (m *Manager) RecordRecommendation(tier, kind string) {
	m.recommendations.WithLabelValues(tier, kind).Inc()
}

// RecordEnrichmentPlan counts a plan on the enrichment branch.
func (m *Manager) RecordEnrichmentPlan() {
	m.enrichmentPlans.Inc()
}

// RecordMasteryWarnings adds clamped-score warnings.
func (m *Manager) RecordMasteryWarnings(n int) {
	m.masteryWarnings.Add(float64(n))
}

// RecordWeakSubject counts a weak-area flag.
func (m *Manager) RecordWeakSubject(subject string) {
	m.weakSubjects.WithLabelValues(subject).Inc()
}

// Queue.

// UpdateQueue sets depth, capacity and utilization in one call.
func (m *Manager) UpdateQueue(size, capacity int) {
	m.queueSize.Set(float64(size))
	m.queueCapacity.Set(float64(capacity))
	if capacity > 0 {
		m.queueUtilization.Set(float64(size) / float64(capacity))
	}
}

// RecordQueueEnqueue counts an enqueued submission.
func (m *Manager) RecordQueueEnqueue() { m.queueEnqueued.Inc() }

// RecordQueueDequeue counts a dequeued submission.
func (m *Manager) RecordQueueDequeue() { m.queueDequeued.Inc() }

// RecordQueueEnqueueError counts a rejected submission.
func (m *Manager) RecordQueueEnqueueError() { m.queueEnqueueErrors.Inc() }

// Workers.

// UpdateWorkerCount sets the configured worker count.
func (m *Manager) UpdateWorkerCount(count int) { m.workerCount.Set(float64(count)) }

// UpdateWorkerActive sets the number of busy workers.
func (m *Manager) UpdateWorkerActive(count int) { m.workerActive.Set(float64(count)) }

// RecordWorkerProcessingLatency observes one job's latency in milliseconds.
func (m *Manager) RecordWorkerProcessingLatency(latencyMs float64) {
	m.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError counts a failed job.
func (m *Manager) RecordWorkerError() { m.workerErrors.Inc() }

// Repository.

// UpdateRepositoryShards sets the shard count.
func (m *Manager) UpdateRepositoryShards(count int) { m.repositoryShards.Set(float64(count)) }

// UpdateRepositoryRecords sets the record count for kind ("results" or "vectors").
func (m *Manager) UpdateRepositoryRecords(kind string, count int) {
	m.repositoryRecords.WithLabelValues(kind).Set(float64(count))
}

// RecordRepositoryUpdateLatency observes a write latency in milliseconds.
func (m *Manager) RecordRepositoryUpdateLatency(latencyMs float64) {
	m.repositoryUpdateLatency.Observe(latencyMs)
}

// HTTP.

// RecordHTTPRequest counts a request and observes its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// Package-level helpers record on the global manager.

// RecordGraded counts a graded submission on the global manager.
func RecordGraded(subject string, total float64, lengthViolation bool) {
	globalManager.RecordGraded(subject, total, lengthViolation)
}

// RecordGradingError counts a failed grading attempt.
func RecordGradingError(reason string) { globalManager.RecordGradingError(reason) }

// RecordGradingLatency observes grading latency in milliseconds.
func RecordGradingLatency(latencyMs float64) { globalManager.RecordGradingLatency(latencyMs) }

// RecordRecommendation counts one recommendation.
func RecordRecommendation(tier, kind string) { globalManager.RecordRecommendation(tier, kind) }

// RecordEnrichmentPlan counts a plan on the enrichment branch.
func RecordEnrichmentPlan() { globalManager.RecordEnrichmentPlan() }

// RecordMasteryWarnings adds clamped-score warnings.
func RecordMasteryWarnings(n int) { globalManager.RecordMasteryWarnings(n) }

// RecordWeakSubject counts a weak-area flag.
func RecordWeakSubject(subject string) { globalManager.RecordWeakSubject(subject) }

// UpdateQueue sets queue depth and capacity.
func UpdateQueue(size, capacity int) { globalManager.UpdateQueue(size, capacity) }

// RecordQueueEnqueue counts an enqueued submission.
func RecordQueueEnqueue() { globalManager.RecordQueueEnqueue() }

// RecordQueueDequeue counts a dequeued submission.
func RecordQueueDequeue() { globalManager.RecordQueueDequeue() }

// RecordQueueEnqueueError counts a rejected submission.
func RecordQueueEnqueueError() { globalManager.RecordQueueEnqueueError() }

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) { globalManager.UpdateWorkerCount(count) }

// UpdateWorkerActive sets the number of busy workers.
func UpdateWorkerActive(count int) { globalManager.UpdateWorkerActive(count) }

// RecordWorkerProcessingLatency observes one job's latency in milliseconds.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.RecordWorkerProcessingLatency(latencyMs)
}

// RecordWorkerError counts a failed job.
func RecordWorkerError() { globalManager.RecordWorkerError() }

// UpdateRepositoryShards sets the shard count.
func UpdateRepositoryShards(count int) { globalManager.UpdateRepositoryShards(count) }

// UpdateRepositoryRecords sets the record count for kind.
func UpdateRepositoryRecords(kind string, count int) {
	globalManager.UpdateRepositoryRecords(kind, count)
}

// RecordRepositoryUpdateLatency observes a write latency in milliseconds.
func RecordRepositoryUpdateLatency(latencyMs float64) {
	globalManager.RecordRepositoryUpdateLatency(latencyMs)
}

// RecordHTTPRequest counts a request and observes its duration.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

