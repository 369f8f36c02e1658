package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rejection reasons for whole batches.
const (
	ReasonEmptyBatch   = "empty_batch"
	ReasonBatchTooBig  = "batch_too_large"
	ReasonNoValidEvent = "no_valid_events"
	ReasonStorage      = "storage_error"
)

var (
	// Ingestion
	EventsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "behavior_events_received_total",
		Help: "Events submitted to the track endpoint",
	})

	EventsValid = promauto.NewCounter(prometheus.CounterOpts{
		Name: "behavior_events_valid_total",
		Help: "Events that passed validation",
	})

	EventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "behavior_events_dropped_total",
		Help: "Events excluded from a batch by validation",
	})

	EventsInserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "behavior_events_inserted_total",
		Help: "Events written as new rows",
	})

	EventsDuplicate = promauto.NewCounter(prometheus.CounterOpts{
		Name: "behavior_events_duplicate_total",
		Help: "Events skipped because their event_id already existed",
	})

	BatchesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "behavior_batches_rejected_total",
			Help: "Track requests rejected as a whole",
		},
		[]string{"reason"},
	)

	BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "behavior_batch_size",
		Help:    "Number of events per accepted track request",
		Buckets: []float64{1, 5, 10, 25, 50, 75, 100},
	})

	// Storage
	StoreDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "behavior_store_duration_seconds",
			Help:    "Duration of event store calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "behavior_store_errors_total",
			Help: "Failed event store calls",
		},
		[]string{"operation"},
	)

	// Retention
	RetentionPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "behavior_retention_purged_rows_total",
		Help: "Rows deleted by retention purges",
	})

	RetentionRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "behavior_retention_runs_total",
			Help: "Retention purge runs by result",
		},
		[]string{"result"}, // success | failure
	)

	RetentionLastSuccess = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "behavior_retention_last_success_timestamp",
		Help: "Unix time of the last successful purge",
	})

	// Suggestion
	SuggestionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "behavior_suggestions_total",
			Help: "Suggestion attempts by result",
		},
		[]string{"mode", "result"}, // result: success | failure | panic
	)

	GeneratorRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "behavior_generator_requests_total",
			Help: "Text generator calls by provider and result",
		},
		[]string{"provider", "result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "behavior_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "behavior_api_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "behavior_api_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIRateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "behavior_api_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	})
)

// RecordBatch records the counts of one accepted track request.
func RecordBatch(received, valid int, inserted, duplicates int64) {
	EventsReceived.Add(float64(received))
	EventsValid.Add(float64(valid))
	EventsDropped.Add(float64(received - valid))
	EventsInserted.Add(float64(inserted))
	EventsDuplicate.Add(float64(duplicates))
	BatchSize.Observe(float64(received))
}

// RecordRejectedBatch records a track request rejected as a whole.
func RecordRejectedBatch(reason string, received int) {
	BatchesRejected.WithLabelValues(reason).Inc()
	EventsReceived.Add(float64(received))
}

// RecordStoreCall records the latency of one event store call.
func RecordStoreCall(operation string, duration time.Duration, err error) {
	StoreDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(operation).Inc()
	}
}

// RecordPurge records one retention run.
func RecordPurge(deleted int64, err error) {
	if err != nil {
		RetentionRuns.WithLabelValues("failure").Inc()
		return
	}
	RetentionRuns.WithLabelValues("success").Inc()
	RetentionPurged.Add(float64(deleted))
	RetentionLastSuccess.Set(float64(time.Now().Unix()))
}

// RecordAPIRequest records an HTTP request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
