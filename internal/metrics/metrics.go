// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderCallDuration observes the latency of every outbound AI provider call.
	// Labels: provider (openai/elevenlabs/deepgram), operation, status (ok/unavailable/auth_failure/...)
	ProviderCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "songlingo_provider_call_duration_seconds",
			Help:    "Latency of outbound AI provider calls by provider, operation and status",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"provider", "operation", "status"},
	)

	// ExercisesTotal counts exercises that went through materialization.
	// Labels: outcome (persisted/skipped)
	ExercisesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "songlingo_pronunciation_exercises_total",
			Help: "Pronunciation exercises processed by the pipeline by outcome",
		},
		[]string{"outcome"},
	)

	// PipelineRunsTotal counts exercise generation requests.
	// Labels: result (completed/partial/exhausted/failed)
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "songlingo_pronunciation_pipeline_runs_total",
			Help: "Exercise generation pipeline runs by result",
		},
		[]string{"result"},
	)

	// UploadAttemptsTotal counts object storage upload attempts.
	// Labels: status (success/error)
	UploadAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "songlingo_storage_upload_attempts_total",
			Help: "Object storage upload attempts by status",
		},
		[]string{"status"},
	)
)

// ObserveProviderCall records one provider call.
func ObserveProviderCall(provider, operation, status string, latency time.Duration) {
	ProviderCallDuration.WithLabelValues(provider, operation, status).Observe(latency.Seconds())
}

// RecordExercise records whether an exercise was persisted or skipped.
func RecordExercise(persisted bool) {
	outcome := "persisted"
	if !persisted {
		outcome = "skipped"
	}
	ExercisesTotal.WithLabelValues(outcome).Inc()
}

// RecordPipelineRun records the terminal result of one generation request.
func RecordPipelineRun(result string) {
	PipelineRunsTotal.WithLabelValues(result).Inc()
}

// RecordUploadAttempt records one object storage upload attempt.
func RecordUploadAttempt(success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	UploadAttemptsTotal.WithLabelValues(status).Inc()
}
