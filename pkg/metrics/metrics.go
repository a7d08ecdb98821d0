package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	UploadsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "tiernote", Name: "uploads_completed_total", Help: "Number of uploads that produced a persisted document."},
	)
	UploadsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "tiernote", Name: "uploads_failed_total", Help: "Number of failed uploads by pipeline stage."},
		[]string{"stage"},
	)
	GenerationRetries = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "tiernote", Name: "generation_retries_total", Help: "Number of retried tier-generation calls."},
	)
	UploadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: "tiernote", Name: "upload_duration_seconds", Help: "End-to-end upload pipeline duration.", Buckets: prometheus.DefBuckets},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "tiernote", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "tiernote", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(UploadsCompleted)
	reg.MustRegister(UploadsFailed)
	reg.MustRegister(GenerationRetries)
	reg.MustRegister(UploadDuration)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
