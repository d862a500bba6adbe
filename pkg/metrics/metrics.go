package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "course_service"

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	// CourseOperations counts course service calls by operation and outcome
	// (ok, not_found, invalid, conflict, error).
	CourseOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "course_operations_total", Help: "Course service operations by outcome."},
		[]string{"op", "result"},
	)
	UploadBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "upload_bytes_total", Help: "Bytes accepted by upload target."},
		[]string{"target"},
	)
	GeneratedLessons = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "generated_lessons_total", Help: "Lessons produced by the content generator."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(CourseOperations)
	reg.MustRegister(UploadBytes)
	reg.MustRegister(GeneratedLessons)
}
