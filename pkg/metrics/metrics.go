package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docsign", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docsign", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)

	DocumentsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "docsign", Name: "documents_created_total", Help: "Number of documents created through the service."},
	)
	DocumentsSigned = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "docsign", Name: "documents_signed_total", Help: "Number of successful sign operations."},
	)
	// reason: validation | conflict
	SignRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docsign", Name: "document_sign_rejected_total", Help: "Number of rejected sign requests by reason."},
		[]string{"reason"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(DocumentsCreated)
	reg.MustRegister(DocumentsSigned)
	reg.MustRegister(SignRejected)
}
