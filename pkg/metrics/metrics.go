package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "prdforge"

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	// GenerationsTotal counts accepted documents by source (model or fallback).
	GenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "generations_total", Help: "Number of generated documents by source."},
		[]string{"source"},
	)
	// FallbackTotal counts fallback substitutions by the failure that caused them.
	FallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "fallback_total", Help: "Number of fallback documents by reason."},
		[]string{"reason"},
	)
	SectionRegenerations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "section_regenerations_total", Help: "Number of section regenerations by section and outcome."},
		[]string{"section", "outcome"},
	)
	GenerationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: namespace, Name: "generation_duration_seconds", Help: "Latency of generation endpoint calls.", Buckets: prometheus.ExponentialBuckets(0.25, 2, 8)},
		[]string{"provider"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(GenerationsTotal)
	reg.MustRegister(FallbackTotal)
	reg.MustRegister(SectionRegenerations)
	reg.MustRegister(GenerationDuration)
}
