// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "culina",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "culina",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	FeedSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "culina",
		Name:      "feed_subscribers",
		Help:      "Open shared-recipe feed subscriptions.",
	})

	RecipeGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "culina",
		Name:      "recipe_generations_total",
		Help:      "AI recipe generation calls by outcome.",
	}, []string{"outcome"})
)
