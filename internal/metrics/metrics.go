// Package metrics defines Prometheus metrics for the storefront.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})
)

// Catalog metrics.
var (
	CatalogQueriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_queries_total",
		Help:      "Total number of catalog list queries served.",
	})

	CatalogQueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "catalog_query_duration_seconds",
		Help:      "Duration of catalog list queries in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	CatalogEmptyResultsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_empty_results_total",
		Help:      "Total number of catalog queries that matched no products.",
	})
)

// Catalog metadata refresh metrics.
var (
	MetaRefreshTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "meta_refresh_total",
		Help:      "Total number of catalog metadata refresh cycles.",
	})

	MetaRefreshErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "meta_refresh_errors_total",
		Help:      "Total number of failed catalog metadata refreshes.",
	})

	MetaRefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "meta_refresh_duration_seconds",
		Help:      "Duration of catalog metadata refresh cycles in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	CatalogProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_products",
		Help:      "Number of active products in the catalog as of the last refresh.",
	})
)

// Cart metrics.
var (
	CartOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_operations_total",
		Help:      "Total number of cart operations by kind.",
	}, []string{"op"})

	CartErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_errors_total",
		Help:      "Total number of failed cart operations.",
	})
)

// Order metrics.
var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders placed.",
	})
)

// Health gauges flipped by the health endpoints.
var (
	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the liveness endpoint is reporting healthy.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the readiness endpoint is reporting ready.",
	})
)
