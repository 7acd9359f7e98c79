// Package metrics содержит метрики Prometheus сервиса каталога.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	CommentConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_comment_conflicts_total",
			Help: "Comments rejected as duplicates",
		},
	)

	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_requests_total",
			Help: "Product cache lookups by result",
		},
		[]string{"result"}, // hit, miss, error
	)

	OutboxPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_outbox_published_total",
			Help: "Outbox events shipped to Kafka by result",
		},
		[]string{"result"}, // ok, retry, failed
	)
)

// RecordHTTPRequest записывает метрики одного HTTP-запроса.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordCommentConflict() {
	CommentConflicts.Inc()
}

// RecordCacheLookup учитывает попадания и промахи кэша товаров.
func RecordCacheLookup(hits, misses int) {
	if hits > 0 {
		CacheRequests.WithLabelValues("hit").Add(float64(hits))
	}
	if misses > 0 {
		CacheRequests.WithLabelValues("miss").Add(float64(misses))
	}
}

func RecordCacheError() {
	CacheRequests.WithLabelValues("error").Inc()
}

func RecordOutboxPublish(result string) {
	OutboxPublished.WithLabelValues(result).Inc()
}
