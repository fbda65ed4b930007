// Package metrics provides the Prometheus metrics registry reference for the
// govInfo client. All metrics are defined in their respective packages
// (client, cache, ratelimit, pagination) to maintain modularity and avoid
// circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the govInfo client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Quota Metrics (pkg/ratelimit):
//   - govinfo_ratelimit_remaining (Gauge): Requests remaining in the api.data.gov quota window
//   - govinfo_ratelimit_blocks_total (Counter): Requests blocked due to critical quota
//   - govinfo_ratelimit_throttles_total (Counter): Requests throttled due to low quota
//
// Cache Metrics (pkg/cache):
//   - govinfo_cache_hits_total{layer="redis"} (Counter): Cache hits by layer
//   - govinfo_cache_misses_total (Counter): Cache misses
//   - govinfo_cache_size_bytes{layer="redis"} (Gauge): Bytes written to cache
//   - govinfo_cache_errors_total{operation} (Counter): Cache operation errors
//
// Request Metrics (pkg/client):
//   - govinfo_requests_total{endpoint, status} (Counter): Total requests by endpoint and HTTP status
//   - govinfo_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - govinfo_errors_total{class} (Counter): Errors by class (client, server, rate_limit, network)
//
// Retry Metrics (pkg/client):
//   - govinfo_retries_total{error_class} (Counter): Retry attempts by error class
//   - govinfo_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - govinfo_retry_exhausted_total{error_class} (Counter): Requests that exhausted max attempts
//
// Pagination Metrics (pkg/pagination):
//   - govinfo_pages_fetched_total (Counter): Pages fetched across all paginated requests
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(govinfo_cache_hits_total[5m])) /
//   (sum(rate(govinfo_cache_hits_total[5m])) + sum(rate(govinfo_cache_misses_total[5m])))
//
//   # Quota Status
//   govinfo_ratelimit_remaining < 50
//
//   # Request Error Rate
//   rate(govinfo_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(govinfo_request_duration_seconds_bucket[5m]))
