// Package client provides the core govInfo HTTP client with quota tracking,
// caching, retry, and error handling.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/openfederal/govinfo-client/pkg/cache"
	"github.com/openfederal/govinfo-client/pkg/logging"
	"github.com/openfederal/govinfo-client/pkg/ratelimit"
)

// DefaultBaseURL is the public govInfo API endpoint, fronted by api.data.gov.
const DefaultBaseURL = "https://api.govinfo.gov"

// Prometheus metrics for govInfo client operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "govinfo_requests_total",
		Help: "Total govInfo requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "govinfo_request_duration_seconds",
		Help:    "govInfo request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "govinfo_errors_total",
		Help: "Total govInfo errors by class",
	}, []string{"class"})
)

// Config holds the client configuration.
// It is passed explicitly into New; the client keeps no process-wide
// credential or base-URL state.
type Config struct {
	// BaseURL of the govInfo API (default: DefaultBaseURL).
	BaseURL string

	// APIKey is the api.data.gov API key (REQUIRED).
	// Sent as the X-Api-Key header on every request.
	APIKey string

	// UserAgent header value.
	UserAgent string

	// Redis client for response caching. nil disables caching.
	Redis *redis.Client

	// CacheTTL applied to responses without an Expires header.
	CacheTTL time.Duration

	// Client-side pacing. Zero disables the pacing limiter.
	RequestsPerSecond float64
	Burst             int

	// Retry policy applied to every request.
	Retry RetryConfig

	// Timeout for a single HTTP request.
	Timeout time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(apiKey string) Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		APIKey:            apiKey,
		UserAgent:         "govinfo-client/0.1.0",
		CacheTTL:          cache.DefaultTTL,
		RequestsPerSecond: 5,
		Burst:             5,
		Retry:             DefaultRetryConfig(),
		Timeout:           30 * time.Second,
	}
}

// Client is the main govInfo API client.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *ratelimit.Tracker
	cache       *cache.Manager
	config      Config
	logger      zerolog.Logger
}

// New creates a new govInfo client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = DefaultRetryConfig()
	}

	logger := logging.NewLogger("govinfo-client")

	rateLimiter := ratelimit.NewTracker(cfg.RequestsPerSecond, cfg.Burst, logger)

	var cacheManager *cache.Manager
	if cfg.Redis != nil {
		cacheManager = cache.NewManager(cfg.Redis, cfg.CacheTTL)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		rateLimiter: rateLimiter,
		cache:       cacheManager,
		config:      cfg,
		logger:      logger,
	}, nil
}

// Do performs an HTTP request with quota gating, caching, and bounded retry.
// This is the core request method that orchestrates all client features.
// Responses with 4xx status are returned to the caller without retry.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	endpoint := req.URL.Path

	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	// Step 1: Quota gate
	if err := c.rateLimiter.Acquire(ctx); err != nil {
		c.logger.Warn().
			Err(err).
			Str("endpoint", endpoint).
			Msg("Request blocked by quota tracker")
		requestsTotal.WithLabelValues(endpoint, "quota_blocked").Inc()
		return nil, fmt.Errorf("quota gate: %w", err)
	}

	// Step 2: Cache lookup
	var cacheKey cache.Key
	if c.cache != nil {
		cacheKey = cache.NewKey(req.URL)
		entry, err := c.cache.Get(ctx, cacheKey)
		if err != nil && err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Cache get error")
		}
		if entry != nil {
			c.logger.Debug().
				Str("endpoint", endpoint).
				Dur("ttl", entry.TTL()).
				Msg("Cache hit - replaying stored response")
			requestsTotal.WithLabelValues(endpoint, "cache_hit").Inc()
			return cache.EntryToResponse(entry), nil
		}
	}

	// Step 3: Credentials and standard headers
	req.Header.Set("X-Api-Key", c.config.APIKey)
	req.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("method", req.Method).
		Msg("Executing govInfo request")

	// Step 4: Execute with retry
	var resp *http.Response
	var errClass ErrorClass

	retryErr := retryWithBackoff(ctx, c.config.Retry, func() error {
		var reqErr error
		resp, reqErr = c.httpClient.Do(req)

		if reqErr != nil {
			c.logger.Error().Err(reqErr).Str("endpoint", endpoint).Msg("HTTP request failed")
			errClass = ErrorClassNetwork
			errorsTotal.WithLabelValues(string(errClass)).Inc()
			requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
			return reqErr
		}

		// Update quota state from api.data.gov headers
		if err := c.rateLimiter.UpdateFromHeaders(resp.Header); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to update quota state from headers")
		}

		if resp.StatusCode >= 400 {
			errClass = ClassifyStatus(resp.StatusCode)
			errorsTotal.WithLabelValues(string(errClass)).Inc()
			requestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

			c.logger.Warn().
				Str("endpoint", endpoint).
				Int("status", resp.StatusCode).
				Str("error_class", string(errClass)).
				Msg("govInfo request error")

			if shouldRetry(errClass) {
				apiErr := &APIError{
					StatusCode: resp.StatusCode,
					ErrorClass: errClass,
					Message:    resp.Status,
				}
				resp.Body.Close() // Close the body before retrying
				return apiErr
			}

			// Don't retry client errors - let caller handle the status
			return nil
		}

		requestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()
		return nil
	}, func(err error) ErrorClass {
		return errClass
	})

	if retryErr != nil {
		return nil, retryErr
	}

	// Step 5: Update cache on success
	if c.cache != nil && resp.StatusCode == http.StatusOK {
		entry, err := cache.ResponseToEntry(resp, c.config.CacheTTL)
		if err != nil {
			c.logger.Warn().Err(err).Msg("Failed to create cache entry")
		} else if entry.TTL() > 0 {
			if err := c.cache.Set(ctx, cacheKey, entry); err != nil {
				c.logger.Warn().Err(err).Msg("Failed to cache response")
			} else {
				c.logger.Debug().
					Str("endpoint", endpoint).
					Dur("ttl", entry.TTL()).
					Msg("Cached response")
			}
		}
	}

	return resp, nil
}

// Get performs a GET request. target may be an endpoint path
// (joined with the configured base URL) or an absolute URL, as
// returned in a page's nextPage field.
func (c *Client) Get(ctx context.Context, target string) (*http.Response, error) {
	rawURL := target
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		if !strings.HasPrefix(target, "/") {
			target = "/" + target
		}
		rawURL = c.baseURL + target
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	return c.Do(req)
}

// Quota returns a snapshot of the current api.data.gov quota state.
func (c *Client) Quota() ratelimit.QuotaState {
	return c.rateLimiter.Snapshot()
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close closes the client and releases resources.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// GetCache returns the cache manager, nil when caching is disabled (for testing).
func (c *Client) GetCache() *cache.Manager {
	return c.cache
}
