package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Prometheus metrics for quota tracking.
var (
	quotaRemaining = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "govinfo_ratelimit_remaining",
		Help: "Requests remaining in the current api.data.gov quota window",
	})

	quotaBlocksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "govinfo_ratelimit_blocks_total",
		Help: "Total number of requests blocked due to critical quota",
	})

	quotaThrottlesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "govinfo_ratelimit_throttles_total",
		Help: "Total number of requests throttled due to low quota",
	})
)

// ErrQuotaCritical is returned when the remaining quota is too low
// to safely issue another request.
var ErrQuotaCritical = errors.New("api.data.gov quota critical")

// throttleDelay is the pause applied per request while in the warning band.
const throttleDelay = 500 * time.Millisecond

// Tracker monitors the api.data.gov quota and paces outgoing requests.
type Tracker struct {
	mu      sync.Mutex
	state   QuotaState
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewTracker creates a new quota tracker.
// requestsPerSecond and burst configure client-side pacing;
// zero or negative values disable pacing.
func NewTracker(requestsPerSecond float64, burst int, logger zerolog.Logger) *Tracker {
	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}

	return &Tracker{
		state: QuotaState{
			Remaining: RemainingUnknown,
			IsHealthy: true,
		},
		limiter: limiter,
		logger:  logger,
	}
}

// Snapshot returns a copy of the current quota state.
func (t *Tracker) Snapshot() QuotaState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Acquire blocks until a request may be issued.
// Returns ErrQuotaCritical when the remaining quota is below the
// critical threshold, or the context error on cancellation.
func (t *Tracker) Acquire(ctx context.Context) error {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	t.mu.Lock()
	state := t.state
	t.mu.Unlock()

	if state.NeedsCriticalBlock() {
		t.logger.Error().
			Int("remaining", state.Remaining).
			Int("limit", state.Limit).
			Msg("api.data.gov quota critical - blocking request")

		quotaBlocksTotal.Inc()
		return fmt.Errorf("%w: %d requests remaining", ErrQuotaCritical, state.Remaining)
	}

	if state.NeedsThrottling() {
		t.logger.Warn().
			Int("remaining", state.Remaining).
			Msg("api.data.gov quota low - throttling request")

		quotaThrottlesTotal.Inc()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(throttleDelay):
		}
	}

	return nil
}

// UpdateFromHeaders parses api.data.gov quota headers and updates state.
// Responses without the headers (e.g. from the mock server) are ignored.
func (t *Tracker) UpdateFromHeaders(headers http.Header) error {
	remainStr := headers.Get("X-RateLimit-Remaining")
	if remainStr == "" {
		return nil
	}

	remaining, err := strconv.Atoi(remainStr)
	if err != nil {
		return fmt.Errorf("parse X-RateLimit-Remaining header: %w", err)
	}

	limit := 0
	if limitStr := headers.Get("X-RateLimit-Limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			return fmt.Errorf("parse X-RateLimit-Limit header: %w", err)
		}
	}

	t.mu.Lock()
	t.state.Remaining = remaining
	if limit > 0 {
		t.state.Limit = limit
	}
	t.state.LastUpdate = time.Now()
	t.state.UpdateHealth()
	state := t.state
	t.mu.Unlock()

	quotaRemaining.Set(float64(remaining))

	logEvent := t.logger.Debug().
		Int("remaining", remaining).
		Int("limit", state.Limit).
		Bool("is_healthy", state.IsHealthy)

	if state.NeedsCriticalBlock() {
		t.logger.Error().
			Int("remaining", remaining).
			Msg("api.data.gov quota CRITICAL - requests will be blocked")
	} else if state.NeedsThrottling() {
		t.logger.Warn().
			Int("remaining", remaining).
			Msg("api.data.gov quota WARNING - requests will be throttled")
	} else {
		logEvent.Msg("api.data.gov quota state updated")
	}

	return nil
}
