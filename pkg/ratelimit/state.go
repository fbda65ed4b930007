// Package ratelimit tracks the api.data.gov request quota and gates requests.
// It monitors the X-RateLimit-Limit and X-RateLimit-Remaining response headers
// so a long fetch stops cleanly before the hourly quota is exhausted.
package ratelimit

import (
	"time"
)

// Thresholds for quota decisions.
const (
	// QuotaThresholdCritical blocks all requests when remaining quota falls
	// below this value. The last few requests are left as headroom so a
	// caller can still fetch a summary after a big paginated pull.
	QuotaThresholdCritical = 5

	// QuotaThresholdWarning applies throttling when remaining quota falls
	// below this value.
	QuotaThresholdWarning = 50

	// QuotaThresholdHealthy indicates normal operation.
	QuotaThresholdHealthy = 200

	// RemainingUnknown marks state before the first response headers arrive.
	RemainingUnknown = -1
)

// QuotaState represents the current api.data.gov quota state.
// It is process-local: api.data.gov quotas are per API key and the
// fetch tool runs as a single process.
type QuotaState struct {
	// Limit is the total request quota for the current window.
	// Extracted from the X-RateLimit-Limit header.
	Limit int `json:"limit"`

	// Remaining is the number of requests left in the current window.
	// Extracted from the X-RateLimit-Remaining header.
	// RemainingUnknown until the first response is seen.
	Remaining int `json:"remaining"`

	// LastUpdate is the timestamp when this state was last updated.
	LastUpdate time.Time `json:"last_update"`

	// IsHealthy indicates whether the quota is in a healthy state.
	// True when Remaining >= QuotaThresholdHealthy or still unknown.
	IsHealthy bool `json:"is_healthy"`
}

// IsStale returns true if the state data is older than the given duration.
func (s *QuotaState) IsStale(maxAge time.Duration) bool {
	return time.Since(s.LastUpdate) > maxAge
}

// NeedsCriticalBlock returns true if requests should be blocked.
// Unknown quota never blocks.
func (s *QuotaState) NeedsCriticalBlock() bool {
	return s.Remaining != RemainingUnknown && s.Remaining < QuotaThresholdCritical
}

// NeedsThrottling returns true if requests should be throttled.
func (s *QuotaState) NeedsThrottling() bool {
	return s.Remaining != RemainingUnknown &&
		s.Remaining < QuotaThresholdWarning &&
		!s.NeedsCriticalBlock()
}

// UpdateHealth updates the IsHealthy field based on current Remaining.
func (s *QuotaState) UpdateHealth() {
	s.IsHealthy = s.Remaining == RemainingUnknown || s.Remaining >= QuotaThresholdHealthy
}
