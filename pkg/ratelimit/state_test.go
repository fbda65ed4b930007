package ratelimit

import (
	"testing"
	"time"
)

func TestQuotaState_Thresholds(t *testing.T) {
	tests := []struct {
		name          string
		remaining     int
		wantBlock     bool
		wantThrottle  bool
		wantIsHealthy bool
	}{
		{
			name:          "unknown quota is healthy",
			remaining:     RemainingUnknown,
			wantBlock:     false,
			wantThrottle:  false,
			wantIsHealthy: true,
		},
		{
			name:          "healthy quota",
			remaining:     900,
			wantBlock:     false,
			wantThrottle:  false,
			wantIsHealthy: true,
		},
		{
			name:          "below healthy but above warning",
			remaining:     100,
			wantBlock:     false,
			wantThrottle:  false,
			wantIsHealthy: false,
		},
		{
			name:          "warning band throttles",
			remaining:     30,
			wantBlock:     false,
			wantThrottle:  true,
			wantIsHealthy: false,
		},
		{
			name:          "critical band blocks",
			remaining:     3,
			wantBlock:     true,
			wantThrottle:  false,
			wantIsHealthy: false,
		},
		{
			name:          "zero remaining blocks",
			remaining:     0,
			wantBlock:     true,
			wantThrottle:  false,
			wantIsHealthy: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := &QuotaState{Remaining: tt.remaining}
			state.UpdateHealth()

			if got := state.NeedsCriticalBlock(); got != tt.wantBlock {
				t.Errorf("NeedsCriticalBlock() = %v, want %v", got, tt.wantBlock)
			}
			if got := state.NeedsThrottling(); got != tt.wantThrottle {
				t.Errorf("NeedsThrottling() = %v, want %v", got, tt.wantThrottle)
			}
			if state.IsHealthy != tt.wantIsHealthy {
				t.Errorf("IsHealthy = %v, want %v", state.IsHealthy, tt.wantIsHealthy)
			}
		})
	}
}

func TestQuotaState_IsStale(t *testing.T) {
	state := &QuotaState{LastUpdate: time.Now().Add(-2 * time.Minute)}

	if !state.IsStale(time.Minute) {
		t.Error("State older than maxAge should be stale")
	}
	if state.IsStale(time.Hour) {
		t.Error("State younger than maxAge should not be stale")
	}
}
