// Package testutil provides testing utilities for the govInfo client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock govInfo endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockGovInfo is a configurable mock govInfo server for testing.
type MockGovInfo struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount      int
	pathCounts        map[string]int
	LastRequestHeader http.Header
}

// NewMockGovInfo creates a new mock govInfo server.
func NewMockGovInfo() *MockGovInfo {
	mock := &MockGovInfo{
		handlers:   make(map[string]func(w http.ResponseWriter, r *http.Request)),
		pathCounts: make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.pathCounts[r.URL.Path]++
		mock.LastRequestHeader = r.Header.Clone()
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockGovInfo) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockGovInfo) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockGovInfo) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.pathCounts = make(map[string]int)
	m.LastRequestHeader = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockGovInfo) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a simple response for a path.
func (m *MockGovInfo) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetFailureSequence configures a path to fail with failStatus for the first
// failures requests, then serve the success response.
func (m *MockGovInfo) SetFailureSequence(path string, failures int, failStatus int, success MockResponse) {
	var mu sync.Mutex
	attempts := 0

	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts++
		failing := attempts <= failures
		mu.Unlock()

		if failing {
			w.WriteHeader(failStatus)
			fmt.Fprintf(w, `{"error": "simulated failure %d"}`, attempts)
			return
		}

		for key, value := range success.Headers {
			w.Header().Set(key, value)
		}
		w.WriteHeader(success.StatusCode)
		if success.Body != "" {
			w.Write([]byte(success.Body))
		}
	})
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockGovInfo) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// PathRequestCount returns the number of requests made to one path.
func (m *MockGovInfo) PathRequestCount(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pathCounts[path]
}

// defaultHandler provides default govInfo-like responses.
func (m *MockGovInfo) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-RateLimit-Limit", "1000")
	w.Header().Set("X-RateLimit-Remaining", "986")
	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

// PackagePageBody builds a package-list page body. An empty nextPage omits
// the field, ending a pagination chain.
func PackagePageBody(count int, nextPage string, packageIDs ...string) string {
	packages := make([]map[string]string, 0, len(packageIDs))
	for _, id := range packageIDs {
		packages = append(packages, map[string]string{
			"packageId":    id,
			"lastModified": "2020-01-15T10:00:00Z",
			"docClass":     "hr",
			"title":        "A bill cited as " + id,
			"congress":     "116",
			"dateIssued":   "2020-01-14",
		})
	}

	page := map[string]any{
		"count":    count,
		"message":  "",
		"packages": packages,
	}
	if nextPage != "" {
		page["nextPage"] = nextPage
	}

	body, err := json.Marshal(page)
	if err != nil {
		panic(err)
	}
	return string(body)
}

// NewHealthyResponse creates a standard 200 OK response with quota headers.
func NewHealthyResponse(data string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       data,
		Headers: map[string]string{
			"X-RateLimit-Limit":     "1000",
			"X-RateLimit-Remaining": "986",
			"Content-Type":          "application/json",
		},
	}
}

// NewRateLimitResponse creates a 429 OVER_RATE_LIMIT response.
func NewRateLimitResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusTooManyRequests,
		Body:       `{"error": {"code": "OVER_RATE_LIMIT", "message": "API rate limit exceeded"}}`,
		Headers: map[string]string{
			"X-RateLimit-Limit":     "1000",
			"X-RateLimit-Remaining": "0",
			"Content-Type":          "application/json",
		},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "Internal server error"}`,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}
}
