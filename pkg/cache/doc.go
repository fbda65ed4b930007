// Package cache provides a Redis-backed response cache for govInfo API
// requests, keyed by the full request URL with explicit TTL expiry.
package cache
