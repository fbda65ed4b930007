package cache

import (
	"net/url"
)

// KeyPrefix namespaces all cache keys in Redis.
const KeyPrefix = "govinfo:"

// Key identifies a cached response by its full request URL.
// The api_key query parameter is stripped so credentials never
// land in Redis and two callers with different keys share entries.
type Key struct {
	raw string
}

// NewKey builds a cache key from a request URL.
// Query parameters are re-encoded in sorted order for determinism.
func NewKey(u *url.URL) Key {
	clone := *u

	q := clone.Query()
	q.Del("api_key")

	// url.Values.Encode sorts by key
	clone.RawQuery = q.Encode()
	clone.Fragment = ""

	return Key{raw: KeyPrefix + clone.String()}
}

// ParseKey builds a cache key from a raw URL string.
func ParseKey(rawURL string) (Key, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Key{}, err
	}
	return NewKey(u), nil
}

// String returns the Redis key string.
func (k Key) String() string {
	return k.raw
}
