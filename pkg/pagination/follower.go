package pagination

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

var pagesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "govinfo_pages_fetched_total",
	Help: "Total pages fetched across all paginated requests",
})

// ErrPageLimit is returned when a next-page chain exceeds the configured cap.
var ErrPageLimit = errors.New("page limit exceeded")

// Config holds follower configuration.
type Config struct {
	// MaxPages caps the number of pages followed in one call.
	// 0 means unlimited: the walk terminates only when a page carries
	// no next-page URL, matching the API's documented contract.
	MaxPages int

	// ProgressInterval controls how often progress is logged (in pages).
	ProgressInterval int
}

// DefaultConfig returns the default follower configuration.
func DefaultConfig() Config {
	return Config{
		MaxPages:         0,
		ProgressInterval: 10,
	}
}

// Fetcher fetches a single page by URL and returns its raw body.
type Fetcher interface {
	FetchPage(ctx context.Context, pageURL string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, pageURL string) ([]byte, error)

// FetchPage implements Fetcher.
func (f FetcherFunc) FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	return f(ctx, pageURL)
}

// HandlerFunc consumes one raw page body and returns the URL of the next
// page. An empty next URL ends the walk.
type HandlerFunc func(pageURL string, body []byte) (next string, err error)

// Follower walks a server-supplied next-page chain.
type Follower struct {
	fetcher Fetcher
	config  Config
}

// NewFollower creates a new follower.
func NewFollower(fetcher Fetcher, config Config) *Follower {
	if config.ProgressInterval <= 0 {
		config.ProgressInterval = 10
	}

	return &Follower{
		fetcher: fetcher,
		config:  config,
	}
}

// FollowAll fetches startURL and every page linked after it, handing each
// body to handle in fetch order. It returns the number of pages fetched.
// Any fetch or handler error aborts the walk immediately.
func (f *Follower) FollowAll(ctx context.Context, startURL string, handle HandlerFunc) (int, error) {
	start := time.Now()
	pages := 0
	pageURL := startURL

	for pageURL != "" {
		select {
		case <-ctx.Done():
			return pages, ctx.Err()
		default:
		}

		if f.config.MaxPages > 0 && pages >= f.config.MaxPages {
			log.Warn().
				Int("pages", pages).
				Int("max_pages", f.config.MaxPages).
				Msg("Next-page chain exceeded page cap")
			return pages, fmt.Errorf("%w: followed %d pages", ErrPageLimit, pages)
		}

		body, err := f.fetcher.FetchPage(ctx, pageURL)
		if err != nil {
			return pages, fmt.Errorf("fetch page %d: %w", pages+1, err)
		}

		next, err := handle(pageURL, body)
		if err != nil {
			return pages, err
		}

		pages++
		pagesFetchedTotal.Inc()

		if pages%f.config.ProgressInterval == 0 {
			log.Info().
				Int("pages", pages).
				Msg("Pagination progress")
		}

		pageURL = next
	}

	log.Debug().
		Int("pages", pages).
		Dur("duration", time.Since(start)).
		Msg("Next-page chain complete")

	return pages, nil
}
