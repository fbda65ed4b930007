package pagination

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// mapFetcher serves pages from a map of URL -> body.
type mapFetcher struct {
	pages   map[string]string
	fetched []string
}

func (m *mapFetcher) FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	body, ok := m.pages[pageURL]
	if !ok {
		return nil, fmt.Errorf("no such page: %s", pageURL)
	}
	m.fetched = append(m.fetched, pageURL)
	return []byte(body), nil
}

func TestFollower_FollowAll(t *testing.T) {
	fetcher := &mapFetcher{pages: map[string]string{
		"p1": "body1|p2",
		"p2": "body2|p3",
		"p3": "body3|",
	}}

	var bodies []string
	follower := NewFollower(fetcher, DefaultConfig())

	pages, err := follower.FollowAll(context.Background(), "p1", func(pageURL string, body []byte) (string, error) {
		parts := string(body)
		bodies = append(bodies, parts[:5])
		return parts[6:], nil
	})
	if err != nil {
		t.Fatalf("FollowAll: %v", err)
	}

	if pages != 3 {
		t.Errorf("pages = %d, want 3", pages)
	}
	want := []string{"body1", "body2", "body3"}
	for i, b := range want {
		if bodies[i] != b {
			t.Errorf("bodies[%d] = %q, want %q", i, bodies[i], b)
		}
	}
	wantOrder := []string{"p1", "p2", "p3"}
	for i, u := range wantOrder {
		if fetcher.fetched[i] != u {
			t.Errorf("fetched[%d] = %q, want %q", i, fetcher.fetched[i], u)
		}
	}
}

func TestFollower_SinglePage(t *testing.T) {
	fetcher := &mapFetcher{pages: map[string]string{"only": "data|"}}
	follower := NewFollower(fetcher, DefaultConfig())

	pages, err := follower.FollowAll(context.Background(), "only", func(pageURL string, body []byte) (string, error) {
		return "", nil
	})
	if err != nil {
		t.Fatalf("FollowAll: %v", err)
	}
	if pages != 1 {
		t.Errorf("pages = %d, want 1", pages)
	}
}

func TestFollower_MaxPages(t *testing.T) {
	// Cyclic chain: p1 -> p2 -> p1 -> ...
	fetcher := &mapFetcher{pages: map[string]string{
		"p1": "x|p2",
		"p2": "x|p1",
	}}

	follower := NewFollower(fetcher, Config{MaxPages: 5})

	pages, err := follower.FollowAll(context.Background(), "p1", func(pageURL string, body []byte) (string, error) {
		return string(body)[2:], nil
	})

	if !errors.Is(err, ErrPageLimit) {
		t.Errorf("Expected ErrPageLimit, got %v", err)
	}
	if pages != 5 {
		t.Errorf("pages = %d, want 5", pages)
	}
}

func TestFollower_FetchErrorAborts(t *testing.T) {
	fetcher := &mapFetcher{pages: map[string]string{
		"p1": "x|missing",
	}}

	follower := NewFollower(fetcher, DefaultConfig())

	pages, err := follower.FollowAll(context.Background(), "p1", func(pageURL string, body []byte) (string, error) {
		return string(body)[2:], nil
	})
	if err == nil {
		t.Fatal("Expected fetch error")
	}
	if pages != 1 {
		t.Errorf("pages = %d, want 1 before failure", pages)
	}
}

func TestFollower_HandlerErrorAborts(t *testing.T) {
	fetcher := &mapFetcher{pages: map[string]string{"p1": "x|"}}
	follower := NewFollower(fetcher, DefaultConfig())

	handlerErr := errors.New("bad page")
	_, err := follower.FollowAll(context.Background(), "p1", func(pageURL string, body []byte) (string, error) {
		return "", handlerErr
	})
	if !errors.Is(err, handlerErr) {
		t.Errorf("Expected handler error, got %v", err)
	}
}

func TestFollower_ContextCancelled(t *testing.T) {
	fetcher := &mapFetcher{pages: map[string]string{"p1": "x|p1"}}
	follower := NewFollower(fetcher, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())

	count := 0
	_, err := follower.FollowAll(ctx, "p1", func(pageURL string, body []byte) (string, error) {
		count++
		if count >= 3 {
			cancel()
		}
		return "p1", nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
