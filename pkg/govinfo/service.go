// Package govinfo provides typed access to the govInfo API: collection
// listings, paginated published-package search, package and granule
// summaries, and related-content graphs.
package govinfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/openfederal/govinfo-client/pkg/client"
	"github.com/openfederal/govinfo-client/pkg/logging"
	"github.com/openfederal/govinfo-client/pkg/pagination"
)

// Service exposes the govInfo endpoints over a configured client.
type Service struct {
	client     *client.Client
	pagination pagination.Config
	logger     zerolog.Logger
}

// NewService creates a service over an existing client.
func NewService(c *client.Client) *Service {
	return &Service{
		client:     c,
		pagination: pagination.DefaultConfig(),
		logger:     logging.NewLogger("govinfo-service"),
	}
}

// Client returns the underlying HTTP client, e.g. for raw document downloads.
func (s *Service) Client() *client.Client {
	return s.client
}

// SetMaxPages caps the number of pages followed per fetch-all call.
// 0 (the default) follows the chain until no nextPage is returned.
func (s *Service) SetMaxPages(n int) {
	s.pagination.MaxPages = n
}

// fetchPage fetches one URL and returns its raw body.
// Non-200 responses become APIErrors; retry for transient failures has
// already happened inside the client by the time this returns.
func (s *Service) fetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	resp, err := s.client.Get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &client.APIError{
			StatusCode: resp.StatusCode,
			ErrorClass: client.ClassifyStatus(resp.StatusCode),
			Message:    resp.Status,
		}
	}

	return body, nil
}

// fetchJSON fetches one URL and decodes its body into v.
func (s *Service) fetchJSON(ctx context.Context, target string, v any) error {
	body, err := s.fetchPage(ctx, target)
	if err != nil {
		return s.wrapFetchErr(target, err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return &MalformedResponseError{URL: target, Reason: "invalid JSON", Err: err}
	}

	return nil
}

// wrapFetchErr surfaces retry exhaustion as FetchExhaustedError.
func (s *Service) wrapFetchErr(target string, err error) error {
	if errors.Is(err, client.ErrRetryExhausted) {
		return &FetchExhaustedError{URL: target, Err: err}
	}
	return err
}

// decodePackagePage decodes one package-list page, failing fast when the
// records array is absent.
func decodePackagePage(pageURL string, body []byte) (*PackagePage, error) {
	var page PackagePage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, &MalformedResponseError{URL: pageURL, Reason: "invalid JSON", Err: err}
	}
	if page.Packages == nil {
		return nil, &MalformedResponseError{URL: pageURL, Reason: "packages field missing"}
	}
	return &page, nil
}

// publishedURL builds the first-page URL for a published search.
// The offset is fixed at 0; later pages carry their own offsets inside
// the server-supplied nextPage URL.
func publishedURL(params PublishedParams) string {
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	q := url.Values{}
	q.Set("offset", "0")
	q.Set("pageSize", strconv.Itoa(pageSize))
	if params.Collection != "" {
		q.Set("collection", params.Collection)
	}

	return fmt.Sprintf("/published/%s/%s?%s",
		url.PathEscape(params.StartDate), url.PathEscape(params.EndDate), q.Encode())
}

// Published fetches the first page of packages by publication date.
func (s *Service) Published(ctx context.Context, params PublishedParams) (*PackagePage, error) {
	if params.StartDate == "" || params.EndDate == "" {
		return nil, fmt.Errorf("%w: start and end dates are required", ErrMissingParameter)
	}

	target := publishedURL(params)
	body, err := s.fetchPage(ctx, target)
	if err != nil {
		return nil, s.wrapFetchErr(target, err)
	}

	return decodePackagePage(target, body)
}

// FetchAllPublished fetches every page of packages by publication date,
// following the server-supplied nextPage URLs until none is returned.
// The result is the concatenation of every page's records array in
// page-fetch order. On any failure the partial accumulation is discarded.
func (s *Service) FetchAllPublished(ctx context.Context, params PublishedParams) ([]PackageRecord, error) {
	if params.StartDate == "" || params.EndDate == "" {
		return nil, fmt.Errorf("%w: start and end dates are required", ErrMissingParameter)
	}

	start := time.Now()
	startURL := publishedURL(params)

	var records []PackageRecord
	follower := pagination.NewFollower(pagination.FetcherFunc(s.fetchPage), s.pagination)

	pages, err := follower.FollowAll(ctx, startURL, func(pageURL string, body []byte) (string, error) {
		page, err := decodePackagePage(pageURL, body)
		if err != nil {
			return "", err
		}
		records = append(records, page.Packages...)
		return page.NextPage, nil
	})
	if err != nil {
		return nil, s.wrapFetchErr(startURL, err)
	}

	s.logger.Info().
		Str("collection", params.Collection).
		Str("start_date", params.StartDate).
		Str("end_date", params.EndDate).
		Int("pages", pages).
		Int("records", len(records)).
		Dur("duration", time.Since(start)).
		Msg("Published fetch complete")

	return records, nil
}

// Collections lists the collections exposed by the API.
func (s *Service) Collections(ctx context.Context) ([]Collection, error) {
	target := "/collections"

	var resp collectionsResponse
	if err := s.fetchJSON(ctx, target, &resp); err != nil {
		return nil, err
	}
	if resp.Collections == nil {
		return nil, &MalformedResponseError{URL: target, Reason: "collections field missing"}
	}

	return resp.Collections, nil
}

// CollectionUpdates fetches the first page of packages in a collection
// modified since the given date.
func (s *Service) CollectionUpdates(ctx context.Context, collection, since string, pageSize int) (*PackagePage, error) {
	if collection == "" || since == "" {
		return nil, fmt.Errorf("%w: collection and since date are required", ErrMissingParameter)
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	q := url.Values{}
	q.Set("offset", "0")
	q.Set("pageSize", strconv.Itoa(pageSize))

	target := fmt.Sprintf("/collections/%s/%s?%s",
		url.PathEscape(collection), url.PathEscape(since), q.Encode())

	body, err := s.fetchPage(ctx, target)
	if err != nil {
		return nil, s.wrapFetchErr(target, err)
	}

	return decodePackagePage(target, body)
}

// AllCollectionUpdates fetches every page of packages in a collection
// modified since the given date.
func (s *Service) AllCollectionUpdates(ctx context.Context, collection, since string, pageSize int) ([]PackageRecord, error) {
	page, err := s.CollectionUpdates(ctx, collection, since, pageSize)
	if err != nil {
		return nil, err
	}

	records := page.Packages

	if page.NextPage != "" {
		follower := pagination.NewFollower(pagination.FetcherFunc(s.fetchPage), s.pagination)
		_, err := follower.FollowAll(ctx, page.NextPage, func(pageURL string, body []byte) (string, error) {
			p, err := decodePackagePage(pageURL, body)
			if err != nil {
				return "", err
			}
			records = append(records, p.Packages...)
			return p.NextPage, nil
		})
		if err != nil {
			return nil, s.wrapFetchErr(page.NextPage, err)
		}
	}

	return records, nil
}
