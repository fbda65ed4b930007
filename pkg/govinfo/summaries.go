package govinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// PackageSummaryByID fetches metadata and download links for one package.
func (s *Service) PackageSummaryByID(ctx context.Context, packageID string) (*PackageSummary, error) {
	if packageID == "" {
		return nil, fmt.Errorf("%w: package id is required", ErrMissingParameter)
	}

	target := fmt.Sprintf("/packages/%s/summary", url.PathEscape(packageID))

	var summary PackageSummary
	if err := s.fetchJSON(ctx, target, &summary); err != nil {
		return nil, err
	}
	if summary.PackageID == "" {
		return nil, &MalformedResponseError{URL: target, Reason: "packageId field missing"}
	}

	return &summary, nil
}

// Granules fetches the first page of a package's granule list.
func (s *Service) Granules(ctx context.Context, packageID string, pageSize int) (*GranulePage, error) {
	if packageID == "" {
		return nil, fmt.Errorf("%w: package id is required", ErrMissingParameter)
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	q := url.Values{}
	q.Set("offset", "0")
	q.Set("pageSize", strconv.Itoa(pageSize))

	target := fmt.Sprintf("/packages/%s/granules?%s", url.PathEscape(packageID), q.Encode())

	body, err := s.fetchPage(ctx, target)
	if err != nil {
		return nil, s.wrapFetchErr(target, err)
	}

	var page GranulePage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, &MalformedResponseError{URL: target, Reason: "invalid JSON", Err: err}
	}
	if page.Granules == nil {
		return nil, &MalformedResponseError{URL: target, Reason: "granules field missing"}
	}

	return &page, nil
}

// AllGranules fetches every page of a package's granule list.
func (s *Service) AllGranules(ctx context.Context, packageID string, pageSize int) ([]Granule, error) {
	page, err := s.Granules(ctx, packageID, pageSize)
	if err != nil {
		return nil, err
	}

	granules := page.Granules
	pageURL := page.NextPage

	for pageURL != "" {
		body, err := s.fetchPage(ctx, pageURL)
		if err != nil {
			return nil, s.wrapFetchErr(pageURL, err)
		}

		var p GranulePage
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, &MalformedResponseError{URL: pageURL, Reason: "invalid JSON", Err: err}
		}
		if p.Granules == nil {
			return nil, &MalformedResponseError{URL: pageURL, Reason: "granules field missing"}
		}

		granules = append(granules, p.Granules...)
		pageURL = p.NextPage
	}

	return granules, nil
}

// GranuleSummaryByID fetches metadata for one granule of a package.
func (s *Service) GranuleSummaryByID(ctx context.Context, packageID, granuleID string) (*GranuleSummary, error) {
	if packageID == "" || granuleID == "" {
		return nil, fmt.Errorf("%w: package id and granule id are required", ErrMissingParameter)
	}

	target := fmt.Sprintf("/packages/%s/granules/%s/summary",
		url.PathEscape(packageID), url.PathEscape(granuleID))

	var summary GranuleSummary
	if err := s.fetchJSON(ctx, target, &summary); err != nil {
		return nil, err
	}
	if summary.GranuleID == "" {
		return nil, &MalformedResponseError{URL: target, Reason: "granuleId field missing"}
	}

	return &summary, nil
}

// Related fetches the related-content graph for an access id.
func (s *Service) Related(ctx context.Context, accessID string) (*RelatedResponse, error) {
	if accessID == "" {
		return nil, fmt.Errorf("%w: access id is required", ErrMissingParameter)
	}

	target := fmt.Sprintf("/related/%s", url.PathEscape(accessID))

	var resp RelatedResponse
	if err := s.fetchJSON(ctx, target, &resp); err != nil {
		return nil, err
	}
	if resp.Relationships == nil {
		return nil, &MalformedResponseError{URL: target, Reason: "relationships field missing"}
	}

	return &resp, nil
}

// RelatedEdges fetches the related-content graph for an access id and
// flattens it into edges for export.
func (s *Service) RelatedEdges(ctx context.Context, accessID string) ([]RelatedEdge, error) {
	resp, err := s.Related(ctx, accessID)
	if err != nil {
		return nil, err
	}

	edges := make([]RelatedEdge, 0, len(resp.Relationships))
	for _, rel := range resp.Relationships {
		edges = append(edges, RelatedEdge{
			AccessID:     accessID,
			Relationship: rel.Relationship,
			Collection:   rel.Collection,
			Link:         rel.Link,
		})
	}

	return edges, nil
}
