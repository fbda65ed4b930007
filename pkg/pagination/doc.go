// Package pagination provides sequential next-page following for paginated
// govInfo endpoints.
//
// govInfo embeds an absolute nextPage URL inside each response body, so a
// page's location is only known after the previous page has been parsed.
// Pages are therefore fetched strictly one after another; there is no
// parallel fan-out.
//
// Example usage:
//
//	follower := pagination.NewFollower(fetcher, pagination.DefaultConfig())
//	pages, err := follower.FollowAll(ctx, firstPageURL, func(pageURL string, body []byte) (string, error) {
//		// decode body, accumulate records, return the nextPage URL
//	})
//
// The follower:
//   - Fetches each page through the supplied Fetcher
//   - Hands the raw body to the handler, which returns the next URL
//   - Stops when the handler returns an empty next URL
//   - Optionally enforces a page cap against cyclic next-page chains
package pagination
