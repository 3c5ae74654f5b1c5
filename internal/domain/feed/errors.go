package feed

import "errors"

// Sentinel kinds for feed errors.
var (
	// ErrRateLimited signals that the upstream refused the call due to
	// rate limiting. Sources return it so the fetcher can apply the
	// stale-cache fallback.
	ErrRateLimited = errors.New("upstream rate limited")

	// ErrUpstreamUnavailable is the fetcher's terminal failure: the
	// upstream could not be reached and no cache could stand in.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
