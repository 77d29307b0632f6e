package contrasta

import "context"

// Fetcher retrieves HTML documents from URLs.
type Fetcher interface {
	// Fetch performs a single GET request and returns the decoded HTML.
	// Network failures, timeouts and non-2xx responses are returned as
	// EUNAVAILABLE errors. Fetch never retries.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// Downloader retrieves raw bytes, such as model artifacts, from URLs.
type Downloader interface {
	// Download performs a single GET request and returns the body as-is.
	Download(ctx context.Context, url string) ([]byte, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
