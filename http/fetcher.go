// Package http fetches article pages and model artifacts over HTTP and
// serves the web interface.
package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/contrasta"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent identifies contrasta to publishers.
const DefaultUserAgent = "Mozilla/5.0 (compatible; contrasta/1.0)"

// Ensure Fetcher implements contrasta.Fetcher and contrasta.Downloader at compile time.
var (
	_ contrasta.Fetcher    = (*Fetcher)(nil)
	_ contrasta.Downloader = (*Fetcher)(nil)
)

// Fetcher retrieves HTML pages and raw artifacts using HTTP GET requests.
// Every call makes exactly one request; failures are never retried.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	limiter   contrasta.DomainLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithLimiter makes Fetch wait on limiter, keyed by host, before each request.
// Downloads are not limited.
func WithLimiter(l contrasta.DomainLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML document at rawURL, decoded to UTF-8 using the
// response's declared or sniffed charset.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if f.limiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", contrasta.Errorf(contrasta.EINVALID, "invalid URL %q: %v", rawURL, err)
		}
		if err := f.limiter.Wait(ctx, u.Host); err != nil {
			return "", contrasta.Errorf(contrasta.EUNAVAILABLE, "failed to fetch %s: %v", rawURL, err)
		}
	}

	resp, err := f.get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", contrasta.Errorf(contrasta.EUNAVAILABLE, "failed to decode %s: %v", rawURL, err)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return "", contrasta.Errorf(contrasta.EUNAVAILABLE, "failed to read %s: %v", rawURL, err)
	}

	return string(body), nil
}

// Download retrieves the body at rawURL without any decoding.
func (f *Fetcher) Download(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := f.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, contrasta.Errorf(contrasta.EUNAVAILABLE, "failed to read %s: %v", rawURL, err)
	}
	return body, nil
}

// get performs a GET request and returns the response if its status is 2xx.
// The caller must close the response body.
func (f *Fetcher) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, contrasta.Errorf(contrasta.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, contrasta.Errorf(contrasta.EUNAVAILABLE, "failed to fetch %s: %v", rawURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, contrasta.Errorf(contrasta.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	return resp, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
