// Package fetch retrieves university pages over HTTP and distills them into
// the small previews the comparison view embeds next to catalog metadata.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 15 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; CounselBot/1.0)"

// maxBodyBytes bounds how much of a page we read. Previews only need the
// head and the first content blocks.
const maxBodyBytes = 2 << 20

// Result holds the raw content from a URL fetch.
type Result struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// URL retrieves HTML content from a URL.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	client := &http.Client{
		Timeout: opts.Timeout,
	}

	req, err := http.NewRequestWithContext(ctx, "GET", urlStr, nil)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	req.Header.Set("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	result := &Result{
		URL:         urlStr,
		HTML:        string(bodyBytes),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	if resp.StatusCode != http.StatusOK {
		return result, &Error{
			URL:     urlStr,
			Message: fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	return result, nil
}
