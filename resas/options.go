package resas

import (
	"context"
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	sleep      func(ctx context.Context, d time.Duration) error
}

// WithBaseURL points the client at an alternative API host.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client. The timeout option is
// ignored when a custom client is supplied.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// withSleep replaces the pause between retry attempts. Tests use it to keep
// retry runs instant and to record the requested durations.
func withSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(o *clientOptions) {
		o.sleep = sleep
	}
}
