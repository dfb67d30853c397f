package resas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the production API host.
	DefaultBaseURL = "https://opendata.resas-portal.go.jp"

	// EndpointPrefectures returns the catalogue of all prefectures.
	EndpointPrefectures = "api/v1/prefectures"
	// EndpointCities returns the municipalities of a single prefecture,
	// selected with a prefCode query parameter.
	EndpointCities = "api/v1/cities"
)

// RetryPolicy bounds the retry loop for requests sent with retries enabled.
// Codes are compared as strings because the API signals transient failure
// both through HTTP statuses and through an application-level statusCode
// embedded in the response body.
type RetryPolicy struct {
	RetriableCodes []string
	Interval       time.Duration
	Attempts       int
}

// DefaultRetryPolicy retries on 500 and 502, waits a minute between
// attempts, and gives up after three tries.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		RetriableCodes: []string{"500", "502"},
		Interval:       60 * time.Second,
		Attempts:       3,
	}
}

func (p RetryPolicy) retriable(code string) bool {
	return slices.Contains(p.RetriableCodes, code)
}

// Client represents a RESAS API client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	policy     RetryPolicy
	logger     zerolog.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewClient creates a new RESAS client. It performs no network activity; the
// key is only validated for presence, not against the API.
func NewClient(apiKey string, policy RetryPolicy, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if policy.Attempts < 1 {
		return nil, fmt.Errorf("retry policy requires at least one attempt")
	}

	options := clientOptions{
		baseURL: DefaultBaseURL,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	sleep := options.sleep
	if sleep == nil {
		sleep = sleepContext
	}

	return &Client{
		baseURL:    strings.TrimSuffix(options.baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		policy:     policy,
		logger:     logger,
		sleep:      sleep,
	}, nil
}

// Get fetches endpoint and decodes the enveloped result collection into a
// slice of T. params is a pre-encoded query string appended verbatim. When
// withRetry is true the request goes through the retry loop, so any error
// returned is fatal; otherwise a single attempt is made and retryable errors
// surface to the caller.
//
// Get is a function rather than a method because methods cannot have type
// parameters.
func Get[T any](ctx context.Context, c *Client, endpoint, params string, withRetry bool) ([]T, error) {
	var (
		body    string
		sendErr *Error
	)
	if withRetry {
		body, sendErr = c.sendRequestWithRetry(ctx, endpoint, params)
	} else {
		body, sendErr = c.sendRequest(ctx, endpoint, params)
	}
	if sendErr != nil {
		return nil, sendErr
	}

	var env envelope[T]
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return nil, fatalError(err)
	}
	return env.Result, nil
}

// Prefectures retrieves the full prefecture catalogue.
func (c *Client) Prefectures(ctx context.Context) ([]Prefecture, error) {
	return Get[Prefecture](ctx, c, EndpointPrefectures, "", true)
}

// Cities retrieves the municipalities of the prefecture with the given code.
func (c *Client) Cities(ctx context.Context, prefCode int) ([]City, error) {
	return Get[City](ctx, c, EndpointCities, "prefCode="+strconv.Itoa(prefCode), true)
}

// sendRequest performs a single authenticated GET and classifies the
// outcome. Transport and decoding failures are fatal. An HTTP error status
// is retryable only when its code is in the policy's retriable set. A
// success status can still carry an application-level statusCode in the
// body; that code is classified against the same set.
func (c *Client) sendRequest(ctx context.Context, endpoint, params string) (string, *Error) {
	url := c.baseURL + "/" + endpoint
	if params != "" {
		url += "?" + params
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fatalError(err)
	}

	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("url", url).
		Msg("Sending API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fatalError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fatalError(err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		httpErr := &HTTPError{StatusCode: resp.StatusCode}
		if c.policy.retriable(strconv.Itoa(resp.StatusCode)) {
			return "", NewError(KindRetryable, httpErr, fmt.Sprintf("Status code %d", resp.StatusCode))
		}
		return "", fatalError(httpErr)
	}

	text := string(body)

	var probe statusProbe
	if err := json.Unmarshal(body, &probe); err != nil {
		return "", fatalError(err)
	}

	code, ok := probe.code()
	if !ok {
		return text, nil
	}

	switch {
	case c.policy.retriable(code):
		return "", NewError(KindRetryable, nil, probe.Message)
	case strings.HasPrefix(code, "2"):
		return text, nil
	default:
		return "", NewError(KindFatal, nil, fmt.Sprintf("%s %s", code, probe.Message))
	}
}

// sendRequestWithRetry repeats sendRequest until it succeeds, fails
// fatally, or the attempt budget is spent. The final failure after the last
// attempt is escalated to fatal so callers never see a retryable error from
// this path.
func (c *Client) sendRequestWithRetry(ctx context.Context, endpoint, params string) (string, *Error) {
	attempt := 0
	for {
		body, sendErr := c.sendRequest(ctx, endpoint, params)
		if sendErr == nil {
			return body, nil
		}
		if !sendErr.IsRetriable() {
			return "", sendErr
		}

		attempt++
		if attempt >= c.policy.Attempts {
			return "", sendErr.ToFatal(fmt.Sprintf("Retried %d but couldn't recover", attempt))
		}

		c.logger.Warn().
			Int("attempt", attempt).
			Int("max_attempts", c.policy.Attempts).
			Dur("interval", c.policy.Interval).
			Str("endpoint", endpoint).
			Msg("Transient API failure, waiting before retry")

		if err := c.sleep(ctx, c.policy.Interval); err != nil {
			return "", fatalError(err)
		}
	}
}

// sleepContext blocks for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
