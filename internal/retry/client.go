package retry

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Default retry configuration
const (
	defaultMaxRetries         = 3
	defaultInitialRetryDelay  = 500 * time.Millisecond
	defaultMaxRetryDelay      = 5 * time.Second
	defaultRetryDelayMultiple = 2.0
)

// Client is an HTTP client that retries transient failures with exponential
// backoff. A request is attempted at most 1+maxRetries times.
type Client struct {
	maxRetries         int
	initialRetryDelay  time.Duration
	maxRetryDelay      time.Duration
	retryDelayMultiple float64
	httpClient         *http.Client
	retryableChecker   RetryableChecker
	onRetry            RetryHook
}

// RetryableChecker determines if an error or response should trigger a retry
type RetryableChecker func(err error, resp *http.Response) bool

// RetryHook is called before each retry with the 1-based retry number and the
// outcome of the failed attempt.
type RetryHook func(retry int, err error, resp *http.Response)

// Option configures a Client
type Option func(*Client)

// WithMaxRetries sets the maximum number of retry attempts
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithInitialRetryDelay sets the initial delay before the first retry
func WithInitialRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.initialRetryDelay = d
		}
	}
}

// WithMaxRetryDelay sets the maximum delay between retries
func WithMaxRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.maxRetryDelay = d
		}
	}
}

// WithRetryDelayMultiple sets the exponential backoff multiplier
func WithRetryDelayMultiple(multiplier float64) Option {
	return func(c *Client) {
		if multiplier > 1.0 {
			c.retryDelayMultiple = multiplier
		}
	}
}

// WithHTTPClient sets a custom http.Client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithRetryableChecker sets a custom function to determine retryable errors
func WithRetryableChecker(checker RetryableChecker) Option {
	return func(c *Client) {
		if checker != nil {
			c.retryableChecker = checker
		}
	}
}

// WithOnRetry registers a hook invoked before every retry.
func WithOnRetry(hook RetryHook) Option {
	return func(c *Client) {
		c.onRetry = hook
	}
}

// NewClient creates a new retry-enabled HTTP client with the given options
func NewClient(opts ...Option) *Client {
	c := &Client{
		maxRetries:         defaultMaxRetries,
		initialRetryDelay:  defaultInitialRetryDelay,
		maxRetryDelay:      defaultMaxRetryDelay,
		retryDelayMultiple: defaultRetryDelayMultiple,
		httpClient:         http.DefaultClient,
		retryableChecker:   DefaultRetryableChecker,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// DefaultRetryableChecker retries on network errors, 5xx and 429.
func DefaultRetryableChecker(err error, resp *http.Response) bool {
	if err != nil {
		return true
	}
	if resp == nil {
		return false
	}
	return resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
}

// Get issues a GET request for url through Do.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, req)
}

// Do executes req, retrying while the checker reports a transient failure.
// When retries run out on a retryable status, the last response is returned
// unread so the caller can inspect it. When they run out on a transport
// error, the last error is returned wrapped.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	var lastErr error
	delay := c.initialRetryDelay

	for attempt := 0; ; attempt++ {
		resp, err := c.httpClient.Do(req.Clone(ctx))
		if !c.retryableChecker(err, resp) {
			return resp, err
		}

		if attempt >= c.maxRetries {
			if err != nil {
				return nil, fmt.Errorf("request failed after %d retries: %w", c.maxRetries, err)
			}
			return resp, nil
		}

		lastErr = err
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		if c.onRetry != nil {
			c.onRetry(attempt+1, err, resp)
		}

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return nil, fmt.Errorf(
					"context cancelled after %d attempts: %w",
					attempt+1,
					lastErr,
				)
			}
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay = c.nextDelay(delay)
	}
}

func (c *Client) nextDelay(current time.Duration) time.Duration {
	next := time.Duration(float64(current) * c.retryDelayMultiple)
	if next > c.maxRetryDelay {
		return c.maxRetryDelay
	}
	return next
}
