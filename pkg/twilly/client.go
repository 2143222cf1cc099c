package twilly

import (
	"fmt"
	"net/http"
	"time"

	"github.com/TristanBlackwell/twilly/internal/client"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

// Option configures a client built by New or NewClient.
type Option func(*twilio.Config)

// WithHTTPTimeout bounds each request.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *twilio.Config) {
		c.HTTPTimeout = timeout
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *twilio.Config) {
		c.UserAgent = userAgent
	}
}

// WithRetry retries failed GET requests up to retryMax times with
// exponential backoff between waitMin and waitMax.
func WithRetry(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *twilio.Config) {
		c.RetryMax = retryMax
		c.RetryWaitMin = waitMin
		c.RetryWaitMax = waitMax
	}
}

// WithLogger attaches a logger.
func WithLogger(logger twilio.Logger) Option {
	return func(c *twilio.Config) {
		c.Logger = logger
	}
}

// WithDebug logs every request at debug level.
func WithDebug(debug bool) Option {
	return func(c *twilio.Config) {
		c.Debug = debug
	}
}

// WithBaseURL points a domain at another host.
func WithBaseURL(domain twilio.Domain, baseURL string) Option {
	return func(c *twilio.Config) {
		if c.BaseURLs == nil {
			c.BaseURLs = make(map[twilio.Domain]string)
		}

		c.BaseURLs[domain] = baseURL
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *twilio.Config) {
		c.HTTPClient = httpClient
	}
}

// WithMaxPages bounds eager list operations.
func WithMaxPages(maxPages int) Option {
	return func(c *twilio.Config) {
		c.MaxPages = maxPages
	}
}

// New creates a Twilio API client and panics if the credentials are
// malformed. Malformed credentials are a configuration mistake, not a
// runtime condition, so callers that load them from user input should use
// NewClient instead.
func New(accountSID, authToken string, opts ...Option) twilio.Client {
	c, err := NewClient(accountSID, authToken, opts...)
	if err != nil {
		panic(err.Error())
	}

	return c
}

// NewClient creates a Twilio API client, returning an error if the
// credentials are malformed.
func NewClient(accountSID, authToken string, opts ...Option) (twilio.Client, error) {
	creds, err := twilio.NewCredentials(accountSID, authToken)
	if err != nil {
		return nil, err
	}

	config := &twilio.Config{Credentials: creds}
	for _, opt := range opts {
		opt(config)
	}

	return NewFromConfig(config)
}

// NewFromConfig creates a Twilio API client from a complete config.
func NewFromConfig(config *twilio.Config) (twilio.Client, error) {
	c, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}
