package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/TristanBlackwell/twilly/internal/constants"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

// Request describes one call to the API.
type Request struct {
	Method string
	// URL is absolute. GET parameters are merged into its query string.
	URL string
	// Params is a struct with url tags, url.Values, map[string]string or nil.
	Params  interface{}
	Headers map[string]string
}

// Response is the raw result of a completed exchange, whatever its status.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= constants.HTTPStatusOK && r.StatusCode < constants.HTTPStatusMultipleChoices
}

// Client performs authenticated exchanges with Twilio. It never interprets
// status codes. That is left to SendInto and Exec.
type Client struct {
	credentials twilio.Credentials
	retrying    *retryablehttp.Client
	single      *retryablehttp.Client
	logger      twilio.Logger
	debug       bool
	userAgent   string

	httpClient   *http.Client
	timeout      time.Duration
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger twilio.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables per request debug logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithRetryConfig enables retries of GET requests. Mutating requests are
// always sent once.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		if retryMax < 0 {
			retryMax = 0
		}

		c.retryMax = retryMax

		if waitMin > 0 {
			c.retryWaitMin = waitMin
		}

		if waitMax > 0 {
			c.retryWaitMax = waitMax
		}
	}
}

// WithTimeout sets the per request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. Its own timeout is
// kept unless WithTimeout is also given.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a client that signs every request with creds.
func NewClient(creds twilio.Credentials, opts ...Option) *Client {
	client := &Client{
		credentials:  creds,
		userAgent:    constants.DefaultUserAgent,
		retryMax:     constants.DefaultRetryMax,
		retryWaitMin: constants.DefaultRetryWaitMin,
		retryWaitMax: constants.DefaultRetryWaitMax,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.retrying = client.newTransport(client.retryMax)
	client.single = client.newTransport(0)

	return client
}

func (c *Client) newTransport(retryMax int) *retryablehttp.Client {
	transport := retryablehttp.NewClient()
	transport.RetryMax = retryMax
	transport.RetryWaitMin = c.retryWaitMin
	transport.RetryWaitMax = c.retryWaitMax
	transport.Logger = nil
	// Hand non-2xx responses back instead of turning them into errors.
	transport.ErrorHandler = retryablehttp.PassthroughErrorHandler

	if c.httpClient != nil {
		// Work on a copy so the caller's client keeps its own timeout.
		httpClient := *c.httpClient
		transport.HTTPClient = &httpClient
	}

	switch {
	case c.timeout > 0:
		transport.HTTPClient.Timeout = c.timeout
	case c.httpClient == nil:
		transport.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	}

	if c.debug {
		if slogger, ok := c.logger.(*twilio.SlogLogger); ok {
			transport.Logger = slogger.Slog()
		}
	}

	return transport
}

// Credentials returns the credentials requests are signed with.
func (c *Client) Credentials() twilio.Credentials {
	return c.credentials
}

// Do sends one request. GET parameters go into the query string, any other
// method sends them as a form body. A transport failure is a NetworkError.
// Any received response is returned as is.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	requestID := uuid.Must(uuid.NewV7()).String()
	start := time.Now()

	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	transport := c.single
	if req.Method == http.MethodGet {
		transport = c.retrying
	}

	resp, err := transport.Do(httpReq)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}

		c.logDebug("request failed", map[string]interface{}{
			"request_id": requestID,
			"method":     req.Method,
			"url":        httpReq.URL.String(),
			"duration":   time.Since(start).String(),
			"error":      err.Error(),
		})

		return nil, &twilio.NetworkError{Err: err}
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &twilio.NetworkError{Err: fmt.Errorf("reading response body: %w", err)}
	}

	c.logDebug("request", map[string]interface{}{
		"request_id": requestID,
		"method":     req.Method,
		"url":        httpReq.URL.String(),
		"status":     resp.StatusCode,
		"bytes":      len(body),
		"duration":   time.Since(start).String(),
	})

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}

func (c *Client) buildRequest(ctx context.Context, req *Request) (*retryablehttp.Request, error) {
	if req == nil {
		return nil, twilio.NewValidationError("request is required")
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target, err := url.Parse(req.URL)
	if err != nil || !target.IsAbs() {
		return nil, twilio.NewValidationError("invalid request URL %q", req.URL)
	}

	values, err := EncodeParams(req.Params)
	if err != nil {
		return nil, twilio.NewValidationError("encoding parameters: %v", err)
	}

	var body []byte

	if method == http.MethodGet {
		if len(values) > 0 {
			query := target.Query()
			for key, vals := range values {
				for _, v := range vals {
					query.Add(key, v)
				}
			}

			target.RawQuery = query.Encode()
		}
	} else if len(values) > 0 {
		body = []byte(values.Encode())
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, twilio.NewValidationError("building request: %v", err)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if body != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	// Credentials go on last so no caller header can replace them.
	httpReq.SetBasicAuth(c.credentials.AccountSID(), c.credentials.AuthToken())

	return httpReq, nil
}

func (c *Client) logDebug(msg string, fields map[string]interface{}) {
	if !c.debug || c.logger == nil {
		return
	}

	c.logger.Debug(msg, fields)
}

// JoinURL builds an absolute URL from a base and unescaped path segments.
func JoinURL(base string, segments ...string) string {
	escaped := make([]string, 0, len(segments))
	for _, segment := range segments {
		escaped = append(escaped, url.PathEscape(segment))
	}

	return strings.TrimSuffix(base, "/") + "/" + strings.Join(escaped, "/")
}
