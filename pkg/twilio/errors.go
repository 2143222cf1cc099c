package twilio

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed operation.
type ErrorKind int

// Error kinds. Every failure returned by a dispatch, pagination or resource
// operation maps to exactly one of the four known kinds.
const (
	KindUnknown ErrorKind = iota
	KindNetwork
	KindAPI
	KindParse
	KindValidation
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAPI:
		return "api"
	case KindParse:
		return "parse"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Static errors for err113 compliance.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrTooManyRequests = errors.New("too many requests")

	// Credential shape failures. These are shown to users verbatim.
	ErrAccountSIDPrefix = errors.New("Account SID must start with AC")                 //nolint:staticcheck
	ErrAccountSIDLength = errors.New("Account SID should be 34 characters in length") //nolint:staticcheck
	ErrAuthTokenLength  = errors.New("Auth token should be 32 characters in length")   //nolint:staticcheck

	ErrMaxPagesExceeded = errors.New("maximum number of pages exceeded")
	ErrNoMorePages      = errors.New("no more pages")
	ErrConfigRequired   = errors.New("config is required")

	ErrIncompleteErrorBody = errors.New("error body must carry code, message, more_info and status")
	ErrNullBody            = errors.New("response body is null")
)

// APIError is the error body Twilio returns alongside a non-2xx status.
// It is only ever decoded from a response, never built locally.
type APIError struct {
	Code     int    `json:"code"      yaml:"code"`
	Message  string `json:"message"   yaml:"message"`
	MoreInfo string `json:"more_info" yaml:"more_info"`
	Status   int    `json:"status"    yaml:"status"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%d from Twilio. (%d) %s. For more info see: %s", e.Status, e.Code, e.Message, e.MoreInfo)
}

// Is lets errors.Is match an APIError against the status sentinels.
func (e *APIError) Is(target error) bool {
	switch {
	case errors.Is(target, ErrNotFound):
		return e.Status == http.StatusNotFound
	case errors.Is(target, ErrUnauthorized):
		return e.Status == http.StatusUnauthorized
	case errors.Is(target, ErrTooManyRequests):
		return e.Status == http.StatusTooManyRequests
	default:
		return false
	}
}

// NetworkError reports a transport failure: DNS, TCP, TLS, timeout or a
// cancelled context. No response was received.
type NetworkError struct {
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("Network error reaching Twilio: %v", e.Err)
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the underlying failure was a timeout.
func (e *NetworkError) Timeout() bool {
	var timeout interface{ Timeout() bool }
	if errors.As(e.Err, &timeout) {
		return timeout.Timeout()
	}

	return false
}

// ParseError reports a response body that could not be decoded, either into
// the expected resource type on success or into an APIError on failure.
type ParseError struct {
	Err        error
	StatusCode int
	Body       []byte
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("Unable to parse response: %v", e.Err)
}

// Unwrap returns the decoding error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports arguments rejected locally before any request was sent.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "Validation error for provided arguments: " + e.Message
}

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the classification of err, looking through any wrapping.
func KindOf(err error) ErrorKind {
	var (
		netErr   *NetworkError
		apiErr   *APIError
		parseErr *ParseError
		valErr   *ValidationError
	)

	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &apiErr):
		return KindAPI
	case errors.As(err, &parseErr):
		return KindParse
	case errors.As(err, &valErr):
		return KindValidation
	case errors.As(err, &netErr):
		return KindNetwork
	default:
		return KindUnknown
	}
}

// AsAPIError extracts the APIError from err if there is one.
func AsAPIError(err error) (*APIError, bool) {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	apiErr, ok := AsAPIError(err)

	return ok && apiErr.Status == status
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// apiErrorBody mirrors APIError with every field required to be present.
type apiErrorBody struct {
	Code     *int    `json:"code"`
	Message  *string `json:"message"`
	MoreInfo *string `json:"more_info"`
	Status   *int    `json:"status"`
}

// ParseAPIError decodes an error response body. Only a body carrying all
// four Twilio error fields becomes an *APIError; anything else is a
// *ParseError holding the raw body.
func ParseAPIError(statusCode int, data []byte) error {
	var body apiErrorBody

	err := json.Unmarshal(data, &body)
	if err != nil {
		return &ParseError{Err: fmt.Errorf("decoding error response: %w", err), StatusCode: statusCode, Body: data}
	}

	if body.Code == nil || body.Message == nil || body.MoreInfo == nil || body.Status == nil {
		return &ParseError{
			Err:        fmt.Errorf("decoding error response: %w", ErrIncompleteErrorBody),
			StatusCode: statusCode,
			Body:       data,
		}
	}

	return &APIError{
		Code:     *body.Code,
		Message:  *body.Message,
		MoreInfo: *body.MoreInfo,
		Status:   *body.Status,
	}
}
