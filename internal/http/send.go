package http

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

// Send performs req and decodes a successful body into a new T.
func Send[T any](ctx context.Context, c *Client, req *Request) (*T, error) {
	var out T

	err := c.SendInto(ctx, req, &out)
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// SendInto performs req and decodes a successful body into out. A non-2xx
// response becomes an *twilio.APIError, or a *twilio.ParseError when the
// error body is not a complete Twilio error. A 2xx body that does not
// decode, or is null, is a *twilio.ParseError.
func (c *Client) SendInto(ctx context.Context, req *Request, out interface{}) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}

	if !resp.IsSuccess() {
		return twilio.ParseAPIError(resp.StatusCode, resp.Body)
	}

	if out == nil {
		return nil
	}

	if bytes.Equal(bytes.TrimSpace(resp.Body), []byte("null")) {
		return &twilio.ParseError{Err: twilio.ErrNullBody, StatusCode: resp.StatusCode, Body: resp.Body}
	}

	err = json.Unmarshal(resp.Body, out)
	if err != nil {
		return &twilio.ParseError{Err: err, StatusCode: resp.StatusCode, Body: resp.Body}
	}

	return nil
}

// Exec performs req for its side effect. Any 2xx status is a success and the
// body is ignored.
func (c *Client) Exec(ctx context.Context, req *Request) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}

	if !resp.IsSuccess() {
		return twilio.ParseAPIError(resp.StatusCode, resp.Body)
	}

	return nil
}
