package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	twiliohttp "github.com/TristanBlackwell/twilly/internal/http"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

type testResource struct {
	SID  string `json:"sid"`
	Name string `json:"friendly_name"`
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestSend(t *testing.T) {
	t.Parallel()

	t.Run("decodes a successful body", func(t *testing.T) {
		t.Parallel()

		server := serve(t, http.StatusOK, `{"sid":"IS1","friendly_name":"main"}`)

		got, err := twiliohttp.Send[testResource](context.Background(), newTestClient(), &twiliohttp.Request{
			Method: http.MethodGet,
			URL:    server.URL + "/v1/Services/IS1",
		})
		require.NoError(t, err)
		assert.Equal(t, &testResource{SID: "IS1", Name: "main"}, got)
	})

	t.Run("rate limit becomes an api error", func(t *testing.T) {
		t.Parallel()

		server := serve(t, http.StatusTooManyRequests,
			`{"code":20429,"message":"Too Many Requests","more_info":"https://www.twilio.com/docs/errors/20429","status":429}`)

		got, err := twiliohttp.Send[testResource](context.Background(), newTestClient(), &twiliohttp.Request{
			Method: http.MethodGet,
			URL:    server.URL + "/v1/Services",
		})
		require.Error(t, err)
		assert.Nil(t, got)

		apiErr, ok := twilio.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, 20429, apiErr.Code)
		assert.Equal(t, "Too Many Requests", apiErr.Message)
		assert.Equal(t, 429, apiErr.Status)
		assert.True(t, errors.Is(err, twilio.ErrTooManyRequests))
		assert.Equal(t,
			"429 from Twilio. (20429) Too Many Requests. For more info see: https://www.twilio.com/docs/errors/20429",
			err.Error())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		server := serve(t, http.StatusNotFound,
			`{"code":20404,"message":"The requested resource was not found","more_info":"https://www.twilio.com/docs/errors/20404","status":404}`)

		_, err := twiliohttp.Send[testResource](context.Background(), newTestClient(), &twiliohttp.Request{
			Method: http.MethodGet,
			URL:    server.URL + "/v1/Services/IS404",
		})
		require.Error(t, err)
		assert.True(t, twilio.IsNotFound(err))
		assert.Equal(t, twilio.KindAPI, twilio.KindOf(err))
	})

	t.Run("unreadable error body is a parse error", func(t *testing.T) {
		t.Parallel()

		server := serve(t, http.StatusBadGateway, `<html>bad gateway</html>`)

		_, err := twiliohttp.Send[testResource](context.Background(), newTestClient(), &twiliohttp.Request{
			Method: http.MethodGet,
			URL:    server.URL + "/v1/Services",
		})
		require.Error(t, err)
		assert.Equal(t, twilio.KindParse, twilio.KindOf(err))

		var parseErr *twilio.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, 502, parseErr.StatusCode)
	})

	t.Run("error body without the twilio fields is a parse error", func(t *testing.T) {
		t.Parallel()

		server := serve(t, http.StatusNotFound, `{"message":"nope"}`)

		_, err := twiliohttp.Send[testResource](context.Background(), newTestClient(), &twiliohttp.Request{
			Method: http.MethodGet,
			URL:    server.URL + "/v1/Services/IS404",
		})
		require.Error(t, err)
		assert.Equal(t, twilio.KindParse, twilio.KindOf(err))
		assert.False(t, twilio.IsNotFound(err))
	})

	t.Run("null success body is a parse error", func(t *testing.T) {
		t.Parallel()

		server := serve(t, http.StatusOK, "null\n")

		got, err := twiliohttp.Send[testResource](context.Background(), newTestClient(), &twiliohttp.Request{
			Method: http.MethodGet,
			URL:    server.URL + "/v1/Services/IS1",
		})
		require.Error(t, err)
		assert.Nil(t, got)
		assert.Equal(t, twilio.KindParse, twilio.KindOf(err))
		require.ErrorIs(t, err, twilio.ErrNullBody)

		var parseErr *twilio.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, http.StatusOK, parseErr.StatusCode)
	})

	t.Run("malformed success body is a parse error", func(t *testing.T) {
		t.Parallel()

		server := serve(t, http.StatusOK, `{"sid":`)

		_, err := twiliohttp.Send[testResource](context.Background(), newTestClient(), &twiliohttp.Request{
			Method: http.MethodGet,
			URL:    server.URL + "/v1/Services/IS1",
		})
		require.Error(t, err)
		assert.Equal(t, twilio.KindParse, twilio.KindOf(err))
	})

	t.Run("repeated sends are independent", func(t *testing.T) {
		t.Parallel()

		server := serve(t, http.StatusOK, `{"sid":"IS1","friendly_name":"main"}`)
		client := newTestClient()
		req := &twiliohttp.Request{Method: http.MethodGet, URL: server.URL + "/v1/Services/IS1"}

		first, err := twiliohttp.Send[testResource](context.Background(), client, req)
		require.NoError(t, err)

		second, err := twiliohttp.Send[testResource](context.Background(), client, req)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestExec(t *testing.T) {
	t.Parallel()

	t.Run("any 2xx succeeds and the body is ignored", func(t *testing.T) {
		t.Parallel()

		for _, status := range []int{http.StatusOK, http.StatusNoContent} {
			server := serve(t, status, "")

			err := newTestClient().Exec(context.Background(), &twiliohttp.Request{
				Method: http.MethodDelete,
				URL:    server.URL + "/v1/Services/IS1",
			})
			require.NoError(t, err)
		}
	})

	t.Run("non-2xx is an api error", func(t *testing.T) {
		t.Parallel()

		server := serve(t, http.StatusNotFound,
			`{"code":20404,"message":"not found","more_info":"x","status":404}`)

		err := newTestClient().Exec(context.Background(), &twiliohttp.Request{
			Method: http.MethodDelete,
			URL:    server.URL + "/v1/Services/IS1",
		})
		require.Error(t, err)
		assert.True(t, twilio.IsNotFound(err))
	})
}
