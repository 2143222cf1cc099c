package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

const (
	testAccountSID = "AC11111111111111111111111111111111"
	testAuthToken  = "11111111111111111111111111111111"
)

// newTestClient creates a client with every domain pointed at baseURL.
func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	baseURLs := make(map[twilio.Domain]string, len(twilio.Domains))
	for _, domain := range twilio.Domains {
		baseURLs[domain] = baseURL
	}

	client, err := New(&twilio.Config{
		Credentials: twilio.MustCredentials(testAccountSID, testAuthToken),
		BaseURLs:    baseURLs,
	})
	require.NoError(t, err)

	return client
}

// newTestServer starts a server running handler and a client pointed at it.
func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return newTestClient(t, server.URL), server
}

func writeJSON(t *testing.T, writer http.ResponseWriter, status int, body interface{}) {
	t.Helper()

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)

	if body != nil {
		_ = json.NewEncoder(writer).Encode(body)
	}
}

func notFoundBody() map[string]interface{} {
	return map[string]interface{}{
		"code":      20404,
		"message":   "The requested resource was not found",
		"more_info": "https://www.twilio.com/docs/errors/20404",
		"status":    404,
	}
}

// TestGetOperation represents a generic get operation test case.
type TestGetOperation[TResponse any] struct {
	Name         string
	SID          string
	ExpectedPath string
	StatusCode   int
	Response     interface{}
	WantErr      bool
	WantNotFound bool
	ErrMessage   string
	Check        func(*testing.T, *TResponse)
}

// TestDeleteOperation represents a generic delete operation test case.
type TestDeleteOperation struct {
	Name         string
	SID          string
	ExpectedPath string
	StatusCode   int
	Response     interface{}
	WantErr      bool
	WantNotFound bool
}

// RunGetTests runs a series of get operation tests.
func RunGetTests[TResponse any](
	t *testing.T,
	tests []TestGetOperation[TResponse],
	getFunc func(*Client) func(context.Context, string) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			client, _ := newTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, http.MethodGet, request.Method)
				writeJSON(t, writer, testCase.StatusCode, testCase.Response)
			})

			result, err := getFunc(client)(context.Background(), testCase.SID)

			if testCase.WantErr {
				require.Error(t, err)
				assert.Nil(t, result)
				assert.Equal(t, testCase.WantNotFound, twilio.IsNotFound(err))

				if testCase.ErrMessage != "" {
					assert.Contains(t, err.Error(), testCase.ErrMessage)
				}

				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)

			if testCase.Check != nil {
				testCase.Check(t, result)
			}
		})
	}
}

// RunDeleteTests runs a series of delete operation tests.
func RunDeleteTests(
	t *testing.T,
	tests []TestDeleteOperation,
	deleteFunc func(*Client) func(context.Context, string) error,
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			client, _ := newTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, http.MethodDelete, request.Method)
				writeJSON(t, writer, testCase.StatusCode, testCase.Response)
			})

			err := deleteFunc(client)(context.Background(), testCase.SID)

			if testCase.WantErr {
				require.Error(t, err)
				assert.Equal(t, testCase.WantNotFound, twilio.IsNotFound(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

// pagedServer serves a collection split into pages under key. Page n links
// to page n+1 through meta.next_page_url, and failAt makes that page number
// (1-based) answer with a 500 instead. It records every request it sees.
type pagedServer struct {
	key      string
	pages    [][]map[string]interface{}
	failAt   int
	mu       sync.Mutex
	requests []*http.Request
}

func (s *pagedServer) calls() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*http.Request(nil), s.requests...)
}

func (s *pagedServer) handler(t *testing.T, serverURL func() string) http.HandlerFunc {
	t.Helper()

	return func(writer http.ResponseWriter, request *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, request)
		pageNumber := len(s.requests)
		s.mu.Unlock()

		if pageNumber == s.failAt {
			writeJSON(t, writer, http.StatusInternalServerError, map[string]interface{}{
				"code": 20500, "message": "Internal Server Error", "more_info": "x", "status": 500,
			})

			return
		}

		index := pageNumber - 1
		if index >= len(s.pages) {
			index = len(s.pages) - 1
		}

		var next interface{}
		if index+1 < len(s.pages) {
			next = fmt.Sprintf("%s%s?Page=%d&PageToken=PT%d", serverURL(), request.URL.Path, index+1, index+1)
		}

		writeJSON(t, writer, http.StatusOK, map[string]interface{}{
			s.key: s.pages[index],
			"meta": map[string]interface{}{
				"page":          index,
				"page_size":     len(s.pages[index]),
				"next_page_url": next,
				"key":           s.key,
			},
		})
	}
}

// newPagedServer builds n pages of m items, each item {"sid": "p{page}i{item}"}.
func newPagedServer(t *testing.T, key string, n, m, failAt int) (*Client, *pagedServer) {
	t.Helper()

	paged := &pagedServer{key: key, failAt: failAt}

	for page := range n {
		items := make([]map[string]interface{}, 0, m)
		for item := range m {
			items = append(items, map[string]interface{}{"sid": fmt.Sprintf("p%di%d", page, item)})
		}

		paged.pages = append(paged.pages, items)
	}

	var server *httptest.Server

	server = httptest.NewServer(paged.handler(t, func() string { return server.URL }))
	t.Cleanup(server.Close)

	return newTestClient(t, server.URL), paged
}
