package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

func TestCollection_ListAllPages(t *testing.T) {
	t.Parallel()

	client, paged := newPagedServer(t, "conversations", 3, 4, 0)

	conversations, err := client.Conversations().List(context.Background(), &twilio.ConversationListParams{
		State: twilio.ConversationStateActive,
	})
	require.NoError(t, err)
	require.Len(t, conversations, 12)

	assert.Equal(t, "p0i0", conversations[0].SID)
	assert.Equal(t, "p0i3", conversations[3].SID)
	assert.Equal(t, "p1i0", conversations[4].SID)
	assert.Equal(t, "p2i3", conversations[11].SID)

	calls := paged.calls()
	require.Len(t, calls, 3)

	// Only the first request carries the caller's parameters.
	assert.Equal(t, "active", calls[0].URL.Query().Get("State"))
	assert.Equal(t, "50", calls[0].URL.Query().Get("PageSize"))

	for _, call := range calls[1:] {
		assert.Empty(t, call.URL.Query().Get("State"))
		assert.Empty(t, call.URL.Query().Get("PageSize"))
		assert.NotEmpty(t, call.URL.Query().Get("PageToken"))
	}
}

func TestCollection_AbortOnFailure(t *testing.T) {
	t.Parallel()

	for _, failAt := range []int{1, 2, 3} {
		client, paged := newPagedServer(t, "documents", 3, 2, failAt)

		documents, err := client.Sync().Documents().List(context.Background(), "IS1")
		require.Error(t, err)
		assert.Nil(t, documents)
		assert.Equal(t, twilio.KindAPI, twilio.KindOf(err))
		assert.Len(t, paged.calls(), failAt)
	}
}

func TestCollection_SinglePage(t *testing.T) {
	t.Parallel()

	client, _ := newTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(t, writer, http.StatusOK, map[string]interface{}{
			"maps": []map[string]interface{}{},
			"meta": map[string]interface{}{"next_page_url": nil, "key": "maps"},
		})
	})

	maps, err := client.Sync().Maps().List(context.Background(), "IS1")
	require.NoError(t, err)
	assert.NotNil(t, maps)
	assert.Empty(t, maps)
}

func TestCollection_MaxPages(t *testing.T) {
	t.Parallel()

	paged := &pagedServer{key: "services"}
	paged.pages = [][]map[string]interface{}{{{"sid": "IS1"}}, {{"sid": "IS2"}}, {{"sid": "IS3"}}}

	var server *httptest.Server

	server = httptest.NewServer(paged.handler(t, func() string { return server.URL }))
	t.Cleanup(server.Close)

	client, err := New(&twilio.Config{
		Credentials: twilio.MustCredentials(testAccountSID, testAuthToken),
		BaseURLs:    map[twilio.Domain]string{twilio.DomainSync: server.URL},
		MaxPages:    2,
	})
	require.NoError(t, err)

	services, err := client.Sync().Services().List(context.Background())
	require.Error(t, err)
	assert.Nil(t, services)
	assert.ErrorIs(t, err, twilio.ErrMaxPagesExceeded)
	assert.Equal(t, twilio.KindValidation, twilio.KindOf(err))
	assert.Len(t, paged.calls(), 2)
}

func TestCollection_Iterate(t *testing.T) {
	t.Parallel()

	client, paged := newPagedServer(t, "services", 2, 3, 0)

	iterator := client.Serverless().Services().Iterate(context.Background())

	first, err := iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, "p0i0", first.SID)
	assert.Len(t, paged.calls(), 1)

	rest, err := iterator.All()
	require.NoError(t, err)
	assert.Len(t, rest, 5)
	assert.Equal(t, 2, iterator.Pages())
	assert.Len(t, paged.calls(), 2)

	_, err = iterator.Next()
	assert.ErrorIs(t, err, twilio.ErrNoMorePages)
}

func TestCollection_RelativeNextPageURI(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	client, _ := newTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
		if calls.Add(1) == 1 {
			writeJSON(t, writer, http.StatusOK, map[string]interface{}{
				"accounts":      []map[string]interface{}{{"sid": "AC1", "status": "active"}},
				"next_page_uri": "/2010-04-01/Accounts.json?PageSize=5&Page=1&PageToken=PAAC1",
				"page":          0,
				"page_size":     5,
			})

			return
		}

		assert.Equal(t, "/2010-04-01/Accounts.json", request.URL.Path)
		assert.Equal(t, "PAAC1", request.URL.Query().Get("PageToken"))
		writeJSON(t, writer, http.StatusOK, map[string]interface{}{
			"accounts":      []map[string]interface{}{{"sid": "AC2", "status": "closed"}},
			"next_page_uri": nil,
			"page":          1,
			"page_size":     5,
		})
	})

	accounts, err := client.Accounts().List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "AC2", accounts[1].SID)
	assert.Equal(t, int32(2), calls.Load())
}
