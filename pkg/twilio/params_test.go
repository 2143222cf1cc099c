package twilio_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

func TestJSONField(t *testing.T) {
	t.Parallel()

	field, err := twilio.NewJSONField(`{"name":"ada","tags":["a","b"]}`)
	require.NoError(t, err)
	assert.False(t, field.IsZero())

	values, err := query.Values(twilio.SyncDocumentCreateParams{UniqueName: "profile", Data: field})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"ada","tags":["a","b"]}`, values.Get("Data"))
	assert.Equal(t, "profile", values.Get("UniqueName"))
	assert.False(t, values.Has("Ttl"))

	_, err = twilio.NewJSONField(`{"name":`)
	require.Error(t, err)
	assert.Equal(t, twilio.KindValidation, twilio.KindOf(err))

	empty := url.Values{}
	require.NoError(t, twilio.JSONField{}.EncodeValues("Data", &empty))
	assert.Empty(t, empty)
}

func TestSyncItemUpdateParams_IfMatchIsNotAFormField(t *testing.T) {
	t.Parallel()

	values, err := query.Values(twilio.SyncItemUpdateParams{IfMatch: "rev-1", TTL: 60})
	require.NoError(t, err)
	assert.Equal(t, url.Values{"Ttl": []string{"60"}}, values)
}

func TestSyncServiceParams_Validate(t *testing.T) {
	t.Parallel()

	window := func(ms int) *twilio.SyncServiceParams {
		return &twilio.SyncServiceParams{ReachabilityDebouncingWindow: &ms}
	}

	require.NoError(t, (*twilio.SyncServiceParams)(nil).Validate())
	require.NoError(t, (&twilio.SyncServiceParams{FriendlyName: "x"}).Validate())
	require.NoError(t, window(1000).Validate())
	require.NoError(t, window(30000).Validate())

	err := window(999).Validate()
	require.Error(t, err)
	assert.Equal(t, "Reachability debouncing window must be greater than 1000 milliseconds", err.Error())

	err = window(30001).Validate()
	require.Error(t, err)
	assert.Equal(t, "Reachability debouncing window must be less than 30,000 milliseconds", err.Error())
}

func TestSyncItemListParams_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, (&twilio.SyncItemListParams{Order: twilio.SyncItemOrderDesc, Bounds: twilio.SyncItemBoundsExclusive}).Validate())
	require.Error(t, (&twilio.SyncItemListParams{Order: "sideways"}).Validate())
	require.Error(t, (&twilio.SyncItemListParams{Bounds: "open"}).Validate())
}

func TestServerlessLogListParams(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	params := &twilio.ServerlessLogListParams{StartDate: &start, EndDate: &end, PageSize: 500}
	require.NoError(t, params.Validate())

	values, err := query.Values(params)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T10:00:00Z", values.Get("StartDate"))
	assert.Equal(t, "2024-03-01T11:00:00Z", values.Get("EndDate"))
	assert.Equal(t, "500", values.Get("PageSize"))

	reversed := &twilio.ServerlessLogListParams{StartDate: &end, EndDate: &start}
	err = reversed.Validate()
	require.Error(t, err)
	assert.Equal(t, twilio.KindValidation, twilio.KindOf(err))
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	level, err := twilio.ParseLogLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, twilio.LogLevelWarn, level)

	_, err = twilio.ParseLogLevel("debug")
	require.Error(t, err)
}

func TestFilterLogsByLevel(t *testing.T) {
	t.Parallel()

	logs := []twilio.ServerlessLog{
		{SID: "NO1", Level: twilio.LogLevelInfo},
		{SID: "NO2", Level: twilio.LogLevelError},
		{SID: "NO3", Level: twilio.LogLevelWarn},
		{SID: "NO4", Level: twilio.LogLevelError},
	}

	assert.Equal(t, logs, twilio.FilterLogsByLevel(logs))

	filtered := twilio.FilterLogsByLevel(logs, twilio.LogLevelError)
	require.Len(t, filtered, 2)
	assert.Equal(t, "NO2", filtered[0].SID)
	assert.Equal(t, "NO4", filtered[1].SID)

	assert.Empty(t, twilio.FilterLogsByLevel(logs, twilio.LogLevel("TRACE")))
}

func TestParseStates(t *testing.T) {
	t.Parallel()

	status, err := twilio.ParseAccountStatus("Suspended")
	require.NoError(t, err)
	assert.Equal(t, twilio.AccountStatusSuspended, status)

	_, err = twilio.ParseAccountStatus("gone")
	require.Error(t, err)

	state, err := twilio.ParseConversationState("CLOSED")
	require.NoError(t, err)
	assert.Equal(t, twilio.ConversationStateClosed, state)

	_, err = twilio.ParseConversationState("archived")
	require.Error(t, err)
}

func TestConversationParams(t *testing.T) {
	t.Parallel()

	values, err := query.Values(twilio.ConversationUpdateParams{State: twilio.ConversationStateClosed, TimersClosed: "PT10M"})
	require.NoError(t, err)
	assert.Equal(t, "closed", values.Get("State"))
	assert.Equal(t, "PT10M", values.Get("Timers.Closed"))

	require.Error(t, (&twilio.ParticipantConversationListParams{}).Validate())
	require.NoError(t, (&twilio.ParticipantConversationListParams{Address: "+15005550006"}).Validate())
}

func TestConversation_DisplayName(t *testing.T) {
	t.Parallel()

	friendly := "Support"
	unique := "support-1"

	assert.Equal(t, "Support", twilio.Conversation{SID: "CH1", FriendlyName: &friendly, UniqueName: &unique}.DisplayName())
	assert.Equal(t, "support-1", twilio.Conversation{SID: "CH1", UniqueName: &unique}.DisplayName())
	assert.Equal(t, "CH1", twilio.Conversation{SID: "CH1"}.DisplayName())
}
