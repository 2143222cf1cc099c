package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires a config", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil)
		require.ErrorIs(t, err, twilio.ErrConfigRequired)
	})

	t.Run("requires credentials", func(t *testing.T) {
		t.Parallel()

		_, err := New(&twilio.Config{})
		require.ErrorIs(t, err, twilio.ErrConfigRequired)
	})

	t.Run("rejects negative max pages", func(t *testing.T) {
		t.Parallel()

		_, err := New(&twilio.Config{
			Credentials: twilio.MustCredentials(testAccountSID, testAuthToken),
			MaxPages:    -1,
		})
		require.Error(t, err)
		assert.Equal(t, twilio.KindValidation, twilio.KindOf(err))
	})

	t.Run("exposes every resource client", func(t *testing.T) {
		t.Parallel()

		client, err := New(&twilio.Config{Credentials: twilio.MustCredentials(testAccountSID, testAuthToken)})
		require.NoError(t, err)

		assert.Equal(t, testAccountSID, client.Credentials().AccountSID())
		assert.NotNil(t, client.Accounts())
		assert.NotNil(t, client.Conversations())
		assert.NotNil(t, client.ParticipantConversations())
		assert.NotNil(t, client.Sync().Services())
		assert.NotNil(t, client.Sync().Documents())
		assert.NotNil(t, client.Sync().Maps())
		assert.NotNil(t, client.Sync().MapItems())
		assert.NotNil(t, client.Sync().Lists())
		assert.NotNil(t, client.Sync().ListItems())
		assert.NotNil(t, client.Serverless().Services())
		assert.NotNil(t, client.Serverless().Environments())
		assert.NotNil(t, client.Serverless().Logs())

		var _ twilio.Client = client
	})

	t.Run("uses production hosts by default", func(t *testing.T) {
		t.Parallel()

		client, err := New(&twilio.Config{Credentials: twilio.MustCredentials(testAccountSID, testAuthToken)})
		require.NoError(t, err)

		assert.Equal(t, "https://api.twilio.com", client.accounts.baseURL)
		assert.Equal(t, "https://conversations.twilio.com", client.conversations.baseURL)
		assert.Equal(t, "https://sync.twilio.com", client.sync.services.baseURL)
		assert.Equal(t, "https://serverless.twilio.com", client.serverless.logs.baseURL)
	})
}
