package commands

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

func TestStatus(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/2010-04-01/Accounts/" + testAccountSID + ".json":
			writeJSON(t, w, http.StatusOK, map[string]interface{}{
				"sid": testAccountSID, "friendly_name": "Main", "status": "active", "type": "Full",
			})
		case "/v1/Conversations":
			writeJSON(t, w, http.StatusOK, page("conversations",
				conversationBody("CH1", "active"),
				conversationBody("CH2", "closed"),
				conversationBody("CH3", "inactive"),
			))
		case "/v1/Services":
			// Sync and Serverless share the path and only differ by host.
			writeJSON(t, w, http.StatusOK, page("services",
				map[string]interface{}{"sid": "IS1"},
				map[string]interface{}{"sid": "IS2"},
			))
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	out, err := execute(t, NewStatusCommand(), "")
	require.NoError(t, err)

	var status AccountStatus
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	require.NotNil(t, status.Account)
	assert.Equal(t, "Main", status.Account.FriendlyName)
	assert.Equal(t, 3, status.Conversations)
	assert.Equal(t, 2, status.SyncServices)
	assert.Equal(t, 2, status.ServerlessServices)
}

func TestStatusFailsWhenAnyPartFails(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/Conversations" {
			writeJSON(t, w, http.StatusForbidden, map[string]interface{}{
				"code": 20403, "message": "Forbidden", "more_info": "https://www.twilio.com/docs/errors/20403", "status": 403,
			})

			return
		}

		writeJSON(t, w, http.StatusOK, page("services"))
	})

	_, err := execute(t, NewStatusCommand(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list conversations")
	assert.True(t, twilio.IsStatus(err, http.StatusForbidden))
}
