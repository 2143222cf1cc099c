package commands

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TristanBlackwell/twilly/internal/constants"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

func TestNewSyncCommand(t *testing.T) {
	cmd := NewSyncCommand()
	assert.Equal(t, "sync", cmd.Use)
	assert.ElementsMatch(t,
		[]string{"services", "documents", "maps", "map-items", "lists", "list-items"},
		subcommandNames(cmd))

	for _, name := range []string{"documents", "maps", "lists"} {
		sub := findSubcommand(cmd, name)
		require.NotNil(t, sub, "%s should exist", name)
		assert.NotNil(t, sub.PersistentFlags().Lookup("service"), "%s should take --service", name)
		assert.ElementsMatch(t, []string{"get", "list", "create", "update", "delete"}, subcommandNames(sub))
	}

	assert.NotNil(t, findSubcommand(cmd, "map-items").PersistentFlags().Lookup("map"))
	assert.NotNil(t, findSubcommand(cmd, "list-items").PersistentFlags().Lookup("list"))
}

func TestSyncRequiresParentFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"documents without service", []string{"documents", "list"}, constants.ErrServiceRequired},
		{"maps without service", []string{"maps", "get", "MP1"}, constants.ErrServiceRequired},
		{"map items without map", []string{"map-items", "list", "--service", "IS1"}, constants.ErrMapRequired},
		{"list items without list", []string{"list-items", "get", "0", "--service", "IS1"}, constants.ErrListRequired},
		{"bad list index", []string{"list-items", "get", "first", "--service", "IS1", "--list", "ES1"}, constants.ErrInvalidIndex},
		{"map item without data", []string{"map-items", "create", "--service", "IS1", "--map", "MP1", "--key", "k"}, constants.ErrDataRequired},
		{"document update without fields", []string{"documents", "update", "ET1", "--service", "IS1"}, constants.ErrNothingToUpdate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLI(t, func(w http.ResponseWriter, _ *http.Request) {
				t.Error("no request expected")
			})

			_, err := execute(t, NewSyncCommand(), "", tt.args...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSyncServicesCreateValidatesWindow(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
	})

	_, err := execute(t, NewSyncCommand(), "", "services", "create", "--debouncing-window", "500")
	require.Error(t, err)
	assert.Equal(t, twilio.KindValidation, twilio.KindOf(err))
	assert.Contains(t, err.Error(), "Reachability debouncing window must be greater than 1000 milliseconds")
}

func TestSyncServicesCreate(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/Services", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "Chat", r.PostForm.Get("FriendlyName"))
		assert.Equal(t, "true", r.PostForm.Get("AclEnabled"))
		assert.Equal(t, "5000", r.PostForm.Get("ReachabilityDebouncingWindow"))
		assert.NotContains(t, r.PostForm, "WebhooksFromRestEnabled")

		writeJSON(t, w, http.StatusCreated, map[string]interface{}{"sid": "IS1", "friendly_name": "Chat", "acl_enabled": true})
	})

	out, err := execute(t, NewSyncCommand(), "",
		"services", "create", "--friendly-name", "Chat", "--acl", "--debouncing-window", "5000")
	require.NoError(t, err)
	assert.Contains(t, out, "Created Sync service IS1")
}

func TestSyncDocumentsUpdate(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/Services/IS1/Documents/ET1", r.URL.Path)
		assert.Equal(t, "3", r.Header.Get("If-Match"))

		require.NoError(t, r.ParseForm())
		assert.JSONEq(t, `{"step":2}`, r.PostForm.Get("Data"))
		assert.NotContains(t, r.PostForm, "IfMatch")

		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"sid": "ET1", "service_sid": "IS1", "revision": "4", "data": map[string]interface{}{"step": 2},
		})
	})

	out, err := execute(t, NewSyncCommand(), "",
		"documents", "update", "ET1", "--service", "IS1", "--data", `{"step":2}`, "--if-match", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated Sync document ET1")
}

func TestSyncDocumentsUpdateRevisionConflict(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusPreconditionFailed, map[string]interface{}{
			"code": 54103, "message": "The revision of the Document does not match the expected revision",
			"more_info": "https://www.twilio.com/docs/errors/54103", "status": 412,
		})
	})

	_, err := execute(t, NewSyncCommand(), "",
		"documents", "update", "ET1", "--service", "IS1", "--data", `{}`, "--if-match", "1")
	require.Error(t, err)
	assert.True(t, twilio.IsStatus(err, http.StatusPreconditionFailed))
}

func TestSyncDocumentsRejectsInvalidJSON(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
	})

	_, err := execute(t, NewSyncCommand(), "", "documents", "create", "--service", "IS1", "--data", "{oops")
	require.Error(t, err)
	assert.Equal(t, twilio.KindValidation, twilio.KindOf(err))
}

func TestSyncMapItemsList(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/Services/IS1/Maps/MP1/Items", r.URL.Path)
		assert.Equal(t, "desc", r.URL.Query().Get("Order"))
		assert.Equal(t, "b", r.URL.Query().Get("From"))

		writeJSON(t, w, http.StatusOK, page("items",
			map[string]interface{}{"key": "b", "map_sid": "MP1", "data": map[string]interface{}{"n": 2}},
			map[string]interface{}{"key": "a", "map_sid": "MP1", "data": map[string]interface{}{"n": 1}},
		))
	})

	out, err := execute(t, NewSyncCommand(), "",
		"map-items", "list", "--service", "IS1", "--map", "MP1", "--order", "desc", "--from", "b")
	require.NoError(t, err)

	var items []twilio.SyncMapItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].Key)
	assert.JSONEq(t, `{"n":1}`, string(items[1].Data))
}

func TestSyncMapItemsListRejectsOrder(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
	})

	_, err := execute(t, NewSyncCommand(), "",
		"map-items", "list", "--service", "IS1", "--map", "MP1", "--order", "sideways")
	require.Error(t, err)
	assert.Equal(t, twilio.KindValidation, twilio.KindOf(err))
}

func TestSyncListItemsDelete(t *testing.T) {
	var calls atomic.Int32

	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1/Services/IS1/Lists/ES1/Items/7", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	out, err := execute(t, NewSyncCommand(), "",
		"list-items", "delete", "7", "--service", "IS1", "--list", "ES1", "-f")
	require.NoError(t, err)
	assert.Equal(t, "Successfully deleted Sync list item '7'\n", out)
	assert.Equal(t, int32(1), calls.Load())
}
