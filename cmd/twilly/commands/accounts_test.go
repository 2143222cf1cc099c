package commands

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

func accountBody(sid, status string) map[string]interface{} {
	return map[string]interface{}{
		"sid":               sid,
		"friendly_name":     "Main",
		"status":            status,
		"type":              "Full",
		"owner_account_sid": testAccountSID,
		"date_created":      "Mon, 01 Jan 2024 00:00:00 +0000",
	}
}

func TestNewAccountsCommand(t *testing.T) {
	cmd := NewAccountsCommand()
	assert.Equal(t, "accounts", cmd.Use)
	assert.Equal(t, []string{"account"}, cmd.Aliases)
	assert.Equal(t, "Manage accounts", cmd.Short)

	names := subcommandNames(cmd)
	for _, name := range []string{"get", "list", "create", "update", "rename", "suspend", "activate", "close", "close-all"} {
		assert.Contains(t, names, name)
	}

	closeCmd := findSubcommand(cmd, "close")
	require.NotNil(t, closeCmd)
	assert.Equal(t, "close ACCOUNT_SID", closeCmd.Use)

	forceFlag := closeCmd.Flags().Lookup("force")
	require.NotNil(t, forceFlag)
	assert.Equal(t, "f", forceFlag.Shorthand)

	assert.Nil(t, findSubcommand(cmd, "suspend").Flags().Lookup("force"))

	intervalFlag := findSubcommand(cmd, "close-all").Flags().Lookup("interval")
	require.NotNil(t, intervalFlag)
	assert.Equal(t, "1s", intervalFlag.DefValue)
}

func TestAccountsGet(t *testing.T) {
	t.Run("own account", func(t *testing.T) {
		setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/2010-04-01/Accounts/"+testAccountSID+".json", r.URL.Path)

			user, pass, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, testAccountSID, user)
			assert.Equal(t, testAuthToken, pass)

			writeJSON(t, w, http.StatusOK, accountBody(testAccountSID, "active"))
		})

		out, err := execute(t, NewAccountsCommand(), "", "get")
		require.NoError(t, err)

		var account twilio.Account
		require.NoError(t, json.Unmarshal([]byte(out), &account))
		assert.Equal(t, testAccountSID, account.SID)
		assert.Equal(t, twilio.AccountStatusActive, account.Status)
	})

	t.Run("not found is reported, not failed", func(t *testing.T) {
		setupCLI(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, http.StatusNotFound, notFoundBody())
		})

		out, err := execute(t, NewAccountsCommand(), "", "get", "AC99999999999999999999999999999999")
		require.NoError(t, err)
		assert.Equal(t, "Account AC99999999999999999999999999999999 not found.\n", out)
	})

	t.Run("other api errors fail", func(t *testing.T) {
		setupCLI(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, http.StatusUnauthorized, map[string]interface{}{
				"code": 20003, "message": "Authenticate", "more_info": "https://www.twilio.com/docs/errors/20003", "status": 401,
			})
		})

		_, err := execute(t, NewAccountsCommand(), "", "get")
		require.Error(t, err)
		assert.Equal(t, twilio.KindAPI, twilio.KindOf(err))
		assert.ErrorIs(t, err, twilio.ErrUnauthorized)
	})
}

func TestAccountsList(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2010-04-01/Accounts.json", r.URL.Path)
		assert.Equal(t, "suspended", r.URL.Query().Get("Status"))
		assert.Equal(t, "5", r.URL.Query().Get("PageSize"))

		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"accounts":      []interface{}{accountBody("AC1", "suspended"), accountBody("AC2", "suspended")},
			"next_page_uri": nil,
		})
	})

	out, err := execute(t, NewAccountsCommand(), "", "list", "--status", "Suspended")
	require.NoError(t, err)

	var accounts []twilio.Account
	require.NoError(t, json.Unmarshal([]byte(out), &accounts))
	assert.Len(t, accounts, 2)
}

func TestAccountsListRejectsUnknownStatus(t *testing.T) {
	var calls atomic.Int32

	setupCLI(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	})

	_, err := execute(t, NewAccountsCommand(), "", "list", "--status", "archived")
	require.Error(t, err)
	assert.Equal(t, twilio.KindValidation, twilio.KindOf(err))
	assert.Zero(t, calls.Load())
}

func TestAccountsCloseNeedsConfirmation(t *testing.T) {
	var calls atomic.Int32

	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "closed", r.PostForm.Get("Status"))

		writeJSON(t, w, http.StatusOK, accountBody("AC3", "closed"))
	})

	out, err := execute(t, NewAccountsCommand(), "n\n", "close", "AC3")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")
	assert.Zero(t, calls.Load())

	out, err = execute(t, NewAccountsCommand(), "y\n", "close", "AC3")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated account AC3")
	assert.Equal(t, int32(1), calls.Load())
}

func TestAccountsCloseAll(t *testing.T) {
	var closed []string

	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/2010-04-01/Accounts.json":
			assert.Equal(t, "active", r.URL.Query().Get("Status"))
			writeJSON(t, w, http.StatusOK, map[string]interface{}{
				"accounts": []interface{}{
					accountBody(testAccountSID, "active"),
					accountBody("AC4", "active"),
					accountBody("AC5", "active"),
				},
			})
		case r.Method == http.MethodPost:
			closed = append(closed, r.URL.Path)
			writeJSON(t, w, http.StatusOK, accountBody("ACX", "closed"))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	out, err := execute(t, NewAccountsCommand(), "", "close-all", "-f", "--interval", "0")
	require.NoError(t, err)
	assert.Equal(t, []string{"/2010-04-01/Accounts/AC4.json", "/2010-04-01/Accounts/AC5.json"}, closed)
	assert.Contains(t, out, "Closed 2 of 2.")
}

func TestAccountsUpdateNeedsFields(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
	})

	_, err := execute(t, NewAccountsCommand(), "", "update", "AC1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no fields to update")
}
