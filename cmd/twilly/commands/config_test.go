package commands

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/TristanBlackwell/twilly/internal/constants"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

const (
	otherAccountSID = "AC33333333333333333333333333333333"
	otherAuthToken  = "33333333333333333333333333333333"
)

func writeConfig(t *testing.T, config *Config) {
	t.Helper()

	data, err := yaml.Marshal(config)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(viper.GetString("config"), data, constants.ConfigFilePerm))
}

func readConfig(t *testing.T) *Config {
	t.Helper()

	data, err := os.ReadFile(viper.GetString("config"))
	require.NoError(t, err)

	config := &Config{}
	require.NoError(t, yaml.Unmarshal(data, config))

	return config
}

func twoProfiles() *Config {
	return &Config{
		CurrentProfile: "default",
		Profiles: map[string]*Profile{
			"default": {AccountSID: testAccountSID, AuthToken: testAuthToken},
			"staging": {AccountSID: otherAccountSID, AuthToken: otherAuthToken},
		},
	}
}

// useProfilesOnly clears the credential overrides set by setupCLI.
func useProfilesOnly() {
	viper.Set("account_sid", "")
	viper.Set("auth_token", "")
}

func TestLogin(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2010-04-01/Accounts/"+otherAccountSID+".json", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, otherAccountSID, user)
		assert.Equal(t, otherAuthToken, pass)

		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"sid": otherAccountSID, "friendly_name": "Staging", "status": "active",
		})
	})
	viper.Set("profile", "staging")

	out, err := execute(t, NewLoginCommand(), "", "--account-sid", otherAccountSID, "--auth-token", otherAuthToken)
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in to Staging ("+otherAccountSID+")")
	assert.Contains(t, out, "Saved as profile 'staging'")

	info, err := os.Stat(viper.GetString("config"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.ConfigFilePerm), info.Mode().Perm())

	config := readConfig(t)
	assert.Equal(t, "staging", config.CurrentProfile)
	require.Contains(t, config.Profiles, "staging")
	assert.Equal(t, otherAuthToken, config.Profiles["staging"].AuthToken)
}

func TestLoginPrompts(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]interface{}{"sid": otherAccountSID, "friendly_name": "Prompted"})
	})

	out, err := execute(t, NewLoginCommand(), otherAccountSID+"\n"+otherAuthToken+"\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Account SID: ")
	assert.Contains(t, out, "Auth token: ")
	assert.Contains(t, out, "Saved as profile 'default'")
}

func TestLoginRejectsInvalidCredentials(t *testing.T) {
	t.Run("malformed", func(t *testing.T) {
		setupCLI(t, func(w http.ResponseWriter, _ *http.Request) {
			t.Error("no request expected")
		})

		_, err := execute(t, NewLoginCommand(), "", "--account-sid", "SK123", "--auth-token", otherAuthToken)
		require.ErrorIs(t, err, twilio.ErrAccountSIDPrefix)
	})

	t.Run("refused by Twilio", func(t *testing.T) {
		setupCLI(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, http.StatusUnauthorized, map[string]interface{}{
				"code": 20003, "message": "Authenticate", "more_info": "https://www.twilio.com/docs/errors/20003", "status": 401,
			})
		})

		_, err := execute(t, NewLoginCommand(), "", "--account-sid", otherAccountSID, "--auth-token", otherAuthToken)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to verify credentials")

		_, statErr := os.Stat(viper.GetString("config"))
		assert.True(t, os.IsNotExist(statErr), "nothing should be saved")
	})
}

func TestLogout(t *testing.T) {
	setupCLI(t, nil)
	writeConfig(t, twoProfiles())

	out, err := execute(t, NewLogoutCommand(), "")
	require.NoError(t, err)
	assert.Equal(t, "Removed profile 'default'\n", out)

	config := readConfig(t)
	assert.Equal(t, []string{"staging"}, config.ProfileNames())
	assert.Equal(t, "staging", config.CurrentProfile)

	viper.Set("profile", "missing")

	_, err = execute(t, NewLogoutCommand(), "")
	require.ErrorIs(t, err, constants.ErrProfileNotFound)
}

func TestProfiles(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		setupCLI(t, nil)

		_, err := execute(t, NewProfilesCommand(), "")
		require.ErrorIs(t, err, constants.ErrNoProfiles)
	})

	t.Run("list", func(t *testing.T) {
		setupCLI(t, nil)
		writeConfig(t, twoProfiles())

		out, err := execute(t, NewProfilesCommand(), "")
		require.NoError(t, err)

		var rows []map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, "default", rows[0]["name"])
		assert.Equal(t, true, rows[0]["current"])
		assert.Equal(t, "staging", rows[1]["name"])
		assert.Equal(t, false, rows[1]["current"])
	})

	t.Run("use", func(t *testing.T) {
		setupCLI(t, nil)
		writeConfig(t, twoProfiles())

		out, err := execute(t, NewProfilesCommand(), "", "use", "staging")
		require.NoError(t, err)
		assert.Equal(t, "Switched to profile 'staging'\n", out)
		assert.Equal(t, "staging", readConfig(t).CurrentProfile)

		_, err = execute(t, NewProfilesCommand(), "", "use", "nope")
		require.ErrorIs(t, err, constants.ErrProfileNotFound)
	})
}

func TestConfigShowMasksTokens(t *testing.T) {
	setupCLI(t, nil)
	writeConfig(t, twoProfiles())

	out, err := execute(t, NewConfigCommand(), "", "show")
	require.NoError(t, err)
	assert.NotContains(t, out, testAuthToken)
	assert.NotContains(t, out, otherAuthToken)

	var shown Config
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, constants.MaskedSecret, shown.Profiles["staging"].AuthToken)
	assert.Equal(t, otherAccountSID, shown.Profiles["staging"].AccountSID)
}

func TestConfigSet(t *testing.T) {
	setupCLI(t, nil)
	writeConfig(t, twoProfiles())

	_, err := execute(t, NewConfigCommand(), "", "set", "output", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "yaml", readConfig(t).Output)

	_, err = execute(t, NewConfigCommand(), "", "set", "output", "xml")
	require.ErrorIs(t, err, constants.ErrInvalidOutputFormat)

	_, err = execute(t, NewConfigCommand(), "", "set", "current_profile", "staging")
	require.NoError(t, err)
	assert.Equal(t, "staging", readConfig(t).CurrentProfile)

	_, err = execute(t, NewConfigCommand(), "", "set", "colour", "blue")
	require.ErrorIs(t, err, constants.ErrUnknownConfigKey)
}

func TestResolveCredentials(t *testing.T) {
	t.Run("environment wins", func(t *testing.T) {
		setupCLI(t, nil)
		writeConfig(t, twoProfiles())
		viper.Set("account_sid", otherAccountSID)
		viper.Set("auth_token", otherAuthToken)

		creds, err := resolveCredentials()
		require.NoError(t, err)
		assert.Equal(t, otherAccountSID, creds.AccountSID())
	})

	t.Run("invalid environment", func(t *testing.T) {
		setupCLI(t, nil)
		viper.Set("auth_token", "short")

		_, err := resolveCredentials()
		require.ErrorIs(t, err, twilio.ErrAuthTokenLength)
	})

	t.Run("current profile", func(t *testing.T) {
		setupCLI(t, nil)
		useProfilesOnly()
		writeConfig(t, twoProfiles())

		creds, err := resolveCredentials()
		require.NoError(t, err)
		assert.Equal(t, testAccountSID, creds.AccountSID())
	})

	t.Run("profile flag", func(t *testing.T) {
		setupCLI(t, nil)
		useProfilesOnly()
		writeConfig(t, twoProfiles())
		viper.Set("profile", "staging")

		creds, err := resolveCredentials()
		require.NoError(t, err)
		assert.Equal(t, otherAuthToken, creds.AuthToken())
	})

	t.Run("unknown profile", func(t *testing.T) {
		setupCLI(t, nil)
		useProfilesOnly()
		writeConfig(t, twoProfiles())
		viper.Set("profile", "prod")

		_, err := resolveCredentials()
		require.ErrorIs(t, err, constants.ErrProfileNotFound)
		assert.True(t, strings.HasSuffix(err.Error(), ": prod"))
	})

	t.Run("nothing configured", func(t *testing.T) {
		setupCLI(t, nil)
		useProfilesOnly()

		_, err := resolveCredentials()
		require.ErrorIs(t, err, constants.ErrNoCredentials)
	})
}

func TestConfigFilePathDefault(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := configFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".twilly", "config.yml"), path)
}
