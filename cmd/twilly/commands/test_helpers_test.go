package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	testAccountSID = "AC22222222222222222222222222222222"
	testAuthToken  = "22222222222222222222222222222222"
)

// setupCLI resets viper, points every domain at a test server and selects
// JSON output. The config file lives in a temporary directory.
func setupCLI(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	viper.Set("account_sid", testAccountSID)
	viper.Set("auth_token", testAuthToken)
	viper.Set("base_url", server.URL)
	viper.Set("output", "json")
	viper.Set("config", filepath.Join(t.TempDir(), "config.yml"))

	return server
}

// execute runs cmd with args and stdin and returns everything it printed.
func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()

	return out.String(), err
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body interface{}) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Errorf("encoding response: %v", err)
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

func page(key string, items ...map[string]interface{}) map[string]interface{} {
	if items == nil {
		items = []map[string]interface{}{}
	}

	return map[string]interface{}{
		key:    items,
		"meta": map[string]interface{}{"key": key, "next_page_url": nil},
	}
}

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

func subcommandNames(cmd *cobra.Command) []string {
	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}

	return names
}

func viperSetTable(t *testing.T) {
	t.Helper()

	viper.Set("output", "table")
}
