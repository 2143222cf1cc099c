//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	AccountSID string
	AuthToken  string
	TwillyPath string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		AccountSID: os.Getenv("TWILLY_ACCOUNT_SID"),
		AuthToken:  os.Getenv("TWILLY_AUTH_TOKEN"),
		TwillyPath: getTwillyPath(),
		Verbose:    os.Getenv("TWILLY_VERBOSE") == "true",
	}
}

func getTwillyPath() string {
	if path := os.Getenv("TWILLY_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../twilly",
		"./twilly",
		"../twilly",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "twilly"
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.AccountSID == "" || config.AuthToken == "" {
		t.Skip("TWILLY_ACCOUNT_SID or TWILLY_AUTH_TOKEN not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.TwillyPath); err != nil {
		t.Skipf("twilly binary not found at %s, skipping integration test", config.TwillyPath)
	}
}

// CommandRunner runs the twilly binary with an isolated config file.
type CommandRunner struct {
	config     *TestConfig
	configFile string
	t          *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config:     config,
		configFile: filepath.Join(t.TempDir(), "config.yml"),
		t:          t,
	}
}

// Run executes a twilly command and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	return runner.RunWithInput("", args...)
}

// RunWithInput executes a twilly command with stdin input
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--config", runner.configFile}, args...)

	// #nosec G204 -- the binary path comes from the test environment.
	cmd := exec.Command(runner.config.TwillyPath, args...)
	cmd.Env = append(os.Environ(),
		"TWILLY_ACCOUNT_SID="+runner.config.AccountSID,
		"TWILLY_AUTH_TOKEN="+runner.config.AuthToken,
	)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.TwillyPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// RunJSON runs a command with -o json and decodes its output into v.
func (runner *CommandRunner) RunJSON(v interface{}, args ...string) error {
	stdout, stderr, err := runner.Run(append(args, "-o", "json")...)
	if err != nil {
		return fmt.Errorf("%w: %s", err, stderr)
	}

	// Create and update commands print a status line before the resource.
	if i := strings.IndexAny(stdout, "{["); i > 0 {
		stdout = stdout[i:]
	}

	return json.Unmarshal([]byte(stdout), v)
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// CleanupResource attempts to delete a test resource. Sync children go
// with their service.
func (runner *CommandRunner) CleanupResource(resourceType, sid string) {
	var args []string

	switch resourceType {
	case "sync-service":
		args = []string{"sync", "services", "delete", sid, "--force"}
	case "serverless-service":
		args = []string{"serverless", "services", "delete", sid, "--force"}
	default:
		runner.t.Logf("Unknown resource type for cleanup: %s", resourceType)

		return
	}

	stdout, stderr, err := runner.Run(args...)
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for %s %s: %s\nStderr: %s", resourceType, sid, stdout, stderr)
	}
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	if !json.Valid([]byte(strings.TrimSpace(output))) {
		t.Errorf("Output is not valid JSON: %s", output)
	}
}
