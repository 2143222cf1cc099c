package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/TristanBlackwell/twilly/internal/constants"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
	"github.com/TristanBlackwell/twilly/pkg/twilly"
)

// Config is the persisted CLI configuration.
type Config struct {
	Profiles       map[string]*Profile `json:"profiles,omitempty"        yaml:"profiles,omitempty"`
	CurrentProfile string              `json:"current_profile,omitempty" yaml:"current_profile,omitempty"`
	Output         string              `json:"output,omitempty"          yaml:"output,omitempty"`
}

// Profile is one saved set of account credentials.
type Profile struct {
	AccountSID string `json:"account_sid" yaml:"account_sid"`
	AuthToken  string `json:"auth_token"  yaml:"auth_token"`
}

// ProfileNames returns the profile names in sorted order.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the twilly CLI configuration",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the configuration file location, the current profile and the saved profiles. Auth tokens are masked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			path, err := configFilePath()
			if err != nil {
				return err
			}

			masked := &Config{
				Profiles:       make(map[string]*Profile, len(config.Profiles)),
				CurrentProfile: config.CurrentProfile,
				Output:         config.Output,
			}

			for name, profile := range config.Profiles {
				masked.Profiles[name] = &Profile{AccountSID: profile.AccountSID, AuthToken: constants.MaskedSecret}
			}

			return renderOutput(cmd.OutOrStdout(), masked, func(w io.Writer) error {
				current := masked.CurrentProfile
				if current == "" {
					current = constants.None
				}

				output := masked.Output
				if output == "" {
					output = constants.FormatTable
				}

				return renderProperties(w, [][]string{
					{"Config File", path},
					{"Current Profile", current},
					{"Output", output},
					{"Profiles", fmt.Sprintf("%d", len(masked.Profiles))},
				})
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Supported keys are output and current_profile.",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			config, err := loadConfig()
			if err != nil {
				return err
			}

			switch key {
			case "output":
				viper.Set("output", value)

				_, err = OutputFormat()
				if err != nil {
					return err
				}

				config.Output = value
			case "current_profile":
				if _, ok := config.Profiles[value]; !ok {
					return fmt.Errorf("%w: %s", constants.ErrProfileNotFound, value)
				}

				config.CurrentProfile = value
			default:
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			err = saveConfig(config)
			if err != nil {
				return err
			}

			printf(cmd, "Set %s to %s\n", key, value)

			return nil
		},
	}
}

// configFilePath returns the --config path or ~/.twilly/config.yml.
func configFilePath() (string, error) {
	if file := viper.GetString("config"); file != "" {
		return file, nil
	}

	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName+".yml"), nil
}

func loadConfig() (*Config, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}

	config := &Config{}

	// The path comes from the user's own flag or home directory.
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if len(data) > 0 {
		err = yaml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if config.Profiles == nil {
		config.Profiles = make(map[string]*Profile)
	}

	return config, nil
}

func saveConfig(config *Config) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// profileName returns the --profile flag or TWILLY_PROFILE, falling back to
// the current profile and then the default name.
func profileName(config *Config) string {
	if name := viper.GetString("profile"); name != "" {
		return name
	}

	if config.CurrentProfile != "" {
		return config.CurrentProfile
	}

	return constants.DefaultProfile
}

// resolveCredentials prefers TWILLY_ACCOUNT_SID and TWILLY_AUTH_TOKEN over
// the selected profile.
func resolveCredentials() (twilio.Credentials, error) {
	sid := viper.GetString("account_sid")
	token := viper.GetString("auth_token")

	if sid != "" || token != "" {
		return twilio.NewCredentials(sid, token)
	}

	config, err := loadConfig()
	if err != nil {
		return twilio.Credentials{}, err
	}

	if len(config.Profiles) == 0 {
		return twilio.Credentials{}, constants.ErrNoCredentials
	}

	name := profileName(config)

	profile, ok := config.Profiles[name]
	if !ok {
		return twilio.Credentials{}, fmt.Errorf("%w: %s", constants.ErrProfileNotFound, name)
	}

	return twilio.NewCredentials(profile.AccountSID, profile.AuthToken)
}

// clientOptions turns the global flags into client options.
func clientOptions() []twilly.Option {
	debug := viper.GetBool("debug")

	opts := []twilly.Option{
		twilly.WithUserAgent(constants.AppName + "-cli"),
		twilly.WithLogger(twilio.NewSlogLogger(slog.Default())),
		twilly.WithDebug(debug),
	}

	if timeout := viper.GetDuration("timeout"); timeout > 0 {
		opts = append(opts, twilly.WithHTTPTimeout(timeout))
	}

	if baseURL := viper.GetString("base_url"); baseURL != "" {
		for _, domain := range twilio.Domains {
			opts = append(opts, twilly.WithBaseURL(domain, baseURL))
		}
	}

	return opts
}

// CreateClient builds a client from the resolved credentials and the
// global flags.
func CreateClient() (twilio.Client, error) {
	creds, err := resolveCredentials()
	if err != nil {
		return nil, err
	}

	return newClient(creds)
}

func newClient(creds twilio.Credentials) (twilio.Client, error) {
	client, err := twilly.NewClient(creds.AccountSID(), creds.AuthToken(), clientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// NewLogger builds the CLI logger on w. Debug enables request logging.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
