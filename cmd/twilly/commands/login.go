package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/TristanBlackwell/twilly/internal/constants"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		accountSID string
		authToken  string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save credentials for a Twilio account",
		Long: `Collect an account SID and auth token, verify them against Twilio and save
them as a profile. The profile is named by --profile and defaults to "default".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())

			if accountSID == "" {
				printf(cmd, "Account SID: ")

				line, _ := reader.ReadString('\n')
				accountSID = strings.TrimSpace(line)
			}

			if authToken == "" {
				printf(cmd, "Auth token: ")

				token, err := readSecret(cmd.InOrStdin(), reader)
				if err != nil {
					return fmt.Errorf("failed to read auth token: %w", err)
				}

				printf(cmd, "\n")

				authToken = token
			}

			creds, err := twilio.NewCredentials(accountSID, authToken)
			if err != nil {
				return err
			}

			client, err := newClient(creds)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(commandContext(cmd), constants.ShortHTTPTimeout)
			defer cancel()

			account, err := client.Accounts().Get(ctx, "")
			if err != nil {
				return fmt.Errorf("failed to verify credentials: %w", err)
			}

			config, err := loadConfig()
			if err != nil {
				return err
			}

			name := profileName(config)
			config.Profiles[name] = &Profile{AccountSID: creds.AccountSID(), AuthToken: creds.AuthToken()}

			if config.CurrentProfile == "" || len(config.Profiles) == 1 {
				config.CurrentProfile = name
			}

			err = saveConfig(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			printf(cmd, "Logged in to %s (%s)\n", account.FriendlyName, account.SID)
			printf(cmd, "Saved as profile '%s'\n", name)

			return nil
		},
	}

	cmd.Flags().StringVar(&accountSID, "account-sid", "", "account SID, prompted for when omitted")
	cmd.Flags().StringVar(&authToken, "auth-token", "", "auth token, prompted for without echo when omitted")

	return cmd
}

// readSecret reads without echo from a terminal and falls back to a plain
// line read otherwise.
func readSecret(in io.Reader, reader *bufio.Reader) (string, error) {
	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		secret, err := term.ReadPassword(int(file.Fd()))
		if err != nil {
			return "", err
		}

		return strings.TrimSpace(string(secret)), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove a saved profile",
		Long:  "Remove the profile named by --profile, or the current profile, from the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			name := profileName(config)
			if _, ok := config.Profiles[name]; !ok {
				return fmt.Errorf("%w: %s", constants.ErrProfileNotFound, name)
			}

			delete(config.Profiles, name)

			if config.CurrentProfile == name {
				config.CurrentProfile = ""
				if names := config.ProfileNames(); len(names) > 0 {
					config.CurrentProfile = names[0]
				}
			}

			err = saveConfig(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			printf(cmd, "Removed profile '%s'\n", name)

			return nil
		},
	}
}

// NewProfilesCommand creates the profiles command group.
func NewProfilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profiles",
		Aliases: []string{"profile"},
		Short:   "List saved profiles",
		Long:    "List the saved profiles and mark the current one",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			if len(config.Profiles) == 0 {
				return constants.ErrNoProfiles
			}

			type profileRow struct {
				Name       string `json:"name"        yaml:"name"`
				AccountSID string `json:"account_sid" yaml:"account_sid"`
				Current    bool   `json:"current"     yaml:"current"`
			}

			rows := make([]profileRow, 0, len(config.Profiles))
			for _, name := range config.ProfileNames() {
				rows = append(rows, profileRow{
					Name:       name,
					AccountSID: config.Profiles[name].AccountSID,
					Current:    name == config.CurrentProfile,
				})
			}

			return renderOutput(cmd.OutOrStdout(), rows, func(w io.Writer) error {
				table := make([][]string, 0, len(rows))

				for _, row := range rows {
					current := ""
					if row.Current {
						current = constants.CheckMarkSymbol
					}

					table = append(table, []string{row.Name, row.AccountSID, current})
				}

				return renderTable(w, []string{"Name", "Account SID", "Current"}, table)
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "use NAME",
		Short: "Switch the current profile",
		Long:  "Make a saved profile the one used when --profile is not given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			if _, ok := config.Profiles[args[0]]; !ok {
				return fmt.Errorf("%w: %s", constants.ErrProfileNotFound, args[0])
			}

			config.CurrentProfile = args[0]

			err = saveConfig(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			printf(cmd, "Switched to profile '%s'\n", args[0])

			return nil
		},
	})

	return cmd
}
