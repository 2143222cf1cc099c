package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/TristanBlackwell/twilly/internal/constants"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

// NewAccountsCommand creates the accounts command group
func NewAccountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account"},
		Short:   "Manage accounts",
		Long:    "View, create and manage the authenticated account and its subaccounts",
	}

	cmd.AddCommand(newAccountsGetCommand())
	cmd.AddCommand(newAccountsListCommand())
	cmd.AddCommand(newAccountsCreateCommand())
	cmd.AddCommand(newAccountsUpdateCommand())
	cmd.AddCommand(newAccountsRenameCommand())
	cmd.AddCommand(newAccountStatusCommand("suspend", "Suspend an account", twilio.AccountStatusSuspended))
	cmd.AddCommand(newAccountStatusCommand("activate", "Reactivate a suspended account", twilio.AccountStatusActive))
	cmd.AddCommand(newAccountStatusCommand("close", "Close an account permanently", twilio.AccountStatusClosed))
	cmd.AddCommand(newAccountsCloseAllCommand())

	return cmd
}

func newAccountsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get [ACCOUNT_SID]",
		Short: "Get account details",
		Long:  "Display an account. Without a SID the authenticated account is shown.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			sid := ""
			if len(args) > 0 {
				sid = args[0]
			}

			account, err := client.Accounts().Get(commandContext(cmd), sid)
			if err != nil {
				return handleNotFound(cmd, err, "Account", sid)
			}

			return renderAccount(cmd.OutOrStdout(), account)
		},
	}
}

func newAccountsListCommand() *cobra.Command {
	var (
		friendlyName string
		status       string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Long:  "List the authenticated account and its subaccounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := &twilio.AccountListParams{FriendlyName: friendlyName}

			if status != "" {
				parsed, err := twilio.ParseAccountStatus(status)
				if err != nil {
					return err
				}

				params.Status = parsed
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			accounts, err := client.Accounts().List(commandContext(cmd), params)
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}

			return renderAccounts(cmd.OutOrStdout(), accounts)
		},
	}

	cmd.Flags().StringVar(&friendlyName, "friendly-name", "", "filter by exact friendly name")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (active, suspended, closed)")

	return cmd
}

func newAccountsCreateCommand() *cobra.Command {
	var friendlyName string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a subaccount",
		Long:  "Create a new subaccount of the authenticated account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			account, err := client.Accounts().Create(commandContext(cmd), &twilio.AccountCreateParams{FriendlyName: friendlyName})
			if err != nil {
				return fmt.Errorf("failed to create account: %w", err)
			}

			printf(cmd, "Created account %s\n", account.SID)

			return renderAccount(cmd.OutOrStdout(), account)
		},
	}

	cmd.Flags().StringVar(&friendlyName, "friendly-name", "", "friendly name of the new subaccount")

	return cmd
}

func newAccountsUpdateCommand() *cobra.Command {
	var (
		friendlyName string
		status       string
	)

	cmd := &cobra.Command{
		Use:   "update ACCOUNT_SID",
		Short: "Update an account",
		Long:  "Change the friendly name or status of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := &twilio.AccountUpdateParams{FriendlyName: friendlyName}

			if status != "" {
				parsed, err := twilio.ParseAccountStatus(status)
				if err != nil {
					return err
				}

				params.Status = parsed
			}

			if params.FriendlyName == "" && params.Status == "" {
				return constants.ErrNothingToUpdate
			}

			return updateAccount(cmd, args[0], params)
		},
	}

	cmd.Flags().StringVar(&friendlyName, "friendly-name", "", "new friendly name")
	cmd.Flags().StringVar(&status, "status", "", "new status (active, suspended, closed)")

	return cmd
}

func newAccountsRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename ACCOUNT_SID NAME",
		Short: "Rename an account",
		Long:  "Change the friendly name of an account",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateAccount(cmd, args[0], &twilio.AccountUpdateParams{FriendlyName: args[1]})
		},
	}
}

func newAccountStatusCommand(use, short string, status twilio.AccountStatus) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   use + " ACCOUNT_SID",
		Short: short,
		Long:  fmt.Sprintf("Set the status of an account to %s", status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if status == twilio.AccountStatusClosed &&
				!ConfirmAction(cmd, fmt.Sprintf("Really close account '%s'? This cannot be undone.", args[0]), force) {
				return nil
			}

			return updateAccount(cmd, args[0], &twilio.AccountUpdateParams{Status: status})
		},
	}

	if status == twilio.AccountStatusClosed {
		cmd.Flags().BoolVarP(&force, "force", "f", false, "close without confirmation")
	}

	return cmd
}

func updateAccount(cmd *cobra.Command, sid string, params *twilio.AccountUpdateParams) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	account, err := client.Accounts().Update(commandContext(cmd), sid, params)
	if err != nil {
		return handleNotFound(cmd, err, "Account", sid)
	}

	printf(cmd, "Updated account %s\n", account.SID)

	return renderAccount(cmd.OutOrStdout(), account)
}

func newAccountsCloseAllCommand() *cobra.Command {
	var (
		force    bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "close-all",
		Short: "Close every active subaccount",
		Long:  "Close each active subaccount of the authenticated account, one at a time with a pause in between",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)
			owner := client.Credentials().AccountSID()

			accounts, err := client.Accounts().List(ctx, &twilio.AccountListParams{Status: twilio.AccountStatusActive})
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}

			sids := make([]string, 0, len(accounts))
			for _, account := range accounts {
				if account.SID != owner {
					sids = append(sids, account.SID)
				}
			}

			if len(sids) == 0 {
				printf(cmd, "No active subaccounts found.\n")

				return nil
			}

			if !ConfirmAction(cmd, fmt.Sprintf("Really close %d subaccounts? This cannot be undone.", len(sids)), force) {
				return nil
			}

			closed := &twilio.AccountUpdateParams{Status: twilio.AccountStatusClosed}

			return runBulk(cmd, interval, "Closed", sids, func(ctx context.Context, sid string) error {
				_, err := client.Accounts().Update(ctx, sid, closed)

				return err
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "close without confirmation")
	cmd.Flags().DurationVar(&interval, "interval", constants.DefaultBulkInterval, "pause between two requests")

	return cmd
}

func renderAccount(w io.Writer, account *twilio.Account) error {
	return renderOutput(w, account, func(w io.Writer) error {
		return renderProperties(w, [][]string{
			{"SID", account.SID},
			{"Friendly Name", account.FriendlyName},
			{"Status", string(account.Status)},
			{"Type", account.Type},
			{"Owner Account SID", account.OwnerAccountSID},
			{"Created", account.DateCreated},
			{"Updated", account.DateUpdated},
		})
	})
}

func renderAccounts(w io.Writer, accounts []twilio.Account) error {
	return renderOutput(w, accounts, func(w io.Writer) error {
		rows := make([][]string, 0, len(accounts))
		for _, account := range accounts {
			rows = append(rows, []string{account.SID, account.FriendlyName, string(account.Status), account.Type, account.DateCreated})
		}

		return renderTable(w, []string{"SID", "Friendly Name", "Status", "Type", "Created"}, rows)
	})
}
