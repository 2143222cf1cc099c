package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

// AccountStatus is an overview of the authenticated account.
type AccountStatus struct {
	Account            *twilio.Account `json:"account"             yaml:"account"`
	Conversations      int             `json:"conversations"       yaml:"conversations"`
	SyncServices       int             `json:"sync_services"       yaml:"sync_services"`
	ServerlessServices int             `json:"serverless_services" yaml:"serverless_services"`
}

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show an account overview",
		Long:  "Show the authenticated account with the number of conversations, Sync services and Serverless services",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			status, err := collectStatus(cmd, client)
			if err != nil {
				return err
			}

			return renderOutput(cmd.OutOrStdout(), status, func(w io.Writer) error {
				return renderProperties(w, [][]string{
					{"Account SID", status.Account.SID},
					{"Friendly Name", status.Account.FriendlyName},
					{"Status", string(status.Account.Status)},
					{"Type", status.Account.Type},
					{"Conversations", strconv.Itoa(status.Conversations)},
					{"Sync Services", strconv.Itoa(status.SyncServices)},
					{"Serverless Services", strconv.Itoa(status.ServerlessServices)},
				})
			})
		},
	}
}

// collectStatus fetches the four parts of the overview concurrently. The
// first failure cancels the others.
func collectStatus(cmd *cobra.Command, client twilio.Client) (*AccountStatus, error) {
	group, ctx := errgroup.WithContext(commandContext(cmd))
	status := &AccountStatus{}

	group.Go(func() error {
		account, err := client.Accounts().Get(ctx, "")
		if err != nil {
			return fmt.Errorf("failed to get account: %w", err)
		}

		status.Account = account

		return nil
	})

	group.Go(func() error {
		conversations, err := client.Conversations().List(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to list conversations: %w", err)
		}

		status.Conversations = len(conversations)

		return nil
	})

	group.Go(func() error {
		services, err := client.Sync().Services().List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list Sync services: %w", err)
		}

		status.SyncServices = len(services)

		return nil
	})

	group.Go(func() error {
		services, err := client.Serverless().Services().List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list Serverless services: %w", err)
		}

		status.ServerlessServices = len(services)

		return nil
	})

	err := group.Wait()
	if err != nil {
		return nil, err
	}

	return status, nil
}
