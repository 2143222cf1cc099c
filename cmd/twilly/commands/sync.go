package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/TristanBlackwell/twilly/internal/constants"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

// NewSyncCommand creates the sync command group
func NewSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Manage Sync resources",
		Long:  "Manage Sync services and their documents, maps and lists",
	}

	cmd.AddCommand(newSyncServicesCommand())
	cmd.AddCommand(newSyncDocumentsCommand())
	cmd.AddCommand(newSyncMapsCommand())
	cmd.AddCommand(newSyncMapItemsCommand())
	cmd.AddCommand(newSyncListsCommand())
	cmd.AddCommand(newSyncListItemsCommand())

	return cmd
}

func newSyncServicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "services",
		Aliases: []string{"service"},
		Short:   "Manage Sync services",
		Long:    "Create, view, update and delete Sync services",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get SERVICE_SID",
		Short: "Get Sync service details",
		Long:  "Display detailed information about a specific Sync service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			service, err := client.Sync().Services().Get(commandContext(cmd), args[0])
			if err != nil {
				return handleNotFound(cmd, err, "Sync service", args[0])
			}

			return renderSyncService(cmd.OutOrStdout(), service)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List Sync services",
		Long:  "List every Sync service of the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			services, err := client.Sync().Services().List(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to list Sync services: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), services, func(w io.Writer) error {
				rows := make([][]string, 0, len(services))
				for _, s := range services {
					rows = append(rows, []string{s.SID, formatOptional(s.FriendlyName), formatOptional(s.UniqueName), formatTime(s.DateCreated)})
				}

				return renderTable(w, []string{"SID", "Friendly Name", "Unique Name", "Created"}, rows)
			})
		},
	})

	cmd.AddCommand(newSyncServiceWriteCommand("create", "Create a Sync service"))
	cmd.AddCommand(newSyncServiceWriteCommand("update SERVICE_SID", "Update a Sync service"))
	cmd.AddCommand(newDeleteCommand("Sync service", "SERVICE_SID", func(_ *cobra.Command, client twilio.Client) (deleteFunc, error) {
		return client.Sync().Services().Delete, nil
	}))

	return cmd
}

func newSyncServiceWriteCommand(use, short string) *cobra.Command {
	var params twilio.SyncServiceParams

	updating := use != "create"

	args := cobra.NoArgs
	if updating {
		args = cobra.ExactArgs(1)
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  short + ". The reachability debouncing window is in milliseconds between 1000 and 30000.",
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			params.ReachabilityWebhooksEnabled = boolFlag(cmd, "reachability-webhooks")
			params.ACLEnabled = boolFlag(cmd, "acl")
			params.ReachabilityDebouncingEnabled = boolFlag(cmd, "reachability-debouncing")
			params.WebhooksFromRestEnabled = boolFlag(cmd, "webhooks-from-rest")

			if cmd.Flags().Changed("debouncing-window") {
				window, _ := cmd.Flags().GetInt("debouncing-window")
				params.ReachabilityDebouncingWindow = &window
			}

			err := params.Validate()
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			services := client.Sync().Services()

			var service *twilio.SyncService

			if updating {
				if params == (twilio.SyncServiceParams{}) {
					return constants.ErrNothingToUpdate
				}

				service, err = services.Update(commandContext(cmd), args[0], &params)
				if err != nil {
					return handleNotFound(cmd, err, "Sync service", args[0])
				}

				printf(cmd, "Updated Sync service %s\n", service.SID)
			} else {
				service, err = services.Create(commandContext(cmd), &params)
				if err != nil {
					return fmt.Errorf("failed to create Sync service: %w", err)
				}

				printf(cmd, "Created Sync service %s\n", service.SID)
			}

			return renderSyncService(cmd.OutOrStdout(), service)
		},
	}

	cmd.Flags().StringVar(&params.FriendlyName, "friendly-name", "", "friendly name of the service")
	cmd.Flags().StringVar(&params.WebhookURL, "webhook-url", "", "URL receiving Sync events")
	cmd.Flags().Bool("reachability-webhooks", false, "send reachability webhooks")
	cmd.Flags().Bool("acl", false, "enforce access control on Sync objects")
	cmd.Flags().Bool("reachability-debouncing", false, "delay reachability events")
	cmd.Flags().Int("debouncing-window", 0, "reachability debouncing window in milliseconds")
	cmd.Flags().Bool("webhooks-from-rest", false, "send webhooks for REST API changes")

	return cmd
}

func renderSyncService(w io.Writer, service *twilio.SyncService) error {
	return renderOutput(w, service, func(w io.Writer) error {
		return renderProperties(w, [][]string{
			{"SID", service.SID},
			{"Friendly Name", formatOptional(service.FriendlyName)},
			{"Unique Name", formatOptional(service.UniqueName)},
			{"Webhook URL", formatOptional(service.WebhookURL)},
			{"Webhooks From REST", formatBool(service.WebhooksFromRestEnabled)},
			{"Reachability Webhooks", formatBool(service.ReachabilityWebhooksEnabled)},
			{"ACL Enabled", formatBool(service.ACLEnabled)},
			{"Reachability Debouncing", formatBool(service.ReachabilityDebouncingEnabled)},
			{"Debouncing Window", strconv.Itoa(service.ReachabilityDebouncingWindow) + "ms"},
			{"Created", formatTime(service.DateCreated)},
			{"Updated", formatTime(service.DateUpdated)},
		})
	})
}
