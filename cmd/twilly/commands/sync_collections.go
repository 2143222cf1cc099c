package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/TristanBlackwell/twilly/internal/constants"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

// syncCollection describes the commands of Sync maps and lists, which share
// one shape.
type syncCollection[T any] struct {
	use     string
	aliases []string
	noun    string
	arg     string

	get    func(ctx context.Context, client twilio.Client, service, sid string) (*T, error)
	list   func(ctx context.Context, client twilio.Client, service string) ([]T, error)
	create func(ctx context.Context, client twilio.Client, service string, params *twilio.SyncCollectionCreateParams) (*T, error)
	update func(ctx context.Context, client twilio.Client, service, sid string, params *twilio.SyncCollectionUpdateParams) (*T, error)
	delete func(ctx context.Context, client twilio.Client, service, sid string) error
	view   func(item *T) *twilio.SyncMap
}

func newSyncMapsCommand() *cobra.Command {
	return newSyncCollectionCommand(syncCollection[twilio.SyncMap]{
		use:     "maps",
		aliases: []string{"map"},
		noun:    "Sync map",
		arg:     "MAP_SID",
		get: func(ctx context.Context, client twilio.Client, service, sid string) (*twilio.SyncMap, error) {
			return client.Sync().Maps().Get(ctx, service, sid)
		},
		list: func(ctx context.Context, client twilio.Client, service string) ([]twilio.SyncMap, error) {
			return client.Sync().Maps().List(ctx, service)
		},
		create: func(ctx context.Context, client twilio.Client, service string, params *twilio.SyncCollectionCreateParams) (*twilio.SyncMap, error) {
			return client.Sync().Maps().Create(ctx, service, params)
		},
		update: func(ctx context.Context, client twilio.Client, service, sid string, params *twilio.SyncCollectionUpdateParams) (*twilio.SyncMap, error) {
			return client.Sync().Maps().Update(ctx, service, sid, params)
		},
		delete: func(ctx context.Context, client twilio.Client, service, sid string) error {
			return client.Sync().Maps().Delete(ctx, service, sid)
		},
		view: func(m *twilio.SyncMap) *twilio.SyncMap { return m },
	})
}

func newSyncListsCommand() *cobra.Command {
	return newSyncCollectionCommand(syncCollection[twilio.SyncList]{
		use:     "lists",
		aliases: []string{"list"},
		noun:    "Sync list",
		arg:     "LIST_SID",
		get: func(ctx context.Context, client twilio.Client, service, sid string) (*twilio.SyncList, error) {
			return client.Sync().Lists().Get(ctx, service, sid)
		},
		list: func(ctx context.Context, client twilio.Client, service string) ([]twilio.SyncList, error) {
			return client.Sync().Lists().List(ctx, service)
		},
		create: func(ctx context.Context, client twilio.Client, service string, params *twilio.SyncCollectionCreateParams) (*twilio.SyncList, error) {
			return client.Sync().Lists().Create(ctx, service, params)
		},
		update: func(ctx context.Context, client twilio.Client, service, sid string, params *twilio.SyncCollectionUpdateParams) (*twilio.SyncList, error) {
			return client.Sync().Lists().Update(ctx, service, sid, params)
		},
		delete: func(ctx context.Context, client twilio.Client, service, sid string) error {
			return client.Sync().Lists().Delete(ctx, service, sid)
		},
		view: func(l *twilio.SyncList) *twilio.SyncMap { return (*twilio.SyncMap)(l) },
	})
}

func newSyncCollectionCommand[T any](c syncCollection[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:     c.use,
		Aliases: c.aliases,
		Short:   fmt.Sprintf("Manage %ss", c.noun),
		Long:    fmt.Sprintf("Create, view, update and delete the %ss of a Sync service", c.noun),
	}

	cmd.PersistentFlags().String("service", "", "Sync service SID (required)")

	cmd.AddCommand(&cobra.Command{
		Use:   "get " + c.arg,
		Short: fmt.Sprintf("Get %s details", c.noun),
		Long:  fmt.Sprintf("Display detailed information about a specific %s", c.noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, client, err := serviceClient(cmd)
			if err != nil {
				return err
			}

			item, err := c.get(commandContext(cmd), client, service, args[0])
			if err != nil {
				return handleNotFound(cmd, err, c.noun, args[0])
			}

			return renderSyncCollection(cmd.OutOrStdout(), item, c.view(item))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %ss", c.noun),
		Long:  fmt.Sprintf("List every %s of a Sync service", c.noun),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, client, err := serviceClient(cmd)
			if err != nil {
				return err
			}

			items, err := c.list(commandContext(cmd), client, service)
			if err != nil {
				return fmt.Errorf("failed to list %ss: %w", c.noun, err)
			}

			return renderOutput(cmd.OutOrStdout(), items, func(w io.Writer) error {
				rows := make([][]string, 0, len(items))
				for i := range items {
					m := c.view(&items[i])
					rows = append(rows, []string{m.SID, formatOptional(m.UniqueName), m.Revision, formatTimePtr(m.DateExpires), formatTime(m.DateUpdated)})
				}

				return renderTable(w, []string{"SID", "Unique Name", "Revision", "Expires", "Updated"}, rows)
			})
		},
	})

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a " + c.noun,
		Long:  fmt.Sprintf("Create a %s. The time to live is in seconds.", c.noun),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, client, err := serviceClient(cmd)
			if err != nil {
				return err
			}

			uniqueName, _ := cmd.Flags().GetString("unique-name")
			ttl, _ := cmd.Flags().GetInt("ttl")

			item, err := c.create(commandContext(cmd), client, service, &twilio.SyncCollectionCreateParams{UniqueName: uniqueName, TTL: ttl})
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", c.noun, err)
			}

			printf(cmd, "Created %s %s\n", c.noun, c.view(item).SID)

			return renderSyncCollection(cmd.OutOrStdout(), item, c.view(item))
		},
	}
	create.Flags().String("unique-name", "", "unique name of the "+c.noun)
	create.Flags().Int("ttl", 0, "time to live in seconds, 0 for never")
	cmd.AddCommand(create)

	update := &cobra.Command{
		Use:   "update " + c.arg,
		Short: "Update a " + c.noun,
		Long:  fmt.Sprintf("Change the time to live of a %s", c.noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("ttl") {
				return constants.ErrNothingToUpdate
			}

			service, client, err := serviceClient(cmd)
			if err != nil {
				return err
			}

			ttl, _ := cmd.Flags().GetInt("ttl")

			item, err := c.update(commandContext(cmd), client, service, args[0], &twilio.SyncCollectionUpdateParams{TTL: ttl})
			if err != nil {
				return handleNotFound(cmd, err, c.noun, args[0])
			}

			printf(cmd, "Updated %s %s\n", c.noun, c.view(item).SID)

			return renderSyncCollection(cmd.OutOrStdout(), item, c.view(item))
		},
	}
	update.Flags().Int("ttl", 0, "new time to live in seconds, 0 for never")
	cmd.AddCommand(update)

	cmd.AddCommand(newDeleteCommand(c.noun, c.arg, func(cmd *cobra.Command, client twilio.Client) (deleteFunc, error) {
		service, err := requiredFlag(cmd, "service", constants.ErrServiceRequired)
		if err != nil {
			return nil, err
		}

		return func(ctx context.Context, sid string) error {
			return c.delete(ctx, client, service, sid)
		}, nil
	}))

	return cmd
}

// serviceClient reads the required --service flag and builds a client.
func serviceClient(cmd *cobra.Command) (string, twilio.Client, error) {
	service, err := requiredFlag(cmd, "service", constants.ErrServiceRequired)
	if err != nil {
		return "", nil, err
	}

	client, err := CreateClient()
	if err != nil {
		return "", nil, err
	}

	return service, client, nil
}

func renderSyncCollection(w io.Writer, data interface{}, m *twilio.SyncMap) error {
	return renderOutput(w, data, func(w io.Writer) error {
		return renderProperties(w, [][]string{
			{"SID", m.SID},
			{"Unique Name", formatOptional(m.UniqueName)},
			{"Service SID", m.ServiceSID},
			{"Revision", m.Revision},
			{"Created By", m.CreatedBy},
			{"Expires", formatTimePtr(m.DateExpires)},
			{"Created", formatTime(m.DateCreated)},
			{"Updated", formatTime(m.DateUpdated)},
		})
	})
}
