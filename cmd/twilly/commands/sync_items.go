package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/TristanBlackwell/twilly/internal/constants"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

type itemListFlags struct {
	order  string
	from   string
	bounds string
}

func (f *itemListFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.order, "order", "", "sort order (asc, desc)")
	cmd.Flags().StringVar(&f.from, "from", "", "start listing at this key or index")
	cmd.Flags().StringVar(&f.bounds, "bounds", "", "whether --from is included (inclusive, exclusive)")
}

func (f *itemListFlags) params() *twilio.SyncItemListParams {
	return &twilio.SyncItemListParams{
		Order:  twilio.SyncItemOrder(f.order),
		From:   f.from,
		Bounds: twilio.SyncItemBounds(f.bounds),
	}
}

type itemWriteFlags struct {
	data          string
	ttl           int
	collectionTTL int
	ifMatch       string
}

func (f *itemWriteFlags) register(cmd *cobra.Command, updating bool) {
	cmd.Flags().StringVar(&f.data, "data", "", "item data as a JSON object")
	cmd.Flags().IntVar(&f.ttl, "ttl", 0, "time to live of the item in seconds")
	cmd.Flags().IntVar(&f.collectionTTL, "collection-ttl", 0, "time to live of the parent collection in seconds")

	if updating {
		cmd.Flags().StringVar(&f.ifMatch, "if-match", "", "only update if the item is at this revision")
	}
}

func (f *itemWriteFlags) update() (*twilio.SyncItemUpdateParams, error) {
	data, err := jsonFlag(f.data)
	if err != nil {
		return nil, err
	}

	if data.IsZero() && f.ttl == 0 && f.collectionTTL == 0 {
		return nil, constants.ErrNothingToUpdate
	}

	return &twilio.SyncItemUpdateParams{Data: data, TTL: f.ttl, CollectionTTL: f.collectionTTL, IfMatch: f.ifMatch}, nil
}

// parentClient reads --service and the parent collection flag.
func parentClient(cmd *cobra.Command, parentFlag string, missing error) (string, string, twilio.Client, error) {
	service, err := requiredFlag(cmd, "service", constants.ErrServiceRequired)
	if err != nil {
		return "", "", nil, err
	}

	parent, err := requiredFlag(cmd, parentFlag, missing)
	if err != nil {
		return "", "", nil, err
	}

	client, err := CreateClient()
	if err != nil {
		return "", "", nil, err
	}

	return service, parent, client, nil
}

func newSyncMapItemsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "map-items",
		Aliases: []string{"map-item"},
		Short:   "Manage Sync map items",
		Long:    "Create, view, update and delete the items of a Sync map. Items are addressed by key.",
	}

	cmd.PersistentFlags().String("service", "", "Sync service SID (required)")
	cmd.PersistentFlags().String("map", "", "Sync map SID (required)")

	cmd.AddCommand(&cobra.Command{
		Use:   "get KEY",
		Short: "Get a Sync map item",
		Long:  "Display a Sync map item and its data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, mapSID, client, err := parentClient(cmd, "map", constants.ErrMapRequired)
			if err != nil {
				return err
			}

			item, err := client.Sync().MapItems().Get(commandContext(cmd), service, mapSID, args[0])
			if err != nil {
				return handleNotFound(cmd, err, "Sync map item", args[0])
			}

			return renderMapItem(cmd.OutOrStdout(), item)
		},
	})

	list := &cobra.Command{
		Use:   "list",
		Short: "List Sync map items",
		Long:  "List the items of a Sync map",
	}
	listFlags := &itemListFlags{}
	listFlags.register(list)
	list.RunE = func(cmd *cobra.Command, args []string) error {
		params := listFlags.params()

		err := params.Validate()
		if err != nil {
			return err
		}

		service, mapSID, client, err := parentClient(cmd, "map", constants.ErrMapRequired)
		if err != nil {
			return err
		}

		items, err := client.Sync().MapItems().List(commandContext(cmd), service, mapSID, params)
		if err != nil {
			return fmt.Errorf("failed to list Sync map items: %w", err)
		}

		return renderOutput(cmd.OutOrStdout(), items, func(w io.Writer) error {
			rows := make([][]string, 0, len(items))
			for _, item := range items {
				rows = append(rows, []string{item.Key, item.Revision, rawJSON(item.Data), formatTime(item.DateUpdated)})
			}

			return renderTable(w, []string{"Key", "Revision", "Data", "Updated"}, rows)
		})
	}
	cmd.AddCommand(list)

	var key string

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a Sync map item",
		Long:  "Add an item to a Sync map. --key and --data are required.",
	}
	createFlags := &itemWriteFlags{}
	createFlags.register(create, false)
	create.Flags().StringVar(&key, "key", "", "key of the new item (required)")
	create.RunE = func(cmd *cobra.Command, args []string) error {
		if createFlags.data == "" {
			return constants.ErrDataRequired
		}

		data, err := jsonFlag(createFlags.data)
		if err != nil {
			return err
		}

		service, mapSID, client, err := parentClient(cmd, "map", constants.ErrMapRequired)
		if err != nil {
			return err
		}

		item, err := client.Sync().MapItems().Create(commandContext(cmd), service, mapSID, &twilio.SyncMapItemCreateParams{
			Key:           key,
			Data:          data,
			TTL:           createFlags.ttl,
			CollectionTTL: createFlags.collectionTTL,
		})
		if err != nil {
			return fmt.Errorf("failed to create Sync map item: %w", err)
		}

		printf(cmd, "Created Sync map item %s\n", item.Key)

		return renderMapItem(cmd.OutOrStdout(), item)
	}
	cmd.AddCommand(create)

	update := &cobra.Command{
		Use:   "update KEY",
		Short: "Update a Sync map item",
		Long:  "Replace the data or time to live of a Sync map item",
		Args:  cobra.ExactArgs(1),
	}
	updateFlags := &itemWriteFlags{}
	updateFlags.register(update, true)
	update.RunE = func(cmd *cobra.Command, args []string) error {
		params, err := updateFlags.update()
		if err != nil {
			return err
		}

		service, mapSID, client, err := parentClient(cmd, "map", constants.ErrMapRequired)
		if err != nil {
			return err
		}

		item, err := client.Sync().MapItems().Update(commandContext(cmd), service, mapSID, args[0], params)
		if err != nil {
			return handleNotFound(cmd, err, "Sync map item", args[0])
		}

		printf(cmd, "Updated Sync map item %s\n", item.Key)

		return renderMapItem(cmd.OutOrStdout(), item)
	}
	cmd.AddCommand(update)

	cmd.AddCommand(newDeleteCommand("Sync map item", "KEY", func(cmd *cobra.Command, client twilio.Client) (deleteFunc, error) {
		service, err := requiredFlag(cmd, "service", constants.ErrServiceRequired)
		if err != nil {
			return nil, err
		}

		mapSID, err := requiredFlag(cmd, "map", constants.ErrMapRequired)
		if err != nil {
			return nil, err
		}

		return func(ctx context.Context, key string) error {
			return client.Sync().MapItems().Delete(ctx, service, mapSID, key)
		}, nil
	}))

	return cmd
}

func newSyncListItemsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list-items",
		Aliases: []string{"list-item"},
		Short:   "Manage Sync list items",
		Long:    "Create, view, update and delete the items of a Sync list. Items are addressed by index.",
	}

	cmd.PersistentFlags().String("service", "", "Sync service SID (required)")
	cmd.PersistentFlags().String("list", "", "Sync list SID (required)")

	cmd.AddCommand(&cobra.Command{
		Use:   "get INDEX",
		Short: "Get a Sync list item",
		Long:  "Display a Sync list item and its data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			service, listSID, client, err := parentClient(cmd, "list", constants.ErrListRequired)
			if err != nil {
				return err
			}

			item, err := client.Sync().ListItems().Get(commandContext(cmd), service, listSID, index)
			if err != nil {
				return handleNotFound(cmd, err, "Sync list item", args[0])
			}

			return renderListItem(cmd.OutOrStdout(), item)
		},
	})

	list := &cobra.Command{
		Use:   "list",
		Short: "List Sync list items",
		Long:  "List the items of a Sync list",
	}
	listFlags := &itemListFlags{}
	listFlags.register(list)
	list.RunE = func(cmd *cobra.Command, args []string) error {
		params := listFlags.params()

		err := params.Validate()
		if err != nil {
			return err
		}

		service, listSID, client, err := parentClient(cmd, "list", constants.ErrListRequired)
		if err != nil {
			return err
		}

		items, err := client.Sync().ListItems().List(commandContext(cmd), service, listSID, params)
		if err != nil {
			return fmt.Errorf("failed to list Sync list items: %w", err)
		}

		return renderOutput(cmd.OutOrStdout(), items, func(w io.Writer) error {
			rows := make([][]string, 0, len(items))
			for _, item := range items {
				rows = append(rows, []string{strconv.FormatUint(uint64(item.Index), 10), item.Revision, rawJSON(item.Data), formatTime(item.DateUpdated)})
			}

			return renderTable(w, []string{"Index", "Revision", "Data", "Updated"}, rows)
		})
	}
	cmd.AddCommand(list)

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a Sync list item",
		Long:  "Append an item to a Sync list. --data is required.",
	}
	createFlags := &itemWriteFlags{}
	createFlags.register(create, false)
	create.RunE = func(cmd *cobra.Command, args []string) error {
		if createFlags.data == "" {
			return constants.ErrDataRequired
		}

		data, err := jsonFlag(createFlags.data)
		if err != nil {
			return err
		}

		service, listSID, client, err := parentClient(cmd, "list", constants.ErrListRequired)
		if err != nil {
			return err
		}

		item, err := client.Sync().ListItems().Create(commandContext(cmd), service, listSID, &twilio.SyncListItemCreateParams{
			Data:          data,
			TTL:           createFlags.ttl,
			CollectionTTL: createFlags.collectionTTL,
		})
		if err != nil {
			return fmt.Errorf("failed to create Sync list item: %w", err)
		}

		printf(cmd, "Created Sync list item %d\n", item.Index)

		return renderListItem(cmd.OutOrStdout(), item)
	}
	cmd.AddCommand(create)

	update := &cobra.Command{
		Use:   "update INDEX",
		Short: "Update a Sync list item",
		Long:  "Replace the data or time to live of a Sync list item",
		Args:  cobra.ExactArgs(1),
	}
	updateFlags := &itemWriteFlags{}
	updateFlags.register(update, true)
	update.RunE = func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}

		params, err := updateFlags.update()
		if err != nil {
			return err
		}

		service, listSID, client, err := parentClient(cmd, "list", constants.ErrListRequired)
		if err != nil {
			return err
		}

		item, err := client.Sync().ListItems().Update(commandContext(cmd), service, listSID, index, params)
		if err != nil {
			return handleNotFound(cmd, err, "Sync list item", args[0])
		}

		printf(cmd, "Updated Sync list item %d\n", item.Index)

		return renderListItem(cmd.OutOrStdout(), item)
	}
	cmd.AddCommand(update)

	cmd.AddCommand(newDeleteCommand("Sync list item", "INDEX", func(cmd *cobra.Command, client twilio.Client) (deleteFunc, error) {
		service, err := requiredFlag(cmd, "service", constants.ErrServiceRequired)
		if err != nil {
			return nil, err
		}

		listSID, err := requiredFlag(cmd, "list", constants.ErrListRequired)
		if err != nil {
			return nil, err
		}

		return func(ctx context.Context, arg string) error {
			index, err := parseIndex(arg)
			if err != nil {
				return err
			}

			return client.Sync().ListItems().Delete(ctx, service, listSID, index)
		}, nil
	}))

	return cmd
}

func parseIndex(value string) (uint32, error) {
	index, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidIndex, value)
	}

	return uint32(index), nil
}

func renderMapItem(w io.Writer, item *twilio.SyncMapItem) error {
	return renderOutput(w, item, func(w io.Writer) error {
		return renderProperties(w, [][]string{
			{"Key", item.Key},
			{"Map SID", item.MapSID},
			{"Revision", item.Revision},
			{"Data", rawJSON(item.Data)},
			{"Created By", item.CreatedBy},
			{"Expires", formatTimePtr(item.DateExpires)},
			{"Created", formatTime(item.DateCreated)},
			{"Updated", formatTime(item.DateUpdated)},
		})
	})
}

func renderListItem(w io.Writer, item *twilio.SyncListItem) error {
	return renderOutput(w, item, func(w io.Writer) error {
		return renderProperties(w, [][]string{
			{"Index", strconv.FormatUint(uint64(item.Index), 10)},
			{"List SID", item.ListSID},
			{"Revision", item.Revision},
			{"Data", rawJSON(item.Data)},
			{"Created By", item.CreatedBy},
			{"Expires", formatTimePtr(item.DateExpires)},
			{"Created", formatTime(item.DateCreated)},
			{"Updated", formatTime(item.DateUpdated)},
		})
	})
}
