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

// NewConversationsCommand creates the conversations command group
func NewConversationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "conversations",
		Aliases: []string{"conversation", "conv"},
		Short:   "Manage conversations",
		Long:    "View, update, close and delete Conversations API conversations",
	}

	cmd.AddCommand(newConversationsGetCommand())
	cmd.AddCommand(newConversationsListCommand())
	cmd.AddCommand(newConversationsUpdateCommand())
	cmd.AddCommand(newConversationsCloseCommand())
	cmd.AddCommand(newConversationsDeleteCommand())
	cmd.AddCommand(newConversationsCloseAllCommand())
	cmd.AddCommand(newConversationsDeleteAllCommand())
	cmd.AddCommand(newConversationsParticipantsCommand())

	return cmd
}

func newConversationsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CONVERSATION_SID",
		Short: "Get conversation details",
		Long:  "Display detailed information about a specific conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			conversation, err := client.Conversations().Get(commandContext(cmd), args[0])
			if err != nil {
				return handleNotFound(cmd, err, "Conversation", args[0])
			}

			return renderConversation(cmd.OutOrStdout(), conversation)
		},
	}
}

type conversationFilter struct {
	state     string
	startDate string
	endDate   string
}

func (f *conversationFilter) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.state, "state", "", "filter by state (active, inactive, closed)")
	cmd.Flags().StringVar(&f.startDate, "start-date", "", "only conversations started on or after YYYY-MM-DD")
	cmd.Flags().StringVar(&f.endDate, "end-date", "", "only conversations started on or before YYYY-MM-DD")
}

func (f *conversationFilter) params() (*twilio.ConversationListParams, error) {
	params := &twilio.ConversationListParams{}

	if f.state != "" {
		state, err := twilio.ParseConversationState(f.state)
		if err != nil {
			return nil, err
		}

		params.State = state
	}

	var err error

	params.StartDate, err = parseDate("start-date", f.startDate)
	if err != nil {
		return nil, err
	}

	params.EndDate, err = parseDate("end-date", f.endDate)
	if err != nil {
		return nil, err
	}

	return params, nil
}

func newConversationsListCommand() *cobra.Command {
	filter := &conversationFilter{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List conversations",
		Long:  "List every conversation of the account, optionally filtered by state and start date",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := filter.params()
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			conversations, err := client.Conversations().List(commandContext(cmd), params)
			if err != nil {
				return fmt.Errorf("failed to list conversations: %w", err)
			}

			return renderConversations(cmd.OutOrStdout(), conversations)
		},
	}

	filter.register(cmd)

	return cmd
}

func newConversationsUpdateCommand() *cobra.Command {
	var (
		params twilio.ConversationUpdateParams
		state  string
	)

	cmd := &cobra.Command{
		Use:   "update CONVERSATION_SID",
		Short: "Update a conversation",
		Long:  "Change the names, state, attributes or timers of a conversation. Timers are ISO 8601 durations such as PT10M.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if state != "" {
				parsed, err := twilio.ParseConversationState(state)
				if err != nil {
					return err
				}

				params.State = parsed
			}

			if params == (twilio.ConversationUpdateParams{}) {
				return constants.ErrNothingToUpdate
			}

			return updateConversation(cmd, args[0], &params)
		},
	}

	cmd.Flags().StringVar(&params.UniqueName, "unique-name", "", "new unique name")
	cmd.Flags().StringVar(&params.FriendlyName, "friendly-name", "", "new friendly name")
	cmd.Flags().StringVar(&state, "state", "", "new state (active, inactive, closed)")
	cmd.Flags().StringVar(&params.Attributes, "attributes", "", "new attributes as a JSON string")
	cmd.Flags().StringVar(&params.TimersInactive, "timers-inactive", "", "time until the conversation becomes inactive")
	cmd.Flags().StringVar(&params.TimersClosed, "timers-closed", "", "time until the conversation closes")

	return cmd
}

func newConversationsCloseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "close CONVERSATION_SID",
		Short: "Close a conversation",
		Long:  "Set the state of a conversation to closed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConversation(cmd, args[0], &twilio.ConversationUpdateParams{State: twilio.ConversationStateClosed})
		},
	}
}

func updateConversation(cmd *cobra.Command, sid string, params *twilio.ConversationUpdateParams) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	conversation, err := client.Conversations().Update(commandContext(cmd), sid, params)
	if err != nil {
		return handleNotFound(cmd, err, "Conversation", sid)
	}

	printf(cmd, "Updated conversation %s\n", conversation.SID)

	return renderConversation(cmd.OutOrStdout(), conversation)
}

func newConversationsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete CONVERSATION_SID",
		Short: "Delete a conversation",
		Long:  "Delete a conversation together with its messages and participants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !ConfirmAction(cmd, fmt.Sprintf("Really delete conversation '%s'?", args[0]), force) {
				return nil
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Conversations().Delete(commandContext(cmd), args[0])
			if err != nil {
				return handleNotFound(cmd, err, "Conversation", args[0])
			}

			printf(cmd, "Successfully deleted conversation '%s'\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "force deletion without confirmation")

	return cmd
}

func newConversationsCloseAllCommand() *cobra.Command {
	var (
		force    bool
		interval time.Duration
	)

	filter := &conversationFilter{}

	cmd := &cobra.Command{
		Use:   "close-all",
		Short: "Close every open conversation",
		Long:  "Close each conversation that is not closed yet, one at a time with a pause in between",
		RunE: func(cmd *cobra.Command, args []string) error {
			return bulkConversations(cmd, filter, force, interval, "close", "Closed",
				func(conversation twilio.Conversation) bool {
					return conversation.State != twilio.ConversationStateClosed
				},
				func(client twilio.Client) twilio.BulkOperation {
					closed := &twilio.ConversationUpdateParams{State: twilio.ConversationStateClosed}

					return func(ctx context.Context, sid string) error {
						_, err := client.Conversations().Update(ctx, sid, closed)

						return err
					}
				})
		},
	}

	filter.register(cmd)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "close without confirmation")
	cmd.Flags().DurationVar(&interval, "interval", constants.DefaultBulkInterval, "pause between two requests")

	return cmd
}

func newConversationsDeleteAllCommand() *cobra.Command {
	var (
		force    bool
		interval time.Duration
	)

	filter := &conversationFilter{}

	cmd := &cobra.Command{
		Use:   "delete-all",
		Short: "Delete every conversation",
		Long:  "Delete each conversation matching the filter, one at a time with a pause in between",
		RunE: func(cmd *cobra.Command, args []string) error {
			return bulkConversations(cmd, filter, force, interval, "delete", "Deleted",
				func(twilio.Conversation) bool { return true },
				func(client twilio.Client) twilio.BulkOperation {
					return client.Conversations().Delete
				})
		},
	}

	filter.register(cmd)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "force deletion without confirmation")
	cmd.Flags().DurationVar(&interval, "interval", constants.DefaultBulkInterval, "pause between two requests")

	return cmd
}

func bulkConversations(
	cmd *cobra.Command, filter *conversationFilter, force bool, interval time.Duration, action, verb string,
	keep func(twilio.Conversation) bool, operation func(twilio.Client) twilio.BulkOperation,
) error {
	params, err := filter.params()
	if err != nil {
		return err
	}

	client, err := CreateClient()
	if err != nil {
		return err
	}

	conversations, err := client.Conversations().List(commandContext(cmd), params)
	if err != nil {
		return fmt.Errorf("failed to list conversations: %w", err)
	}

	sids := make([]string, 0, len(conversations))
	for _, conversation := range conversations {
		if keep(conversation) {
			sids = append(sids, conversation.SID)
		}
	}

	if len(sids) == 0 {
		printf(cmd, "No conversations found.\n")

		return nil
	}

	if !ConfirmAction(cmd, fmt.Sprintf("Really %s %d conversations?", action, len(sids)), force) {
		return nil
	}

	return runBulk(cmd, interval, verb, sids, operation(client))
}

func newConversationsParticipantsCommand() *cobra.Command {
	var params twilio.ParticipantConversationListParams

	cmd := &cobra.Command{
		Use:   "participants",
		Short: "List the conversations of a participant",
		Long:  "List the conversations a participant takes part in, selected by chat identity or by address such as a phone number",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := params.Validate()
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			conversations, err := client.ParticipantConversations().List(commandContext(cmd), &params)
			if err != nil {
				return fmt.Errorf("failed to list participant conversations: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), conversations, func(w io.Writer) error {
				rows := make([][]string, 0, len(conversations))
				for _, c := range conversations {
					rows = append(rows, []string{
						c.ConversationSID,
						formatOptional(c.ConversationFriendlyName),
						string(c.ConversationState),
						c.ParticipantSID,
						formatTime(c.ConversationDateCreated),
					})
				}

				return renderTable(w, []string{"Conversation SID", "Friendly Name", "State", "Participant SID", "Created"}, rows)
			})
		},
	}

	cmd.Flags().StringVar(&params.Identity, "identity", "", "chat identity of the participant")
	cmd.Flags().StringVar(&params.Address, "address", "", "address of a non-chat participant, such as a phone number")

	return cmd
}

func renderConversation(w io.Writer, conversation *twilio.Conversation) error {
	return renderOutput(w, conversation, func(w io.Writer) error {
		return renderProperties(w, [][]string{
			{"SID", conversation.SID},
			{"Friendly Name", formatOptional(conversation.FriendlyName)},
			{"Unique Name", formatOptional(conversation.UniqueName)},
			{"State", string(conversation.State)},
			{"Chat Service SID", conversation.ChatServiceSID},
			{"Messaging Service SID", conversation.MessagingServiceSID},
			{"Attributes", truncate(conversation.Attributes)},
			{"Inactive At", formatTimePtr(conversation.Timers.DateInactive)},
			{"Closed At", formatTimePtr(conversation.Timers.DateClosed)},
			{"Created", formatTime(conversation.DateCreated)},
			{"Updated", formatTime(conversation.DateUpdated)},
		})
	})
}

func renderConversations(w io.Writer, conversations []twilio.Conversation) error {
	return renderOutput(w, conversations, func(w io.Writer) error {
		rows := make([][]string, 0, len(conversations))
		for _, c := range conversations {
			rows = append(rows, []string{c.SID, c.DisplayName(), string(c.State), formatTime(c.DateCreated)})
		}

		return renderTable(w, []string{"SID", "Name", "State", "Created"}, rows)
	})
}
