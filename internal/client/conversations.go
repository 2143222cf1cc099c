package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/TristanBlackwell/twilly/internal/constants"
	internalhttp "github.com/TristanBlackwell/twilly/internal/http"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

// ConversationsClient implements twilio.ConversationsClient.
type ConversationsClient struct {
	httpClient    *internalhttp.Client
	baseURL       string
	conversations collection[twilio.Conversation]
}

// NewConversationsClient creates a new conversations client.
func NewConversationsClient(httpClient *internalhttp.Client, baseURL string, maxPages int) *ConversationsClient {
	return &ConversationsClient{
		httpClient:    httpClient,
		baseURL:       baseURL,
		conversations: newCollection[twilio.Conversation](httpClient, baseURL, "conversations", maxPages),
	}
}

func (c *ConversationsClient) url(segments ...string) string {
	return internalhttp.JoinURL(c.baseURL, append([]string{"v1", "Conversations"}, segments...)...)
}

// Get implements twilio.ConversationsClient.Get.
func (c *ConversationsClient) Get(ctx context.Context, sid string) (*twilio.Conversation, error) {
	if sid == "" {
		return nil, twilio.NewValidationError("conversation SID is required")
	}

	conversation, err := internalhttp.Send[twilio.Conversation](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodGet,
		URL:    c.url(sid),
	})
	if err != nil {
		return nil, fmt.Errorf("getting conversation: %w", err)
	}

	return conversation, nil
}

// List implements twilio.ConversationsClient.List.
func (c *ConversationsClient) List(ctx context.Context, params *twilio.ConversationListParams) ([]twilio.Conversation, error) {
	conversations, err := c.conversations.list(ctx, c.url(), conversationListParams(params))
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}

	return conversations, nil
}

// Iterate implements twilio.ConversationsClient.Iterate.
func (c *ConversationsClient) Iterate(ctx context.Context, params *twilio.ConversationListParams) *twilio.PageIterator[twilio.Conversation] {
	return c.conversations.iterate(ctx, c.url(), conversationListParams(params))
}

// Update implements twilio.ConversationsClient.Update.
func (c *ConversationsClient) Update(ctx context.Context, sid string, params *twilio.ConversationUpdateParams) (*twilio.Conversation, error) {
	if sid == "" {
		return nil, twilio.NewValidationError("conversation SID is required")
	}

	conversation, err := internalhttp.Send[twilio.Conversation](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodPost,
		URL:    c.url(sid),
		Params: params,
	})
	if err != nil {
		return nil, fmt.Errorf("updating conversation: %w", err)
	}

	return conversation, nil
}

// Delete implements twilio.ConversationsClient.Delete.
func (c *ConversationsClient) Delete(ctx context.Context, sid string) error {
	if sid == "" {
		return twilio.NewValidationError("conversation SID is required")
	}

	err := c.httpClient.Exec(ctx, &internalhttp.Request{
		Method: http.MethodDelete,
		URL:    c.url(sid),
	})
	if err != nil {
		return fmt.Errorf("deleting conversation: %w", err)
	}

	return nil
}

func conversationListParams(params *twilio.ConversationListParams) *twilio.ConversationListParams {
	query := twilio.ConversationListParams{}
	if params != nil {
		query = *params
	}

	if query.PageSize == 0 {
		query.PageSize = constants.StandardPageSize
	}

	return &query
}

// ParticipantConversationsClient implements twilio.ParticipantConversationsClient.
type ParticipantConversationsClient struct {
	baseURL       string
	conversations collection[twilio.ParticipantConversation]
}

// NewParticipantConversationsClient creates a new participant conversations client.
func NewParticipantConversationsClient(httpClient *internalhttp.Client, baseURL string, maxPages int) *ParticipantConversationsClient {
	return &ParticipantConversationsClient{
		baseURL:       baseURL,
		conversations: newCollection[twilio.ParticipantConversation](httpClient, baseURL, "conversations", maxPages),
	}
}

func (c *ParticipantConversationsClient) url() string {
	return internalhttp.JoinURL(c.baseURL, "v1", "ParticipantConversations")
}

// List implements twilio.ParticipantConversationsClient.List.
func (c *ParticipantConversationsClient) List(
	ctx context.Context, params *twilio.ParticipantConversationListParams,
) ([]twilio.ParticipantConversation, error) {
	err := params.Validate()
	if err != nil {
		return nil, err
	}

	conversations, err := c.conversations.list(ctx, c.url(), params)
	if err != nil {
		return nil, fmt.Errorf("listing participant conversations: %w", err)
	}

	return conversations, nil
}

// Iterate implements twilio.ParticipantConversationsClient.Iterate.
func (c *ParticipantConversationsClient) Iterate(
	ctx context.Context, params *twilio.ParticipantConversationListParams,
) *twilio.PageIterator[twilio.ParticipantConversation] {
	err := params.Validate()
	if err != nil {
		return failedIterator[twilio.ParticipantConversation](ctx, err)
	}

	return c.conversations.iterate(ctx, c.url(), params)
}
