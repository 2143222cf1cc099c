package client

import (
	"fmt"

	internalhttp "github.com/TristanBlackwell/twilly/internal/http"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

// Client implements the twilio.Client interface. Credentials and transport
// are fixed at construction, so a Client may be shared between goroutines.
type Client struct {
	httpClient *internalhttp.Client
	config     twilio.Config

	// Resource clients
	accounts                 *AccountsClient
	conversations            *ConversationsClient
	participantConversations *ParticipantConversationsClient
	sync                     *SyncClient
	serverless               *ServerlessClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *twilio.Config) []internalhttp.Option {
	var httpOpts []internalhttp.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, internalhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, internalhttp.WithHTTPClient(config.HTTPClient))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, internalhttp.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		httpOpts = append(httpOpts, internalhttp.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	return httpOpts
}

// New creates a Twilio API client. The credentials must already be valid.
func New(config *twilio.Config) (*Client, error) {
	if config == nil {
		return nil, twilio.ErrConfigRequired
	}

	if config.Credentials.IsZero() {
		return nil, fmt.Errorf("%w: credentials are required", twilio.ErrConfigRequired)
	}

	if config.MaxPages < 0 {
		return nil, twilio.NewValidationError("max pages must not be negative, was %d", config.MaxPages)
	}

	httpClient := internalhttp.NewClient(config.Credentials, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		config:     *config,
	}

	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	maxPages := c.config.MaxPages

	c.accounts = NewAccountsClient(c.httpClient, c.config.BaseURL(twilio.DomainAPI), maxPages)
	conversationsBase := c.config.BaseURL(twilio.DomainConversations)
	c.conversations = NewConversationsClient(c.httpClient, conversationsBase, maxPages)
	c.participantConversations = NewParticipantConversationsClient(c.httpClient, conversationsBase, maxPages)
	c.sync = NewSyncClient(c.httpClient, c.config.BaseURL(twilio.DomainSync), maxPages)
	c.serverless = NewServerlessClient(c.httpClient, c.config.BaseURL(twilio.DomainServerless), maxPages)
}

// Credentials implements twilio.Client.Credentials.
func (c *Client) Credentials() twilio.Credentials {
	return c.httpClient.Credentials()
}

// Accounts implements twilio.Client.Accounts.
func (c *Client) Accounts() twilio.AccountsClient {
	return c.accounts
}

// Conversations implements twilio.Client.Conversations.
func (c *Client) Conversations() twilio.ConversationsClient {
	return c.conversations
}

// ParticipantConversations implements twilio.Client.ParticipantConversations.
func (c *Client) ParticipantConversations() twilio.ParticipantConversationsClient {
	return c.participantConversations
}

// Sync implements twilio.Client.Sync.
func (c *Client) Sync() twilio.SyncClient {
	return c.sync
}

// Serverless implements twilio.Client.Serverless.
func (c *Client) Serverless() twilio.ServerlessClient {
	return c.serverless
}
