package twilio

import (
	"context"
	"net/http"
	"time"
)

// Client is the Twilio API client. It holds credentials and a transport. It
// is safe for concurrent use once built.
type Client interface {
	// Credentials returns the credentials every request is signed with.
	Credentials() Credentials

	Accounts() AccountsClient
	Conversations() ConversationsClient
	ParticipantConversations() ParticipantConversationsClient
	Sync() SyncClient
	Serverless() ServerlessClient
}

// AccountsClient covers the 2010 Accounts API.
type AccountsClient interface {
	// Get fetches an account. An empty sid means the authenticated account.
	Get(ctx context.Context, sid string) (*Account, error)
	List(ctx context.Context, params *AccountListParams) ([]Account, error)
	Iterate(ctx context.Context, params *AccountListParams) *PageIterator[Account]
	Create(ctx context.Context, params *AccountCreateParams) (*Account, error)
	Update(ctx context.Context, sid string, params *AccountUpdateParams) (*Account, error)
}

// ConversationsClient covers Conversations.
type ConversationsClient interface {
	Get(ctx context.Context, sid string) (*Conversation, error)
	List(ctx context.Context, params *ConversationListParams) ([]Conversation, error)
	Iterate(ctx context.Context, params *ConversationListParams) *PageIterator[Conversation]
	Update(ctx context.Context, sid string, params *ConversationUpdateParams) (*Conversation, error)
	Delete(ctx context.Context, sid string) error
}

// ParticipantConversationsClient lists the conversations a participant is in.
type ParticipantConversationsClient interface {
	List(ctx context.Context, params *ParticipantConversationListParams) ([]ParticipantConversation, error)
	Iterate(ctx context.Context, params *ParticipantConversationListParams) *PageIterator[ParticipantConversation]
}

// SyncClient groups the Sync resources.
type SyncClient interface {
	Services() SyncServicesClient
	Documents() SyncDocumentsClient
	Maps() SyncMapsClient
	MapItems() SyncMapItemsClient
	Lists() SyncListsClient
	ListItems() SyncListItemsClient
}

// SyncServicesClient covers Sync services.
type SyncServicesClient interface {
	Create(ctx context.Context, params *SyncServiceParams) (*SyncService, error)
	List(ctx context.Context) ([]SyncService, error)
	Iterate(ctx context.Context) *PageIterator[SyncService]
	Get(ctx context.Context, sid string) (*SyncService, error)
	Update(ctx context.Context, sid string, params *SyncServiceParams) (*SyncService, error)
	Delete(ctx context.Context, sid string) error
}

// SyncDocumentsClient covers the documents of a Sync service.
type SyncDocumentsClient interface {
	Create(ctx context.Context, serviceSID string, params *SyncDocumentCreateParams) (*SyncDocument, error)
	List(ctx context.Context, serviceSID string) ([]SyncDocument, error)
	Iterate(ctx context.Context, serviceSID string) *PageIterator[SyncDocument]
	Get(ctx context.Context, serviceSID, sid string) (*SyncDocument, error)
	Update(ctx context.Context, serviceSID, sid string, params *SyncDocumentUpdateParams) (*SyncDocument, error)
	Delete(ctx context.Context, serviceSID, sid string) error
}

// SyncMapsClient covers the maps of a Sync service.
type SyncMapsClient interface {
	Create(ctx context.Context, serviceSID string, params *SyncCollectionCreateParams) (*SyncMap, error)
	List(ctx context.Context, serviceSID string) ([]SyncMap, error)
	Iterate(ctx context.Context, serviceSID string) *PageIterator[SyncMap]
	Get(ctx context.Context, serviceSID, sid string) (*SyncMap, error)
	Update(ctx context.Context, serviceSID, sid string, params *SyncCollectionUpdateParams) (*SyncMap, error)
	Delete(ctx context.Context, serviceSID, sid string) error
}

// SyncMapItemsClient covers the items of a Sync map.
type SyncMapItemsClient interface {
	Create(ctx context.Context, serviceSID, mapSID string, params *SyncMapItemCreateParams) (*SyncMapItem, error)
	List(ctx context.Context, serviceSID, mapSID string, params *SyncItemListParams) ([]SyncMapItem, error)
	Iterate(ctx context.Context, serviceSID, mapSID string, params *SyncItemListParams) *PageIterator[SyncMapItem]
	Get(ctx context.Context, serviceSID, mapSID, key string) (*SyncMapItem, error)
	Update(ctx context.Context, serviceSID, mapSID, key string, params *SyncItemUpdateParams) (*SyncMapItem, error)
	Delete(ctx context.Context, serviceSID, mapSID, key string) error
}

// SyncListsClient covers the lists of a Sync service.
type SyncListsClient interface {
	Create(ctx context.Context, serviceSID string, params *SyncCollectionCreateParams) (*SyncList, error)
	List(ctx context.Context, serviceSID string) ([]SyncList, error)
	Iterate(ctx context.Context, serviceSID string) *PageIterator[SyncList]
	Get(ctx context.Context, serviceSID, sid string) (*SyncList, error)
	Update(ctx context.Context, serviceSID, sid string, params *SyncCollectionUpdateParams) (*SyncList, error)
	Delete(ctx context.Context, serviceSID, sid string) error
}

// SyncListItemsClient covers the items of a Sync list.
type SyncListItemsClient interface {
	Create(ctx context.Context, serviceSID, listSID string, params *SyncListItemCreateParams) (*SyncListItem, error)
	List(ctx context.Context, serviceSID, listSID string, params *SyncItemListParams) ([]SyncListItem, error)
	Iterate(ctx context.Context, serviceSID, listSID string, params *SyncItemListParams) *PageIterator[SyncListItem]
	Get(ctx context.Context, serviceSID, listSID string, index uint32) (*SyncListItem, error)
	Update(ctx context.Context, serviceSID, listSID string, index uint32, params *SyncItemUpdateParams) (*SyncListItem, error)
	Delete(ctx context.Context, serviceSID, listSID string, index uint32) error
}

// ServerlessClient groups the Serverless resources.
type ServerlessClient interface {
	Services() ServerlessServicesClient
	Environments() ServerlessEnvironmentsClient
	Logs() ServerlessLogsClient
}

// ServerlessServicesClient covers Serverless services.
type ServerlessServicesClient interface {
	Create(ctx context.Context, params *ServerlessServiceCreateParams) (*ServerlessService, error)
	List(ctx context.Context) ([]ServerlessService, error)
	Iterate(ctx context.Context) *PageIterator[ServerlessService]
	Get(ctx context.Context, sid string) (*ServerlessService, error)
	Update(ctx context.Context, sid string, params *ServerlessServiceUpdateParams) (*ServerlessService, error)
	Delete(ctx context.Context, sid string) error
}

// ServerlessEnvironmentsClient covers the environments of a service.
type ServerlessEnvironmentsClient interface {
	Create(ctx context.Context, serviceSID string, params *ServerlessEnvironmentCreateParams) (*ServerlessEnvironment, error)
	List(ctx context.Context, serviceSID string) ([]ServerlessEnvironment, error)
	Iterate(ctx context.Context, serviceSID string) *PageIterator[ServerlessEnvironment]
	Get(ctx context.Context, serviceSID, sid string) (*ServerlessEnvironment, error)
	Delete(ctx context.Context, serviceSID, sid string) error
}

// ServerlessLogsClient reads the logs of an environment.
type ServerlessLogsClient interface {
	List(ctx context.Context, serviceSID, environmentSID string, params *ServerlessLogListParams) ([]ServerlessLog, error)
	Iterate(ctx context.Context, serviceSID, environmentSID string, params *ServerlessLogListParams) *PageIterator[ServerlessLog]
	Get(ctx context.Context, serviceSID, environmentSID, sid string) (*ServerlessLog, error)
}

// Domain names one of the Twilio API hosts.
type Domain string

// API domains.
const (
	DomainAPI           Domain = "api"
	DomainConversations Domain = "conversations"
	DomainSync          Domain = "sync"
	DomainServerless    Domain = "serverless"
)

// Domains lists every API domain.
var Domains = []Domain{DomainAPI, DomainConversations, DomainSync, DomainServerless}

// DefaultBaseURL returns the production base URL of a domain.
func DefaultBaseURL(domain Domain) string {
	return "https://" + string(domain) + ".twilio.com"
}

// Logger is the logging interface used by the HTTP layer and helpers.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config holds everything needed to build a Client.
type Config struct {
	// Credentials sign every request. Required.
	Credentials Credentials

	// HTTPTimeout bounds each request. Zero uses the default of 30 seconds.
	HTTPTimeout time.Duration
	// RetryMax is the number of retries of a failed GET. Zero, the default,
	// disables retries. Mutating requests are never retried.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration

	// Debug enables per request logging when a Logger is set.
	Debug bool
	// Logger receives HTTP layer logs. Nil disables logging.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// BaseURLs overrides the host of a domain, mainly for tests.
	BaseURLs map[Domain]string
	// HTTPClient replaces the underlying *http.Client.
	HTTPClient *http.Client
	// MaxPages bounds eager list operations. Zero means unbounded.
	MaxPages int
}

// BaseURL returns the base URL configured for a domain.
func (c *Config) BaseURL(domain Domain) string {
	if c != nil {
		if base, ok := c.BaseURLs[domain]; ok && base != "" {
			return base
		}
	}

	return DefaultBaseURL(domain)
}
