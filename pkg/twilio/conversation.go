package twilio

import (
	"encoding/json"
	"strings"
	"time"
)

// ConversationState is the state of a conversation.
type ConversationState string

// Conversation states.
const (
	ConversationStateActive   ConversationState = "active"
	ConversationStateInactive ConversationState = "inactive"
	ConversationStateClosed   ConversationState = "closed"
)

// ConversationStates lists every conversation state.
var ConversationStates = []ConversationState{
	ConversationStateActive,
	ConversationStateInactive,
	ConversationStateClosed,
}

// ParseConversationState parses a state case-insensitively.
func ParseConversationState(s string) (ConversationState, error) {
	for _, state := range ConversationStates {
		if strings.EqualFold(s, string(state)) {
			return state, nil
		}
	}

	return "", NewValidationError("unknown conversation state %q, expected one of %v", s, ConversationStates)
}

// Conversation is a Conversations API conversation.
type Conversation struct {
	SID                 string             `json:"sid"                     yaml:"sid"`
	AccountSID          string             `json:"account_sid"             yaml:"account_sid"`
	ChatServiceSID      string             `json:"chat_service_sid"        yaml:"chat_service_sid"`
	MessagingServiceSID string             `json:"messaging_service_sid"   yaml:"messaging_service_sid"`
	UniqueName          *string            `json:"unique_name,omitempty"   yaml:"unique_name,omitempty"`
	FriendlyName        *string            `json:"friendly_name,omitempty" yaml:"friendly_name,omitempty"`
	State               ConversationState  `json:"state"                   yaml:"state"`
	Attributes          string             `json:"attributes"              yaml:"attributes"`
	Timers              ConversationTimers `json:"timers"                  yaml:"timers"`
	DateCreated         time.Time          `json:"date_created"            yaml:"date_created"`
	DateUpdated         time.Time          `json:"date_updated"            yaml:"date_updated"`
	URL                 string             `json:"url"                     yaml:"url"`
	Links               ConversationLinks  `json:"links"                   yaml:"links"`
}

// DisplayName returns the most human friendly identifier available.
func (c Conversation) DisplayName() string {
	if c.FriendlyName != nil && *c.FriendlyName != "" {
		return *c.FriendlyName
	}

	if c.UniqueName != nil && *c.UniqueName != "" {
		return *c.UniqueName
	}

	return c.SID
}

// ConversationTimers holds the scheduled state transitions of a conversation.
type ConversationTimers struct {
	DateInactive *time.Time `json:"date_inactive,omitempty" yaml:"date_inactive,omitempty"`
	DateClosed   *time.Time `json:"date_closed,omitempty"   yaml:"date_closed,omitempty"`
}

// ConversationLinks are the related resource URLs of a conversation.
type ConversationLinks struct {
	Participants string `json:"participants" yaml:"participants"`
	Messages     string `json:"messages"     yaml:"messages"`
	Webhooks     string `json:"webhooks"     yaml:"webhooks"`
}

// ConversationListParams filters a conversation listing.
type ConversationListParams struct {
	StartDate *time.Time        `layout:"2006-01-02" url:"StartDate,omitempty"`
	EndDate   *time.Time        `layout:"2006-01-02" url:"EndDate,omitempty"`
	State     ConversationState `url:"State,omitempty"`
	PageSize  int               `url:"PageSize,omitempty"`
}

// ConversationUpdateParams changes a conversation. Timer values are ISO 8601
// durations such as "PT10M".
type ConversationUpdateParams struct {
	UniqueName     string            `url:"UniqueName,omitempty"`
	FriendlyName   string            `url:"FriendlyName,omitempty"`
	State          ConversationState `url:"State,omitempty"`
	Attributes     string            `url:"Attributes,omitempty"`
	TimersInactive string            `url:"Timers.Inactive,omitempty"`
	TimersClosed   string            `url:"Timers.Closed,omitempty"`
}

// ParticipantConversation is a conversation seen from one participant.
type ParticipantConversation struct {
	AccountSID               string            `json:"account_sid"                         yaml:"account_sid"`
	ChatServiceSID           string            `json:"chat_service_sid"                    yaml:"chat_service_sid"`
	ParticipantSID           string            `json:"participant_sid"                     yaml:"participant_sid"`
	ParticipantUserSID       *string           `json:"participant_user_sid,omitempty"      yaml:"participant_user_sid,omitempty"`
	ParticipantIdentity      *string           `json:"participant_identity,omitempty"      yaml:"participant_identity,omitempty"`
	ParticipantMessagingBind json.RawMessage   `json:"participant_messaging_binding"       yaml:"-"`
	ConversationSID          string            `json:"conversation_sid"                    yaml:"conversation_sid"`
	ConversationUniqueName   *string           `json:"conversation_unique_name,omitempty"  yaml:"conversation_unique_name,omitempty"`
	ConversationFriendlyName *string           `json:"conversation_friendly_name,omitempty" yaml:"conversation_friendly_name,omitempty"`
	ConversationAttributes   string            `json:"conversation_attributes"             yaml:"conversation_attributes"`
	ConversationState        ConversationState `json:"conversation_state"                  yaml:"conversation_state"`
	ConversationCreatedBy    string            `json:"conversation_created_by"             yaml:"conversation_created_by"`
	ConversationDateCreated  time.Time         `json:"conversation_date_created"           yaml:"conversation_date_created"`
	ConversationDateUpdated  time.Time         `json:"conversation_date_updated"           yaml:"conversation_date_updated"`
	Links                    map[string]string `json:"links"                               yaml:"links"`
}

// ParticipantConversationListParams selects the participant by chat
// identity or by non-chat address. One of them is required.
type ParticipantConversationListParams struct {
	Identity string `url:"Identity,omitempty"`
	Address  string `url:"Address,omitempty"`
}

// Validate checks that a participant was named.
func (p *ParticipantConversationListParams) Validate() error {
	if p == nil || (p.Identity == "" && p.Address == "") {
		return NewValidationError("either an identity or an address is required")
	}

	return nil
}
