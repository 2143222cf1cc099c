package twilio

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// Reachability debouncing window bounds in milliseconds.
const (
	MinReachabilityDebouncingWindow = 1000
	MaxReachabilityDebouncingWindow = 30000
)

// JSONField is a value sent as a JSON encoded form field, the way Sync
// expects document and item data.
type JSONField struct {
	Value interface{}
}

// NewJSONField parses raw JSON text into a field.
func NewJSONField(raw string) (JSONField, error) {
	var value interface{}

	err := json.Unmarshal([]byte(raw), &value)
	if err != nil {
		return JSONField{}, NewValidationError("data is not valid JSON: %v", err)
	}

	return JSONField{Value: value}, nil
}

// IsZero reports whether no value was set.
func (f JSONField) IsZero() bool {
	return f.Value == nil
}

// EncodeValues implements query.Encoder.
func (f JSONField) EncodeValues(key string, values *url.Values) error {
	if f.Value == nil {
		return nil
	}

	data, err := json.Marshal(f.Value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	values.Set(key, string(data))

	return nil
}

// SyncService is a Sync service instance.
type SyncService struct {
	SID                           string           `json:"sid"                              yaml:"sid"`
	AccountSID                    string           `json:"account_sid"                      yaml:"account_sid"`
	UniqueName                    *string          `json:"unique_name,omitempty"            yaml:"unique_name,omitempty"`
	FriendlyName                  *string          `json:"friendly_name,omitempty"          yaml:"friendly_name,omitempty"`
	WebhookURL                    *string          `json:"webhook_url,omitempty"            yaml:"webhook_url,omitempty"`
	WebhooksFromRestEnabled       bool             `json:"webhooks_from_rest_enabled"       yaml:"webhooks_from_rest_enabled"`
	ReachabilityWebhooksEnabled   bool             `json:"reachability_webhooks_enabled"    yaml:"reachability_webhooks_enabled"`
	ACLEnabled                    bool             `json:"acl_enabled"                      yaml:"acl_enabled"`
	ReachabilityDebouncingEnabled bool             `json:"reachability_debouncing_enabled"  yaml:"reachability_debouncing_enabled"`
	ReachabilityDebouncingWindow  int              `json:"reachability_debouncing_window"   yaml:"reachability_debouncing_window"`
	DateCreated                   time.Time        `json:"date_created"                     yaml:"date_created"`
	DateUpdated                   time.Time        `json:"date_updated"                     yaml:"date_updated"`
	URL                           string           `json:"url"                              yaml:"url"`
	Links                         SyncServiceLinks `json:"links"                            yaml:"links"`
}

// SyncServiceLinks are the collections of a Sync service.
type SyncServiceLinks struct {
	Documents string `json:"documents" yaml:"documents"`
	Lists     string `json:"lists"     yaml:"lists"`
	Maps      string `json:"maps"      yaml:"maps"`
	Streams   string `json:"streams"   yaml:"streams"`
}

// SyncServiceParams creates or updates a Sync service. Nil fields are left
// to the server default.
type SyncServiceParams struct {
	FriendlyName                  string `url:"FriendlyName,omitempty"`
	WebhookURL                    string `url:"WebhookUrl,omitempty"`
	ReachabilityWebhooksEnabled   *bool  `url:"ReachabilityWebhooksEnabled,omitempty"`
	ACLEnabled                    *bool  `url:"AclEnabled,omitempty"`
	ReachabilityDebouncingEnabled *bool  `url:"ReachabilityDebouncingEnabled,omitempty"`
	ReachabilityDebouncingWindow  *int   `url:"ReachabilityDebouncingWindow,omitempty"`
	WebhooksFromRestEnabled       *bool  `url:"WebhooksFromRestEnabled,omitempty"`
}

// Validate checks the debouncing window bounds.
func (p *SyncServiceParams) Validate() error {
	if p == nil || p.ReachabilityDebouncingWindow == nil {
		return nil
	}

	window := *p.ReachabilityDebouncingWindow

	if window < MinReachabilityDebouncingWindow {
		return NewValidationError("Reachability debouncing window must be greater than 1000 milliseconds")
	}

	if window > MaxReachabilityDebouncingWindow {
		return NewValidationError("Reachability debouncing window must be less than 30,000 milliseconds")
	}

	return nil
}

// SyncDocument is a Sync document.
type SyncDocument struct {
	SID         string            `json:"sid"                    yaml:"sid"`
	UniqueName  *string           `json:"unique_name,omitempty"  yaml:"unique_name,omitempty"`
	AccountSID  string            `json:"account_sid"            yaml:"account_sid"`
	ServiceSID  string            `json:"service_sid"            yaml:"service_sid"`
	URL         string            `json:"url"                    yaml:"url"`
	Revision    string            `json:"revision"               yaml:"revision"`
	Data        json.RawMessage   `json:"data"                   yaml:"-"`
	DateCreated time.Time         `json:"date_created"           yaml:"date_created"`
	DateUpdated time.Time         `json:"date_updated"           yaml:"date_updated"`
	DateExpires *time.Time        `json:"date_expires,omitempty" yaml:"date_expires,omitempty"`
	CreatedBy   string            `json:"created_by"             yaml:"created_by"`
	Links       map[string]string `json:"links"                  yaml:"links"`
}

// SyncDocumentCreateParams describes a new document. Ttl is in seconds.
type SyncDocumentCreateParams struct {
	UniqueName string    `url:"UniqueName,omitempty"`
	Data       JSONField `url:"Data,omitempty"`
	TTL        int       `url:"Ttl,omitempty"`
}

// SyncDocumentUpdateParams replaces a document's data. IfMatch is sent as
// the If-Match header so the update only applies to that revision.
type SyncDocumentUpdateParams struct {
	Data    JSONField `url:"Data,omitempty"`
	TTL     int       `url:"Ttl,omitempty"`
	IfMatch string    `url:"-"`
}

// SyncMap is a Sync map.
type SyncMap struct {
	SID         string            `json:"sid"                    yaml:"sid"`
	UniqueName  *string           `json:"unique_name,omitempty"  yaml:"unique_name,omitempty"`
	AccountSID  string            `json:"account_sid"            yaml:"account_sid"`
	ServiceSID  string            `json:"service_sid"            yaml:"service_sid"`
	URL         string            `json:"url"                    yaml:"url"`
	Revision    string            `json:"revision"               yaml:"revision"`
	DateCreated time.Time         `json:"date_created"           yaml:"date_created"`
	DateUpdated time.Time         `json:"date_updated"           yaml:"date_updated"`
	DateExpires *time.Time        `json:"date_expires,omitempty" yaml:"date_expires,omitempty"`
	CreatedBy   string            `json:"created_by"             yaml:"created_by"`
	Links       map[string]string `json:"links"                  yaml:"links"`
}

// SyncList is a Sync list. It has the same shape as a map.
type SyncList SyncMap

// SyncCollectionCreateParams describes a new map or list.
type SyncCollectionCreateParams struct {
	UniqueName string `url:"UniqueName,omitempty"`
	TTL        int    `url:"Ttl,omitempty"`
}

// SyncCollectionUpdateParams changes the time to live of a map or list.
type SyncCollectionUpdateParams struct {
	TTL int `url:"Ttl"`
}

// SyncItemOrder orders a map or list item listing.
type SyncItemOrder string

// Item orders.
const (
	SyncItemOrderAsc  SyncItemOrder = "asc"
	SyncItemOrderDesc SyncItemOrder = "desc"
)

// SyncItemBounds says whether From is included in an item listing.
type SyncItemBounds string

// Item bounds.
const (
	SyncItemBoundsInclusive SyncItemBounds = "inclusive"
	SyncItemBoundsExclusive SyncItemBounds = "exclusive"
)

// SyncItemListParams filters a map or list item listing. From is a map key
// or a list index.
type SyncItemListParams struct {
	Order  SyncItemOrder  `url:"Order,omitempty"`
	From   string         `url:"From,omitempty"`
	Bounds SyncItemBounds `url:"Bounds,omitempty"`
}

// Validate checks the enumerated fields.
func (p *SyncItemListParams) Validate() error {
	if p == nil {
		return nil
	}

	switch p.Order {
	case "", SyncItemOrderAsc, SyncItemOrderDesc:
	default:
		return NewValidationError("order must be asc or desc, was %q", p.Order)
	}

	switch p.Bounds {
	case "", SyncItemBoundsInclusive, SyncItemBoundsExclusive:
	default:
		return NewValidationError("bounds must be inclusive or exclusive, was %q", p.Bounds)
	}

	return nil
}

// SyncMapItem is one entry of a Sync map.
type SyncMapItem struct {
	Key         string          `json:"key"                    yaml:"key"`
	AccountSID  string          `json:"account_sid"            yaml:"account_sid"`
	ServiceSID  string          `json:"service_sid"            yaml:"service_sid"`
	MapSID      string          `json:"map_sid"                yaml:"map_sid"`
	URL         string          `json:"url"                    yaml:"url"`
	Revision    string          `json:"revision"               yaml:"revision"`
	Data        json.RawMessage `json:"data"                   yaml:"-"`
	DateCreated time.Time       `json:"date_created"           yaml:"date_created"`
	DateUpdated time.Time       `json:"date_updated"           yaml:"date_updated"`
	DateExpires *time.Time      `json:"date_expires,omitempty" yaml:"date_expires,omitempty"`
	CreatedBy   string          `json:"created_by"             yaml:"created_by"`
}

// SyncMapItemCreateParams describes a new map item.
type SyncMapItemCreateParams struct {
	Key           string    `url:"Key"`
	Data          JSONField `url:"Data"`
	TTL           int       `url:"Ttl,omitempty"`
	CollectionTTL int       `url:"CollectionTtl,omitempty"`
}

// SyncItemUpdateParams replaces a map or list item. IfMatch is sent as the
// If-Match header.
type SyncItemUpdateParams struct {
	Data          JSONField `url:"Data,omitempty"`
	TTL           int       `url:"Ttl,omitempty"`
	CollectionTTL int       `url:"CollectionTtl,omitempty"`
	IfMatch       string    `url:"-"`
}

// SyncListItem is one entry of a Sync list.
type SyncListItem struct {
	Index       uint32          `json:"index"                  yaml:"index"`
	AccountSID  string          `json:"account_sid"            yaml:"account_sid"`
	ServiceSID  string          `json:"service_sid"            yaml:"service_sid"`
	ListSID     string          `json:"list_sid"               yaml:"list_sid"`
	URL         string          `json:"url"                    yaml:"url"`
	Revision    string          `json:"revision"               yaml:"revision"`
	Data        json.RawMessage `json:"data"                   yaml:"-"`
	DateCreated time.Time       `json:"date_created"           yaml:"date_created"`
	DateUpdated time.Time       `json:"date_updated"           yaml:"date_updated"`
	DateExpires *time.Time      `json:"date_expires,omitempty" yaml:"date_expires,omitempty"`
	CreatedBy   string          `json:"created_by"             yaml:"created_by"`
}

// SyncListItemCreateParams describes a new list item. Lists assign the index.
type SyncListItemCreateParams struct {
	Data          JSONField `url:"Data"`
	TTL           int       `url:"Ttl,omitempty"`
	CollectionTTL int       `url:"CollectionTtl,omitempty"`
}
