package twilio

import (
	"fmt"
	"strings"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

// Account statuses.
const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusSuspended AccountStatus = "suspended"
	AccountStatusClosed    AccountStatus = "closed"
)

// AccountStatuses lists every account status.
var AccountStatuses = []AccountStatus{AccountStatusActive, AccountStatusSuspended, AccountStatusClosed}

// ParseAccountStatus parses a status case-insensitively.
func ParseAccountStatus(s string) (AccountStatus, error) {
	for _, status := range AccountStatuses {
		if strings.EqualFold(s, string(status)) {
			return status, nil
		}
	}

	return "", NewValidationError("unknown account status %q, expected one of %v", s, AccountStatuses)
}

// Account is a Twilio account or subaccount. Dates are kept as the RFC 2822
// strings the 2010 API returns.
type Account struct {
	SID             string        `json:"sid"               yaml:"sid"`
	FriendlyName    string        `json:"friendly_name"     yaml:"friendly_name"`
	Status          AccountStatus `json:"status"            yaml:"status"`
	Type            string        `json:"type"              yaml:"type"`
	OwnerAccountSID string        `json:"owner_account_sid" yaml:"owner_account_sid"`
	URI             string        `json:"uri"               yaml:"uri"`
	DateCreated     string        `json:"date_created"      yaml:"date_created"`
	DateUpdated     string        `json:"date_updated"      yaml:"date_updated"`
}

// String implements fmt.Stringer.
func (a Account) String() string {
	return fmt.Sprintf("%s - %s", a.SID, a.Status)
}

// AccountListParams filters an account listing.
type AccountListParams struct {
	FriendlyName string        `url:"FriendlyName,omitempty"`
	Status       AccountStatus `url:"Status,omitempty"`
	PageSize     int           `url:"PageSize,omitempty"`
}

// AccountCreateParams describes a new subaccount.
type AccountCreateParams struct {
	FriendlyName string `url:"FriendlyName,omitempty"`
}

// AccountUpdateParams changes an account. Empty fields are left unchanged.
type AccountUpdateParams struct {
	FriendlyName string        `url:"FriendlyName,omitempty"`
	Status       AccountStatus `url:"Status,omitempty"`
}
