package twilio

import (
	"fmt"
	"strings"
)

const (
	// AccountSIDPrefix starts every Twilio account SID.
	AccountSIDPrefix = "AC"
	// AccountSIDLength is the length of a Twilio account SID.
	AccountSIDLength = 34
	// AuthTokenLength is the length of a Twilio auth token.
	AuthTokenLength = 32
)

// Credentials is an account SID and auth token pair. The zero value is not
// usable. Build one with NewCredentials or MustCredentials.
type Credentials struct {
	accountSID string
	authToken  string
}

// NewCredentials validates the shape of an account SID and auth token.
// The SID prefix is checked before its length, and both before the token.
func NewCredentials(accountSID, authToken string) (Credentials, error) {
	if !strings.HasPrefix(accountSID, AccountSIDPrefix) {
		return Credentials{}, ErrAccountSIDPrefix
	}

	if len(accountSID) != AccountSIDLength {
		return Credentials{}, fmt.Errorf("%w. Was %d", ErrAccountSIDLength, len(accountSID))
	}

	if len(authToken) != AuthTokenLength {
		return Credentials{}, fmt.Errorf("%w. Was %d", ErrAuthTokenLength, len(authToken))
	}

	return Credentials{accountSID: accountSID, authToken: authToken}, nil
}

// MustCredentials is like NewCredentials but panics on malformed input.
// A malformed SID or token is a configuration bug, not a runtime condition.
func MustCredentials(accountSID, authToken string) Credentials {
	creds, err := NewCredentials(accountSID, authToken)
	if err != nil {
		panic(err.Error())
	}

	return creds
}

// AccountSID returns the account SID.
func (c Credentials) AccountSID() string {
	return c.accountSID
}

// AuthToken returns the auth token.
func (c Credentials) AuthToken() string {
	return c.authToken
}

// IsZero reports whether c was never built.
func (c Credentials) IsZero() bool {
	return c.accountSID == "" && c.authToken == ""
}

// String masks the auth token.
func (c Credentials) String() string {
	return fmt.Sprintf("%s:%s", c.accountSID, strings.Repeat("*", len(c.authToken)))
}
