package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/TristanBlackwell/twilly/internal/constants"
	internalhttp "github.com/TristanBlackwell/twilly/internal/http"
	"github.com/TristanBlackwell/twilly/pkg/twilio"
)

const accountsAPIVersion = "2010-04-01"

// AccountsClient implements twilio.AccountsClient.
type AccountsClient struct {
	httpClient *internalhttp.Client
	baseURL    string
	accounts   collection[twilio.Account]
}

// NewAccountsClient creates a new accounts client.
func NewAccountsClient(httpClient *internalhttp.Client, baseURL string, maxPages int) *AccountsClient {
	return &AccountsClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		accounts:   newCollection[twilio.Account](httpClient, baseURL, "accounts", maxPages),
	}
}

func (c *AccountsClient) accountURL(sid string) string {
	return internalhttp.JoinURL(c.baseURL, accountsAPIVersion, "Accounts", sid+".json")
}

func (c *AccountsClient) listURL() string {
	return internalhttp.JoinURL(c.baseURL, accountsAPIVersion, "Accounts.json")
}

// Get implements twilio.AccountsClient.Get.
func (c *AccountsClient) Get(ctx context.Context, sid string) (*twilio.Account, error) {
	if sid == "" {
		sid = c.httpClient.Credentials().AccountSID()
	}

	account, err := internalhttp.Send[twilio.Account](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodGet,
		URL:    c.accountURL(sid),
	})
	if err != nil {
		return nil, fmt.Errorf("getting account: %w", err)
	}

	return account, nil
}

// List implements twilio.AccountsClient.List.
func (c *AccountsClient) List(ctx context.Context, params *twilio.AccountListParams) ([]twilio.Account, error) {
	accounts, err := c.accounts.list(ctx, c.listURL(), accountListParams(params))
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	return accounts, nil
}

// Iterate implements twilio.AccountsClient.Iterate.
func (c *AccountsClient) Iterate(ctx context.Context, params *twilio.AccountListParams) *twilio.PageIterator[twilio.Account] {
	return c.accounts.iterate(ctx, c.listURL(), accountListParams(params))
}

// Create implements twilio.AccountsClient.Create.
func (c *AccountsClient) Create(ctx context.Context, params *twilio.AccountCreateParams) (*twilio.Account, error) {
	account, err := internalhttp.Send[twilio.Account](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodPost,
		URL:    c.listURL(),
		Params: params,
	})
	if err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}

	return account, nil
}

// Update implements twilio.AccountsClient.Update.
func (c *AccountsClient) Update(ctx context.Context, sid string, params *twilio.AccountUpdateParams) (*twilio.Account, error) {
	if sid == "" {
		return nil, twilio.NewValidationError("account SID is required")
	}

	account, err := internalhttp.Send[twilio.Account](ctx, c.httpClient, &internalhttp.Request{
		Method: http.MethodPost,
		URL:    c.accountURL(sid),
		Params: params,
	})
	if err != nil {
		return nil, fmt.Errorf("updating account: %w", err)
	}

	return account, nil
}

func accountListParams(params *twilio.AccountListParams) *twilio.AccountListParams {
	query := twilio.AccountListParams{}
	if params != nil {
		query = *params
	}

	if query.PageSize == 0 {
		query.PageSize = constants.AccountsPageSize
	}

	return &query
}
