// Package exchange implements the HTTP client of the CryptoPro exchange API.
//
// Every endpoint responds with the same JSON envelope:
//
//	{ "success": bool, "data": ..., "message": "..." }
//
// A response with success:false carries a human-readable message that is
// surfaced verbatim to the user, so the client maps it to a typed
// ErrCodeAPIRejected error and leaves the text untouched.
package exchange

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/cryptopro-lab/cryptopro-client/internal/logger"
	"github.com/cryptopro-lab/cryptopro-client/internal/types"
	"github.com/cryptopro-lab/cryptopro-client/pkg/errors"
)

const defaultTimeout = 30 * time.Second

// Client talks to the CryptoPro exchange API. It is safe for concurrent use
// once constructed; SetToken must not race with in-flight requests.
type Client struct {
	http *resty.Client
	log  *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(timeout)
	}
}

// WithLogger attaches a logger used for request debugging.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a Client for the API at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetHeader("Accept", "application/json")

	c := &Client{http: httpClient}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetToken installs the bearer token used on subsequent authenticated calls.
func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

// envelope is the wire format shared by every endpoint.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

// call executes one request and unwraps the response envelope.
func call[T any](ctx context.Context, c *Client, method, path string, query map[string]string, body any) (T, error) {
	var (
		out  envelope[T]
		zero T
	)

	req := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&out)

	if query != nil {
		req.SetQueryParams(query)
	}

	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return zero, errors.Wrapf(errors.ErrCodeAPITransport, err, "%s %s failed", method, path)
	}

	if c.log != nil {
		c.log.Debug(fmt.Sprintf("%s %s -> %d", method, path, resp.StatusCode()))
	}

	if !out.Success {
		if out.Message != "" {
			return zero, errors.New(errors.ErrCodeAPIRejected, out.Message)
		}

		return zero, errors.Newf(errors.ErrCodeAPITransport, "%s %s returned status %d", method, path, resp.StatusCode())
	}

	return out.Data, nil
}

// loginData is the payload returned by a successful login.
type loginData struct {
	Token string `json:"token"`
}

// Login authenticates the user and installs the returned bearer token on the
// client for subsequent calls.
func (c *Client) Login(ctx context.Context, req types.LoginRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	data, err := call[loginData](ctx, c, resty.MethodPost, "/api/auth/login", nil, req)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeLoginFailed, "login failed", err)
	}

	c.SetToken(data.Token)

	return data.Token, nil
}

// Register creates a new user. The caller is not logged in afterwards.
func (c *Client) Register(ctx context.Context, req types.RegistrationRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := call[struct{}](ctx, c, resty.MethodPost, "/api/auth/registration", nil, req); err != nil {
		return errors.Wrap(errors.ErrCodeRegistrationFailed, "registration failed", err)
	}

	return nil
}

// ListTradingAccounts returns every trading account of the current user.
func (c *Client) ListTradingAccounts(ctx context.Context) ([]types.TradingAccount, error) {
	accounts, err := call[[]types.TradingAccount](ctx, c, resty.MethodGet, "/api/balance/trading-accounts", nil, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAccountListFailed, "failed to list trading accounts", err)
	}

	return accounts, nil
}

// ListWallets returns the wallets scoped to one trading account.
func (c *Client) ListWallets(ctx context.Context, accountID string) ([]types.Wallet, error) {
	if accountID == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "account id is required")
	}

	query := map[string]string{"tradingAccountId": accountID}

	wallets, err := call[[]types.Wallet](ctx, c, resty.MethodGet, "/api/balance/wallets", query, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeWalletListFailed, err, "failed to list wallets for account %s", accountID)
	}

	return wallets, nil
}

// ListTickets returns one page of a trading account's ticket ledger.
// The query's PageIndex is zero-based.
func (c *Client) ListTickets(ctx context.Context, query types.TicketQuery) ([]types.Ticket, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	params := map[string]string{
		"tradingAccountId": query.TradingAccountID,
		"pageIndex":        fmt.Sprintf("%d", query.PageIndex),
		"pageSize":         fmt.Sprintf("%d", query.PageSize),
	}

	tickets, err := call[[]types.Ticket](ctx, c, resty.MethodGet, "/api/balance/tickets", params, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTicketListFailed, "failed to list tickets", err)
	}

	return tickets, nil
}

// CreateTicket submits a deposit or withdrawal ticket and returns the
// server-issued ticket id.
func (c *Client) CreateTicket(ctx context.Context, req types.CreateTicketRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	ticketID, err := call[string](ctx, c, resty.MethodPost, "/api/balance/tickets", nil, req)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeTicketCreateFailed, "failed to create ticket", err)
	}

	return ticketID, nil
}

// CreateTradingAccount opens a new trading account. The caller reloads the
// account list afterwards; the server is authoritative for numbering and
// status.
func (c *Client) CreateTradingAccount(ctx context.Context, req types.CreateTradingAccountRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := call[struct{}](ctx, c, resty.MethodPost, "/api/trading/accounts", nil, req); err != nil {
		return errors.Wrap(errors.ErrCodeAccountCreateFailed, "failed to create trading account", err)
	}

	return nil
}

// GetMarketData returns the full market overview.
func (c *Client) GetMarketData(ctx context.Context) ([]types.MarketData, error) {
	data, err := call[[]types.MarketData](ctx, c, resty.MethodGet, "/api/market", nil, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to fetch market data", err)
	}

	return data, nil
}

// GetHeroMarketData returns the reduced market snapshot used by the landing
// page hero section.
func (c *Client) GetHeroMarketData(ctx context.Context) ([]types.MarketData, error) {
	data, err := call[[]types.MarketData](ctx, c, resty.MethodGet, "/api/market/hero", nil, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to fetch hero market data", err)
	}

	return data, nil
}

// ListCountries returns the registration country reference data.
func (c *Client) ListCountries(ctx context.Context) ([]types.Country, error) {
	countries, err := call[[]types.Country](ctx, c, resty.MethodGet, "/api/countries", nil, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCountryListFailed, "failed to list countries", err)
	}

	return countries, nil
}

// ListLanguages returns the registration language reference data.
func (c *Client) ListLanguages(ctx context.Context) ([]types.Language, error) {
	languages, err := call[[]types.Language](ctx, c, resty.MethodGet, "/api/languages", nil, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLanguageListFailed, "failed to list languages", err)
	}

	return languages, nil
}
