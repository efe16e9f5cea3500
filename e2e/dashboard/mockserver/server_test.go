package mockserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

type MockServerTestSuite struct {
	suite.Suite
	server *MockExchangeServer
	token  string
}

func TestMockServerSuite(t *testing.T) {
	suite.Run(t, new(MockServerTestSuite))
}

func (suite *MockServerTestSuite) SetupTest() {
	suite.server = NewMockExchangeServer(DefaultConfig())
	err := suite.server.Start(":0")
	suite.Require().NoError(err)

	suite.token = suite.login("trader@example.com", "correct-horse")
}

func (suite *MockServerTestSuite) TearDownTest() {
	if suite.server != nil {
		suite.server.Stop()
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (suite *MockServerTestSuite) do(method, path string, body any, token string) (*http.Response, envelope) {
	var reqBody bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&reqBody).Encode(body))
	}

	req, err := http.NewRequest(method, suite.server.BaseURL()+path, &reqBody)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	var env envelope
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&env))

	return resp, env
}

func (suite *MockServerTestSuite) login(email, password string) string {
	_, env := suite.do("POST", "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	suite.Require().True(env.Success)

	var data struct {
		Token string `json:"token"`
	}
	suite.Require().NoError(json.Unmarshal(env.Data, &data))
	suite.Require().NotEmpty(data.Token)

	return data.Token
}

// Test Server Lifecycle

func (suite *MockServerTestSuite) TestServerStartAndStop() {
	suite.Contains(suite.server.BaseURL(), "http://")
}

// Test Authentication

func (suite *MockServerTestSuite) TestLoginRejectsBadPassword() {
	resp, env := suite.do("POST", "/api/auth/login", map[string]string{
		"email":    "trader@example.com",
		"password": "wrong",
	}, "")

	suite.Equal(http.StatusUnauthorized, resp.StatusCode)
	suite.False(env.Success)
	suite.Equal("Invalid email or password", env.Message)
}

func (suite *MockServerTestSuite) TestAuthRequiredForBalanceEndpoints() {
	resp, env := suite.do("GET", "/api/balance/trading-accounts", nil, "")

	suite.Equal(http.StatusUnauthorized, resp.StatusCode)
	suite.False(env.Success)
}

func (suite *MockServerTestSuite) TestRegistrationThenLogin() {
	_, env := suite.do("POST", "/api/auth/registration", map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
		"username":  "ada",
		"password":  "enigma-machine",
		"country":   "US",
		"language":  "en",
	}, "")
	suite.True(env.Success)

	suite.NotEmpty(suite.login("ada@example.com", "enigma-machine"))
}

func (suite *MockServerTestSuite) TestRegistrationDuplicateEmail() {
	resp, env := suite.do("POST", "/api/auth/registration", map[string]string{
		"email":    "trader@example.com",
		"username": "dupe",
		"password": "irrelevant",
	}, "")

	suite.Equal(http.StatusConflict, resp.StatusCode)
	suite.Equal("Email already registered", env.Message)
}

// Test Balance Endpoints

func (suite *MockServerTestSuite) TestListTradingAccounts() {
	_, env := suite.do("GET", "/api/balance/trading-accounts", nil, suite.token)
	suite.True(env.Success)

	var accounts []map[string]any
	suite.Require().NoError(json.Unmarshal(env.Data, &accounts))
	suite.Len(accounts, 2)
	suite.Equal("acct-1", accounts[0]["id"])
	suite.Equal("TA-000001", accounts[0]["accountNumber"])
}

func (suite *MockServerTestSuite) TestListWallets() {
	_, env := suite.do("GET", "/api/balance/wallets?tradingAccountId=acct-1", nil, suite.token)
	suite.True(env.Success)

	var wallets []map[string]any
	suite.Require().NoError(json.Unmarshal(env.Data, &wallets))
	suite.Len(wallets, 3)

	for _, w := range wallets {
		available := w["availableBalance"].(float64)
		locked := w["lockedBalance"].(float64)
		suite.Equal(available+locked, w["totalBalance"].(float64))
	}
}

func (suite *MockServerTestSuite) TestListWalletsUnknownAccount() {
	resp, env := suite.do("GET", "/api/balance/wallets?tradingAccountId=nope", nil, suite.token)
	suite.Equal(http.StatusNotFound, resp.StatusCode)
	suite.False(env.Success)
}

func (suite *MockServerTestSuite) TestTicketPagination() {
	var page []map[string]any

	_, env := suite.do("GET", "/api/balance/tickets?tradingAccountId=acct-1&pageIndex=0&pageSize=10", nil, suite.token)
	suite.Require().NoError(json.Unmarshal(env.Data, &page))
	suite.Len(page, 10)

	_, env = suite.do("GET", "/api/balance/tickets?tradingAccountId=acct-1&pageIndex=1&pageSize=10", nil, suite.token)
	suite.Require().NoError(json.Unmarshal(env.Data, &page))
	suite.Len(page, 3)

	_, env = suite.do("GET", "/api/balance/tickets?tradingAccountId=acct-1&pageIndex=2&pageSize=10", nil, suite.token)
	suite.Require().NoError(json.Unmarshal(env.Data, &page))
	suite.Empty(page)
}

func (suite *MockServerTestSuite) TestCreateDepositTicket() {
	before := suite.server.WalletBalance("acct-1", "acct-1-btc")

	_, env := suite.do("POST", "/api/balance/tickets", map[string]any{
		"walletId": "acct-1-btc",
		"type":     0,
		"amount":   0.5,
	}, suite.token)
	suite.True(env.Success)

	var ticketID string
	suite.Require().NoError(json.Unmarshal(env.Data, &ticketID))
	suite.NotEmpty(ticketID)

	suite.Equal(before+0.5, suite.server.WalletBalance("acct-1", "acct-1-btc"))
	suite.Equal(14, suite.server.TicketCount("acct-1"))
}

func (suite *MockServerTestSuite) TestWithdrawalRejectedOnInsufficientBalance() {
	resp, env := suite.do("POST", "/api/balance/tickets", map[string]any{
		"walletId": "acct-1-btc",
		"type":     1,
		"amount":   1000.0,
	}, suite.token)

	suite.Equal(http.StatusBadRequest, resp.StatusCode)
	suite.Equal("Insufficient balance", env.Message)
	suite.Equal(13, suite.server.TicketCount("acct-1"))
}

func (suite *MockServerTestSuite) TestCreateTradingAccount() {
	_, env := suite.do("POST", "/api/trading/accounts", map[string]string{
		"displayName": "  Scalping  ",
	}, suite.token)
	suite.True(env.Success)

	_, env = suite.do("GET", "/api/balance/trading-accounts", nil, suite.token)

	var accounts []map[string]any
	suite.Require().NoError(json.Unmarshal(env.Data, &accounts))
	suite.Require().Len(accounts, 3)
	suite.Equal("Scalping", accounts[2]["displayName"])
	suite.Equal("TA-000003", accounts[2]["accountNumber"])
}

func (suite *MockServerTestSuite) TestCreateTradingAccountRequiresName() {
	resp, env := suite.do("POST", "/api/trading/accounts", map[string]string{
		"displayName": "   ",
	}, suite.token)

	suite.Equal(http.StatusBadRequest, resp.StatusCode)
	suite.Equal("Display name is required", env.Message)
}

// Test Public Endpoints

func (suite *MockServerTestSuite) TestMarketEndpoints() {
	_, env := suite.do("GET", "/api/market", nil, "")
	suite.True(env.Success)

	var market []map[string]any
	suite.Require().NoError(json.Unmarshal(env.Data, &market))
	suite.Len(market, 3)

	_, env = suite.do("GET", "/api/market/hero", nil, "")
	suite.True(env.Success)
}

func (suite *MockServerTestSuite) TestReferenceData() {
	_, env := suite.do("GET", "/api/countries", nil, "")
	suite.True(env.Success)

	var countries []map[string]any
	suite.Require().NoError(json.Unmarshal(env.Data, &countries))
	suite.NotEmpty(countries)

	_, env = suite.do("GET", "/api/languages", nil, "")
	suite.True(env.Success)
}
