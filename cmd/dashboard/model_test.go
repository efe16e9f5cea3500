package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"

	"github.com/cryptopro-lab/cryptopro-client/internal/types"
	"github.com/cryptopro-lab/cryptopro-client/pkg/errors"
)

// fakeSession is an in-memory Session for TUI tests.
type fakeSession struct {
	password string
	accounts []types.TradingAccount
	wallets  map[string][]types.Wallet
	tickets  []types.Ticket
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		password: "secret-password",
		accounts: []types.TradingAccount{
			{ID: "a1", DisplayName: "Main", AccountNumber: "TA-000001", Status: types.AccountStatusActive},
			{ID: "a2", DisplayName: "Savings", AccountNumber: "TA-000002", Status: types.AccountStatusActive},
		},
		wallets: map[string][]types.Wallet{
			"a1": {{ID: "w1", Currency: "BTC", AvailableBalance: 1.5, TotalBalance: 1.5, USDEquivalent: 96000}},
			"a2": {{ID: "w2", Currency: "ETH", AvailableBalance: 4, TotalBalance: 4, USDEquivalent: 13600}},
		},
		tickets: []types.Ticket{
			{ID: "t1", TicketType: types.TicketTypeDeposit, Amount: 100, TicketStatus: types.TicketStatusCompleted},
			{ID: "t2", TicketType: types.TicketTypeWithdrawal, Amount: 25, TicketStatus: types.TicketStatusPending},
		},
	}
}

func (f *fakeSession) Login(ctx context.Context, req types.LoginRequest) (string, error) {
	if req.Password != f.password {
		return "", errors.New(errors.ErrCodeAPIRejected, "Invalid email or password")
	}
	return "token", nil
}

func (f *fakeSession) ListTradingAccounts(ctx context.Context) ([]types.TradingAccount, error) {
	return f.accounts, nil
}

func (f *fakeSession) ListWallets(ctx context.Context, accountID string) ([]types.Wallet, error) {
	return f.wallets[accountID], nil
}

func (f *fakeSession) ListTickets(ctx context.Context, query types.TicketQuery) ([]types.Ticket, error) {
	start := query.PageIndex * query.PageSize
	if start >= len(f.tickets) {
		return nil, nil
	}
	end := start + query.PageSize
	if end > len(f.tickets) {
		end = len(f.tickets)
	}
	return f.tickets[start:end], nil
}

func (f *fakeSession) CreateTicket(ctx context.Context, req types.CreateTicketRequest) (string, error) {
	return "new-ticket", nil
}

func (f *fakeSession) CreateTradingAccount(ctx context.Context, req types.CreateTradingAccountRequest) error {
	return nil
}

func TestNewModel(t *testing.T) {
	m := NewModel(newFakeSession())

	assert.Equal(t, StateLogin, m.state)
	assert.NotNil(t, m.controller)
	assert.Equal(t, 0, m.loginFocus)
}

func TestNextPageSize(t *testing.T) {
	assert.Equal(t, 10, nextPageSize(5))
	assert.Equal(t, 20, nextPageSize(10))
	assert.Equal(t, 5, nextPageSize(50))
	assert.Equal(t, 5, nextPageSize(7))
}

func TestAdjacentWallet(t *testing.T) {
	wallets := []types.Wallet{{ID: "w1"}, {ID: "w2"}, {ID: "w3"}}

	assert.Equal(t, "w2", adjacentWallet(wallets, "w1", 1))
	assert.Equal(t, "w1", adjacentWallet(wallets, "w3", 1))
	assert.Equal(t, "w3", adjacentWallet(wallets, "w1", -1))
	assert.Equal(t, "", adjacentWallet(nil, "w1", 1))
}

func loginToDashboard(t *testing.T, tm *teatest.TestModel) {
	t.Helper()

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Sign In"))
	}, teatest.WithDuration(2*time.Second))

	tm.Type("trader@example.com")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Type("secret-password")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("CryptoPro Dashboard"))
	}, teatest.WithDuration(2*time.Second))
}

func TestLoginToDashboard(t *testing.T) {
	m := NewModel(newFakeSession())
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 40))

	loginToDashboard(t, tm)

	// First account auto-selected, wallets visible
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("TA-000001")) && bytes.Contains(bts, []byte("BTC"))
	}, teatest.WithDuration(2*time.Second))

	err := tm.Quit()
	assert.NoError(t, err)
}

func TestLoginFailureShowsServerMessage(t *testing.T) {
	m := NewModel(newFakeSession())
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 40))

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Sign In"))
	}, teatest.WithDuration(2*time.Second))

	tm.Type("trader@example.com")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Type("wrong")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Invalid email or password"))
	}, teatest.WithDuration(2*time.Second))

	err := tm.Quit()
	assert.NoError(t, err)
}

func TestTabToCreateAccount(t *testing.T) {
	m := NewModel(newFakeSession())
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 40))

	loginToDashboard(t, tm)

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Display name:"))
	}, teatest.WithDuration(2*time.Second))

	err := tm.Quit()
	assert.NoError(t, err)
}

func TestHistoryTabShowsLedger(t *testing.T) {
	m := NewModel(newFakeSession())
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 40))

	loginToDashboard(t, tm)

	// accounts -> new account -> new ticket -> history
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Page 1 of 1")) &&
			bytes.Contains(bts, []byte("Deposit")) &&
			bytes.Contains(bts, []byte("Withdrawal"))
	}, teatest.WithDuration(2*time.Second))

	err := tm.Quit()
	assert.NoError(t, err)
}
