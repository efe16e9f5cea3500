package mocks

import (
	"fmt"
	"math/rand"

	"github.com/cryptopro-lab/cryptopro-client/internal/types"
)

// DataGenerator generates realistic exchange fixtures for testing and
// benchmarking.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

var walletCurrencies = []struct {
	currency string
	usdRate  float64
}{
	{"BTC", 64000},
	{"ETH", 3400},
	{"USDT", 1},
	{"SOL", 150},
	{"XRP", 0.52},
}

// GenerateWallets returns count wallets with consistent balances: available
// plus locked always equals total, and the USD equivalent follows a fixed
// per-currency rate. Currencies cycle through a small fixed set.
func (g *DataGenerator) GenerateWallets(count int) []types.Wallet {
	wallets := make([]types.Wallet, count)
	for i := range wallets {
		entry := walletCurrencies[i%len(walletCurrencies)]

		available := g.rng.Float64() * 10
		locked := g.rng.Float64() * 2
		total := available + locked

		wallets[i] = types.Wallet{
			ID:               fmt.Sprintf("wallet-%d", i+1),
			Currency:         entry.currency,
			AvailableBalance: available,
			LockedBalance:    locked,
			TotalBalance:     total,
			USDEquivalent:    total * entry.usdRate,
		}
	}

	return wallets
}

// GenerateTickets returns count tickets cycling through every type and
// status combination, with positive amounts.
func (g *DataGenerator) GenerateTickets(count int) []types.Ticket {
	statuses := []types.TicketStatus{
		types.TicketStatusPending,
		types.TicketStatusProcessing,
		types.TicketStatusCompleted,
		types.TicketStatusCancelled,
		types.TicketStatusFailed,
		types.TicketStatusRejected,
	}

	tickets := make([]types.Ticket, count)
	for i := range tickets {
		tickets[i] = types.Ticket{
			ID:           fmt.Sprintf("ticket-%d", i+1),
			TicketType:   types.TicketType(i % 2),
			Amount:       1 + g.rng.Float64()*999,
			TicketStatus: statuses[i%len(statuses)],
		}
	}

	return tickets
}

// GenerateAccounts returns count active trading accounts with sequential
// account numbers.
func (g *DataGenerator) GenerateAccounts(count int) []types.TradingAccount {
	accounts := make([]types.TradingAccount, count)
	for i := range accounts {
		accounts[i] = types.TradingAccount{
			ID:            fmt.Sprintf("account-%d", i+1),
			DisplayName:   fmt.Sprintf("Trading Account %d", i+1),
			AccountNumber: fmt.Sprintf("TA-%06d", i+1),
			Status:        types.AccountStatusActive,
		}
	}

	return accounts
}

// GenerateMarketData returns a snapshot for the fixed currency set, with
// prices jittered around each currency's base rate and changes in the
// -5%..+5% range.
func (g *DataGenerator) GenerateMarketData() []types.MarketData {
	data := make([]types.MarketData, len(walletCurrencies))
	for i, entry := range walletCurrencies {
		jitter := 1 + (g.rng.Float64()-0.5)*0.02

		data[i] = types.MarketData{
			Symbol: entry.currency,
			Name:   entry.currency,
			Price:  entry.usdRate * jitter,
			Change: (g.rng.Float64() - 0.5) * 10,
		}
	}

	return data
}
