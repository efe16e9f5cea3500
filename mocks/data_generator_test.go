package mocks

import (
	"testing"
)

func TestDataGenerator_GenerateWallets(t *testing.T) {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility

	wallets := gen.GenerateWallets(10)

	if len(wallets) != 10 {
		t.Errorf("expected 10 wallets, got %d", len(wallets))
	}

	for i, w := range wallets {
		if w.ID == "" || w.Currency == "" {
			t.Errorf("wallet %d missing id or currency", i)
		}
		if got := w.AvailableBalance + w.LockedBalance; got != w.TotalBalance {
			t.Errorf("wallet %d balances inconsistent: %f + %f != %f", i, w.AvailableBalance, w.LockedBalance, w.TotalBalance)
		}
		if w.USDEquivalent <= 0 {
			t.Errorf("wallet %d has non-positive USD equivalent", i)
		}
	}
}

func TestDataGenerator_GenerateWalletsDeterministic(t *testing.T) {
	first := NewDataGenerator(7).GenerateWallets(5)
	second := NewDataGenerator(7).GenerateWallets(5)

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("wallet %d differs between runs with the same seed", i)
		}
	}
}

func TestDataGenerator_GenerateTickets(t *testing.T) {
	gen := NewDataGenerator(42)

	tickets := gen.GenerateTickets(12)

	if len(tickets) != 12 {
		t.Errorf("expected 12 tickets, got %d", len(tickets))
	}

	for i, ticket := range tickets {
		if !ticket.TicketType.Valid() {
			t.Errorf("ticket %d has invalid type %d", i, ticket.TicketType)
		}
		if !ticket.TicketStatus.Valid() {
			t.Errorf("ticket %d has invalid status %d", i, ticket.TicketStatus)
		}
		if ticket.Amount <= 0 {
			t.Errorf("ticket %d has non-positive amount %f", i, ticket.Amount)
		}
	}
}

func TestDataGenerator_GenerateAccounts(t *testing.T) {
	accounts := NewDataGenerator(42).GenerateAccounts(3)

	if len(accounts) != 3 {
		t.Errorf("expected 3 accounts, got %d", len(accounts))
	}
	if accounts[2].AccountNumber != "TA-000003" {
		t.Errorf("unexpected account number %s", accounts[2].AccountNumber)
	}
}

func TestDataGenerator_GenerateMarketData(t *testing.T) {
	data := NewDataGenerator(42).GenerateMarketData()

	if len(data) == 0 {
		t.Fatal("expected market data")
	}

	for i, d := range data {
		if d.Price <= 0 {
			t.Errorf("entry %d has non-positive price", i)
		}
		if d.Change < -5 || d.Change > 5 {
			t.Errorf("entry %d change %f outside -5..5", i, d.Change)
		}
	}
}
