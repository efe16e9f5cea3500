package dashboard

import "github.com/cryptopro-lab/cryptopro-client/internal/types"

// accountsLoadedEvent carries the result of a trading-account list fetch.
type accountsLoadedEvent struct {
	accounts []types.TradingAccount
	err      error
}

// walletsLoadedEvent carries the result of a wallet fetch. gen is the
// wallet-request generation captured when the fetch was issued; a mismatch
// at apply time marks the response as stale.
type walletsLoadedEvent struct {
	gen       uint64
	accountID string
	wallets   []types.Wallet
	err       error
}

// ticketsLoadedEvent carries one page of the ticket ledger. gen guards
// against out-of-order page responses; page and pageSize echo the request
// so pagination can be recomputed.
type ticketsLoadedEvent struct {
	gen      uint64
	page     int
	pageSize int
	tickets  []types.Ticket
	err      error
}

// accountCreatedEvent carries the result of a create-account submission.
type accountCreatedEvent struct {
	err error
}

// ticketCreatedEvent carries the result of a create-ticket submission.
type ticketCreatedEvent struct {
	ticketID string
	err      error
}

func (accountsLoadedEvent) isEvent() {}
func (walletsLoadedEvent) isEvent()  {}
func (ticketsLoadedEvent) isEvent()  {}
func (accountCreatedEvent) isEvent() {}
func (ticketCreatedEvent) isEvent()  {}
