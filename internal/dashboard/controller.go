package dashboard

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/cryptopro-lab/cryptopro-client/internal/types"
	"github.com/cryptopro-lab/cryptopro-client/pkg/errors"
)

const defaultPageSize = 10

// Controller owns all mutable state of the trading dashboard and is the sole
// owner of when remote calls happen and how their results are merged back.
type Controller struct {
	api      API
	notifier Notifier

	activeTab Tab

	accounts []types.TradingAccount
	wallets  []types.Wallet
	tickets  []types.Ticket

	selectedAccount string
	selectedWallet  string

	pagination PaginationState

	loading         bool
	ticketsLoading  bool
	creatingAccount bool
	creatingTicket  bool

	accountForm NewAccountForm
	ticketForm  NewTicketForm

	// Request-generation tokens. Each wallet or ticket fetch captures the
	// current generation; a response whose generation no longer matches is
	// stale and silently discarded.
	walletGen uint64
	ticketGen uint64
}

// NewController creates a Controller on the accounts tab with the default
// page size. Call Initialize to load data.
func NewController(api API, notifier Notifier) *Controller {
	return &Controller{
		api:      api,
		notifier: notifier,

		activeTab: TabAccounts,
		pagination: PaginationState{
			CurrentPage: 1,
			PageSize:    defaultPageSize,
		},
	}
}

// State returns a snapshot for rendering.
func (c *Controller) State() State {
	return State{
		ActiveTab:       c.activeTab,
		Accounts:        c.accounts,
		Wallets:         c.wallets,
		Tickets:         c.tickets,
		SelectedAccount: c.selectedAccount,
		SelectedWallet:  c.selectedWallet,
		Pagination:      c.pagination,
		Loading:         c.loading,
		TicketsLoading:  c.ticketsLoading,
		CreatingAccount: c.creatingAccount,
		CreatingTicket:  c.creatingTicket,
		AccountForm:     c.accountForm,
		TicketForm:      c.ticketForm,
	}
}

// Initialize starts the initial trading-account load.
func (c *Controller) Initialize() []Command {
	c.loading = true

	return []Command{c.loadAccountsCmd()}
}

func (c *Controller) loadAccountsCmd() Command {
	return func(ctx context.Context) Event {
		accounts, err := c.api.ListTradingAccounts(ctx)

		return accountsLoadedEvent{accounts: accounts, err: err}
	}
}

// SelectTab switches the active tab. Entering the history tab with a
// selected account reloads the first ticket page at the current page size.
func (c *Controller) SelectTab(tab Tab) []Command {
	switch tab {
	case TabAccounts, TabCreateAccount, TabCreate, TabHistory:
	default:
		return nil
	}

	if tab == c.activeTab {
		return nil
	}

	c.activeTab = tab

	if tab == TabHistory {
		return c.loadTickets(1, c.pagination.PageSize)
	}

	return nil
}

// SelectAccount changes the selected trading account and reloads its
// wallets. Selecting the already-selected account is a no-op. While the
// history tab is active the ticket ledger is reloaded as well, since tickets
// are scoped to the account.
func (c *Controller) SelectAccount(accountID string) []Command {
	if accountID == c.selectedAccount || !c.hasAccount(accountID) {
		return nil
	}

	c.selectedAccount = accountID

	cmds := []Command{c.loadWalletsCmd(accountID)}
	if c.activeTab == TabHistory {
		cmds = append(cmds, c.loadTickets(1, c.pagination.PageSize)...)
	}

	return cmds
}

func (c *Controller) hasAccount(accountID string) bool {
	for _, account := range c.accounts {
		if account.ID == accountID {
			return true
		}
	}

	return false
}

func (c *Controller) loadWalletsCmd(accountID string) Command {
	c.walletGen++
	gen := c.walletGen

	return func(ctx context.Context) Event {
		wallets, err := c.api.ListWallets(ctx, accountID)

		return walletsLoadedEvent{gen: gen, accountID: accountID, wallets: wallets, err: err}
	}
}

// SelectWallet changes the wallet used by the create-ticket form. Unknown
// wallet ids are ignored.
func (c *Controller) SelectWallet(walletID string) {
	for _, wallet := range c.wallets {
		if wallet.ID == walletID {
			c.selectedWallet = walletID

			return
		}
	}
}

// SetAccountDisplayName updates the create-account form input.
func (c *Controller) SetAccountDisplayName(name string) {
	c.accountForm.DisplayName = name
}

// SetTicketType updates the create-ticket form direction.
func (c *Controller) SetTicketType(ticketType types.TicketType) {
	if ticketType.Valid() {
		c.ticketForm.Type = ticketType
	}
}

// SetTicketAmount updates the raw create-ticket amount input.
func (c *Controller) SetTicketAmount(amount string) {
	c.ticketForm.Amount = amount
}

// loadTickets requests one ledger page. It only runs when an account is
// selected; page is one-based here and translated to the zero-based wire
// index when the request is issued.
func (c *Controller) loadTickets(page, pageSize int) []Command {
	if c.selectedAccount == "" {
		return nil
	}

	c.ticketsLoading = true
	c.ticketGen++

	gen := c.ticketGen
	accountID := c.selectedAccount

	return []Command{func(ctx context.Context) Event {
		tickets, err := c.api.ListTickets(ctx, types.TicketQuery{
			TradingAccountID: accountID,
			PageIndex:        page - 1,
			PageSize:         pageSize,
		})

		return ticketsLoadedEvent{gen: gen, page: page, pageSize: pageSize, tickets: tickets, err: err}
	}}
}

// ChangePage moves to another ledger page. Out-of-range pages are silently
// ignored.
func (c *Controller) ChangePage(page int) []Command {
	if page < 1 || page > c.pagination.TotalPages {
		return nil
	}

	c.pagination.CurrentPage = page

	return c.loadTickets(page, c.pagination.PageSize)
}

// ChangePageSize switches the ledger page size and resets to page 1. Sizes
// outside the enumerated set produce a validation notification.
func (c *Controller) ChangePageSize(size int) []Command {
	if !ValidPageSize(size) {
		c.notifier.Notify(Notification{
			Title:       "Validation Error",
			Description: "Page size must be 5, 10, 20, or 50",
			Variant:     VariantDestructive,
		})

		return nil
	}

	c.pagination.PageSize = size
	c.pagination.CurrentPage = 1

	return c.loadTickets(1, size)
}

// CreateAccount submits the create-account form. An empty display name is
// rejected locally without a network call. Duplicate submissions while one
// is in flight are ignored.
func (c *Controller) CreateAccount(displayName string) []Command {
	if c.creatingAccount {
		return nil
	}

	trimmed := strings.TrimSpace(displayName)
	if trimmed == "" {
		c.notifier.Notify(Notification{
			Title:       "Validation Error",
			Description: "Display name is required",
			Variant:     VariantDestructive,
		})

		return nil
	}

	c.creatingAccount = true

	return []Command{func(ctx context.Context) Event {
		err := c.api.CreateTradingAccount(ctx, types.CreateTradingAccountRequest{
			DisplayName: trimmed,
		})

		return accountCreatedEvent{err: err}
	}}
}

// CreateTicket submits a deposit or withdrawal. Validation (wallet selected,
// amount parses to a finite number greater than zero) happens locally and
// never reaches the network. Duplicate submissions while one is in flight
// are ignored.
func (c *Controller) CreateTicket(walletID string, ticketType types.TicketType, rawAmount string) []Command {
	if c.creatingTicket {
		return nil
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(rawAmount), 64)
	if walletID == "" || err != nil || math.IsInf(amount, 0) || math.IsNaN(amount) || amount <= 0 {
		c.notifier.Notify(Notification{
			Title:       "Validation Error",
			Description: "Select a wallet and enter an amount greater than zero",
			Variant:     VariantDestructive,
		})

		return nil
	}

	c.creatingTicket = true

	return []Command{func(ctx context.Context) Event {
		ticketID, err := c.api.CreateTicket(ctx, types.CreateTicketRequest{
			WalletID: walletID,
			Type:     ticketType,
			Amount:   amount,
		})

		return ticketCreatedEvent{ticketID: ticketID, err: err}
	}}
}

// Apply merges a completed Command's Event into the controller state and
// returns any follow-up Commands. Stale events are discarded silently.
func (c *Controller) Apply(event Event) []Command {
	switch ev := event.(type) {
	case accountsLoadedEvent:
		return c.applyAccountsLoaded(ev)
	case walletsLoadedEvent:
		c.applyWalletsLoaded(ev)
	case ticketsLoadedEvent:
		c.applyTicketsLoaded(ev)
	case accountCreatedEvent:
		return c.applyAccountCreated(ev)
	case ticketCreatedEvent:
		return c.applyTicketCreated(ev)
	}

	return nil
}

func (c *Controller) applyAccountsLoaded(ev accountsLoadedEvent) []Command {
	c.loading = false

	if ev.err != nil {
		c.notifyError(ev.err, "Failed to load trading accounts")

		return nil
	}

	c.accounts = ev.accounts

	if len(c.accounts) > 0 {
		return c.SelectAccount(c.accounts[0].ID)
	}

	return nil
}

func (c *Controller) applyWalletsLoaded(ev walletsLoadedEvent) {
	if ev.gen != c.walletGen {
		// A newer account selection superseded this fetch.
		return
	}

	if ev.err != nil {
		// Keep the previous wallets rather than blanking out the screen
		// over a transient failure.
		c.notifyError(ev.err, "Failed to load wallets")

		return
	}

	c.wallets = ev.wallets

	c.selectedWallet = ""
	if len(c.wallets) > 0 {
		c.selectedWallet = c.wallets[0].ID
	}
}

func (c *Controller) applyTicketsLoaded(ev ticketsLoadedEvent) {
	if ev.gen != c.ticketGen {
		// A newer page request superseded this fetch.
		return
	}

	c.ticketsLoading = false

	if ev.err != nil {
		c.notifyError(ev.err, "Failed to load tickets")

		return
	}

	c.tickets = ev.tickets
	c.pagination = paginate(ev.page, ev.pageSize, len(ev.tickets))
}

func (c *Controller) applyAccountCreated(ev accountCreatedEvent) []Command {
	c.creatingAccount = false

	if ev.err != nil {
		c.notifier.Notify(Notification{
			Title:       "Error",
			Description: "Failed to create trading account",
			Variant:     VariantDestructive,
		})

		return nil
	}

	c.notifier.Notify(Notification{
		Title:       "Success",
		Description: "Trading account created",
		Variant:     VariantDefault,
	})

	c.accountForm.DisplayName = ""
	c.activeTab = TabAccounts

	// The server is authoritative for account numbers and status, so reload
	// the whole list instead of appending locally.
	c.loading = true

	return []Command{c.loadAccountsCmd()}
}

func (c *Controller) applyTicketCreated(ev ticketCreatedEvent) []Command {
	c.creatingTicket = false

	if ev.err != nil {
		c.notifyError(ev.err, "Failed to create ticket")

		return nil
	}

	c.notifier.Notify(Notification{
		Title:       "Success",
		Description: "Ticket created: " + ev.ticketID,
		Variant:     VariantDefault,
	})

	c.ticketForm.Amount = ""

	// Make the fresh ticket visible without forcing a tab switch, but only
	// when the ledger is actually on screen.
	if c.activeTab == TabHistory {
		return c.loadTickets(1, c.pagination.PageSize)
	}

	return nil
}

// notifyError emits exactly one destructive notification for a failed
// action, preferring the server-supplied message.
func (c *Controller) notifyError(err error, fallback string) {
	description := errors.ServerMessage(err)
	if description == "" {
		description = fallback
	}

	c.notifier.Notify(Notification{
		Title:       "Error",
		Description: description,
		Variant:     VariantDestructive,
	})
}

// paginate recomputes the pagination state after a successful ticket load.
// A full page is assumed to hide at least one more item; a short page fixes
// the total exactly. CurrentPage is clamped so it never exceeds the
// recomputed page count (an overcounting estimate can send the user to a
// page that turns out to be empty).
func paginate(page, pageSize, returned int) PaginationState {
	totalItems := (page-1)*pageSize + returned
	if returned == pageSize {
		totalItems = page*pageSize + 1
	}

	totalPages := (totalItems + pageSize - 1) / pageSize

	currentPage := page
	if maxPage := max(totalPages, 1); currentPage > maxPage {
		currentPage = maxPage
	}

	return PaginationState{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
	}
}
