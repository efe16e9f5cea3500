// Package dashboard implements the trading dashboard controller: the single
// source of truth for the trading screen's state, mediating every read and
// write against the exchange API.
//
// The controller is deliberately decoupled from rendering. Intent methods
// mutate state synchronously and return Commands, asynchronous units of work
// that resolve to Events; the event loop executes Commands concurrently and
// feeds each resulting Event back through Apply, which may in turn produce
// follow-up Commands. All Controller methods must be called from a single
// goroutine (bubbletea's update loop provides exactly this serialization),
// so the controller needs no locks, only the request-generation tokens that
// guard against stale responses.
package dashboard

import (
	"context"

	"github.com/cryptopro-lab/cryptopro-client/internal/types"
)

// Tab identifies one of the four dashboard tabs.
type Tab string

const (
	TabAccounts      Tab = "accounts"
	TabCreateAccount Tab = "create-account"
	TabCreate        Tab = "create"
	TabHistory       Tab = "history"
)

// PageSizes are the selectable ticket-ledger page sizes.
var PageSizes = []int{5, 10, 20, 50}

// ValidPageSize reports whether size is one of the enumerated page sizes.
func ValidPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}

	return false
}

// PaginationState tracks the one-based ticket-ledger pagination.
//
// The backing API does not return a true total count, so TotalItems is an
// estimate: a full page is assumed to have at least one more item behind it,
// while a short page fixes the count exactly. The estimate is recomputed on
// every ticket load and may overcount until the final page is reached; that
// is an approximation inherited from the API contract, not a bug.
type PaginationState struct {
	CurrentPage int
	PageSize    int
	TotalItems  int
	TotalPages  int
}

// NotificationVariant selects the visual treatment of a notification.
type NotificationVariant string

const (
	VariantDefault     NotificationVariant = "default"
	VariantDestructive NotificationVariant = "destructive"
)

// Notification is a fire-and-forget user-facing message (toast equivalent).
type Notification struct {
	Title       string
	Description string
	Variant     NotificationVariant
}

// Notifier receives notifications. Implementations must not block.
type Notifier interface {
	Notify(notification Notification)
}

// API is the slice of the exchange client the dashboard controller depends on.
type API interface {
	ListTradingAccounts(ctx context.Context) ([]types.TradingAccount, error)
	ListWallets(ctx context.Context, accountID string) ([]types.Wallet, error)
	ListTickets(ctx context.Context, query types.TicketQuery) ([]types.Ticket, error)
	CreateTicket(ctx context.Context, req types.CreateTicketRequest) (string, error)
	CreateTradingAccount(ctx context.Context, req types.CreateTradingAccountRequest) error
}

// Command is an asynchronous unit of work produced by an intent method.
// The event loop runs it off the update goroutine and feeds the resulting
// Event back into Controller.Apply.
type Command func(ctx context.Context) Event

// Event is the result of a completed Command.
type Event interface {
	isEvent()
}

// NewAccountForm holds the create-account form input.
type NewAccountForm struct {
	DisplayName string
}

// NewTicketForm holds the create-ticket form input. Amount is the raw user
// input, parsed on submit.
type NewTicketForm struct {
	Type   types.TicketType
	Amount string
}

// State is a snapshot of the controller's state for rendering. The view
// layer is a pure function of State.
type State struct {
	ActiveTab Tab

	Accounts []types.TradingAccount
	Wallets  []types.Wallet
	Tickets  []types.Ticket

	SelectedAccount string
	SelectedWallet  string

	Pagination PaginationState

	Loading         bool
	TicketsLoading  bool
	CreatingAccount bool
	CreatingTicket  bool

	AccountForm NewAccountForm
	TicketForm  NewTicketForm
}
