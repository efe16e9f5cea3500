package types

// TicketType is the direction of a ticket: money moving into or out of a wallet.
// The wire format is a numeric code owned by the backend.
type TicketType int

const (
	TicketTypeDeposit    TicketType = 0
	TicketTypeWithdrawal TicketType = 1
)

// Valid reports whether the code is one of the known ticket types.
func (t TicketType) Valid() bool {
	return t == TicketTypeDeposit || t == TicketTypeWithdrawal
}

// Label returns the human-readable name for the ticket type.
// Unknown codes map to "Unknown" rather than rendering nothing.
func (t TicketType) Label() string {
	switch t {
	case TicketTypeDeposit:
		return "Deposit"
	case TicketTypeWithdrawal:
		return "Withdrawal"
	default:
		return "Unknown"
	}
}

// TicketStatus is the backend-owned lifecycle status of a ticket.
// The wire format is a numeric code 0-5.
type TicketStatus int

const (
	TicketStatusPending    TicketStatus = 0
	TicketStatusProcessing TicketStatus = 1
	TicketStatusCompleted  TicketStatus = 2
	TicketStatusCancelled  TicketStatus = 3
	TicketStatusFailed     TicketStatus = 4
	TicketStatusRejected   TicketStatus = 5
)

// Valid reports whether the code is one of the known ticket statuses.
func (s TicketStatus) Valid() bool {
	return s >= TicketStatusPending && s <= TicketStatusRejected
}

// Label returns the human-readable name for the ticket status.
// Unknown codes map to "Unknown" rather than rendering nothing.
func (s TicketStatus) Label() string {
	switch s {
	case TicketStatusPending:
		return "Pending"
	case TicketStatusProcessing:
		return "Processing"
	case TicketStatusCompleted:
		return "Completed"
	case TicketStatusCancelled:
		return "Cancelled"
	case TicketStatusFailed:
		return "Failed"
	case TicketStatusRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the status is a final state the backend will not
// advance further (completed, cancelled, failed, or rejected).
func (s TicketStatus) Terminal() bool {
	switch s {
	case TicketStatusCompleted, TicketStatusCancelled, TicketStatusFailed, TicketStatusRejected:
		return true
	default:
		return false
	}
}

// Ticket is a deposit or withdrawal request record owned by the backend.
// Tickets are immutable from the client's point of view; creating a ticket
// produces a new server-side record, never a local mutation.
type Ticket struct {
	ID           string       `json:"id" yaml:"id"`
	TicketType   TicketType   `json:"ticketType" yaml:"ticket_type"`
	Amount       float64      `json:"amount" yaml:"amount"`
	TicketStatus TicketStatus `json:"ticketStatus" yaml:"ticket_status"`
}
