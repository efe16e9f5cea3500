package types

import (
	"github.com/go-playground/validator/v10"

	"github.com/cryptopro-lab/cryptopro-client/pkg/errors"
)

// CreateTradingAccountRequest is the payload for opening a new trading account.
type CreateTradingAccountRequest struct {
	DisplayName string `json:"displayName" validate:"required"`
}

// Validate validates the CreateTradingAccountRequest struct.
func (r *CreateTradingAccountRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return errors.Wrap(errors.ErrCodeMissingDisplayName, "invalid create trading account request", err)
	}

	return nil
}

// CreateTicketRequest is the payload for submitting a deposit or withdrawal
// ticket against a wallet.
type CreateTicketRequest struct {
	WalletID string     `json:"walletId" validate:"required"`
	Type     TicketType `json:"type" validate:"min=0,max=1"`
	Amount   float64    `json:"amount" validate:"required,gt=0"`
}

// Validate validates the CreateTicketRequest struct.
func (r *CreateTicketRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid create ticket request", err)
	}

	return nil
}

// TicketQuery selects one page of a trading account's ticket ledger.
// PageIndex is zero-based on the wire; UI pagination is one-based.
type TicketQuery struct {
	TradingAccountID string `json:"tradingAccountId" validate:"required"`
	PageIndex        int    `json:"pageIndex" validate:"min=0"`
	PageSize         int    `json:"pageSize" validate:"required,gt=0"`
}

// Validate validates the TicketQuery struct.
func (q *TicketQuery) Validate() error {
	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid ticket query", err)
	}

	return nil
}

// LoginRequest is the payload for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate validates the LoginRequest struct.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return errors.Wrap(errors.ErrCodeLoginFailed, "invalid login request", err)
	}

	return nil
}

// RegistrationRequest is the payload for creating a new user.
// DateOfBirth uses the YYYY-MM-DD wire format.
type RegistrationRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Username    string `json:"username" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phoneNumber"`
	Telephone   string `json:"telephone"`
	Country     string `json:"country" validate:"required,len=2"`
	Language    string `json:"language" validate:"required"`
	DateOfBirth string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	// Source records where the registration originated, e.g. a site origin URL.
	Source string `json:"source"`
}

// Validate validates the RegistrationRequest struct.
func (r *RegistrationRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return errors.Wrap(errors.ErrCodeRegistrationFailed, "invalid registration request", err)
	}

	return nil
}
