package types

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/cryptopro-lab/cryptopro-client/pkg/errors"
)

type RequestTestSuite struct {
	suite.Suite
}

func TestRequestSuite(t *testing.T) {
	suite.Run(t, new(RequestTestSuite))
}

func (suite *RequestTestSuite) TestCreateTradingAccountRequest() {
	valid := CreateTradingAccountRequest{DisplayName: "Main Portfolio"}
	suite.NoError(valid.Validate())

	invalid := CreateTradingAccountRequest{}
	err := invalid.Validate()
	suite.Error(err)
	suite.Equal(errors.ErrCodeMissingDisplayName, errors.GetCode(err))
}

func (suite *RequestTestSuite) TestCreateTicketRequest() {
	tests := []struct {
		name        string
		request     CreateTicketRequest
		expectError bool
	}{
		{
			name:        "valid deposit",
			request:     CreateTicketRequest{WalletID: "w1", Type: TicketTypeDeposit, Amount: 12.5},
			expectError: false,
		},
		{
			name:        "valid withdrawal",
			request:     CreateTicketRequest{WalletID: "w1", Type: TicketTypeWithdrawal, Amount: 100},
			expectError: false,
		},
		{
			name:        "missing wallet",
			request:     CreateTicketRequest{Type: TicketTypeDeposit, Amount: 5},
			expectError: true,
		},
		{
			name:        "zero amount",
			request:     CreateTicketRequest{WalletID: "w1", Type: TicketTypeDeposit, Amount: 0},
			expectError: true,
		},
		{
			name:        "negative amount",
			request:     CreateTicketRequest{WalletID: "w1", Type: TicketTypeDeposit, Amount: -3},
			expectError: true,
		},
		{
			name:        "unknown type",
			request:     CreateTicketRequest{WalletID: "w1", Type: TicketType(2), Amount: 5},
			expectError: true,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := tt.request.Validate()
			if tt.expectError {
				suite.Error(err)
			} else {
				suite.NoError(err)
			}
		})
	}
}

func (suite *RequestTestSuite) TestTicketQuery() {
	valid := TicketQuery{TradingAccountID: "a1", PageIndex: 0, PageSize: 10}
	suite.NoError(valid.Validate())

	missingAccount := TicketQuery{PageIndex: 0, PageSize: 10}
	suite.Error(missingAccount.Validate())

	negativePage := TicketQuery{TradingAccountID: "a1", PageIndex: -1, PageSize: 10}
	suite.Error(negativePage.Validate())

	zeroSize := TicketQuery{TradingAccountID: "a1", PageIndex: 0}
	suite.Error(zeroSize.Validate())
}

func (suite *RequestTestSuite) TestLoginRequest() {
	valid := LoginRequest{Email: "trader@example.com", Password: "hunter22"}
	suite.NoError(valid.Validate())

	badEmail := LoginRequest{Email: "not-an-email", Password: "hunter22"}
	suite.Error(badEmail.Validate())

	missingPassword := LoginRequest{Email: "trader@example.com"}
	suite.Error(missingPassword.Validate())
}

func (suite *RequestTestSuite) TestRegistrationRequest() {
	valid := RegistrationRequest{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		Username:    "ada",
		Password:    "correcthorse",
		Country:     "GB",
		Language:    "en",
		DateOfBirth: "1990-12-10",
	}
	suite.NoError(valid.Validate())

	noBirthDate := valid
	noBirthDate.DateOfBirth = ""
	suite.NoError(noBirthDate.Validate())

	badDate := valid
	badDate.DateOfBirth = "12/10/1990"
	suite.Error(badDate.Validate())

	badCountry := valid
	badCountry.Country = "GBR"
	suite.Error(badCountry.Validate())

	shortPassword := valid
	shortPassword.Password = "short"
	suite.Error(shortPassword.Validate())
}
