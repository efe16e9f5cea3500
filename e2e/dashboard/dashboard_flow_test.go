package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	dash "github.com/cryptopro-lab/cryptopro-client/internal/dashboard"
	"github.com/cryptopro-lab/cryptopro-client/internal/exchange"
	"github.com/cryptopro-lab/cryptopro-client/internal/types"

	"github.com/cryptopro-lab/cryptopro-client/e2e/dashboard/mockserver"
)

// recordingNotifier collects notifications emitted during a flow.
type recordingNotifier struct {
	notifications []dash.Notification
}

func (r *recordingNotifier) Notify(n dash.Notification) {
	r.notifications = append(r.notifications, n)
}

// DashboardFlowTestSuite drives the real controller and HTTP client against
// the in-memory exchange server.
type DashboardFlowTestSuite struct {
	suite.Suite
	server     *mockserver.MockExchangeServer
	client     *exchange.Client
	notifier   *recordingNotifier
	controller *dash.Controller
}

func TestDashboardFlowSuite(t *testing.T) {
	suite.Run(t, new(DashboardFlowTestSuite))
}

func (suite *DashboardFlowTestSuite) SetupTest() {
	suite.server = mockserver.NewMockExchangeServer(mockserver.DefaultConfig())
	suite.Require().NoError(suite.server.Start(":0"))

	suite.client = exchange.NewClient(suite.server.BaseURL())

	_, err := suite.client.Login(context.Background(), types.LoginRequest{
		Email:    "trader@example.com",
		Password: "correct-horse",
	})
	suite.Require().NoError(err)

	suite.notifier = &recordingNotifier{}
	suite.controller = dash.NewController(suite.client, suite.notifier)
}

func (suite *DashboardFlowTestSuite) TearDownTest() {
	if suite.server != nil {
		suite.server.Stop()
	}
}

// run executes commands synchronously, feeding events and follow-ups back
// into the controller until the queue drains.
func (suite *DashboardFlowTestSuite) run(cmds []dash.Command) {
	for len(cmds) > 0 {
		event := cmds[0](context.Background())
		cmds = append(cmds[1:], suite.controller.Apply(event)...)
	}
}

func (suite *DashboardFlowTestSuite) TestInitialLoadSelectsFirstAccount() {
	suite.run(suite.controller.Initialize())

	state := suite.controller.State()
	suite.Len(state.Accounts, 2)
	suite.Equal("acct-1", state.SelectedAccount)
	suite.Len(state.Wallets, 3)
	suite.NotEmpty(state.SelectedWallet)
	suite.Empty(suite.notifier.notifications)
}

func (suite *DashboardFlowTestSuite) TestTicketLedgerPaging() {
	suite.run(suite.controller.Initialize())
	suite.run(suite.controller.SelectTab(dash.TabHistory))

	state := suite.controller.State()
	suite.Len(state.Tickets, 10)
	suite.Equal(11, state.Pagination.TotalItems)
	suite.Equal(2, state.Pagination.TotalPages)

	suite.run(suite.controller.ChangePage(2))

	state = suite.controller.State()
	suite.Len(state.Tickets, 3)
	suite.Equal(13, state.Pagination.TotalItems)
	suite.Equal(2, state.Pagination.TotalPages)
	suite.Equal(2, state.Pagination.CurrentPage)
}

func (suite *DashboardFlowTestSuite) TestDepositRefreshesLedger() {
	suite.run(suite.controller.Initialize())
	suite.run(suite.controller.SelectTab(dash.TabHistory))

	walletID := suite.controller.State().SelectedWallet
	suite.run(suite.controller.CreateTicket(walletID, types.TicketTypeDeposit, "1.25"))

	state := suite.controller.State()
	suite.Equal(1, state.Pagination.CurrentPage)
	suite.Equal(14, suite.server.TicketCount("acct-1"))

	suite.Require().NotEmpty(suite.notifier.notifications)
	suite.Equal(dash.VariantDefault, suite.notifier.notifications[0].Variant)
	suite.Contains(suite.notifier.notifications[0].Description, "Ticket created: ")
}

func (suite *DashboardFlowTestSuite) TestWithdrawalRejectionSurfacesServerMessage() {
	suite.run(suite.controller.Initialize())

	walletID := suite.controller.State().SelectedWallet
	suite.run(suite.controller.CreateTicket(walletID, types.TicketTypeWithdrawal, "999999"))

	suite.Require().Len(suite.notifier.notifications, 1)
	suite.Equal("Insufficient balance", suite.notifier.notifications[0].Description)
	suite.Equal(dash.VariantDestructive, suite.notifier.notifications[0].Variant)
}

func (suite *DashboardFlowTestSuite) TestCreateAccountRoundTrip() {
	suite.run(suite.controller.Initialize())
	suite.run(suite.controller.SelectTab(dash.TabCreateAccount))

	suite.run(suite.controller.CreateAccount("Swing"))

	state := suite.controller.State()
	suite.Equal(dash.TabAccounts, state.ActiveTab)
	suite.Len(state.Accounts, 3)
	suite.Equal("Swing", state.Accounts[2].DisplayName)
	suite.Equal("acct-1", state.SelectedAccount)
}

func (suite *DashboardFlowTestSuite) TestUnauthenticatedClientGetsError() {
	unauthed := exchange.NewClient(suite.server.BaseURL())
	controller := dash.NewController(unauthed, suite.notifier)

	cmds := controller.Initialize()
	for len(cmds) > 0 {
		event := cmds[0](context.Background())
		cmds = append(cmds[1:], controller.Apply(event)...)
	}

	suite.Require().Len(suite.notifier.notifications, 1)
	suite.Equal("Authentication required", suite.notifier.notifications[0].Description)
}
