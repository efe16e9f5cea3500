package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cryptopro-lab/cryptopro-client/internal/dashboard"
	"github.com/cryptopro-lab/cryptopro-client/internal/types"
	"github.com/cryptopro-lab/cryptopro-client/pkg/errors"
)

// Application states.
const (
	StateLogin = iota
	StateDashboard
)

// tabOrder is the tab cycle used by tab/shift+tab.
var tabOrder = []dashboard.Tab{
	dashboard.TabAccounts,
	dashboard.TabCreateAccount,
	dashboard.TabCreate,
	dashboard.TabHistory,
}

var tabLabels = map[dashboard.Tab]string{
	dashboard.TabAccounts:      "Accounts",
	dashboard.TabCreateAccount: "New Account",
	dashboard.TabCreate:        "New Ticket",
	dashboard.TabHistory:       "History",
}

// Session is the exchange surface the dashboard needs: the data operations
// plus login.
type Session interface {
	dashboard.API
	Login(ctx context.Context, req types.LoginRequest) (string, error)
}

// toastNotifier keeps the most recent notification for the status line.
// It is shared by pointer across model copies.
type toastNotifier struct {
	current *dashboard.Notification
}

func (t *toastNotifier) Notify(n dashboard.Notification) {
	t.current = &n
}

// Model is the main Bubble Tea model for the trading dashboard.
type Model struct {
	state int

	session    Session
	notifier   *toastNotifier
	controller *dashboard.Controller

	// Login form
	emailInput    textinput.Model
	passwordInput textinput.Model
	loginFocus    int
	loggingIn     bool
	loginErr      string

	// Dashboard widgets
	accountList list.Model
	walletTable table.Model
	ticketTable table.Model
	nameInput   textinput.Model
	amountInput textinput.Model

	width  int
	height int
}

// NewModel creates a Model in the login state.
func NewModel(session Session) Model {
	notifier := &toastNotifier{}

	return Model{
		state:         StateLogin,
		session:       session,
		notifier:      notifier,
		controller:    dashboard.NewController(session, notifier),
		emailInput:    NewEmailInput(),
		passwordInput: NewPasswordInput(),
		accountList:   NewAccountList(),
		walletTable:   NewWalletTable(),
		ticketTable:   NewTicketTable(),
		nameInput:     NewAccountNameInput(),
		amountInput:   NewAmountInput(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// wrapCommands turns controller commands into tea commands; each runs off
// the update goroutine and feeds its event back as a controllerEventMsg.
func wrapCommands(cmds []dashboard.Command) tea.Cmd {
	if len(cmds) == 0 {
		return nil
	}

	teaCmds := make([]tea.Cmd, len(cmds))
	for i, c := range cmds {
		c := c
		teaCmds[i] = func() tea.Msg {
			return controllerEventMsg{Event: c(context.Background())}
		}
	}

	return tea.Batch(teaCmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.accountList.SetSize(msg.Width, msg.Height-10)
		m.walletTable.SetWidth(msg.Width)
		m.ticketTable.SetWidth(msg.Width)
		return m, nil

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case controllerEventMsg:
		followups := m.controller.Apply(msg.Event)
		m.syncWidgets()
		return m, wrapCommands(followups)
	}

	switch m.state {
	case StateLogin:
		return m.updateLogin(msg)
	case StateDashboard:
		return m.updateDashboard(msg)
	}

	return m, nil
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.loggingIn = false

	if msg.Err != nil {
		m.loginErr = errors.ServerMessage(msg.Err)
		if m.loginErr == "" {
			m.loginErr = "Login failed"
		}
		return m, nil
	}

	m.state = StateDashboard
	m.loginErr = ""

	cmds := m.controller.Initialize()
	m.syncWidgets()

	return m, wrapCommands(cmds)
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab", "up", "down":
			m.loginFocus = 1 - m.loginFocus
			if m.loginFocus == 0 {
				m.passwordInput.Blur()
				return m, m.emailInput.Focus()
			}
			m.emailInput.Blur()
			return m, m.passwordInput.Focus()

		case "enter":
			if m.loginFocus == 0 {
				m.loginFocus = 1
				m.emailInput.Blur()
				return m, m.passwordInput.Focus()
			}
			return m.submitLogin()
		}
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}

	return m, cmd
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	if m.loggingIn {
		return m, nil
	}

	email := strings.TrimSpace(m.emailInput.Value())
	password := m.passwordInput.Value()

	if email == "" || password == "" {
		m.loginErr = "Email and password are required"
		return m, nil
	}

	m.loggingIn = true
	m.loginErr = ""

	session := m.session

	return m, func() tea.Msg {
		_, err := session.Login(context.Background(), types.LoginRequest{
			Email:    email,
			Password: password,
		})
		return loginResultMsg{Err: err}
	}
}

func (m Model) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab":
			return m.cycleTab(1)
		case "shift+tab":
			return m.cycleTab(-1)
		}
	}

	switch m.controller.State().ActiveTab {
	case dashboard.TabAccounts:
		return m.updateAccountsTab(msg)
	case dashboard.TabCreateAccount:
		return m.updateCreateAccountTab(msg)
	case dashboard.TabCreate:
		return m.updateCreateTicketTab(msg)
	case dashboard.TabHistory:
		return m.updateHistoryTab(msg)
	}

	return m, nil
}

func (m Model) cycleTab(direction int) (tea.Model, tea.Cmd) {
	active := m.controller.State().ActiveTab

	index := 0
	for i, tab := range tabOrder {
		if tab == active {
			index = i
			break
		}
	}

	next := tabOrder[(index+direction+len(tabOrder))%len(tabOrder)]
	cmds := m.controller.SelectTab(next)

	// Focus the tab's form input so typing lands in the right place.
	m.nameInput.Blur()
	m.amountInput.Blur()

	var focus tea.Cmd
	switch next {
	case dashboard.TabCreateAccount:
		focus = m.nameInput.Focus()
	case dashboard.TabCreate:
		focus = m.amountInput.Focus()
	}

	m.syncWidgets()

	return m, tea.Batch(wrapCommands(cmds), focus)
}

func (m Model) updateAccountsTab(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if item, ok := m.accountList.SelectedItem().(accountItem); ok {
			cmds := m.controller.SelectAccount(item.account.ID)
			m.syncWidgets()
			return m, wrapCommands(cmds)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.accountList, cmd = m.accountList.Update(msg)
	return m, cmd
}

func (m Model) updateCreateAccountTab(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		cmds := m.controller.CreateAccount(m.nameInput.Value())
		m.syncWidgets()
		return m, wrapCommands(cmds)
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	m.controller.SetAccountDisplayName(m.nameInput.Value())

	return m, cmd
}

func (m Model) updateCreateTicketTab(msg tea.Msg) (tea.Model, tea.Cmd) {
	state := m.controller.State()

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "left":
			m.controller.SelectWallet(adjacentWallet(state.Wallets, state.SelectedWallet, -1))
			return m, nil
		case "right":
			m.controller.SelectWallet(adjacentWallet(state.Wallets, state.SelectedWallet, 1))
			return m, nil
		case "ctrl+t":
			if state.TicketForm.Type == types.TicketTypeDeposit {
				m.controller.SetTicketType(types.TicketTypeWithdrawal)
			} else {
				m.controller.SetTicketType(types.TicketTypeDeposit)
			}
			return m, nil
		case "enter":
			cmds := m.controller.CreateTicket(state.SelectedWallet, state.TicketForm.Type, m.amountInput.Value())
			m.syncWidgets()
			return m, wrapCommands(cmds)
		}
	}

	var cmd tea.Cmd
	m.amountInput, cmd = m.amountInput.Update(msg)
	m.controller.SetTicketAmount(m.amountInput.Value())

	return m, cmd
}

// adjacentWallet returns the wallet id next to the current selection,
// wrapping around at either end.
func adjacentWallet(wallets []types.Wallet, currentID string, direction int) string {
	if len(wallets) == 0 {
		return ""
	}

	index := 0
	for i, w := range wallets {
		if w.ID == currentID {
			index = i
			break
		}
	}

	return wallets[(index+direction+len(wallets))%len(wallets)].ID
}

func (m Model) updateHistoryTab(msg tea.Msg) (tea.Model, tea.Cmd) {
	pagination := m.controller.State().Pagination

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "left":
			cmds := m.controller.ChangePage(pagination.CurrentPage - 1)
			m.syncWidgets()
			return m, wrapCommands(cmds)
		case "right":
			cmds := m.controller.ChangePage(pagination.CurrentPage + 1)
			m.syncWidgets()
			return m, wrapCommands(cmds)
		case "s":
			cmds := m.controller.ChangePageSize(nextPageSize(pagination.PageSize))
			m.syncWidgets()
			return m, wrapCommands(cmds)
		}
	}

	var cmd tea.Cmd
	m.ticketTable, cmd = m.ticketTable.Update(msg)
	return m, cmd
}

// nextPageSize cycles through the selectable page sizes.
func nextPageSize(current int) int {
	for i, size := range dashboard.PageSizes {
		if size == current {
			return dashboard.PageSizes[(i+1)%len(dashboard.PageSizes)]
		}
	}

	return dashboard.PageSizes[0]
}

// syncWidgets refreshes the widgets from the controller state snapshot.
func (m *Model) syncWidgets() {
	state := m.controller.State()

	m.accountList = UpdateAccountItems(m.accountList, state.Accounts)
	m.walletTable = UpdateWalletRows(m.walletTable, state.Wallets)
	m.ticketTable = UpdateTicketRows(m.ticketTable, state.Tickets)

	// The controller clears form fields after a successful submit; mirror
	// that in the inputs.
	if state.AccountForm.DisplayName == "" && m.nameInput.Value() != "" {
		m.nameInput.Reset()
	}
	if state.TicketForm.Amount == "" && m.amountInput.Value() != "" {
		m.amountInput.Reset()
	}
}

// View implements tea.Model.
func (m Model) View() string {
	switch m.state {
	case StateLogin:
		return m.viewLogin()
	case StateDashboard:
		return m.viewDashboard()
	}

	return ""
}

func (m Model) viewLogin() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("CryptoPro - Sign In"))
	s.WriteString("\n\n")
	s.WriteString("Email:\n")
	s.WriteString(m.emailInput.View())
	s.WriteString("\n\nPassword:\n")
	s.WriteString(m.passwordInput.View())
	s.WriteString("\n\n")

	if m.loggingIn {
		s.WriteString("Signing in...\n")
	}
	if m.loginErr != "" {
		s.WriteString(ErrorStyle.Render(m.loginErr))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Tab: switch field | Enter: sign in | Ctrl+C: quit"))

	return s.String()
}

func (m Model) viewDashboard() string {
	state := m.controller.State()

	var s strings.Builder

	s.WriteString(TitleStyle.Render("CryptoPro Dashboard"))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs(state.ActiveTab))
	s.WriteString("\n\n")

	if m.notifier.current != nil {
		s.WriteString(RenderNotification(*m.notifier.current))
		s.WriteString("\n\n")
	}

	switch state.ActiveTab {
	case dashboard.TabAccounts:
		s.WriteString(m.viewAccountsTab(state))
	case dashboard.TabCreateAccount:
		s.WriteString(m.viewCreateAccountTab(state))
	case dashboard.TabCreate:
		s.WriteString(m.viewCreateTicketTab(state))
	case dashboard.TabHistory:
		s.WriteString(m.viewHistoryTab(state))
	}

	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Tab: next view | Ctrl+C: quit"))

	return s.String()
}

func (m Model) renderTabs(active dashboard.Tab) string {
	labels := make([]string, len(tabOrder))
	for i, tab := range tabOrder {
		if tab == active {
			labels[i] = ActiveTabStyle.Render(tabLabels[tab])
		} else {
			labels[i] = TabStyle.Render(tabLabels[tab])
		}
	}

	return strings.Join(labels, "  ")
}

func (m Model) viewAccountsTab(state dashboard.State) string {
	var s strings.Builder

	if state.Loading {
		s.WriteString("Loading accounts...\n")
		return s.String()
	}

	s.WriteString(m.accountList.View())
	s.WriteString("\n")

	if state.SelectedAccount != "" {
		s.WriteString(TitleStyle.Render("Wallets"))
		s.WriteString("\n")
		s.WriteString(m.walletTable.View())
		s.WriteString("\n")
	}

	s.WriteString(HelpStyle.Render("Enter: select account"))

	return s.String()
}

func (m Model) viewCreateAccountTab(state dashboard.State) string {
	var s strings.Builder

	s.WriteString("Display name:\n")
	s.WriteString(m.nameInput.View())
	s.WriteString("\n\n")

	if state.CreatingAccount {
		s.WriteString("Creating account...\n")
	}

	s.WriteString(HelpStyle.Render("Enter: create account"))

	return s.String()
}

func (m Model) viewCreateTicketTab(state dashboard.State) string {
	var s strings.Builder

	wallet := "none"
	for _, w := range state.Wallets {
		if w.ID == state.SelectedWallet {
			wallet = fmt.Sprintf("%s (%.8f available)", w.Currency, w.AvailableBalance)
			break
		}
	}

	s.WriteString(fmt.Sprintf("Wallet: %s\n", wallet))
	s.WriteString(fmt.Sprintf("Type:   %s\n\n", state.TicketForm.Type.Label()))
	s.WriteString("Amount:\n")
	s.WriteString(m.amountInput.View())
	s.WriteString("\n\n")

	if state.CreatingTicket {
		s.WriteString("Submitting ticket...\n")
	}

	s.WriteString(HelpStyle.Render("←/→: wallet | Ctrl+T: type | Enter: submit"))

	return s.String()
}

func (m Model) viewHistoryTab(state dashboard.State) string {
	var s strings.Builder

	if state.TicketsLoading {
		s.WriteString("Loading tickets...\n")
	}

	s.WriteString(m.ticketTable.View())
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf(
		"Page %d of %d · %d items · page size %d\n",
		state.Pagination.CurrentPage,
		state.Pagination.TotalPages,
		state.Pagination.TotalItems,
		state.Pagination.PageSize,
	))
	s.WriteString(HelpStyle.Render("←/→: page | s: page size"))

	return s.String()
}
