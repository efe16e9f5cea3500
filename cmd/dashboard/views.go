package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/cryptopro-lab/cryptopro-client/internal/types"
)

// accountItem implements list.Item for the trading account picker.
type accountItem struct {
	account types.TradingAccount
}

func (i accountItem) Title() string { return i.account.DisplayName }
func (i accountItem) Description() string {
	return fmt.Sprintf("%s · %s", i.account.AccountNumber, i.account.Status)
}
func (i accountItem) FilterValue() string { return i.account.DisplayName }

// NewAccountList creates the trading account picker.
func NewAccountList() list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Trading Accounts"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// UpdateAccountItems replaces the picker's items with the current accounts.
func UpdateAccountItems(l list.Model, accounts []types.TradingAccount) list.Model {
	items := make([]list.Item, len(accounts))
	for i, account := range accounts {
		items[i] = accountItem{account: account}
	}

	l.SetItems(items)

	return l
}

// NewEmailInput creates the login email input.
func NewEmailInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "you@example.com"
	ti.Focus()
	ti.CharLimit = 128
	ti.Width = 50
	ti.Prompt = "> "

	return ti
}

// NewPasswordInput creates the login password input.
func NewPasswordInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "password"
	ti.EchoMode = textinput.EchoPassword
	ti.CharLimit = 128
	ti.Width = 50
	ti.Prompt = "> "

	return ti
}

// NewAccountNameInput creates the create-account display name input.
func NewAccountNameInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "My Trading Account"
	ti.CharLimit = 64
	ti.Width = 50
	ti.Prompt = "> "

	return ti
}

// NewAmountInput creates the create-ticket amount input.
func NewAmountInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "0.00"
	ti.CharLimit = 32
	ti.Width = 30
	ti.Prompt = "> "

	return ti
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	return s
}

// NewWalletTable creates the wallet overview table.
func NewWalletTable() table.Model {
	columns := []table.Column{
		{Title: "Currency", Width: 10},
		{Title: "Available", Width: 16},
		{Title: "Locked", Width: 16},
		{Title: "Total", Width: 16},
		{Title: "USD Value", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(8),
	)
	t.SetStyles(tableStyles())

	return t
}

// UpdateWalletRows updates the wallet table with the current wallets.
func UpdateWalletRows(t table.Model, wallets []types.Wallet) table.Model {
	rows := make([]table.Row, len(wallets))
	for i, w := range wallets {
		rows[i] = table.Row{
			w.Currency,
			fmt.Sprintf("%.8f", w.AvailableBalance),
			fmt.Sprintf("%.8f", w.LockedBalance),
			fmt.Sprintf("%.8f", w.TotalBalance),
			types.FormatPrice(w.USDEquivalent),
		}
	}

	t.SetRows(rows)

	return t
}

// NewTicketTable creates the ticket ledger table.
func NewTicketTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 24},
		{Title: "Type", Width: 12},
		{Title: "Amount", Width: 14},
		{Title: "Status", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles())

	return t
}

// UpdateTicketRows updates the ticket table with the current ledger page.
func UpdateTicketRows(t table.Model, tickets []types.Ticket) table.Model {
	rows := make([]table.Row, len(tickets))
	for i, ticket := range tickets {
		rows[i] = table.Row{
			ticket.ID,
			ticket.TicketType.Label(),
			fmt.Sprintf("%.2f", ticket.Amount),
			ticket.TicketStatus.Label(),
		}
	}

	t.SetRows(rows)

	return t
}
