package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cryptopro-lab/cryptopro-client/internal/types"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	upStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	downStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
)

// RenderMarketTable renders a market snapshot as an aligned text table with
// the 24h change colored by direction.
func RenderMarketTable(data []types.MarketData) string {
	var s strings.Builder

	s.WriteString(cellStyle.Width(10).Render(headerStyle.Render("Symbol")))
	s.WriteString(cellStyle.Width(20).Render(headerStyle.Render("Name")))
	s.WriteString(cellStyle.Width(16).Render(headerStyle.Render("Price")))
	s.WriteString(headerStyle.Render("24h Change"))
	s.WriteString("\n")

	for _, entry := range data {
		change := types.FormatChange(entry.Change)
		if entry.Change >= 0 {
			change = upStyle.Render(change)
		} else {
			change = downStyle.Render(change)
		}

		s.WriteString(cellStyle.Width(10).Render(entry.Symbol))
		s.WriteString(cellStyle.Width(20).Render(entry.Name))
		s.WriteString(cellStyle.Width(16).Render(types.FormatPrice(entry.Price)))
		s.WriteString(change)
		s.WriteString("\n")
	}

	return s.String()
}
