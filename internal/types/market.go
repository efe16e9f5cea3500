package types

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MarketData is a single market overview entry for one asset.
type MarketData struct {
	Symbol string  `json:"symbol" yaml:"symbol"`
	Name   string  `json:"name" yaml:"name"`
	Price  float64 `json:"price" yaml:"price"`
	// Change is the 24h price change in percent.
	Change float64 `json:"change" yaml:"change"`
}

// FormatPrice renders a USD price with magnitude-dependent precision:
// 2 decimals at or above 1000, 4 decimals at or above 1, 6 below.
func FormatPrice(price float64) string {
	p := message.NewPrinter(language.AmericanEnglish)

	switch {
	case price >= 1000:
		return p.Sprintf("$%.2f", price)
	case price >= 1:
		return p.Sprintf("$%.4f", price)
	default:
		return p.Sprintf("$%.6f", price)
	}
}

// FormatChange renders a percent change with an explicit sign.
func FormatChange(change float64) string {
	if change >= 0 {
		return fmt.Sprintf("+%.2f%%", change)
	}

	return fmt.Sprintf("%.2f%%", change)
}
