package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cryptopro-lab/cryptopro-client/internal/config"
	"github.com/cryptopro-lab/cryptopro-client/internal/exchange"
	"github.com/cryptopro-lab/cryptopro-client/internal/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("CRYPTOPRO_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a rotated file.
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = "cryptopro-dashboard.log"
	}
	log := logger.NewFileLogger(logFile)
	defer log.Sync()

	client := exchange.NewClient(cfg.BaseURL,
		exchange.WithTimeout(cfg.RequestTimeout.Std()),
		exchange.WithLogger(log),
	)

	p := tea.NewProgram(NewModel(client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running dashboard: %v\n", err)
		os.Exit(1)
	}
}
