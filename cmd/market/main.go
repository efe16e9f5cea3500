package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/cryptopro-lab/cryptopro-client/internal/config"
	"github.com/cryptopro-lab/cryptopro-client/internal/exchange"
	"github.com/cryptopro-lab/cryptopro-client/internal/logger"
	"github.com/cryptopro-lab/cryptopro-client/internal/marketwatch"
	"github.com/cryptopro-lab/cryptopro-client/internal/types"
)

// marketAction prints one market snapshot, or keeps refreshing it in watch
// mode until interrupted.
func marketAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	if baseURL := cmd.String("base-url"); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	client := exchange.NewClient(cfg.BaseURL, exchange.WithTimeout(cfg.RequestTimeout.Std()))

	fetch := client.GetMarketData
	if cmd.Bool("hero") {
		fetch = client.GetHeroMarketData
	}

	if !cmd.Bool("watch") {
		data, err := fetch(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch market data: %w", err)
		}

		fmt.Print(RenderMarketTable(data))
		return nil
	}

	return watchMarket(ctx, cfg, fetch)
}

// fetchFunc matches the market data methods of the exchange client.
type fetchFunc func(ctx context.Context) ([]types.MarketData, error)

// watchSource adapts a fetch function to the watcher's Source interface.
type watchSource struct {
	fetch fetchFunc
}

func (w watchSource) GetMarketData(ctx context.Context) ([]types.MarketData, error) {
	return w.fetch(ctx)
}

func watchMarket(ctx context.Context, cfg *config.Config, fetch fetchFunc) error {
	l, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer l.Sync()

	watcher, err := marketwatch.NewWatcher(
		watchSource{fetch: fetch},
		func(data []types.MarketData) {
			// Redraw in place on every refresh.
			fmt.Print("\033[H\033[2J")
			fmt.Print(RenderMarketTable(data))
		},
		marketwatch.WithInterval(cfg.MarketInterval.Std()),
		marketwatch.WithLogger(l),
	)
	if err != nil {
		return err
	}

	watcher.Start(ctx)
	defer watcher.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-ctx.Done():
	case <-stop:
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "market",
		Usage: "Show the CryptoPro market overview",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML config file",
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "Override the exchange API base URL",
			},
			&cli.BoolFlag{
				Name:  "hero",
				Usage: "Show the reduced hero snapshot instead of the full overview",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Keep refreshing until interrupted",
			},
		},
		Action: marketAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
