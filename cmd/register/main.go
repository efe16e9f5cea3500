package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/cryptopro-lab/cryptopro-client/internal/config"
	"github.com/cryptopro-lab/cryptopro-client/internal/exchange"
	"github.com/cryptopro-lab/cryptopro-client/internal/types"
)

// registerAction validates the flag values and submits the registration.
// Without an explicit --country, the country is geo-detected from the
// caller's IP and falls back to US.
func registerAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	if baseURL := cmd.String("base-url"); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	client := exchange.NewClient(cfg.BaseURL, exchange.WithTimeout(cfg.RequestTimeout.Std()))

	if cmd.Bool("list-countries") {
		return printCountries(ctx, client)
	}
	if cmd.Bool("list-languages") {
		return printLanguages(ctx, client)
	}

	country := cmd.String("country")
	if country == "" {
		country = exchange.NewGeoLocator().DetectCountry(ctx).TakeOr("US")
		fmt.Printf("Using detected country: %s\n", country)
	}

	req := types.RegistrationRequest{
		FirstName:   cmd.String("first-name"),
		LastName:    cmd.String("last-name"),
		Email:       cmd.String("email"),
		Username:    cmd.String("username"),
		Password:    cmd.String("password"),
		PhoneNumber: cmd.String("phone"),
		Telephone:   cmd.String("phone"),
		Country:     country,
		Language:    cmd.String("language"),
		DateOfBirth: cmd.String("date-of-birth"),
		Source:      cmd.String("source"),
	}

	if err := client.Register(ctx, req); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Println("Registration submitted. Check your inbox to verify the account.")

	return nil
}

func printCountries(ctx context.Context, client *exchange.Client) error {
	countries, err := client.ListCountries(ctx)
	if err != nil {
		return err
	}

	for _, country := range countries {
		fmt.Printf("%s  %s\n", country.Code, country.Name)
	}

	return nil
}

func printLanguages(ctx context.Context, client *exchange.Client) error {
	languages, err := client.ListLanguages(ctx)
	if err != nil {
		return err
	}

	for _, language := range languages {
		fmt.Printf("%s  %s\n", language.Code, language.Name)
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "register",
		Usage: "Create a CryptoPro account",
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
			&cli.StringFlag{
				Name:  "first-name",
				Usage: "First name",
			},
			&cli.StringFlag{
				Name:  "last-name",
				Usage: "Last name",
			},
			&cli.StringFlag{
				Name:    "email",
				Aliases: []string{"e"},
				Usage:   "Email address",
			},
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "Username",
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Password (minimum 8 characters)",
			},
			&cli.StringFlag{
				Name:  "phone",
				Usage: "Phone number",
			},
			&cli.StringFlag{
				Name:  "country",
				Usage: "ISO 3166-1 alpha-2 country code. Geo-detected when omitted.",
			},
			&cli.StringFlag{
				Name:  "language",
				Usage: "Preferred language code",
				Value: "en",
			},
			&cli.StringFlag{
				Name:  "date-of-birth",
				Usage: "Date of birth in `YYYY-MM-DD` format",
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: "Registration source tag",
			},
			&cli.BoolFlag{
				Name:  "list-countries",
				Usage: "List the accepted country codes and exit",
			},
			&cli.BoolFlag{
				Name:  "list-languages",
				Usage: "List the accepted language codes and exit",
			},
		},
		Action: registerAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
