// Package config loads client configuration from a YAML file with
// environment overrides for credentials.
package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cryptopro-lab/cryptopro-client/pkg/errors"
)

const (
	defaultBaseURL        = "https://api.cryptopro.exchange"
	defaultRequestTimeout = Duration(30 * time.Second)
	defaultMarketInterval = Duration(15 * time.Second)
)

// Duration is a time.Duration that unmarshals from YAML strings like "30s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid duration", err)
	}

	*d = Duration(parsed)

	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds everything the CLI binaries need to talk to the exchange.
type Config struct {
	BaseURL        string   `yaml:"base_url" validate:"required,url"`
	RequestTimeout Duration `yaml:"request_timeout" validate:"gt=0"`
	MarketInterval Duration `yaml:"market_interval" validate:"gt=0"`
	LogFile        string   `yaml:"log_file"`

	// Credentials are never read from the YAML file. They come from the
	// environment (optionally via a .env file) so config files stay safe to
	// commit.
	Email    string `yaml:"-"`
	Password string `yaml:"-"`
}

// Default returns a Config with all defaults applied and credentials pulled
// from the environment.
func Default() *Config {
	cfg := &Config{
		BaseURL:        defaultBaseURL,
		RequestTimeout: defaultRequestTimeout,
		MarketInterval: defaultMarketInterval,
	}
	cfg.loadCredentials()

	return cfg
}

// Load reads a YAML config file. A missing file is not an error; defaults
// are used instead. A .env file next to the working directory is loaded
// first so CRYPTOPRO_EMAIL and CRYPTOPRO_PASSWORD can live there.
func Load(path string) (*Config, error) {
	// Ignore the error here, a .env file is optional.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to read config file", err)
	}

	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config file", err)
	}

	cfg.applyDefaults()
	cfg.loadCredentials()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	if c.MarketInterval <= 0 {
		c.MarketInterval = defaultMarketInterval
	}
}

func (c *Config) loadCredentials() {
	if email := os.Getenv("CRYPTOPRO_EMAIL"); email != "" {
		c.Email = email
	}
	if password := os.Getenv("CRYPTOPRO_PASSWORD"); password != "" {
		c.Password = password
	}
}

// Validate validates the Config struct.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	return nil
}
