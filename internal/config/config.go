package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formrelay/internal/relay"
	"github.com/dmitrymomot/formrelay/pkg/emailjs"
	"github.com/dmitrymomot/formrelay/pkg/logger"
	"github.com/dmitrymomot/formrelay/pkg/mailer"
	"github.com/dmitrymomot/formrelay/pkg/mailer/resend"
)

// DefaultEnvFile is loaded when present. Existing environment variables win.
const DefaultEnvFile = ".env"

var (
	// ErrUnknownProvider is returned for MAIL_PROVIDER values other than
	// emailjs and resend.
	ErrUnknownProvider = errors.New("config: unknown mail provider")

	// ErrInvalid is returned when a loaded value is out of range.
	ErrInvalid = errors.New("config: invalid value")
)

// Config is the process configuration, built once at startup.
type Config struct {
	Address          string        `env:"ADDRESS"           yaml:"address"`
	Port             string        `env:"PORT"              yaml:"-"`
	RelayPath        string        `env:"RELAY_PATH"        yaml:"relay_path"`
	AllowedOrigins   []string      `env:"ALLOWED_ORIGIN"    yaml:"allowed_origins"`
	Provider         string        `env:"MAIL_PROVIDER"     yaml:"mail_provider"`
	ContactRecipient string        `env:"CONTACT_RECIPIENT" yaml:"contact_recipient"`
	PublicDir        string        `env:"PUBLIC_DIR"        yaml:"public_dir"`
	UpstreamTimeout  time.Duration `env:"UPSTREAM_TIMEOUT"  yaml:"upstream_timeout"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT"  yaml:"shutdown_timeout"`

	EmailJS emailjs.Config      `yaml:"emailjs"`
	Resend  resend.Config       `yaml:"resend"`
	Mailer  mailer.Config       `yaml:"mailer"`
	Log     logger.Config       `yaml:"log"`
	Sentry  logger.SentryConfig `yaml:"sentry"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Address:         ":8080",
		RelayPath:       relay.DefaultPath,
		Provider:        relay.ProviderEmailJS,
		UpstreamTimeout: 10 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		Mailer:          mailer.DefaultConfig(),
		Log: logger.Config{
			Format: logger.FormatJSON,
			Level:  "info",
		},
		Sentry: logger.SentryConfig{
			Environment: "production",
			MinLevel:    "warn",
		},
	}
}

// Load builds the configuration in layers: defaults, then the YAML file at
// path (skipped when empty), then the env files (missing files are ignored),
// then the process environment.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}

	// PaaS convention: PORT wins over ADDRESS
	if cfg.Port != "" {
		cfg.Address = ":" + strings.TrimPrefix(cfg.Port, ":")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// Validate checks values that would otherwise fail later at runtime.
// Missing provider credentials are not an error here; the relay reports them
// per request and through the readiness probe.
func (c *Config) Validate() error {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider != relay.ProviderEmailJS && c.Provider != relay.ProviderResend {
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}
	if !strings.HasPrefix(c.RelayPath, "/") {
		return fmt.Errorf("%w: RELAY_PATH must start with /: %q", ErrInvalid, c.RelayPath)
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("%w: UPSTREAM_TIMEOUT must be positive", ErrInvalid)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: SHUTDOWN_TIMEOUT must be positive", ErrInvalid)
	}
	origins := c.AllowedOrigins[:0]
	for _, o := range c.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.AllowedOrigins = origins
	return nil
}

// Masked returns a copy safe to print: secrets keep only a short prefix.
func (c Config) Masked() Config {
	c.EmailJS.PrivateKey = mask(c.EmailJS.PrivateKey)
	c.Resend.APIKey = mask(c.Resend.APIKey)
	c.Sentry.DSN = mask(c.Sentry.DSN)
	c.AllowedOrigins = append([]string(nil), c.AllowedOrigins...)
	return c
}

func mask(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) <= 8:
		return "****"
	default:
		return s[:4] + "****"
	}
}
