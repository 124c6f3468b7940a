package mailer

// Config holds mailer configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" yaml:"fallback_subject"`
	DefaultLayout   string `env:"MAILER_DEFAULT_LAYOUT"   yaml:"default_layout"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		FallbackSubject: "New contact form submission",
		DefaultLayout:   "base.html",
	}
}
