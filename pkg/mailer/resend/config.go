package resend

// Config holds Resend email provider configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY"    yaml:"api_key"`
	SenderEmail string `env:"RESEND_FROM_EMAIL" yaml:"from_email"`
	SenderName  string `env:"RESEND_FROM_NAME"  yaml:"from_name"`
	// BaseURL overrides the API endpoint; empty means the public Resend API.
	BaseURL string `env:"RESEND_BASE_URL" yaml:"base_url"`
}

// Missing returns the names of required settings that are empty.
func (c Config) Missing() []string {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, "RESEND_API_KEY")
	}
	if c.SenderEmail == "" {
		missing = append(missing, "RESEND_FROM_EMAIL")
	}
	return missing
}
