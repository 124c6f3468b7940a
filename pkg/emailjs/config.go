package emailjs

// DefaultEndpoint is the public EmailJS send API.
const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// Config holds EmailJS credentials.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	ServiceID  string `env:"EMAILJS_SERVICE_ID"  yaml:"service_id"`
	TemplateID string `env:"EMAILJS_TEMPLATE_ID" yaml:"template_id"`
	PublicKey  string `env:"EMAILJS_PUBLIC_KEY"  yaml:"public_key"`
	// PrivateKey is sent as accessToken when set.
	PrivateKey string `env:"EMAILJS_PRIVATE_KEY" yaml:"private_key"`
	// Endpoint overrides DefaultEndpoint.
	Endpoint string `env:"EMAILJS_ENDPOINT" yaml:"endpoint"`
}

// Missing returns the names of required settings that are empty,
// in the order service, template, public key.
func (c Config) Missing() []string {
	var missing []string
	if c.ServiceID == "" {
		missing = append(missing, "EMAILJS_SERVICE_ID")
	}
	if c.TemplateID == "" {
		missing = append(missing, "EMAILJS_TEMPLATE_ID")
	}
	if c.PublicKey == "" {
		missing = append(missing, "EMAILJS_PUBLIC_KEY")
	}
	return missing
}

func (c Config) endpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return DefaultEndpoint
}
