package internal

import "github.com/starford/lingshu/internal/relay"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	asker  relay.Asker
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithAsker overrides the AI relay, mainly for tests.
func WithAsker(asker relay.Asker) Option {
	return func(a *application) {
		a.asker = asker
	}
}
