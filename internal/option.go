package internal

import (
	"io"
	"log/slog"

	"github.com/starford/randomnote/internal/commands"
	"github.com/starford/randomnote/internal/selector"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config    *Config
	logger    *slog.Logger
	navigator commands.Navigator
	rand      selector.Rand
	out       io.Writer
	version   string
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithLogger overrides the logger built from the configured level.
func WithLogger(l *slog.Logger) Option {
	return func(a *application) {
		a.logger = l
	}
}

// WithNavigator sets how one-shot commands open notes.
func WithNavigator(n commands.Navigator) Option {
	return func(a *application) {
		a.navigator = n
	}
}

// WithRand overrides the random source.
func WithRand(r selector.Rand) Option {
	return func(a *application) {
		a.rand = r
	}
}

// WithOutput sets where one-shot commands print their results.
func WithOutput(w io.Writer) Option {
	return func(a *application) {
		a.out = w
	}
}

// WithVersion sets the version reported by the MCP server.
func WithVersion(v string) Option {
	return func(a *application) {
		a.version = v
	}
}
