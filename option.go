package reshape

import "log/slog"

// ParseOption configures a single Parse call.
type ParseOption func(*parseConfig)

type parseConfig struct {
	opts      Options
	converter func(any) any
	registry  *Registry
	logger    *slog.Logger
}

func newParseConfig(opts []ParseOption) *parseConfig {
	cfg := &parseConfig{
		registry: DefaultRegistry(),
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

// WithOptions supplies the caller context handed to Func callbacks, If
// predicates, and converters.
func WithOptions(o Options) ParseOption {
	return func(c *parseConfig) { c.opts = o }
}

// WithConverter applies fn to every resolved (possibly defaulted) field value
// before type coercion.
func WithConverter(fn func(any) any) ParseOption {
	return func(c *parseConfig) { c.converter = fn }
}

// WithRegistry coerces through r instead of the process default registry.
func WithRegistry(r *Registry) ParseOption {
	return func(c *parseConfig) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithLogger routes contained-error and diagnostic logging to l.
func WithLogger(l *slog.Logger) ParseOption {
	return func(c *parseConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
