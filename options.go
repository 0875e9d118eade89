package hxbind

import "log/slog"

// Option configures scanners, dispatchers, binders and Process/Bind calls.
// Options that do not apply to a call are ignored.
type Option func(*options)

type options struct {
	logger *slog.Logger
	signal CancelToken
	config any
}

// WithLogger sets the logger used for diagnostics and callback failures.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSignal attaches a cancellation token to the handler context. When the
// token fires the context is disposed.
func WithSignal(signal CancelToken) Option {
	return func(o *options) {
		o.signal = signal
	}
}

// WithConfig attaches an opaque options bag that bridges read through
// HandlerContext.Config.
func WithConfig(config any) Option {
	return func(o *options) {
		o.config = config
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
