// SPDX-License-Identifier: MIT

package arena

import (
	"io"
	"log/slog"
)

// Option configures an Arena.
type Option func(*Options)

// Options holds the effective Arena configuration.
type Options struct {
	logger *slog.Logger
}

// WithLogger routes arena diagnostics (teardown reports, leaks) to l.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

func gatherOptions(opts ...Option) Options {
	o := Options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, fn := range opts {
		fn(&o)
	}

	return o
}
