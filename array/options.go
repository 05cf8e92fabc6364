// SPDX-License-Identifier: MIT

package array

import (
	"io"
	"log/slog"
)

// Option configures a Runtime.
type Option func(*Options)

// Options holds the effective Runtime configuration.
type Options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used by the Runtime and its arena.
// Allocation traffic is logged at DEBUG, leaks at WARN. Nil is ignored.
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
