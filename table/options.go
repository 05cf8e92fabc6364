// SPDX-License-Identifier: MIT

package table

import (
	"io"
	"log/slog"

	"golang.org/x/text/encoding/charmap"
)

// DefaultComma is the field separator used unless WithComma is given.
const DefaultComma = ','

// DefaultHeadRows is the number of records Head prints when asked for 0.
const DefaultHeadRows = 5

// Option configures a Table.
type Option func(*Options)

// Options holds the effective Table configuration.
type Options struct {
	logger  *slog.Logger
	comma   rune
	charmap *charmap.Charmap
}

// WithLogger sets the logger for load and re-initialization messages.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithComma sets the field separator (for example '\t' or ';').
func WithComma(r rune) Option {
	return func(o *Options) { o.comma = r }
}

// WithCharmap decodes input from a single-byte legacy encoding such as
// charmap.ISO8859_1 or charmap.Windows1252. Input is UTF-8 otherwise.
func WithCharmap(cm *charmap.Charmap) Option {
	return func(o *Options) { o.charmap = cm }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		comma:  DefaultComma,
	}
	for _, fn := range opts {
		fn(&o)
	}

	return o
}
