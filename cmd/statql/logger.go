// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"
)

// newLogger returns a text logger on w at the named level
// (debug, info, warn or error).
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
