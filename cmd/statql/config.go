// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/encoding/charmap"
)

// Config is the statql TOML configuration.
type Config struct {
	Data   DataConfig   `toml:"data"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

// DataConfig selects the regression input: a CSV file or inline x/y.
type DataConfig struct {
	CSV        string      `toml:"csv"`
	Response   string      `toml:"response"`
	Predictors []string    `toml:"predictors"`
	Intercept  bool        `toml:"intercept"`
	Comma      string      `toml:"comma"`
	Encoding   string      `toml:"encoding"`
	X          [][]float64 `toml:"x"`
	Y          []float64   `toml:"y"`
}

// OutputConfig controls report formatting.
type OutputConfig struct {
	Color     bool   `toml:"color"`
	Lang      string `toml:"lang"`
	Precision int    `toml:"precision"`
}

// LogConfig controls the stderr logger.
type LogConfig struct {
	Level string `toml:"level"`
}

const (
	defaultLang      = "en"
	defaultPrecision = 4
	defaultLogLevel  = "warn"
	maxPrecision     = 15
)

var errConfig = errors.New("invalid config")

func defaultConfig() Config {
	return Config{
		Data:   DataConfig{Intercept: true},
		Output: OutputConfig{Color: true, Lang: defaultLang, Precision: defaultPrecision},
		Log:    LogConfig{Level: defaultLogLevel},
	}
}

// loadConfig decodes path over the defaults and validates the result.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q: %w", path, undecoded[0].String(), errConfig)
	}
	if meta.IsDefined("data", "csv") && meta.IsDefined("data", "x") {
		return Config{}, fmt.Errorf("%s: [data] sets both csv and x: %w", path, errConfig)
	}
	if meta.IsDefined("data", "x") != meta.IsDefined("data", "y") {
		return Config{}, fmt.Errorf("%s: [data].x and [data].y go together: %w", path, errConfig)
	}
	if meta.IsDefined("data", "csv") && strings.TrimSpace(cfg.Data.Response) == "" {
		return Config{}, fmt.Errorf("%s: missing [data].response: %w", path, errConfig)
	}
	if err = cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	if p := c.Output.Precision; p < 0 || p > maxPrecision {
		return fmt.Errorf("[output].precision %d outside 0..%d: %w", p, maxPrecision, errConfig)
	}
	if len(c.Data.X) > 0 {
		width := len(c.Data.X[0])
		for i, row := range c.Data.X {
			if len(row) != width || width == 0 {
				return fmt.Errorf("[data].x row %d has %d values, want %d: %w", i, len(row), width, errConfig)
			}
		}
		if len(c.Data.Y) != len(c.Data.X) {
			return fmt.Errorf("[data].y has %d values for %d rows: %w", len(c.Data.Y), len(c.Data.X), errConfig)
		}
	}
	if _, err := c.Data.comma(); err != nil {
		return err
	}
	if _, err := c.Data.charmap(); err != nil {
		return err
	}

	return nil
}

// comma returns the single-rune CSV separator; "" means the table default.
func (d DataConfig) comma() (rune, error) {
	switch r := []rune(d.Comma); len(r) {
	case 0:
		return ',', nil
	case 1:
		return r[0], nil
	default:
		if d.Comma == `\t` {
			return '\t', nil
		}
		return 0, fmt.Errorf("[data].comma %q is not a single character: %w", d.Comma, errConfig)
	}
}

// charmap maps the encoding name to a decoder; nil means UTF-8.
func (d DataConfig) charmap() (*charmap.Charmap, error) {
	switch strings.ToLower(strings.TrimSpace(d.Encoding)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "latin9", "iso-8859-15":
		return charmap.ISO8859_15, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("[data].encoding %q not supported: %w", d.Encoding, errConfig)
	}
}
