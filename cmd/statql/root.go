// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const version = "0.1.0"

// globalOptions carries the persistent flags and the state derived from
// them before any subcommand runs.
type globalOptions struct {
	configPath string
	logLevel   string
	noColor    bool
	lang       string

	cfg     Config
	log     *slog.Logger
	printer *message.Printer
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	cmd := &cobra.Command{
		Use:   "statql",
		Short: "Least-squares regression on a tagged-array runtime",
		Long: `statql fits ordinary least-squares regressions with a from-scratch
Gram-Schmidt QR solver. Every array lives in an arena that is torn down at
exit, and the teardown report shows whether anything leaked.

Settings come from flags and, optionally, a TOML file (--config). Flags
given on the command line win over the file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.setup(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "TOML config file")
	pf.StringVar(&g.logLevel, "log-level", defaultLogLevel, "Log level: debug, info, warn or error")
	pf.BoolVar(&g.noColor, "no-color", false, "Disable colored output")
	pf.StringVar(&g.lang, "lang", defaultLang, "Language tag for number formatting (e.g. en, de, fr)")

	cmd.AddCommand(newLMCmd(g), newSimulateCmd(g))

	return cmd
}

// setup merges config and flags, then builds the logger and printer.
func (g *globalOptions) setup(cmd *cobra.Command) error {
	cfg := defaultConfig()
	if g.configPath != "" {
		loaded, err := loadConfig(g.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = g.logLevel
	}
	if flags.Changed("lang") {
		cfg.Output.Lang = g.lang
	}
	if g.noColor {
		cfg.Output.Color = false
	}
	if !cfg.Output.Color {
		color.NoColor = true
	}

	log, err := newLogger(cmd.ErrOrStderr(), cfg.Log.Level)
	if err != nil {
		return err
	}
	tag, err := language.Parse(cfg.Output.Lang)
	if err != nil {
		return fmt.Errorf("language %q: %w", cfg.Output.Lang, err)
	}

	g.cfg, g.log, g.printer = cfg, log, message.NewPrinter(tag)
	g.log.Debug("configuration loaded",
		slog.String("config", g.configPath),
		slog.String("lang", tag.String()),
		slog.Bool("color", cfg.Output.Color))

	return nil
}

func execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		os.Exit(1)
	}
}
