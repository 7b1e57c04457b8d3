// i18n-check reports translation keys that locale catalogs are missing
// compared to the default locale.
//
// Usage:
//
//	i18n-check [--catalog-dir i18n] [--default-locale en] [flags]
//
// Run "i18n-check -h" for the full list of flags.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one check and returns the process exit status: 0 when every
// catalog is complete, 1 when keys are missing or a catalog cannot be
// loaded, 2 on usage errors.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseConfig(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if cfg.NoColor {
		color.NoColor = true
	}

	r := buildReport(cfg, newLogger(stderr, cfg.Verbose))
	if err := writeReport(stdout, r, cfg.Output, cfg.ShowValues); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if !r.OK {
		return 1
	}
	return 0
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
