package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/caarlos0/env/v11"
)

var errUsage = errors.New("usage error")

// config holds the resolved settings. Environment variables supply the
// defaults and command-line flags override them.
type config struct {
	CatalogDir    string `env:"I18N_CATALOG_DIR" envDefault:"i18n"`
	DefaultLocale string `env:"I18N_DEFAULT_LOCALE" envDefault:"en"`
	CatalogFormat string `env:"I18N_CATALOG_FORMAT" envDefault:"json"`
	Output        string `env:"I18N_OUTPUT" envDefault:"text"`
	ShowValues    bool   `env:"I18N_SHOW_VALUES"`
	Verbose       bool   `env:"I18N_VERBOSE"`
	NoColor       bool

	format catalogFormat
}

func parseConfig(args []string, stderr io.Writer) (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", errUsage, err)
	}

	fs := flag.NewFlagSet("i18n-check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(fs) }
	fs.StringVar(&cfg.CatalogDir, "catalog-dir", cfg.CatalogDir, "Directory containing locale catalog files")
	fs.StringVar(&cfg.DefaultLocale, "default-locale", cfg.DefaultLocale, "Locale code that serves as the canonical source")
	fs.StringVar(&cfg.CatalogFormat, "catalog-format", cfg.CatalogFormat, "Catalog file format: "+strings.Join(formatNames(), ", "))
	fs.StringVar(&cfg.Output, "output", cfg.Output, "Output format: text, json")
	fs.BoolVar(&cfg.ShowValues, "show-values", cfg.ShowValues, "Print the reference value next to each missing key")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Log each catalog as it is loaded")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, err
		}
		return cfg, fmt.Errorf("%w: %v", errUsage, err)
	}

	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("%w: unexpected arguments: %s", errUsage, strings.Join(fs.Args(), " "))
	}
	if cfg.CatalogDir == "" {
		return cfg, fmt.Errorf("%w: --catalog-dir must not be empty", errUsage)
	}
	if err := validateLocale(cfg.DefaultLocale); err != nil {
		return cfg, fmt.Errorf("%w: --default-locale: %v", errUsage, err)
	}
	f, err := lookupFormat(cfg.CatalogFormat)
	if err != nil {
		return cfg, fmt.Errorf("%w: --catalog-format: %v", errUsage, err)
	}
	cfg.format = f
	switch cfg.Output {
	case "text", "json":
	default:
		return cfg, fmt.Errorf("%w: --output must be text or json, got %q", errUsage, cfg.Output)
	}
	return cfg, nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintln(fs.Output(), `Usage: i18n-check [flags]

Compares every locale catalog in the catalog directory against the default
locale and lists the keys each one is missing. Exits 1 when any catalog is
missing keys or cannot be loaded.

Flags:`)
	fs.PrintDefaults()
}
