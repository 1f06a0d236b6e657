// Package cmd implements the pst command line application.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/tracker"
	"github.com/etnz/tracker/eodhd"
	"github.com/etnz/tracker/pgstore"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Environment variables read as flag defaults.
const (
	EnvMarketFile      = "PST_MARKET_FILE"
	EnvDatabaseURL     = "DATABASE_URL"
	EnvEODHDKey        = "EODHD_API_KEY"
	EnvGeminiKey       = "GEMINI_API_KEY"
	EnvDefaultCurrency = "PST_CURRENCY"
	EnvLogLevel        = "PST_LOG_LEVEL"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	envFile         = flag.String("env", ".env", "Environment file loaded at start, ignored if missing")
	marketFile      = flag.String("market", "", "Offline market file (JSONL). Defaults to $"+EnvMarketFile)
	databaseURL     = flag.String("db", "", "Postgres URL of the market database. Defaults to $"+EnvDatabaseURL)
	eodhdKey        = flag.String("eodhd-key", "", "EODHD API key. Defaults to $"+EnvEODHDKey)
	cacheDir        = flag.String("cache-dir", "", "Directory caching EODHD responses. Defaults to the user cache directory")
	defaultCurrency = flag.String("currency", "", "Currency of the invested amounts. Defaults to $"+EnvDefaultCurrency+" or USD")
	logLevel        = flag.String("log-level", "", "Log level: debug, info, warn or error. Defaults to $"+EnvLogLevel+" or warn")
)

type group struct {
	name     string
	commands []subcommands.Command
}

var groups = []group{
	{"analysis", []subcommands.Command{&reportCmd{}, &exportCmd{}, &assistCmd{}}},
	{"server", []subcommands.Command{&serveCmd{}}},
	{"market data", []subcommands.Command{&importCmd{}}},
	{"documentation", []subcommands.Command{&topicCmd{}}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	for _, g := range groups {
		for _, cmd := range g.commands {
			c.Register(cmd, g.name)
		}
	}
}

// Known reports whether name is a built-in subcommand.
func Known(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, g := range groups {
		for _, cmd := range g.commands {
			if cmd.Name() == name {
				return true
			}
		}
	}
	return false
}

// Init loads the environment file and returns ctx carrying the application logger.
//
// It must be called after the flags are parsed.
func Init(ctx context.Context) context.Context {
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: cannot load %s: %v\n", *envFile, err)
	}
	logger := NewLogger(setting(*logLevel, EnvLogLevel, "warn"), term.IsTerminal(int(os.Stderr.Fd())))
	return logger.WithContext(ctx)
}

// setting returns the flag value if set, the environment variable otherwise, and fallback at last.
func setting(value, env, fallback string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return fallback
}

func currency() string { return setting(*defaultCurrency, EnvDefaultCurrency, "USD") }

// OpenProvider opens the market data source selected by the global flags: the
// market file first, then the database, then the EODHD API.
//
// done must be called once the provider is no longer used.
func OpenProvider(ctx context.Context) (p tracker.Provider, done func(), err error) {
	log := zerolog.Ctx(ctx)
	if file := setting(*marketFile, EnvMarketFile, ""); file != "" {
		m, err := decodeMarketFile(file)
		if err != nil {
			return nil, nil, err
		}
		log.Debug().Str("file", file).Int("securities", len(m.Tickers())).Msg("using the offline market file")
		return m, func() {}, nil
	}
	if url := setting(*databaseURL, EnvDatabaseURL, ""); url != "" {
		s, err := pgstore.Open(ctx, url)
		if err != nil {
			return nil, nil, err
		}
		log.Debug().Msg("using the market database")
		return s, s.Close, nil
	}
	if key := setting(*eodhdKey, EnvEODHDKey, ""); key != "" {
		dir := *cacheDir
		if dir == "" {
			if d, err := os.UserCacheDir(); err == nil {
				dir = filepath.Join(d, "pst")
			}
		}
		log.Debug().Str("cache", dir).Msg("using the EODHD API")
		var opts []eodhd.Option
		if dir != "" {
			opts = append(opts, eodhd.WithCacheDir(dir))
		}
		return eodhd.New(key, opts...), func() {}, nil
	}
	return nil, nil, fmt.Errorf("no market data source: use -market, -db or -eodhd-key, or set $%s, $%s or $%s", EnvMarketFile, EnvDatabaseURL, EnvEODHDKey)
}

func decodeMarketFile(file string) (*tracker.Market, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := tracker.DecodeMarket(f)
	if err != nil {
		return nil, fmt.Errorf("decoding market file %q: %w", file, err)
	}
	return m, nil
}

// renderMarkdown formats md for the terminal, md is returned as is when stdout is not a terminal.
func renderMarkdown(md string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return md
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle("dark"), glamour.WithWordWrap(120))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func printMarkdown(md string) { fmt.Print(renderMarkdown(md)) }
