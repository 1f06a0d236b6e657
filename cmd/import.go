package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tracker/pgstore"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

type importCmd struct {
	migrate bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import market files into the market database" }
func (*importCmd) Usage() string {
	return `pst -db <url> import [-migrate=false] <market.jsonl>...

  Load the securities, prices and dividends of market files into the
  Postgres database selected by -db or $DATABASE_URL. Existing records are
  replaced.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.migrate, "migrate", true, "Create the database tables first if needed")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: missing market file")
		return subcommands.ExitUsageError
	}
	url := setting(*databaseURL, EnvDatabaseURL, "")
	if url == "" {
		fmt.Fprintf(os.Stderr, "Error: missing database, use -db or set $%s\n", EnvDatabaseURL)
		return subcommands.ExitUsageError
	}

	store, err := pgstore.Open(ctx, url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	if c.migrate {
		if err := store.Migrate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating tables: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	for _, file := range f.Args() {
		m, err := decodeMarketFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := store.Import(ctx, m); err != nil {
			fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", file, err)
			return subcommands.ExitFailure
		}
		zerolog.Ctx(ctx).Info().Str("file", file).Int("securities", len(m.Tickers())).Msg("market file imported")
	}
	return subcommands.ExitSuccess
}
