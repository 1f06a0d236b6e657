package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/tracker/server"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

type serveCmd struct {
	addr    string
	timeout time.Duration
	dev     bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the portfolio dashboard" }
func (*serveCmd) Usage() string {
	return `pst serve [-addr <host:port>]

  Serve a web form to analyze portfolios, the HTML reports and the
  /api/analysis JSON endpoint. Stop with Ctrl+C.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", ":8080", "Address to listen on")
	f.DurationVar(&c.timeout, "timeout", 2*time.Minute, "Maximum duration of a single analysis")
	f.BoolVar(&c.dev, "dev", false, "Development mode, responses are not compressed")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := zerolog.Ctx(ctx)
	provider, done, err := OpenProvider(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer done()

	srv := server.New(server.Config{
		Log:      *log,
		Provider: provider,
		Currency: currency(),
		Addr:     c.addr,
		Timeout:  c.timeout,
		DevMode:  c.dev,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()
	fmt.Fprintf(os.Stderr, "Serving the dashboard on %s\n", c.addr)

	select {
	case err := <-errc:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return subcommands.ExitFailure
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
