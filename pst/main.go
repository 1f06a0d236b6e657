// Command pst analyzes stock portfolios against a benchmark.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/tracker/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Exits when invoked by the shell for completion.
	cmd.Completion().Complete("pst")

	commander := subcommands.NewCommander(flag.CommandLine, "pst")
	cmd.Register(commander)

	flag.Parse()
	ctx := cmd.Init(context.Background())

	if name := flag.Arg(0); name != "" && !cmd.Known(name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(ctx)))
}
