package cmd

import (
	"context"
	"flag"

	"github.com/etnz/tracker/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	requestFlags
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "analyze a portfolio against a benchmark" }
func (*reportCmd) Usage() string {
	return `pst report -holdings "<ticker>: <amount>, ..." [-benchmark <ticker>] [-from <date>] [-to <date>] [-news <n>]

  Print the analysis of a portfolio bought on the start date: positions,
  returns against the benchmark, statistics, allocations and dividends.
  See 'pst topic methodology' for the details of each figure.
`
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, status := c.analyze(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(renderer.RenderReport(renderer.NewReport(a)))
	return subcommands.ExitSuccess
}
