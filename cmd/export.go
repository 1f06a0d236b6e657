package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/tracker/renderer"
	"github.com/google/subcommands"
)

type exportCmd struct {
	requestFlags
	output string
	format string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export a portfolio analysis to a file" }
func (*exportCmd) Usage() string {
	return `pst export -o <file> [-format md|html|json] -holdings "<ticker>: <amount>, ..." [-benchmark <ticker>] [-from <date>] [-to <date>]

  Write the analysis of a portfolio as a markdown report, a standalone HTML
  page or a JSON document. The format is guessed from the file extension
  unless -format is set. Use '-o -' to write to the standard output.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.requestFlags.SetFlags(f)
	f.StringVar(&c.output, "o", "", "Output file, '-' for the standard output")
	f.StringVar(&c.format, "format", "", "Export format: md, html or json")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.output == "" {
		fmt.Fprintln(os.Stderr, "Error: missing output file, use -o")
		return subcommands.ExitUsageError
	}
	format, err := c.exportFormat()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, status := c.analyze(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}

	var w io.Writer = os.Stdout
	if c.output != "-" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}
	if err := renderer.Export(w, a, format); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting to %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *exportCmd) exportFormat() (renderer.Format, error) {
	switch {
	case c.format != "":
		return renderer.ParseFormat(c.format)
	case c.output == "-":
		return renderer.Markdown, nil
	default:
		return renderer.FormatOf(c.output)
	}
}
