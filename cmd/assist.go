package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/tracker/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct {
	requestFlags
	apiKey string
}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "start an interactive session with the AI assistant about a portfolio analysis"
}
func (*assistCmd) Usage() string {
	return `pst assist -holdings "<ticker>: <amount>, ..." [-benchmark <ticker>] [-from <date>] [-to <date>] [<question>...]

  Analyze the portfolio and start a chat with an assistant that can read
  the report and search the latest news. Type 'bye' to exit.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	c.requestFlags.SetFlags(f)
	f.StringVar(&c.apiKey, "key", "", "Gemini API key. Defaults to $"+EnvGeminiKey)
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	key := setting(c.apiKey, EnvGeminiKey, "")
	if key == "" {
		fmt.Fprintf(os.Stderr, "Error: missing Gemini API key, use -key or set $%s\n", EnvGeminiKey)
		return subcommands.ExitUsageError
	}

	a, status := c.analyze(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: key, Backend: genai.BackendGeminiAPI})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	assistant := agent.New(os.Stdout, os.Stdin, agent.NewTrader(), agent.NewAnalyst(a))
	assistant.Render = renderMarkdown

	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}
	if err := assistant.Run(ctx, client, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
