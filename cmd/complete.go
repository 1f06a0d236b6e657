package cmd

import (
	"flag"

	"github.com/etnz/tracker/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of pst, global flags included.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, g := range groups {
		for _, c := range g.commands {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(fs)
			root.Sub[c.Name()] = &complete.Command{
				Flags: flagPredictors(fs),
				Args:  argsPredictor(c.Name()),
			}
		}
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{}
	}
	return root
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) { flags[f.Name] = flagPredictor(f.Name) })
	return flags
}

func flagPredictor(name string) complete.Predictor {
	switch name {
	case "market":
		return predict.Files("*.jsonl")
	case "env", "o":
		return predict.Files("*")
	case "cache-dir":
		return predict.Dirs("*")
	case "format":
		return predict.Set{"md", "html", "json"}
	case "log-level":
		return predict.Set{"debug", "info", "warn", "error"}
	case "migrate", "dev":
		return predict.Nothing
	default:
		return predict.Something
	}
}

func argsPredictor(command string) complete.Predictor {
	switch command {
	case "import":
		return predict.Files("*.jsonl")
	case "topic":
		topics, err := docs.List()
		if err != nil {
			return predict.Nothing
		}
		return predict.Set(append(topics, "*"))
	default:
		return predict.Nothing
	}
}
