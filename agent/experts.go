package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/docs"
	"github.com/etnz/tracker/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

func instruction(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

// newFacilitator returns the expert in charge of the conversation, it
// consults experts to answer.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and of solving the user's request.

			Learn about the experts' skills from the Tools and ask them questions.
			They are dedicated to you and keep the context of your previous questions.

			The user has just analysed a portfolio over a date range against a benchmark.
			They expect commentary about its performance, allocation, dividends and the news of its assets.
			Figures always come from the Analyst, never make them up.

			Devise a plan of questions to ask each expert and come up with the best response to the user's request.
			Answer in markdown.
		`),
		},
		Library: NewLibrary(experts),
	}
}

// NewTrader returns an expert grounded on Google Search.
func NewTrader() *Expert {
	return &Expert{
		Name: "Trader",
		Description: `This is an expert trader,
		very well aware of financial products, markets and companies,
		and of the latest news about them.
		Ask the Trader whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You are an expert in trading, you can search anything related to
			companies, markets, funds or economic events. You leverage Google Search to
			ground your assertions in a solid truth.
			You relate the latest news to the assets you are asked about.
			`),
		},
	}
}

// NewAnalyst returns an expert answering questions about a.
func NewAnalyst(a *tracker.Analysis) *Expert {
	lib := AnalystFunctions(a)
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It computed the analysis of the user's portfolio:
		positions, returns against the benchmark, dividends, allocations and statistics.
		Ask it for any figure about the user's portfolio.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(`
			You are the analyst of the user's portfolio.
			Use the Tools to read the report, the details of a position and the methodology of the computation.
			Other experts might ask you questions with an approximate language, figure out what they meant.
			Always state that the portfolio returns assume the initial weights are kept, and read the methodology
			when asked how a figure is computed.
			`),
		},
		Library: NewLibrary(lib),
	}
}

// AnalystFunctions returns the functions giving access to a.
func AnalystFunctions(a *tracker.Analysis) []Function {
	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Report",
				Description: "Report returns the complete portfolio report: overview, performance, statistics, allocations, dividends and news.",
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "The markdown report.",
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				return success(id, "Report", renderer.RenderReport(renderer.NewReport(a)))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Position",
				Description: "Position returns the details of a single asset of the portfolio: shares, prices, value, dividends, classification and weights.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"ticker": {
							Type:        genai.TypeString,
							Description: "The ticker of the asset, as typed by the user, for instance AAPL.",
						},
					},
					Required: []string{"ticker"},
				},
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A JSON object describing the position.",
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				ticker, err := stringArg(args, "ticker")
				if err != nil {
					return failure(id, "Position", err)
				}
				details, err := position(a, strings.ToUpper(strings.TrimSpace(ticker)))
				if err != nil {
					return failure(id, "Position", err)
				}
				return success(id, "Position", details)
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Methodology",
				Description: "Methodology explains how every figure of the report is computed, and its limits.",
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "The markdown documentation of the methodology.",
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				doc, err := docs.Topic("methodology")
				if err != nil {
					return failure(id, "Methodology", err)
				}
				return success(id, "Methodology", doc)
			},
		},
	}
}

type jdetails struct {
	tracker.Position
	Profile        tracker.Profile `json:"profile"`
	InitialWeight  float64         `json:"initial_weight"`
	CurrentWeight  float64         `json:"current_weight"`
	Dividends      int             `json:"dividend_payments"`
	DividendIncome tracker.Money   `json:"dividend_income"`
}

// position returns the JSON details of ticker in a.
func position(a *tracker.Analysis, ticker string) (string, error) {
	p, ok := a.Valuation.Position(ticker)
	if !ok {
		return "", fmt.Errorf("%q is not in the portfolio, use one of %s", ticker, strings.Join(a.Request.Portfolio.Tickers(), ", "))
	}
	d := jdetails{
		Position:      p,
		Profile:       a.Profiles[ticker],
		InitialWeight: tracker.InitialWeights(a.Request.Portfolio)[ticker],
		CurrentWeight: a.Valuation.CurrentWeights()[ticker],
	}
	if income, ok := a.Dividends.Income(ticker); ok {
		d.Dividends, d.DividendIncome = income.Count, income.Value
	}
	data, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
