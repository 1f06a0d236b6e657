package server

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
)

// Form is the user input of an analysis, as typed in the dashboard.
type Form struct {
	Holdings  string `json:"holdings"`
	Benchmark string `json:"benchmark"`
	From      string `json:"from"`
	To        string `json:"to"`
	News      string `json:"news,omitempty"`
}

// defaultForm returns the form pre-filled with an example.
func defaultForm() Form {
	to := date.Today()
	return Form{
		Holdings:  "AAPL: 1000, MSFT: 1000",
		Benchmark: "SPY",
		From:      to.Add(-365).String(),
		To:        to.String(),
		News:      "5",
	}
}

func formOf(q url.Values) Form {
	return Form{
		Holdings:  q.Get("holdings"),
		Benchmark: q.Get("benchmark"),
		From:      q.Get("from"),
		To:        q.Get("to"),
		News:      q.Get("news"),
	}
}

// IsZero reports whether nothing was typed in f.
func (f Form) IsZero() bool { return f == Form{} }

// Request validates f and returns the analysis request it describes.
func (f Form) Request(currency string) (tracker.Request, error) {
	var req tracker.Request
	p, err := tracker.ParseHoldings(f.Holdings, currency)
	if err != nil {
		return req, err
	}
	req.Portfolio = p
	req.Benchmark = strings.ToUpper(strings.TrimSpace(f.Benchmark))

	if req.Window.From, err = parseDate("start", f.From); err != nil {
		return req, err
	}
	if req.Window.To, err = parseDate("end", f.To); err != nil {
		return req, err
	}
	if f.News != "" {
		if req.News, err = strconv.Atoi(f.News); err != nil || req.News < 0 {
			return req, fmt.Errorf("invalid number of news %q: %w", f.News, tracker.ErrMalformedInput)
		}
	}
	return req, req.Validate()
}

func parseDate(name, value string) (date.Date, error) {
	if value == "" {
		return date.Date{}, fmt.Errorf("missing %s date: %w", name, tracker.ErrMalformedInput)
	}
	d, err := date.Parse(value)
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid %s date %q: %w", name, value, tracker.ErrMalformedInput)
	}
	return d, nil
}

var formTemplate = template.Must(template.New("form").Parse(`<h1>Portfolio Analysis</h1>
<form action="/report" method="get">
<label>Holdings <input name="holdings" size="50" value="{{.Form.Holdings}}" placeholder="AAPL: 1000, MSFT: 500"></label><br>
<label>Benchmark <input name="benchmark" size="8" value="{{.Form.Benchmark}}"></label>
<label>From <input type="date" name="from" value="{{.Form.From}}"></label>
<label>To <input type="date" name="to" value="{{.Form.To}}"></label>
<label>News <input type="number" name="news" min="0" max="20" value="{{.Form.News}}"></label>
<input type="submit" value="Analyze">
</form>
{{with .Error}}<p class="error">{{.}}</p>{{end}}
<hr>
`))

// formHTML renders the dashboard form with an optional error message.
func formHTML(f Form, message string) template.HTML {
	var buf bytes.Buffer
	// The template only fails on a write error, a buffer never fails.
	_ = formTemplate.Execute(&buf, struct {
		Form  Form
		Error string
	}{f, message})
	return template.HTML(buf.String())
}
