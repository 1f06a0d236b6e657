// Package agent implements an AI assistant answering questions about a portfolio analysis.
//
// The user talks to a facilitator that delegates to experts, each expert
// being a Gemini chat with its own instructions and function tools.
package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent runs the chat session between the user and the facilitator.
type Agent struct {
	w           io.Writer
	in          *bufio.Scanner
	Facilitator *Expert
	Experts     []*Expert
	// Render formats markdown answers before printing. Nil prints them verbatim.
	Render func(markdown string) string
}

// New returns an Agent printing to w and reading the user's questions from r,
// one per line. experts are the ones the facilitator can consult.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	a := &Agent{
		w:           w,
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
	}
	if r != nil {
		a.in = bufio.NewScanner(r)
	}
	return a
}

// Start opens a chat for the facilitator and every expert.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	experts := append([]*Expert{a.Facilitator}, a.Experts...)
	for _, e := range experts {
		if err := e.Start(ctx, client); err != nil {
			return fmt.Errorf("starting %s: %w", e.Name, err)
		}
	}
	return nil
}

const (
	prompt = "assist> "
	bye    = "bye"
)

var errDone = errors.New("end of session")

// Run reads questions until the user types "bye" or closes the input.
// queued questions are asked first, echoed as if typed.
func (a *Agent) Run(ctx context.Context, client *genai.Client, queued ...string) error {
	if !a.Facilitator.started() {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}
	fmt.Fprintf(a.w, "Welcome to pst assist, ask anything about your portfolio. Type '%s' to exit.\n", bye)

	for {
		question, err := a.next(&queued)
		if errors.Is(err, errDone) {
			return nil
		}
		if err != nil {
			return err
		}
		if question == "" {
			continue
		}
		if err := a.answer(ctx, question); err != nil {
			return err
		}
	}
}

// next prompts for the next question, taking it from queued first.
func (a *Agent) next(queued *[]string) (string, error) {
	fmt.Fprint(a.w, prompt)
	var line string
	switch {
	case len(*queued) > 0:
		line, *queued = (*queued)[0], (*queued)[1:]
		fmt.Fprintln(a.w, line)
	case a.in != nil && a.in.Scan():
		line = a.in.Text()
	case a.in != nil && a.in.Err() != nil:
		return "", a.in.Err()
	default:
		// Ctrl+D
		fmt.Fprintln(a.w)
		return "", errDone
	}
	line = strings.TrimSpace(line)
	if line == bye {
		return "", errDone
	}
	return line, nil
}

func (a *Agent) answer(ctx context.Context, question string) error {
	content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return err
	}
	reply := text(content)
	if a.Render != nil {
		reply = a.Render(reply)
	}
	_, err = fmt.Fprintln(a.w, reply)
	return err
}

// text concatenates the text parts of c.
func text(c *genai.Content) string {
	var b strings.Builder
	for _, p := range c.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
