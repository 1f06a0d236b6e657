package renderer

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/etnz/tracker"
)

// Format is an export format.
type Format string

const (
	Markdown Format = "md"
	HTML     Format = "html"
	JSON     Format = "json"
)

// ParseFormat returns the format named s, "markdown" and "htm" are accepted too.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "md", "markdown":
		return Markdown, nil
	case "html", "htm":
		return HTML, nil
	case "json":
		return JSON, nil
	default:
		return "", fmt.Errorf("unknown export format %q, want md, html or json", s)
	}
}

// FormatOf guesses the format of a file from its extension.
func FormatOf(file string) (Format, error) { return ParseFormat(filepath.Ext(file)) }

// Export writes the analysis a to w in format f.
func Export(w io.Writer, a *tracker.Analysis, f Format) error {
	switch f {
	case Markdown:
		_, err := io.WriteString(w, RenderReport(NewReport(a)))
		return err
	case HTML:
		return ReportHTML(w, NewReport(a))
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}
