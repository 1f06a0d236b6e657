// Package renderer turns a portfolio analysis into markdown, HTML or JSON documents.
package renderer

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

// Markdown templates, each one named after its file. report.md includes the
// others, one per section.
//
//go:embed templates/*.md
var templatesFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"lower": strings.ToLower,
}).ParseFS(templatesFS, "templates/*.md"))

// RenderReport renders r as a markdown document.
//
// Templates are checked by the tests, a failure is rendered in place of the
// report rather than returned.
func RenderReport(r *Report) string {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, "report.md", r); err != nil {
		return fmt.Sprintf("error rendering the report: %v", err)
	}
	return b.String()
}
