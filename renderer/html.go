package renderer

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// converter leaves raw HTML out of the output: report text such as news
// titles and security names comes from data providers.
var converter = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ToHTML converts a markdown document into an HTML fragment.
func ToHTML(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := converter.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("cannot convert markdown to html: %w", err)
	}
	return template.HTML(buf.String()), nil
}

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 1100px; margin: 2em auto; padding: 0 1em; color: #222; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border-bottom: 1px solid #ddd; padding: .3em .8em; }
th { background: #f3f5f9; }
form input { margin: .2em .5em .2em 0; }
.error { color: #b00020; }
</style>
</head>
<body>
{{.Header}}
{{.Body}}
</body>
</html>
`))

// Page is a standalone HTML document.
type Page struct {
	Title  string
	Header template.HTML // optional content above the body, like a form
	Body   template.HTML
}

// WriteHTML writes p as a complete HTML document.
func WriteHTML(w io.Writer, p Page) error {
	return page.Execute(w, p)
}

// ReportHTML renders r as a complete HTML document.
func ReportHTML(w io.Writer, r *Report) error {
	body, err := ToHTML(RenderReport(r))
	if err != nil {
		return err
	}
	return WriteHTML(w, Page{
		Title: fmt.Sprintf("Portfolio Report from %s to %s", r.Window.From, r.Window.To),
		Body:  body,
	})
}
