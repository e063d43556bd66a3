package report

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Terminal renders Markdown for a terminal. Extra options override the
// automatic style and 100-column wrap.
func Terminal(md string, opts ...glamour.TermRendererOption) (string, error) {
	opts = append([]glamour.TermRendererOption{
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	}, opts...)
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create terminal renderer: %w", err)
	}
	return r.Render(md)
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

const page = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2em auto; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: right; }
</style>
</head>
<body>
%s</body>
</html>
`

// HTML writes md as a standalone page.
func HTML(w io.Writer, title, md string) error {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(md), &body); err != nil {
		return fmt.Errorf("convert markdown: %w", err)
	}
	_, err := fmt.Fprintf(w, page, html.EscapeString(title), body.String())
	return err
}
