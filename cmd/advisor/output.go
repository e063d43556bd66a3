package main

import (
	"fmt"
	"io"
	"os"

	"llm-stock-advisor/internal/report"
)

const (
	formatTerminal = "term"
	formatMarkdown = "md"
	formatHTML     = "html"
)

func validFormat(f string) bool {
	return f == formatTerminal || f == formatMarkdown || f == formatHTML
}

// emit renders md in the requested format to path, or stdout when path is empty.
func emit(path, format, title, md string) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch format {
	case formatHTML:
		return report.HTML(w, title, md)
	case formatMarkdown:
		_, err := io.WriteString(w, md)
		return err
	default:
		if path != "" {
			// Escape codes make no sense in a file.
			_, err := io.WriteString(w, md)
			return err
		}
		out, err := report.Terminal(md)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, out)
		return err
	}
}
