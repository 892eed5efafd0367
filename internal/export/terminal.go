package export

import (
	"io"

	"github.com/charmbracelet/glamour"

	"github.com/sant0-9/intelligenn/internal/analysis"
)

// RenderTerminal styles markdown for an ANSI terminal of the given width.
func RenderTerminal(markdown string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}

// WriteTerminal writes the Markdown form of res styled for a terminal.
func WriteTerminal(w io.Writer, res *analysis.Result, width int) error {
	out, err := RenderTerminal(Markdown(res), width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
