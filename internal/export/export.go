// Package export writes finished analyses to files and terminals.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sant0-9/intelligenn/internal/analysis"
	"github.com/sant0-9/intelligenn/internal/report"
)

// Format selects an output encoding
type Format string

const (
	FormatCards    Format = "cards"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatTerminal Format = "terminal"
)

// Formats lists every supported format
var Formats = []Format{FormatCards, FormatJSON, FormatMarkdown, FormatTerminal}

// ParseFormat accepts a format name, case-insensitively. "md" is an alias
// for markdown.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCards, FormatJSON, FormatMarkdown, FormatTerminal:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format %q (want one of cards, json, markdown, terminal)", s)
	}
}

// Source is a numbered citation as shown to the user
type Source struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	URI    string `json:"uri"`
	Host   string `json:"host"`
}

// Document is the JSON form of an analysis: both sub-reports as render
// descriptors plus the numbered sources.
type Document struct {
	Company   string        `json:"company,omitempty"`
	Language  string        `json:"language,omitempty"`
	Profile   string        `json:"profile,omitempty"`
	Provider  string        `json:"provider,omitempty"`
	CreatedAt *time.Time    `json:"created_at,omitempty"`
	Insights  []report.Card `json:"insights"`
	Script    []report.Card `json:"script"`
	Sources   []Source      `json:"sources"`
}

// NewDocument renders res into a Document
func NewDocument(res *analysis.Result) *Document {
	doc := &Document{
		Company:  res.Company,
		Language: res.Language,
		Profile:  res.Profile,
		Provider: res.Provider,
		Insights: report.Render(res.Insights),
		Script:   report.Render(res.Script),
		Sources:  Sources(res.Citations),
	}
	if !res.CreatedAt.IsZero() {
		t := res.CreatedAt
		doc.CreatedAt = &t
	}
	return doc
}

// Sources numbers citations from 1 and resolves their hosts
func Sources(citations []report.Citation) []Source {
	out := make([]Source, 0, len(citations))
	for i, c := range citations {
		out = append(out, Source{
			Number: i + 1,
			Title:  c.Title,
			URI:    c.URI,
			Host:   c.Host(),
		})
	}
	return out
}

// WriteJSON writes the Document form of res as indented JSON
func WriteJSON(w io.Writer, res *analysis.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(res))
}

// WriteMarkdown writes the Markdown form of res
func WriteMarkdown(w io.Writer, res *analysis.Result) error {
	_, err := io.WriteString(w, Markdown(res))
	return err
}

// Markdown re-emits both sub-reports under their own headings, followed by
// the numbered source list.
func Markdown(res *analysis.Result) string {
	var b strings.Builder

	if res.Company != "" {
		b.WriteString(fmt.Sprintf("# %s\n\n", res.Company))
	}
	if !res.CreatedAt.IsZero() {
		b.WriteString(fmt.Sprintf("_Generated %s", res.CreatedAt.Format("2006-01-02 15:04")))
		if res.Provider != "" {
			b.WriteString(fmt.Sprintf(" by %s", res.Provider))
		}
		b.WriteString("_\n\n")
	}

	b.WriteString("## Insights\n\n")
	b.WriteString(res.Insights)
	b.WriteString("\n\n## Call Script\n\n")
	b.WriteString(res.Script)
	b.WriteString("\n")

	if len(res.Citations) > 0 {
		b.WriteString("\n## Sources\n\n")
		for _, s := range Sources(res.Citations) {
			b.WriteString(fmt.Sprintf("%d. [%s](%s) (%s)\n", s.Number, s.Title, s.URI, s.Host))
		}
	}

	return b.String()
}
