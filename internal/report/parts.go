package report

import (
	"net/url"
	"strings"
)

// Parts is a raw report split into its two sub-reports
type Parts struct {
	Insights string `json:"insights"`
	Script   string `json:"script"`
}

// Split separates the insights report from the call script on
// ScriptDelimiter. Without the delimiter the whole text is the insights part
// and the script is ScriptFallback. Text after a second delimiter is ignored.
func Split(raw string) Parts {
	if raw == "" {
		raw = NoContent
	}
	pieces := strings.Split(raw, ScriptDelimiter)
	p := Parts{
		Insights: trimSpace(pieces[0]),
		Script:   ScriptFallback,
	}
	if len(pieces) > 1 {
		p.Script = trimSpace(pieces[1])
	}
	return p
}

// Citation is a web source backing the report
type Citation struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// FilterCitations keeps citations that have both a URI and a title, in order.
func FilterCitations(in []Citation) []Citation {
	out := make([]Citation, 0, len(in))
	for _, c := range in {
		if c.URI != "" && c.Title != "" {
			out = append(out, c)
		}
	}
	return out
}

// Host returns the hostname of the citation URI, or the URI itself when it
// does not parse as an absolute URL.
func (c Citation) Host() string {
	u, err := url.Parse(c.URI)
	if err != nil || u.Hostname() == "" {
		return c.URI
	}
	return u.Hostname()
}
