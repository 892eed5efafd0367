package report

import (
	"strings"
	"unicode/utf8"
)

// Span is a run of text, emphasized when Bold is set
type Span struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

// Segment is either plain text or a link. URL is empty for plain text.
type Segment struct {
	Text  string `json:"text"`
	URL   string `json:"url,omitempty"`
	Label string `json:"label,omitempty"`
}

// IsLink reports whether the segment is a detected URL.
func (s Segment) IsLink() bool {
	return s.URL != ""
}

// ExpandBold splits s into plain and bold spans. Text between a pair of "**"
// becomes a bold span; unbalanced markers stay in the plain text.
func ExpandBold(s string) []Span {
	matches := boldPattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return []Span{{Text: s}}
	}

	var spans []Span
	last := 0
	for _, m := range matches {
		if m[0] > last {
			spans = append(spans, Span{Text: s[last:m[0]]})
		}
		spans = append(spans, Span{Text: s[m[2]:m[3]], Bold: true})
		last = m[1]
	}
	if last < len(s) {
		spans = append(spans, Span{Text: s[last:]})
	}
	return spans
}

// SegmentLinks splits s into plain text and link segments in order. No
// characters are dropped; empty plain runs between or around links are
// omitted. Input without URLs yields a single plain segment.
func SegmentLinks(s string) []Segment {
	matches := urlPattern.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return []Segment{{Text: s}}
	}

	var segs []Segment
	last := 0
	for _, m := range matches {
		if m[0] > last {
			segs = append(segs, Segment{Text: s[last:m[0]]})
		}
		u := s[m[0]:m[1]]
		segs = append(segs, Segment{Text: u, URL: u, Label: LinkLabel(u)})
		last = m[1]
	}
	if last < len(s) {
		segs = append(segs, Segment{Text: s[last:]})
	}
	return segs
}

// LinkLabel picks the display label for a URL.
func LinkLabel(u string) string {
	switch {
	case strings.Contains(u, "linkedin.com"):
		return "LinkedIn Profile"
	case strings.Contains(u, "mailto:"):
		return "Email"
	case utf8.RuneCountInString(u) > 30:
		return "Website"
	default:
		return "Link"
	}
}

// PlainText flattens spans back to text without markup.
func PlainText(spans []Span) string {
	var b strings.Builder
	for _, sp := range spans {
		b.WriteString(sp.Text)
	}
	return b.String()
}
