package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentLinks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Segment
	}{
		{
			name: "no links",
			in:   "no links here",
			want: []Segment{{Text: "no links here"}},
		},
		{
			name: "empty",
			in:   "",
			want: []Segment{{Text: ""}},
		},
		{
			name: "linkedin in the middle",
			in:   "See https://linkedin.com/in/x for info",
			want: []Segment{
				{Text: "See "},
				{Text: "https://linkedin.com/in/x", URL: "https://linkedin.com/in/x", Label: "LinkedIn Profile"},
				{Text: " for info"},
			},
		},
		{
			name: "stops at close paren",
			in:   "Jane (https://example.com) done",
			want: []Segment{
				{Text: "Jane ("},
				{Text: "https://example.com", URL: "https://example.com", Label: "Link"},
				{Text: ") done"},
			},
		},
		{
			name: "stops at angle bracket",
			in:   "http://b.com<br>",
			want: []Segment{
				{Text: "http://b.com", URL: "http://b.com", Label: "Link"},
				{Text: "<br>"},
			},
		},
		{
			name: "keeps trailing punctuation",
			in:   "Visit https://a.io/x.",
			want: []Segment{
				{Text: "Visit "},
				{Text: "https://a.io/x.", URL: "https://a.io/x.", Label: "Link"},
			},
		},
		{
			name: "two links",
			in:   "https://a.com and https://www.example.com/some/long/path",
			want: []Segment{
				{Text: "https://a.com", URL: "https://a.com", Label: "Link"},
				{Text: " and "},
				{Text: "https://www.example.com/some/long/path", URL: "https://www.example.com/some/long/path", Label: "Website"},
			},
		},
		{
			name: "stops at non-breaking space",
			in:   "https://a.com\u00a0next",
			want: []Segment{
				{Text: "https://a.com", URL: "https://a.com", Label: "Link"},
				{Text: "\u00a0next"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SegmentLinks(tt.in)
			assert.Equal(t, tt.want, got)

			var joined strings.Builder
			for _, s := range got {
				joined.WriteString(s.Text)
			}
			assert.Equal(t, tt.in, joined.String(), "segments must preserve every character")
		})
	}
}

func TestLinkLabel(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://dk.linkedin.com/in/someone-with-a-very-long-name", "LinkedIn Profile"},
		{"https://example.com/?u=mailto:someone", "Email"},
		{"https://www.example.com/about-us/team", "Website"},
		{"https://example.com", "Link"},
		{"https://example.com/exactly-30ch", "Website"},
		{"https://example.com/exactly-3c", "Link"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, LinkLabel(tt.url))
		})
	}
}

func TestExpandBold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Span
	}{
		{"plain", "plain text", []Span{{Text: "plain text"}}},
		{"unclosed", "**unclosed bold", []Span{{Text: "**unclosed bold"}}},
		{"single span", "**Driver** (Direct)", []Span{{Text: "Driver", Bold: true}, {Text: " (Direct)"}}},
		{
			name: "several spans",
			in:   "a **b** c **d**",
			want: []Span{{Text: "a "}, {Text: "b", Bold: true}, {Text: " c "}, {Text: "d", Bold: true}},
		},
		{
			name: "trailing unmatched marker",
			in:   "**a** **b",
			want: []Span{{Text: "a", Bold: true}, {Text: " **b"}},
		},
		{"empty span", "****", []Span{{Text: "", Bold: true}}},
		{"span does not cross carriage return", "**a\rb**", []Span{{Text: "**a\rb**"}}},
		{"span does not cross line separator", "**a\u2028b**", []Span{{Text: "**a\u2028b**"}}},
		{"span across nbsp", "**a\u00a0b**", []Span{{Text: "a\u00a0b", Bold: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandBold(tt.in))
		})
	}
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "a b c", PlainText(ExpandBold("a **b** c")))
}
