package report

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	// HeadingMarker opens a new section when it starts a line.
	HeadingMarker = "### "

	// SubheadingMarker marks a small label line inside a section body.
	SubheadingMarker = "## "

	// ScriptDelimiter separates the insights report from the call script.
	ScriptDelimiter = "---SCRIPT_SECTION---"

	// ExecutiveSummaryTitle is given to a leading chunk that has no heading.
	ExecutiveSummaryTitle = "Executive Summary"

	// EmptyValue is shown for a key-value line whose value is empty.
	EmptyValue = "—"

	// ScriptFallback replaces the script part when the delimiter is missing.
	ScriptFallback = "Script generation failed. Please try again."

	// NoContent stands in for an empty upstream response.
	NoContent = "No analysis generated."

	objectionToken = "**Objection**:"
	rebuttalToken  = "**Rebuttal**:"
)

// Character classes shared by the patterns below. space is ASCII whitespace
// plus the vertical tab, the Unicode space separators, the line and paragraph
// separators and the BOM. lineChar is anything but a line terminator, which
// keeps "." from crossing \r, U+2028 and U+2029.
const (
	space    = `[\s\x{0B}\p{Zs}\x{2028}\x{2029}\x{FEFF}]`
	lineChar = `[^\n\r\x{2028}\x{2029}]`
)

var (
	// headingPrefix matches the first "###" run and the whitespace after it,
	// unanchored, so leading indentation on the first line is tolerated.
	headingPrefix = regexp.MustCompile(`###` + space + `*`)

	// subheadingPrefix strips the "##" marker from an already trimmed line.
	subheadingPrefix = regexp.MustCompile(`^##` + space + `*`)

	// keyValuePattern is anchored at the start of the untrimmed line: an
	// optional single bullet character, optional whitespace, then a bold key
	// (non-greedy) immediately followed by a colon. The value is the rest of
	// the line after any whitespace.
	keyValuePattern = regexp.MustCompile(`^[-*]?` + space + `*\*\*(` + lineChar + `*?)\*\*:` + space + `*(` + lineChar + `*)`)

	// bulletPrefix strips the bullet marker from an already trimmed line.
	bulletPrefix = regexp.MustCompile(`^[-*]` + space + `*`)

	// boldPattern matches **text** spans, non-greedy, left to right, without
	// overlap. An unmatched "**" is left as literal text, and so is a pair
	// separated by a line terminator.
	boldPattern = regexp.MustCompile(`\*\*(` + lineChar + `*?)\*\*`)

	// urlPattern matches http:// or https:// followed by everything up to
	// whitespace, '<' or ')'. Trailing punctuation such as '.' or ',' stays
	// part of the URL.
	urlPattern = regexp.MustCompile(`https?://[^\s\x{0B}\p{Zs}\x{2028}\x{2029}\x{FEFF}<)]+`)

	// Case-insensitive strippers for the objection and rebuttal tags. Only the
	// first occurrence is removed.
	objectionPrefix = regexp.MustCompile(`(?i)\*\*Objection\*\*:` + space + `*`)
	rebuttalPrefix  = regexp.MustCompile(`(?i)\*\*Rebuttal\*\*:` + space + `*`)
)

// isSpace reports whether r is whitespace in the sense of space above.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', 0x2028, 0x2029, 0xFEFF:
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// trimSpace trims leading and trailing whitespace as matched by space.
func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// replaceFirst removes the first match of re in s.
func replaceFirst(re *regexp.Regexp, s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}
