package report

import "strings"

// Section is a titled group of non-empty body lines
type Section struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// SplitSections splits report text into ordered sections.
//
// A chunk starts at the beginning of the text and at every line that begins
// with HeadingMarker. Body lines keep their original text; only lines that are
// blank after trimming are dropped, and sections without body lines are
// dropped entirely.
func SplitSections(text string) []Section {
	var sections []Section
	for i, chunk := range splitChunks(text) {
		title := ""
		body := chunk

		first := chunk[0]
		if strings.HasPrefix(trimSpace(first), HeadingMarker) {
			title = trimSpace(replaceFirst(headingPrefix, first))
			body = chunk[1:]
		} else if i == 0 && trimSpace(strings.Join(chunk, "\n")) != "" && !strings.HasPrefix(first, "###") {
			title = ExecutiveSummaryTitle
		}

		lines := nonEmpty(body)
		if len(lines) == 0 {
			continue
		}
		sections = append(sections, Section{Title: title, Lines: lines})
	}
	return sections
}

// splitChunks breaks text into runs of lines, each run but the first starting
// at a heading line. The newline before a heading belongs to neither chunk.
func splitChunks(text string) [][]string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}

	var chunks [][]string
	start := 0
	for i := 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], HeadingMarker) {
			chunks = append(chunks, lines[start:i])
			start = i
		}
	}
	return append(chunks, lines[start:])
}

func nonEmpty(lines []string) []string {
	var out []string
	for _, l := range lines {
		if trimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}
