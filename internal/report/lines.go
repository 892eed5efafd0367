package report

import "strings"

// LineKind classifies a single body line
type LineKind int

const (
	LineParagraph LineKind = iota
	LineSubheading
	LineKeyValue
	LineBullet
	LineObjection
	LineRebuttal
)

var lineKindNames = map[LineKind]string{
	LineParagraph:  "paragraph",
	LineSubheading: "subheading",
	LineKeyValue:   "key_value",
	LineBullet:     "bullet",
	LineObjection:  "objection",
	LineRebuttal:   "rebuttal",
}

func (k LineKind) String() string {
	if name, ok := lineKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k LineKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ClassifyLine returns the kind of a body line. Objection and rebuttal tags
// are only recognised when inObjection is set, and then win over every other
// kind. Otherwise the order is subheading, key-value, bullet, paragraph.
func ClassifyLine(line string, inObjection bool) LineKind {
	if inObjection {
		if strings.Contains(line, objectionToken) {
			return LineObjection
		}
		if strings.Contains(line, rebuttalToken) {
			return LineRebuttal
		}
	}

	trimmed := trimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, SubheadingMarker):
		return LineSubheading
	case keyValuePattern.MatchString(line):
		return LineKeyValue
	case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
		return LineBullet
	default:
		return LineParagraph
	}
}

// ParseKeyValue extracts key and value from a key-value line. An empty value
// is returned as EmptyValue.
func ParseKeyValue(line string) (key, value string, ok bool) {
	m := keyValuePattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	value = m[2]
	if value == "" {
		value = EmptyValue
	}
	return m[1], value, true
}
