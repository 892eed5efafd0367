package report

import (
	"fmt"
	"strings"
)

// UnitKind is the render form of one body line
type UnitKind int

const (
	UnitParagraph UnitKind = iota
	UnitSubheading
	UnitKeyValue
	UnitBullet
	UnitTargetProfile
	UnitObjection
	UnitRebuttal
)

var unitKindNames = map[UnitKind]string{
	UnitParagraph:     "paragraph",
	UnitSubheading:    "subheading",
	UnitKeyValue:      "key_value",
	UnitBullet:        "bullet",
	UnitTargetProfile: "target_profile",
	UnitObjection:     "objection",
	UnitRebuttal:      "rebuttal",
}

func (k UnitKind) String() string {
	if name, ok := unitKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k UnitKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *UnitKind) UnmarshalText(b []byte) error {
	for kind, name := range unitKindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown unit kind %q", b)
}

// Fixed labels and card headings
const (
	LabelTargetProfile = "Target Profile"
	LabelTheySay       = "They Say"
	LabelYouSay        = "You Say"

	HeadingPsychProfile  = "Psychological Intel"
	HeadingGoldenHook    = `The "Golden Hook"`
	HeadingDealPotential = "Deal Potential"

	GoldenHookFooter = "*Verified via public records"
)

// Unit is one rendered body line.
//
// Subheading, objection and rebuttal units carry Text. Key-value units carry
// Key and link-segmented Value. Bullet, paragraph and target-profile units
// carry bold-expanded Spans.
type Unit struct {
	Kind   UnitKind  `json:"kind"`
	Label  string    `json:"label,omitempty"`
	Text   string    `json:"text,omitempty"`
	Key    string    `json:"key,omitempty"`
	Value  []Segment `json:"value,omitempty"`
	Spans  []Span    `json:"spans,omitempty"`
	Quoted bool      `json:"quoted,omitempty"`
}

// Card is the render descriptor for one section
type Card struct {
	Title    string   `json:"title"`
	Heading  string   `json:"heading"`
	Category Category `json:"category"`
	Wide     bool     `json:"wide"`
	Icon     string   `json:"icon,omitempty"`
	Units    []Unit   `json:"units"`
	Footer   string   `json:"footer,omitempty"`
}

// Render splits text into sections and renders each one.
func Render(text string) []Card {
	sections := SplitSections(text)
	cards := make([]Card, 0, len(sections))
	for _, s := range sections {
		cards = append(cards, RenderSection(s))
	}
	return cards
}

// RenderSection classifies a section and renders its body.
func RenderSection(s Section) Card {
	card := Card{
		Title:    s.Title,
		Heading:  s.Title,
		Category: Categorize(s.Title),
	}

	switch card.Category {
	case CategoryPsychProfile:
		card.Heading = HeadingPsychProfile
		for _, line := range s.Lines {
			if strings.Contains(strings.ToLower(line), "likely personality") {
				card.Units = append(card.Units, targetProfile(line))
				continue
			}
			card.Units = append(card.Units, RenderLine(line))
		}

	case CategoryGoldenHook:
		card.Heading = HeadingGoldenHook
		card.Units = renderLines(s.Lines)
		card.Footer = GoldenHookFooter

	case CategoryExecutiveSummary:
		card.Heading = HeadingDealPotential
		card.Wide = true
		card.Units = renderLines(s.Lines)

	case CategoryObjectionHandling:
		card.Wide = true
		for _, line := range s.Lines {
			card.Units = append(card.Units, renderObjectionLine(line))
		}

	default:
		card.Wide = IsWide(s)
		card.Icon = IconTag(s.Title)
		card.Units = renderLines(s.Lines)
	}

	return card
}

// RenderLine renders a line outside of objection handling.
func RenderLine(line string) Unit {
	trimmed := trimSpace(line)

	switch ClassifyLine(line, false) {
	case LineSubheading:
		return Unit{Kind: UnitSubheading, Text: trimSpace(subheadingPrefix.ReplaceAllString(trimmed, ""))}
	case LineKeyValue:
		key, value, _ := ParseKeyValue(line)
		return Unit{Kind: UnitKeyValue, Key: key, Value: SegmentLinks(value)}
	case LineBullet:
		return Unit{Kind: UnitBullet, Spans: ExpandBold(bulletPrefix.ReplaceAllString(trimmed, ""))}
	default:
		return Unit{Kind: UnitParagraph, Spans: ExpandBold(line)}
	}
}

func renderLines(lines []string) []Unit {
	units := make([]Unit, 0, len(lines))
	for _, line := range lines {
		units = append(units, RenderLine(line))
	}
	return units
}

// targetProfile shows everything after the first colon, or the whole line
// when there is no colon or nothing follows it.
func targetProfile(line string) Unit {
	value := line
	if _, after, found := strings.Cut(line, ":"); found && after != "" {
		value = after
	}
	return Unit{
		Kind:  UnitTargetProfile,
		Label: LabelTargetProfile,
		Spans: ExpandBold(trimSpace(value)),
	}
}

func renderObjectionLine(line string) Unit {
	switch ClassifyLine(line, true) {
	case LineObjection:
		return Unit{
			Kind:  UnitObjection,
			Label: LabelTheySay,
			Text:  trimSpace(replaceFirst(objectionPrefix, line)),
		}
	case LineRebuttal:
		return Unit{
			Kind:   UnitRebuttal,
			Label:  LabelYouSay,
			Text:   trimSpace(replaceFirst(rebuttalPrefix, line)),
			Quoted: true,
		}
	default:
		return RenderLine(line)
	}
}
