package report

import (
	"fmt"
	"strings"
)

// Category is the semantic kind of a section, chosen from its title
type Category int

const (
	CategoryStandard Category = iota
	CategoryPsychProfile
	CategoryGoldenHook
	CategoryExecutiveSummary
	CategoryObjectionHandling
)

var categoryNames = map[Category]string{
	CategoryStandard:          "standard",
	CategoryPsychProfile:      "psych_profile",
	CategoryGoldenHook:        "golden_hook",
	CategoryExecutiveSummary:  "executive_summary",
	CategoryObjectionHandling: "objection_handling",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name.
func (c *Category) UnmarshalText(b []byte) error {
	for k, name := range categoryNames {
		if name == string(b) {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", b)
}

// Icon tags for standard sections
const (
	IconGeneric  = "generic"
	IconCompany  = "company"
	IconDecision = "decision"
	IconPension  = "pension"
	IconScript   = "script"
)

type categoryRule struct {
	category Category
	keywords []string
}

// categoryRules is evaluated top to bottom against the lowercased title;
// the first rule with a matching keyword wins.
var categoryRules = []categoryRule{
	{CategoryPsychProfile, []string{"psychological", "personality"}},
	{CategoryGoldenHook, []string{"golden", "hook"}},
	{CategoryExecutiveSummary, []string{"executive", "estimate"}},
	{CategoryObjectionHandling, []string{"objection"}},
}

// iconRules picks the icon of a standard section, first match wins.
var iconRules = []struct {
	keyword string
	icon    string
}{
	{"company", IconCompany},
	{"decision", IconDecision},
	{"pension", IconPension},
	{"script", IconScript},
}

// wideKeywords and wideLineThreshold decide the layout of a standard section
// independently of its icon.
var wideKeywords = []string{"pension", "script"}

const wideLineThreshold = 12

// Categorize classifies a section title.
func Categorize(title string) Category {
	t := strings.ToLower(title)
	for _, r := range categoryRules {
		if containsAny(t, r.keywords) {
			return r.category
		}
	}
	return CategoryStandard
}

// IconTag returns the icon tag for a standard section title.
func IconTag(title string) string {
	t := strings.ToLower(title)
	for _, r := range iconRules {
		if strings.Contains(t, r.keyword) {
			return r.icon
		}
	}
	return IconGeneric
}

// IsWide reports whether a standard section uses the wide layout.
func IsWide(s Section) bool {
	return containsAny(strings.ToLower(s.Title), wideKeywords) || len(s.Lines) > wideLineThreshold
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
