package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/intelligenn/internal/analysis"
	"github.com/sant0-9/intelligenn/internal/report"
)

// minPairWidth is the narrowest terminal that still places two normal cards
// side by side.
const minPairWidth = 80

var iconGlyphs = map[string]string{
	report.IconGeneric:  "*",
	report.IconCompany:  "#",
	report.IconDecision: "@",
	report.IconPension:  "$",
	report.IconScript:   ">",
}

var (
	styleCardHeading = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleSubheading  = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
	styleKey         = lipgloss.NewStyle().Foreground(colorMuted)
	styleBold        = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleLink        = lipgloss.NewStyle().Foreground(colorSecondary).Underline(true)
	styleFooter      = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	styleTheySay     = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	styleYouSay      = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	styleTarget      = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
)

// RenderCards lays out report cards for a terminal width columns wide.
// Wide cards take a full row; normal cards are paired two per row when the
// terminal is wide enough.
func RenderCards(cards []report.Card, width int) string {
	if width < 20 {
		width = 20
	}
	pair := width >= minPairWidth
	half := (width - 1) / 2

	var rows []string
	var pending []report.Card
	flush := func() {
		switch len(pending) {
		case 1:
			rows = append(rows, renderCard(pending[0], width))
		case 2:
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
				renderCard(pending[0], half), " ", renderCard(pending[1], half)))
		}
		pending = pending[:0]
	}

	for _, c := range cards {
		if c.Wide || !pair {
			flush()
			rows = append(rows, renderCard(c, width))
			continue
		}
		pending = append(pending, c)
		if len(pending) == 2 {
			flush()
		}
	}
	flush()

	return strings.Join(rows, "\n")
}

// WriteCards writes both sub-reports of res as card layouts, followed by the
// numbered sources when there are any.
func WriteCards(w io.Writer, res *analysis.Result, width int) error {
	t := textsFor(res.Language)
	section := func(title string) string {
		return styleLogo.Render(strings.ToUpper(title)) + "\n\n"
	}

	var b strings.Builder
	if res.Company != "" {
		b.WriteString(styleCardHeading.Render(res.Company) + "\n\n")
	}
	b.WriteString(section(t.TabInsights))
	b.WriteString(RenderCards(report.Render(res.Insights), width))
	b.WriteString("\n\n")
	b.WriteString(section(t.TabScript))
	b.WriteString(RenderCards(report.Render(res.Script), width))
	b.WriteString("\n")
	if len(res.Citations) > 0 {
		b.WriteString("\n")
		b.WriteString(section(t.TabSources))
		b.WriteString(renderSources(res.Citations, width, t.NoSources))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderCard(c report.Card, width int) string {
	border := colorMuted
	switch c.Category {
	case report.CategoryPsychProfile:
		border = colorPrimary
	case report.CategoryGoldenHook:
		border = colorWarning
	case report.CategoryExecutiveSummary:
		border = colorSecondary
	case report.CategoryObjectionHandling:
		border = colorError
	}

	// content width inside border and padding
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	var lines []string
	lines = append(lines, styleCardHeading.Render(cardHeading(c)), "")
	for _, u := range c.Units {
		lines = append(lines, renderUnit(u, inner))
	}
	if c.Footer != "" {
		lines = append(lines, "", styleFooter.Render(c.Footer))
	}

	return styleBox.Copy().
		Width(width - 2).
		BorderForeground(border).
		Render(strings.Join(lines, "\n"))
}

func cardHeading(c report.Card) string {
	if c.Category != report.CategoryStandard {
		return strings.ToUpper(c.Heading)
	}
	glyph, ok := iconGlyphs[c.Icon]
	if !ok {
		glyph = iconGlyphs[report.IconGeneric]
	}
	return fmt.Sprintf("%s %s", glyph, c.Heading)
}

func renderUnit(u report.Unit, width int) string {
	wrap := lipgloss.NewStyle().Width(width)

	switch u.Kind {
	case report.UnitSubheading:
		return "\n" + styleSubheading.Render(strings.ToUpper(u.Text))

	case report.UnitKeyValue:
		return wrap.Render(styleKey.Render(u.Key+": ") + renderSegments(u.Value))

	case report.UnitBullet:
		return lipgloss.JoinHorizontal(lipgloss.Top,
			styleKey.Render("• "),
			lipgloss.NewStyle().Width(width-2).Render(renderSpans(u.Spans)))

	case report.UnitTargetProfile:
		return styleTarget.Render(strings.ToUpper(u.Label)) + "\n" +
			wrap.Render(renderSpans(u.Spans))

	case report.UnitObjection:
		return "\n" + styleTheySay.Render(u.Label+":") + "\n" + wrap.Render(u.Text)

	case report.UnitRebuttal:
		text := u.Text
		if u.Quoted {
			text = `"` + text + `"`
		}
		return styleYouSay.Render(u.Label+":") + "\n" +
			wrap.Copy().
				Border(lipgloss.ThickBorder(), false, false, false, true).
				BorderForeground(colorSuccess).
				PaddingLeft(1).
				Width(width-2).
				Render(text)

	default:
		return wrap.Render(renderSpans(u.Spans))
	}
}

func renderSpans(spans []report.Span) string {
	var b strings.Builder
	for _, sp := range spans {
		if sp.Bold {
			b.WriteString(styleBold.Render(sp.Text))
			continue
		}
		b.WriteString(sp.Text)
	}
	return b.String()
}

// renderSegments shows each link as its label followed by the URL.
func renderSegments(segs []report.Segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.IsLink() {
			b.WriteString(styleLink.Render(s.Label))
			b.WriteString(" <" + s.URL + ">")
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

// renderSources draws the numbered source list.
func renderSources(citations []report.Citation, width int, empty string) string {
	if len(citations) == 0 {
		return styleSubtitle.Render(empty)
	}

	var lines []string
	for i, c := range citations {
		num := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render(fmt.Sprintf("%2d.", i+1))
		title := styleBold.Render(truncate(c.Title, max(10, width-6)))
		lines = append(lines,
			num+" "+title,
			"    "+styleLink.Render(c.Host()),
			"    "+styleSubtitle.Render(truncate(c.URI, max(10, width-6))),
			"",
		)
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
