package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sant0-9/intelligenn/internal/export"
)

// resultChrome is the number of lines above and below the result body
const resultChrome = 6

func (a *App) renderResults() string {
	res := a.state.result
	if res == nil {
		return a.renderSearch()
	}

	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render(res.Company)
	meta := styleSubtitle.Render(fmt.Sprintf("  %s / %s  %s  %s",
		res.Provider, res.Profile, strings.ToUpper(res.Language), usageSummary(res)))
	b.WriteString(a.center(title + meta))
	b.WriteString("\n")
	b.WriteString(a.center(a.renderTabs()))
	b.WriteString("\n\n")

	b.WriteString(a.state.body.View())
	b.WriteString("\n\n")

	status := "[Tab] Switch  [r] Raw  [s] Save  [Ctrl+R] Refresh  [n] New  [Ctrl+L] EN/DA  [Esc] Back"
	if a.state.raw {
		status = "[Tab] Switch  [r] Cards  [s] Save  [Ctrl+R] Refresh  [n] New  [Ctrl+L] EN/DA  [Esc] Back"
	}
	line := styleStatusBar.Render(status)
	if a.state.notice != "" {
		line = lipgloss.NewStyle().Foreground(colorSuccess).Render(a.state.notice) + "  " + line
	}
	b.WriteString(a.center(line))

	return b.String()
}

func (a *App) renderTabs() string {
	t := textsFor(a.state.lang)
	labels := []string{t.TabInsights, t.TabScript, t.TabSources}
	if a.state.result != nil {
		if n := len(a.state.result.Citations); n > 0 {
			labels[tabSources] = fmt.Sprintf("%s (%d)", t.TabSources, n)
		}
	}

	var rendered []string
	for i, l := range labels {
		if tab(i) == a.state.activeTab {
			rendered = append(rendered, styleTabActive.Render(l))
			continue
		}
		rendered = append(rendered, styleTab.Render(l))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// refreshBody resizes the result viewport and fills it with the active tab.
func (a *App) refreshBody() {
	a.state.body.Width = a.width
	a.state.body.Height = max(3, a.height-resultChrome)

	res := a.state.result
	if res == nil {
		a.state.body.SetContent("")
		return
	}

	width := a.contentWidth()
	var content string
	switch a.state.activeTab {
	case tabInsights:
		content = a.renderReport(res.Insights, true, width)
	case tabScript:
		content = a.renderReport(res.Script, false, width)
	case tabSources:
		content = renderSources(res.Citations, width, textsFor(a.state.lang).NoSources)
	}

	margin := max(0, (a.width-width)/2)
	a.state.body.SetContent(lipgloss.NewStyle().MarginLeft(margin).Render(content))
}

func (a *App) renderReport(text string, insights bool, width int) string {
	if a.state.raw {
		out, err := export.RenderTerminal(text, width)
		if err != nil {
			a.logger.Debug("markdown render failed", zap.Error(err))
			return text
		}
		return strings.TrimRight(out, "\n")
	}

	memo := &a.state.script
	if insights {
		memo = &a.state.insights
	}
	return RenderCards(memo.Render(text), width)
}
