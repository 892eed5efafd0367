package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/intelligenn/internal/analysis"
)

var processingStages = []analysis.Stage{
	analysis.StagePreparing,
	analysis.StageResearching,
	analysis.StageParsing,
}

func (a *App) renderProcessing() string {
	var b strings.Builder
	t := textsFor(a.state.lang)

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render(a.state.spinner.View() + " " + t.Analyzing)
	b.WriteString(a.center(title))
	b.WriteString("\n\n")

	company := lipgloss.NewStyle().
		Foreground(colorWhite).
		Bold(true).
		Render(truncate(a.state.company, 60))
	b.WriteString(a.center(company))
	b.WriteString("\n\n")

	// Progress stages
	currentStage := 0
	if a.state.progress != nil {
		currentStage = a.state.progress.StageIndex
	}

	var stageLines []string
	for i, stage := range processingStages {
		var icon string
		var style lipgloss.Style

		if i < currentStage {
			icon = "[x]"
			style = lipgloss.NewStyle().Foreground(colorSuccess)
		} else if i == currentStage {
			icon = "[>]"
			style = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
		} else {
			icon = "[ ]"
			style = lipgloss.NewStyle().Foreground(colorMuted)
		}

		stageLines = append(stageLines, style.Render(fmt.Sprintf("  %s  %-12s", icon, stage)))
	}

	stagesBox := styleBox.Copy().
		Width(min(60, a.width-4)).
		Render(strings.Join(stageLines, "\n"))
	b.WriteString(a.center(stagesBox))
	b.WriteString("\n\n")

	msg := t.Loading
	if a.state.progress != nil && a.state.progress.Message != "" {
		msg = a.state.progress.Message
	}
	b.WriteString(a.center(styleSubtitle.Render(truncate(msg, 70))))
	b.WriteString("\n\n")

	elapsed := time.Since(a.state.startedAt).Truncate(time.Second)
	status := styleStatusBar.Render(fmt.Sprintf("%s  [Esc] Cancel", elapsed))
	b.WriteString(a.center(status))

	return a.centerVertically(b.String())
}
