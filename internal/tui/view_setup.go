package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/intelligenn/internal/config"
)

const setupWidth = 68

var (
	styleGrounded = lipgloss.NewStyle().Foreground(colorSuccess)
	styleWarning  = lipgloss.NewStyle().Foreground(colorWarning)
)

func (a *App) renderSetup() string {
	if a.state.setupStep == 1 {
		if p := config.GetProvider(a.state.config.Provider); p != nil {
			return a.renderAPIKeyEntry(*p)
		}
	}
	return a.renderProviderSelection()
}

// renderProviderSelection lists the providers with their web research
// support. Only grounded providers fill the Sources tab.
func (a *App) renderProviderSelection() string {
	width := min(setupWidth, a.width-4)

	rows := make([]string, 0, len(config.Providers))
	for i, p := range config.Providers {
		rows = append(rows, providerRow(p, i == a.state.selectedProvider, width-4))
	}
	selected := config.Providers[max(0, min(a.state.selectedProvider, len(config.Providers)-1))]

	parts := []string{
		styleLogo.Render(logo),
		lipgloss.NewStyle().Foreground(colorWhite).Bold(true).Render("Choose your research provider:"),
		styleBox.Copy().Width(width).Render(strings.Join(rows, "\n")),
		groundingNote(selected, width),
		styleStatusBar.Render("[Up/Down] Navigate  [Enter] Select"),
	}
	return a.setupPage(parts)
}

func (a *App) renderAPIKeyEntry(p config.ProviderInfo) string {
	width := min(setupWidth, a.width-4)

	parts := []string{
		styleLogo.Render(logo),
		lipgloss.NewStyle().Foreground(colorWhite).Bold(true).
			Render(fmt.Sprintf("Enter your %s API key:", p.Name)),
	}
	if p.SignupURL != "" {
		parts = append(parts, styleSubtitle.Render("Get one at: "+p.SignupURL))
	}
	parts = append(parts,
		styleBox.Copy().Width(width).BorderForeground(colorSecondary).Render(a.state.apiKeyInput.View()),
		groundingNote(p, width),
		styleStatusBar.Render("[Enter] Continue  [Esc] Back"),
	)
	return a.setupPage(parts)
}

func providerRow(p config.ProviderInfo, selected bool, width int) string {
	cursor, mark := "  ", "[ ]"
	if selected {
		cursor, mark = "> ", "[x]"
	}

	web := "model only"
	if p.Grounded {
		web = "web + sources"
	}
	desc := truncate(p.Description, max(8, width-36))
	line := fmt.Sprintf("%s%s %-11s %-14s %s", cursor, mark, p.Name, web, desc)

	switch {
	case selected:
		return lipgloss.NewStyle().Foreground(colorSecondary).Bold(true).Render(line)
	case p.Grounded:
		return styleGrounded.Render(line)
	default:
		return lipgloss.NewStyle().Foreground(colorMuted).Render(line)
	}
}

// groundingNote tells what the selected provider does to the report
func groundingNote(p config.ProviderInfo, width int) string {
	if p.Grounded {
		return styleGrounded.Width(width).Align(lipgloss.Center).
			Render(p.Name + " researches the company on the web and cites its sources.")
	}
	return styleWarning.Width(width).Align(lipgloss.Center).
		Render(p.Name + " has no web search: reports rely on model knowledge and the Sources tab stays empty.")
}

func (a *App) setupPage(parts []string) string {
	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(a.center(part))
	}
	return a.centerVertically(b.String())
}

func (a *App) centerVertically(content string) string {
	padding := max(0, (a.height-strings.Count(content, "\n")-1)/2)
	return strings.Repeat("\n", padding) + content
}
