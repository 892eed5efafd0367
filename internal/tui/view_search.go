package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const logo = `
 ___       _       _ _ _  ____            _   _
|_ _|_ __ | |_ ___| | (_)/ ___| ___ _ __ | \ | |
 | || '_ \| __/ _ \ | | | |  _ / _ \ '_ \|  \| |
 | || | | | ||  __/ | | | |_| |  __/ | | | |\  |
|___|_| |_|\__\___|_|_|_|\____|\___|_| |_|_| \_|
`

func (a *App) renderSearch() string {
	t := textsFor(a.state.lang)

	logoRendered := styleLogo.Render(logo)
	subtitle := styleSubtitle.Render(t.Subtitle)

	boxWidth := min(64, a.width-4)

	readyTitle := lipgloss.NewStyle().
		Foreground(colorWhite).
		Bold(true).
		Width(boxWidth).
		Align(lipgloss.Center).
		Render(t.ReadyTitle)
	readyDesc := styleSubtitle.Copy().
		Width(boxWidth).
		Align(lipgloss.Center).
		Render(t.ReadyDesc)

	var badges []string
	for _, b := range t.Badges {
		badges = append(badges, styleBadge.Render(b))
	}
	badgeRow := lipgloss.JoinHorizontal(lipgloss.Top, badges...)
	if lipgloss.Width(badgeRow) > a.width {
		badgeRow = styleSubtitle.Render(strings.Join(t.Badges, "  |  "))
	}

	inputBox := styleBox.Copy().
		Width(boxWidth).
		BorderForeground(colorPrimary).
		Render(a.state.input.View())

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		logoRendered,
		subtitle,
		"",
		readyTitle,
		readyDesc,
		"",
		badgeRow,
		"",
		inputBox,
		a.providerStatus(),
	)

	statusBar := styleStatusBar.Render("[Enter] " + t.Analyze + "  [Ctrl+L] EN/DA  [Ctrl+S] Settings  /help  [Esc] Quit")

	mainArea := lipgloss.Place(
		a.width,
		a.height-2,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
	statusLine := lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar)

	return lipgloss.JoinVertical(lipgloss.Left, mainArea, statusLine)
}

// providerStatus is the one-line connection indicator under the search box
func (a *App) providerStatus() string {
	lang := strings.ToUpper(a.state.lang)
	name := a.state.config.Provider
	switch {
	case a.state.providerError != nil:
		return lipgloss.NewStyle().Foreground(colorError).
			Render("x " + name + ": " + truncate(a.state.providerError.Error(), 50))
	case a.state.providerReady && a.state.analyzer != nil:
		return lipgloss.NewStyle().Foreground(colorSuccess).
			Render("* " + a.state.analyzer.ProviderName() + " / " + a.state.config.Model + "  " + lang)
	default:
		return styleSubtitle.Render("connecting to " + name + "...  " + lang)
	}
}
