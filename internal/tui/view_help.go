package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderHelp() string {
	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Help")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Commands
	commands := []string{
		"  /help, /h      Show this help",
		"  /settings, /s  Open settings",
		"  /lang, /l      Switch English / Danish",
		"  /quit, /q      Quit intelligenn",
		"",
		"  Or type a company name to research it",
	}

	commandsBox := styleBox.Copy().
		Width(56).
		Render(strings.Join(commands, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, commandsBox))
	b.WriteString("\n\n")

	// Keyboard shortcuts
	shortcuts := []string{
		"  Esc            Go back / Quit",
		"  Enter          Generate intelligence",
		"  Ctrl+L         Switch English / Danish",
		"  Ctrl+S         Settings",
		"",
		"  Results",
		"  Tab, 1-3       Insights / Call Script / Sources",
		"  Up/Down, PgUp  Scroll",
		"  r              Cards or raw markdown",
		"  s              Save report as markdown",
		"  Ctrl+R         Research again, skipping the cache",
		"  n              New search",
	}

	shortcutsTitle := styleSubtitle.Render("Keyboard Shortcuts")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shortcutsTitle))
	b.WriteString("\n\n")

	shortcutsBox := styleBox.Copy().
		Width(56).
		Render(strings.Join(shortcuts, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shortcutsBox))
	b.WriteString("\n\n")

	// Instructions
	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}
