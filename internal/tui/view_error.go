package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/intelligenn/internal/analysis"
	"github.com/sant0-9/intelligenn/internal/profile"
)

func (a *App) renderError() string {
	var b strings.Builder
	t := textsFor(a.state.lang)

	// Error icon and title
	title := lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true).
		Render(t.ErrorTitle)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Error message
	err := a.state.processingError
	if err == nil {
		err = a.state.providerError
	}
	errMsg := "Unknown error"
	if err != nil {
		errMsg = err.Error()
	}

	errBox := styleBox.Copy().
		Width(min(60, a.width-4)).
		BorderForeground(colorError).
		Render(errMsg)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, errBox))
	b.WriteString("\n\n")

	if suggestions := suggestionsFor(err); len(suggestions) > 0 {
		suggBox := styleBox.Copy().
			Width(min(60, a.width-4)).
			BorderForeground(colorMuted).
			Render("Suggestions:\n" + strings.Join(suggestions, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, suggBox))
		b.WriteString("\n\n")
	}

	// Actions
	status := styleStatusBar.Render("[r] Retry  [s] Settings  [n] New  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

// suggestionsFor maps an error to hints. The failure message shown for
// analysis errors is generic, so matching runs on the underlying cause.
func suggestionsFor(err error) []string {
	if err == nil {
		return nil
	}
	text := err.Error()
	var ae *analysis.Error
	if errors.As(err, &ae) && ae.Err != nil {
		text = ae.Err.Error()
	}
	errLower := strings.ToLower(text)

	var suggestions []string
	switch {
	case strings.Contains(errLower, "api key") || strings.Contains(errLower, "401") ||
		strings.Contains(errLower, "403") || strings.Contains(errLower, "unauthorized"):
		suggestions = append(suggestions, "Check your API key in ~/.config/intelligenn/config.yaml")
		suggestions = append(suggestions, "Or press [s] to open settings")
	case strings.Contains(errLower, "rate limit") || strings.Contains(errLower, "429") ||
		strings.Contains(errLower, "resource_exhausted"):
		suggestions = append(suggestions, "You've hit the API rate limit")
		suggestions = append(suggestions, "Wait a moment and try again")
	case strings.Contains(errLower, "ollama"):
		suggestions = append(suggestions, "Make sure Ollama is running: ollama serve")
		suggestions = append(suggestions, "Or switch to a cloud provider in settings")
	case strings.Contains(errLower, "connection") || strings.Contains(errLower, "connect") ||
		strings.Contains(errLower, "timeout") || strings.Contains(errLower, "deadline"):
		suggestions = append(suggestions, "Check your internet connection")
		suggestions = append(suggestions, "Or try again in a moment")
	case errors.Is(err, analysis.ErrEmptyCompany):
		suggestions = append(suggestions, "Type a company name and press Enter")
	case errors.Is(err, profile.ErrUnknown):
		suggestions = append(suggestions, "Pick an installed caller profile in settings")
	}
	return suggestions
}
