package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/intelligenn/internal/config"
)

var languageNames = map[string]string{
	config.LanguageEnglish: "English",
	config.LanguageDanish:  "Dansk",
}

func (a *App) renderSettings() string {
	switch a.state.settingsMode {
	case "provider":
		var names []string
		for _, p := range config.Providers {
			names = append(names, fmt.Sprintf("%-12s %s", p.Name, p.Description))
		}
		return a.renderSettingsList("Select Provider", "", names, providerIndex(a.state.config.Provider))
	case "model":
		provider := config.GetProvider(a.state.config.Provider)
		if provider == nil {
			return a.renderSettingsList("Select Model", "No provider selected", nil, -1)
		}
		return a.renderSettingsList("Select Model", "Provider: "+provider.Name,
			provider.Models, indexOf(provider.Models, a.state.config.Model))
	case "language":
		langs := []string{config.LanguageEnglish, config.LanguageDanish}
		names := []string{languageNames[langs[0]], languageNames[langs[1]]}
		return a.renderSettingsList("Report Language", "", names, indexOf(langs, a.state.config.Language))
	case "profile":
		names := a.profiles.List()
		desc := ""
		if dir := a.profiles.Dir(); dir != "" {
			desc = "Add your own in " + dir
		}
		return a.renderSettingsList("Caller Profile", desc, names, indexOf(names, a.state.config.Profile))
	case "apikey":
		return a.renderSettingsAPIKey()
	default:
		return a.renderSettingsMain()
	}
}

func (a *App) renderSettingsMain() string {
	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Settings")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	cfg := a.state.config
	provider := config.GetProvider(cfg.Provider)
	providerName := cfg.Provider
	grounding := "no"
	if provider != nil {
		providerName = provider.Name
		if provider.Grounded {
			grounding = "yes"
		}
	}

	configLines := []string{
		fmt.Sprintf("  Provider: %s", providerName),
		fmt.Sprintf("  Model:    %s", cfg.Model),
		fmt.Sprintf("  API Key:  %s", maskKey(cfg.APIKey)),
		fmt.Sprintf("  Language: %s", languageNames[cfg.Language]),
		fmt.Sprintf("  Profile:  %s", cfg.Profile),
		fmt.Sprintf("  Sources:  %s", grounding),
	}

	configBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(configLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, configBox))
	b.WriteString("\n\n")

	// Actions
	actions := []string{
		"  [p] Change provider",
		"  [m] Change model",
		"  [k] Update API key",
		"  [l] Report language",
		"  [f] Caller profile",
		"  [r] Reset setup",
	}
	actionsBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(actions, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, actionsBox))
	b.WriteString("\n\n")

	if a.state.notice != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render(a.state.notice)))
		b.WriteString("\n\n")
	}

	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsList(heading, desc string, items []string, current int) string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render(heading)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	if desc != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render(desc)))
		b.WriteString("\n\n")
	}
	if len(items) == 0 {
		return a.centerVertically(b.String())
	}

	var lines []string
	for i, item := range items {
		cursor := "  "
		if i == a.state.settingsSelected {
			cursor = "> "
		}
		// Mark current value
		if i == current {
			item += " (current)"
		}
		line := fmt.Sprintf("%s%s", cursor, item)
		if i == a.state.settingsSelected {
			line = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render(line)
		}
		lines = append(lines, line)
	}

	listBox := styleBox.Copy().
		Width(min(70, a.width-4)).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Up/Down] Navigate  [Enter] Select  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsAPIKey() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Update API Key")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	desc := styleSubtitle.Render("Enter your new API key")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, desc))
	b.WriteString("\n\n")

	inputBox := styleBox.Copy().
		Width(50).
		BorderForeground(colorPrimary).
		Render(a.state.settingsInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Enter] Save  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	cfg := a.state.config

	if a.state.settingsMode == "" {
		a.state.settingsSelected = 0
		switch msg.String() {
		case "p":
			a.state.settingsMode = "provider"
			a.state.settingsSelected = max(0, providerIndex(cfg.Provider))
		case "m":
			a.state.settingsMode = "model"
			if p := config.GetProvider(cfg.Provider); p != nil {
				a.state.settingsSelected = max(0, indexOf(p.Models, cfg.Model))
			}
		case "k":
			a.state.settingsMode = "apikey"
			a.state.settingsInput.Reset()
			a.state.settingsInput.EchoMode = textinput.EchoPassword
			a.state.settingsInput.Placeholder = "Paste your API key here..."
			a.state.settingsInput.Focus()
			return textinput.Blink, true
		case "l":
			a.state.settingsMode = "language"
			if cfg.Language == config.LanguageDanish {
				a.state.settingsSelected = 1
			}
		case "f":
			a.state.settingsMode = "profile"
			a.state.settingsSelected = max(0, indexOf(a.profiles.List(), cfg.Profile))
		case "r":
			a.state.setupStep = 0
			a.state.selectedProvider = max(0, providerIndex(cfg.Provider))
			a.view = viewSetup
		}
		return nil, true
	}

	if a.state.settingsMode == "apikey" {
		if !key.Matches(msg, keys.Enter) {
			return nil, false
		}
		cfg.APIKey = strings.TrimSpace(a.state.settingsInput.Value())
		a.state.settingsInput.Blur()
		a.state.settingsMode = ""
		return a.saveSettings(), true
	}

	count := a.settingsItemCount()
	switch {
	case key.Matches(msg, keys.Up):
		if a.state.settingsSelected > 0 {
			a.state.settingsSelected--
		}
	case key.Matches(msg, keys.Down):
		if a.state.settingsSelected < count-1 {
			a.state.settingsSelected++
		}
	case key.Matches(msg, keys.Enter):
		if count == 0 {
			return nil, true
		}
		return a.applySetting(), true
	}
	return nil, true
}

func (a *App) settingsItemCount() int {
	switch a.state.settingsMode {
	case "provider":
		return len(config.Providers)
	case "model":
		if p := config.GetProvider(a.state.config.Provider); p != nil {
			return len(p.Models)
		}
	case "language":
		return 2
	case "profile":
		return a.profiles.Count()
	}
	return 0
}

// applySetting stores the selected list item and persists the config.
func (a *App) applySetting() tea.Cmd {
	cfg := a.state.config
	sel := a.state.settingsSelected
	mode := a.state.settingsMode
	a.state.settingsMode = ""

	switch mode {
	case "provider":
		p := config.Providers[sel]
		if p.ID != cfg.Provider {
			cfg.Provider = p.ID
			cfg.Model = p.DefaultModel
			cfg.APIKey = ""
		}
		if p.NeedsAPIKey && cfg.APIKey == "" {
			a.state.settingsMode = "apikey"
			a.state.settingsInput.Reset()
			a.state.settingsInput.EchoMode = textinput.EchoPassword
			a.state.settingsInput.Focus()
			return textinput.Blink
		}
	case "model":
		cfg.Model = config.GetProvider(cfg.Provider).Models[sel]
	case "language":
		cfg.Language = []string{config.LanguageEnglish, config.LanguageDanish}[sel]
		a.state.setLanguage(cfg.Language)
	case "profile":
		cfg.Profile = a.profiles.List()[sel]
	}
	return a.saveSettings()
}

func maskKey(k string) string {
	switch {
	case k == "":
		return "Not set"
	case len(k) > 8:
		return k[:4] + "****" + k[len(k)-4:]
	default:
		return "****"
	}
}

func providerIndex(id string) int {
	for i, p := range config.Providers {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func indexOf(items []string, s string) int {
	for i, item := range items {
		if item == s {
			return i
		}
	}
	return -1
}
