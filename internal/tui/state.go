package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sant0-9/intelligenn/internal/analysis"
	"github.com/sant0-9/intelligenn/internal/config"
	"github.com/sant0-9/intelligenn/internal/report"
)

type tab int

const (
	tabInsights tab = iota
	tabScript
	tabSources
)

const tabCount = 3

type state struct {
	// Config
	config     *config.Config
	needsSetup bool
	lang       string

	// Setup wizard state
	setupStep        int
	selectedProvider int
	apiKeyInput      textinput.Model

	// Settings state
	settingsMode     string
	settingsSelected int
	settingsInput    textinput.Model

	// Processing
	company   string
	progress  *analysis.Progress
	runID     int
	cancel    context.CancelFunc
	spinner   spinner.Model
	startedAt time.Time

	// Result
	result    *analysis.Result
	activeTab tab
	raw       bool
	insights  report.Memo
	script    report.Memo
	body      viewport.Model
	notice    string

	// Input
	input textinput.Model

	// Analyzer
	analyzer        *analysis.Analyzer
	providerReady   bool
	providerError   error
	processingError error
}

func newState() *state {
	input := textinput.New()
	input.Placeholder = textsFor(config.LanguageEnglish).Placeholder
	input.CharLimit = 200
	input.Width = 56

	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	settingsInput := textinput.New()
	settingsInput.CharLimit = 200
	settingsInput.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleLogo

	return &state{
		lang:          config.LanguageEnglish,
		input:         input,
		apiKeyInput:   apiKey,
		settingsInput: settingsInput,
		spinner:       sp,
		body:          viewport.New(80, 20),
	}
}

// setLanguage switches the interface language and the placeholder with it.
func (s *state) setLanguage(lang string) {
	s.lang = lang
	s.input.Placeholder = textsFor(lang).Placeholder
}
