package tui

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sant0-9/intelligenn/internal/analysis"
	"github.com/sant0-9/intelligenn/internal/config"
	"github.com/sant0-9/intelligenn/internal/export"
	"github.com/sant0-9/intelligenn/internal/llm"
	"github.com/sant0-9/intelligenn/internal/logging"
	"github.com/sant0-9/intelligenn/internal/profile"
)

// analysisTimeout bounds one grounded research call.
const analysisTimeout = 3 * time.Minute

type view int

const (
	viewSearch view = iota
	viewSetup
	viewProcessing
	viewResults
	viewError
	viewSettings
	viewHelp
)

// Options configure the App. A nil Config starts the setup wizard.
type Options struct {
	Config   *config.Config
	Profiles *profile.Index
	Logger   *zap.Logger
}

type App struct {
	width    int
	height   int
	view     view
	prev     view
	state    *state
	profiles *profile.Index
	logger   *zap.Logger
	quitting bool
}

func NewApp(opts Options) *App {
	s := newState()

	if opts.Config == nil {
		s.needsSetup = true
		s.config = config.DefaultConfig()
	} else {
		s.config = opts.Config
	}
	s.setLanguage(s.config.Language)

	profiles := opts.Profiles
	if profiles == nil {
		profiles, _ = profile.NewIndex("")
	}

	return &App{
		view:     viewSearch,
		state:    s,
		profiles: profiles,
		logger:   logging.OrNop(opts.Logger).Named("tui"),
	}
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		a.view = viewSetup
		return tea.Batch(tea.WindowSize(), textinput.Blink)
	}

	return tea.Batch(
		tea.WindowSize(),
		textinput.Blink,
		a.testProvider(),
	)
}

func (a *App) testProvider() tea.Cmd {
	cfg := *a.state.config
	return func() tea.Msg {
		provider, err := llm.NewProvider(&cfg)
		if err != nil {
			return providerErrorMsg{err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := provider.Ping(ctx); err != nil {
			return providerErrorMsg{err}
		}

		return providerReadyMsg{provider}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := a.handleKey(msg)
		if handled {
			return a, cmd
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.refreshBody()

	case setupCompleteMsg:
		a.state.needsSetup = false
		a.view = viewSearch
		return a, a.testProvider()

	case setupErrorMsg:
		a.state.providerError = msg.error
		a.view = viewError
		return a, nil

	case settingsSavedMsg:
		a.state.notice = "Settings saved"
		return a, a.testProvider()

	case settingsErrorMsg:
		a.state.notice = msg.Error()
		return a, nil

	case providerReadyMsg:
		return a, a.onProviderReady(msg.provider)

	case providerErrorMsg:
		a.state.providerReady = false
		a.state.providerError = msg.error
		a.logger.Warn("provider check failed",
			zap.String("provider", a.state.config.Provider),
			zap.Error(msg.error))
		return a, nil

	case analysisProgressMsg:
		if msg.runID != a.state.runID {
			return a, nil
		}
		p := msg.progress
		a.state.progress = &p
		return a, waitForProgress(msg.runID, msg.ch)

	case analysisDoneMsg:
		if msg.runID != a.state.runID {
			return a, nil
		}
		a.state.cancel = nil
		a.state.result = msg.result
		a.state.notice = ""
		a.view = viewResults
		a.refreshBody()
		return a, nil

	case analysisErrorMsg:
		if msg.runID != a.state.runID {
			return a, nil
		}
		a.state.cancel = nil
		a.state.processingError = msg.error
		a.view = viewError
		return a, nil

	case savedMsg:
		a.state.notice = "Saved to " + msg.path
		return a, nil

	case saveErrorMsg:
		a.state.notice = "Save failed: " + msg.Error()
		return a, nil

	case spinner.TickMsg:
		if a.view != viewProcessing {
			return a, nil
		}
		var cmd tea.Cmd
		a.state.spinner, cmd = a.state.spinner.Update(msg)
		return a, cmd
	}

	// Update inputs and the result body based on view
	switch {
	case a.view == viewSetup && a.state.setupStep == 1:
		var cmd tea.Cmd
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewSettings && a.state.settingsMode == "apikey":
		var cmd tea.Cmd
		a.state.settingsInput, cmd = a.state.settingsInput.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewSearch:
		var cmd tea.Cmd
		a.state.input, cmd = a.state.input.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewResults:
		var cmd tea.Cmd
		a.state.body, cmd = a.state.body.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) onProviderReady(provider llm.Provider) tea.Cmd {
	analyzer, err := analysis.New(provider, a.profiles, analysis.Options{
		Model:             a.state.config.Model,
		CacheTTL:          a.state.config.CacheTTL,
		RequestsPerMinute: a.state.config.RequestsPerMinute,
		Logger:            a.logger,
	})
	if err != nil {
		a.state.providerError = err
		return nil
	}

	a.state.analyzer = analyzer
	a.state.providerReady = true
	a.state.providerError = nil
	a.state.input.Focus()
	return textinput.Blink
}

// handleKey processes a key press. handled reports that the key must not
// reach the focused input or viewport.
func (a *App) handleKey(msg tea.KeyMsg) (cmd tea.Cmd, handled bool) {
	if msg.String() == "ctrl+c" {
		a.cancelAnalysis()
		a.quitting = true
		return tea.Quit, true
	}

	if key.Matches(msg, keys.Quit) {
		return a.back(), true
	}

	switch a.view {
	case viewSetup:
		return a.handleSetupKey(msg)
	case viewSearch:
		return a.handleSearchKey(msg)
	case viewResults:
		return a.handleResultsKey(msg)
	case viewError:
		return a.handleErrorKey(msg)
	case viewSettings:
		return a.handleSettingsKey(msg)
	}

	return nil, false
}

// back handles Esc for the current view
func (a *App) back() tea.Cmd {
	switch a.view {
	case viewSettings:
		if a.state.settingsMode != "" {
			a.state.settingsMode = ""
			a.state.settingsInput.Blur()
			return nil
		}
		a.view = a.prev
		return nil
	case viewHelp:
		a.view = a.prev
		return nil
	case viewSetup:
		if a.state.setupStep == 1 {
			a.state.setupStep = 0
			a.state.apiKeyInput.Reset()
			return nil
		}
		if !a.state.needsSetup {
			a.view = viewSettings
			return nil
		}
	case viewProcessing:
		a.cancelAnalysis()
		a.view = viewSearch
		return nil
	case viewResults, viewError:
		a.view = viewSearch
		a.state.processingError = nil
		return textinput.Blink
	}
	a.quitting = true
	return tea.Quit
}

func (a *App) open(v view) {
	if a.view != viewSettings && a.view != viewHelp {
		a.prev = a.view
	}
	a.view = v
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Enter):
		return a.handleInput(), true
	case key.Matches(msg, keys.Language):
		a.state.setLanguage(nextLanguage(a.state.lang))
		return nil, true
	case key.Matches(msg, keys.Settings):
		a.open(viewSettings)
		return nil, true
	}
	return nil, false
}

func (a *App) handleInput() tea.Cmd {
	input := strings.TrimSpace(a.state.input.Value())
	if input == "" {
		return nil
	}

	// Handle slash commands
	if strings.HasPrefix(input, "/") {
		cmd := strings.ToLower(input)
		a.state.input.Reset()
		switch {
		case cmd == "/help" || cmd == "/h":
			a.open(viewHelp)
		case cmd == "/settings" || cmd == "/s":
			a.open(viewSettings)
		case cmd == "/lang" || cmd == "/l":
			a.state.setLanguage(nextLanguage(a.state.lang))
		case cmd == "/quit" || cmd == "/q":
			a.quitting = true
			return tea.Quit
		}
		return nil
	}

	if !a.state.providerReady {
		if a.state.providerError != nil {
			a.view = viewError
		}
		return nil
	}

	a.state.input.Reset()
	return a.startAnalysis(input)
}

func (a *App) startAnalysis(company string) tea.Cmd {
	a.cancelAnalysis()

	a.state.runID++
	a.state.company = company
	a.state.progress = nil
	a.state.processingError = nil
	a.state.result = nil
	a.state.activeTab = tabInsights
	a.state.raw = false
	a.state.notice = ""
	a.state.startedAt = time.Now()
	a.state.body.GotoTop()
	a.view = viewProcessing

	ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
	a.state.cancel = cancel

	// Each run owns its channel; it is closed only after this run's Analyze
	// returns, so a cancelled run never reports into the next one.
	id := a.state.runID
	ch := make(chan analysis.Progress, 8)
	ctx = analysis.WithProgress(ctx, func(p analysis.Progress) {
		select {
		case ch <- p:
		default:
		}
	})
	analyzer := a.state.analyzer
	q := analysis.Query{
		Company:  company,
		Language: a.state.lang,
		Profile:  a.state.config.Profile,
	}

	run := func() tea.Msg {
		defer cancel()
		defer close(ch)
		res, err := analyzer.Analyze(ctx, q)
		if err != nil {
			return analysisErrorMsg{runID: id, error: err}
		}
		return analysisDoneMsg{runID: id, result: res}
	}

	return tea.Batch(run, waitForProgress(id, ch), a.state.spinner.Tick)
}

func waitForProgress(id int, ch <-chan analysis.Progress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return analysisProgressMsg{runID: id, progress: p, ch: ch}
	}
}

func (a *App) cancelAnalysis() {
	if a.state.cancel != nil {
		a.state.cancel()
		a.state.cancel = nil
		// drop whatever the cancelled run still delivers
		a.state.runID++
	}
}

func (a *App) handleResultsKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Tab):
		a.selectTab((a.state.activeTab + 1) % tabCount)
	case key.Matches(msg, keys.ShiftTab):
		a.selectTab((a.state.activeTab + tabCount - 1) % tabCount)
	case msg.String() == "1":
		a.selectTab(tabInsights)
	case msg.String() == "2":
		a.selectTab(tabScript)
	case msg.String() == "3":
		a.selectTab(tabSources)
	case key.Matches(msg, keys.Raw):
		a.state.raw = !a.state.raw
		a.refreshBody()
	case key.Matches(msg, keys.Language):
		a.state.setLanguage(nextLanguage(a.state.lang))
		a.refreshBody()
	case key.Matches(msg, keys.Save):
		return a.saveResult(), true
	case key.Matches(msg, keys.Refresh):
		return a.refresh(), true
	case key.Matches(msg, keys.New):
		a.view = viewSearch
		return textinput.Blink, true
	case key.Matches(msg, keys.Settings):
		a.open(viewSettings)
	case key.Matches(msg, keys.Help):
		a.open(viewHelp)
	default:
		return nil, false
	}
	return nil, true
}

// refresh drops cached results and researches the shown company again
func (a *App) refresh() tea.Cmd {
	if a.state.analyzer == nil || a.state.result == nil {
		return nil
	}
	a.state.analyzer.Forget()
	return a.startAnalysis(a.state.result.Company)
}

func (a *App) selectTab(t tab) {
	if a.state.activeTab == t {
		return
	}
	a.state.activeTab = t
	a.state.body.GotoTop()
	a.refreshBody()
}

func (a *App) handleErrorKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "r":
		if a.state.company != "" && a.state.providerReady {
			return a.startAnalysis(a.state.company), true
		}
		return a.testProvider(), true
	case "s":
		a.open(viewSettings)
	case "n":
		a.view = viewSearch
		a.state.processingError = nil
		return textinput.Blink, true
	}
	return nil, true
}

func (a *App) handleSetupKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch a.state.setupStep {
	case 0: // Provider selection
		switch {
		case key.Matches(msg, keys.Up):
			if a.state.selectedProvider > 0 {
				a.state.selectedProvider--
			}
		case key.Matches(msg, keys.Down):
			if a.state.selectedProvider < len(config.Providers)-1 {
				a.state.selectedProvider++
			}
		case key.Matches(msg, keys.Enter):
			provider := config.Providers[a.state.selectedProvider]
			a.state.config.Provider = provider.ID
			a.state.config.Model = provider.DefaultModel

			if provider.NeedsAPIKey {
				a.state.setupStep = 1
				a.state.apiKeyInput.Focus()
				return textinput.Blink, true
			}
			return a.finishSetup(), true
		}
		return nil, true

	case 1: // API key entry
		if key.Matches(msg, keys.Enter) {
			a.state.config.APIKey = strings.TrimSpace(a.state.apiKeyInput.Value())
			return a.finishSetup(), true
		}
	}

	return nil, false
}

func (a *App) finishSetup() tea.Cmd {
	cfg := *a.state.config
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return setupErrorMsg{err}
		}
		return setupCompleteMsg{}
	}
}

func (a *App) saveSettings() tea.Cmd {
	a.state.providerReady = false
	a.state.providerError = nil
	cfg := *a.state.config
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return settingsErrorMsg{err}
		}
		return settingsSavedMsg{}
	}
}

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9]+`)

// exportFileName builds a markdown file name from the company and language.
func exportFileName(company, lang string) string {
	slug := strings.Trim(unsafeFileChars.ReplaceAllString(strings.ToLower(company), "-"), "-")
	if slug == "" {
		slug = "report"
	}
	return fmt.Sprintf("%s-%s.md", slug, lang)
}

func (a *App) saveResult() tea.Cmd {
	res := a.state.result
	if res == nil {
		return nil
	}
	path := exportFileName(res.Company, res.Language)
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return saveErrorMsg{err}
		}
		if err := export.WriteMarkdown(f, res); err != nil {
			f.Close()
			return saveErrorMsg{err}
		}
		if err := f.Close(); err != nil {
			return saveErrorMsg{err}
		}
		return savedMsg{path}
	}
}

type setupCompleteMsg struct{}
type setupErrorMsg struct{ error }
type settingsSavedMsg struct{}
type settingsErrorMsg struct{ error }
type providerReadyMsg struct{ provider llm.Provider }
type providerErrorMsg struct{ error }
type savedMsg struct{ path string }
type saveErrorMsg struct{ error }

type analysisProgressMsg struct {
	runID    int
	progress analysis.Progress
	ch       <-chan analysis.Progress
}

type analysisDoneMsg struct {
	runID  int
	result *analysis.Result
}

type analysisErrorMsg struct {
	runID int
	error
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewSearch:
		return a.renderSearch()
	case viewSetup:
		return a.renderSetup()
	case viewProcessing:
		return a.renderProcessing()
	case viewResults:
		return a.renderResults()
	case viewError:
		return a.renderError()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	default:
		return a.renderSearch()
	}
}

// contentWidth is the width used for cards and the result body
func (a *App) contentWidth() int {
	return max(20, min(a.width-2, 120))
}

func (a *App) center(s string) string {
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, s)
}
