package prompts

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/sant0-9/intelligenn/internal/report"
)

//go:embed analysis.md
var analysisBase string

var analysisTemplate = template.Must(template.New("analysis").Parse(analysisBase))

// SystemPrompt frames every analysis request.
const SystemPrompt = "You are a research assistant for B2B sales teams. Use web search to verify facts and never invent names or URLs."

// AnalysisData fills the analysis template
type AnalysisData struct {
	Company  string
	Language string
	// Caller is the name the script is written for, e.g. "Ensure"
	Caller string
	// CallerContext describes who is calling and their value propositions
	CallerContext string
	// RebuttalStrategy optionally steers the objection handling section
	RebuttalStrategy string
}

// LanguageInstruction returns the output-language line for a language code.
// Anything other than "da" means English.
func LanguageInstruction(lang string) string {
	if lang == "da" {
		return "IMPORTANT: Output the entire response (Analysis and Script) in DANISH."
	}
	return "Output the response in English."
}

// BuildAnalysisPrompt renders the research brief for one company
func BuildAnalysisPrompt(d AnalysisData) (string, error) {
	var b strings.Builder
	err := analysisTemplate.Execute(&b, struct {
		AnalysisData
		LanguageInstruction string
		Delimiter           string
	}{
		AnalysisData:        d,
		LanguageInstruction: LanguageInstruction(d.Language),
		Delimiter:           report.ScriptDelimiter,
	})
	if err != nil {
		return "", fmt.Errorf("render analysis prompt: %w", err)
	}
	return strings.TrimSpace(b.String()), nil
}
