package tui

import "github.com/sant0-9/intelligenn/internal/config"

// texts holds the interface strings for one language
type texts struct {
	Subtitle    string
	Placeholder string
	Analyze     string
	Analyzing   string
	ReadyTitle  string
	ReadyDesc   string
	Badges      []string
	TabInsights string
	TabScript   string
	TabSources  string
	NoSources   string
	Loading     string
	ErrorTitle  string
}

var translations = map[string]texts{
	config.LanguageEnglish: {
		Subtitle:    "Psychological Sales Intel",
		Placeholder: "Search company (e.g. Acme Corp)",
		Analyze:     "Generate Intelligence",
		Analyzing:   "Profiling...",
		ReadyTitle:  "Don't Just Call. Connect with Psychological Intel.",
		ReadyDesc:   "Go beyond basic data. IntelliGenN profiles the CEO's personality, estimates pension volume, and finds the 'Golden Hook' icebreaker to guarantee a meeting.",
		Badges:      []string{"Psychological Profiling", "The 'Golden Hook'", "Provider Detection", "Tailored Scripts"},
		TabInsights: "Analysis & Psych",
		TabScript:   "Call Script",
		TabSources:  "Verified Sources",
		NoSources:   "No sources were returned for this analysis.",
		Loading:     "Analyzing personality types, news signals, and financial data...",
		ErrorTitle:  "Search Failed",
	},
	config.LanguageDanish: {
		Subtitle:    "Psykologisk Salgsindsigt",
		Placeholder: "Søg virksomhed (f.eks. Novo Nordisk A/S)",
		Analyze:     "Generer Indsigt",
		Analyzing:   "Analyserer...",
		ReadyTitle:  "Ring ikke bare op. Skab kontakt med Psykologisk Indsigt.",
		ReadyDesc:   "Gå ud over basisdata. IntelliGenN profilerer CEO'ens personlighed, estimerer pensionsvolumen og finder 'Den Gyldne Krog' der sikrer mødet.",
		Badges:      []string{"Psykologisk Profilering", "Den Gyldne Krog", "Udbudsdetektion", "Skræddersyede Manuskripter"},
		TabInsights: "Analyse & Profil",
		TabScript:   "Call Script",
		TabSources:  "Verificerede Kilder",
		NoSources:   "Ingen kilder blev returneret for denne analyse.",
		Loading:     "Analyserer personlighedstyper, nyheder og regnskaber...",
		ErrorTitle:  "Søgning mislykkedes",
	},
}

// textsFor returns the strings for lang, falling back to English.
func textsFor(lang string) texts {
	if t, ok := translations[lang]; ok {
		return t
	}
	return translations[config.LanguageEnglish]
}

// nextLanguage toggles between English and Danish
func nextLanguage(lang string) string {
	if lang == config.LanguageDanish {
		return config.LanguageEnglish
	}
	return config.LanguageDanish
}
