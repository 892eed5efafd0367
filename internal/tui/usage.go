package tui

import (
	"fmt"

	"github.com/sant0-9/intelligenn/internal/analysis"
)

// estimateTokens returns approximate token count (~4 chars per token)
func estimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// formatTokens renders a token count compactly, e.g. 950 or 12.3k
func formatTokens(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%.1fk", float64(n)/1000)
}

// usageSummary describes the token cost of a result. Providers that do not
// report usage get an estimate from the report length.
func usageSummary(res *analysis.Result) string {
	if res == nil {
		return ""
	}
	if res.Cached {
		return "cached"
	}
	if res.Usage.TotalTokens > 0 {
		return fmt.Sprintf("%s tokens (%s in / %s out)",
			formatTokens(res.Usage.TotalTokens),
			formatTokens(res.Usage.PromptTokens),
			formatTokens(res.Usage.CompletionTokens))
	}
	return fmt.Sprintf("~%s tokens", formatTokens(estimateTokens(res.Insights+res.Script)))
}
