package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/intelligenn/internal/analysis"
	"github.com/sant0-9/intelligenn/internal/export"
	"github.com/sant0-9/intelligenn/internal/report"
)

const rawReport = "### Executive Summary\n**Estimated Employees**: 50\n" +
	report.ScriptDelimiter +
	"\n### Objection Handling\n**Objection**: We have a broker.\n**Rebuttal**: We work alongside them."

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("INTELLIGENN_PROVIDER", "")
	t.Setenv("INTELLIGENN_MODEL", "")

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRenderJSON(t *testing.T) {
	out, err := execute(t, rawReport, "render", "-", "--format", "json", "--company", "Acme", "--out", "")
	require.NoError(t, err)

	var doc export.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Acme", doc.Company)
	require.Len(t, doc.Insights, 1)
	assert.Equal(t, report.CategoryExecutiveSummary, doc.Insights[0].Category)
	require.Len(t, doc.Script, 1)
	assert.Equal(t, report.CategoryObjectionHandling, doc.Script[0].Category)
}

func TestRenderMarkdownToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "raw.txt")
	dst := filepath.Join(dir, "out.md")
	require.NoError(t, os.WriteFile(in, []byte(rawReport), 0644))

	_, err := execute(t, "", "render", in, "--format", "md", "--company", "Acme", "--out", dst)
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Acme")
	assert.Contains(t, string(data), "## Call Script")
	outputPath = ""
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, rawReport, "render", "-", "--format", "pdf", "--out", "")
	assert.ErrorContains(t, err, "unknown format")
}

func TestRenderMissingFile(t *testing.T) {
	_, err := execute(t, "", "render", filepath.Join(t.TempDir(), "nope.txt"), "--format", "cards", "--out", "")
	assert.ErrorContains(t, err, "failed to read report")
}

func TestWriteResultFormats(t *testing.T) {
	parts := report.Split(rawReport)
	res := &analysis.Result{Company: "Acme", Language: "en", Insights: parts.Insights, Script: parts.Script}

	tests := []struct {
		format export.Format
		want   string
	}{
		{export.FormatCards, "They Say:"},
		{export.FormatMarkdown, "## Insights"},
		{export.FormatJSON, `"company": "Acme"`},
		{export.FormatTerminal, "Acme"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var b bytes.Buffer
			require.NoError(t, writeResult(&b, res, tt.format, 100))
			assert.Contains(t, b.String(), tt.want)
		})
	}
}
