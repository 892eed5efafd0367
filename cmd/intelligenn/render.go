package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sant0-9/intelligenn/internal/analysis"
	"github.com/sant0-9/intelligenn/internal/export"
	"github.com/sant0-9/intelligenn/internal/report"
)

var renderCompany string

var renderCmd = &cobra.Command{
	Use:   "render <file|->",
	Short: "Render a saved raw report without calling a provider",
	Long: `render reads raw report text, as returned by a provider, from a file or
stdin. The text is split into insights and call script on the script
delimiter and printed in the requested format.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderCompany, "company", "", "Company name for the output heading")
	renderCmd.Flags().StringVarP(&language, "lang", "l", "", "Language of the report, en or da (default from config)")
	addOutputFlags(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	raw, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	lang := language
	if lang == "" {
		lang = cfg.Language
	}

	parts := report.Split(string(raw))
	res := &analysis.Result{
		Company:  renderCompany,
		Language: lang,
		Insights: parts.Insights,
		Script:   parts.Script,
	}

	w, closeOut, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOut()

	return writeResult(w, res, format, outputWidth)
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	return data, nil
}
