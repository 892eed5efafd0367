package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sant0-9/intelligenn/internal/analysis"
	"github.com/sant0-9/intelligenn/internal/export"
	"github.com/sant0-9/intelligenn/internal/tui"
)

var (
	outputFormat string
	outputPath   string
	outputWidth  int
	language     string
	profileName  string
	concurrency  int
	timeout      time.Duration
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <company> [company...]",
	Short: "Research one or more companies and print the sales brief",
	Example: `  intelligenn analyze "Novo Nordisk A/S" --lang da
  intelligenn analyze Acme --format json --out acme.json
  intelligenn analyze Acme Globex Initech --concurrency 2 --format markdown`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&language, "lang", "l", "", "Report language, en or da (default from config)")
	analyzeCmd.Flags().StringVarP(&profileName, "profile", "p", "", "Caller profile (default from config)")
	analyzeCmd.Flags().IntVar(&concurrency, "concurrency", 1, "Companies researched in parallel")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Overall timeout")
	addOutputFlags(analyzeCmd)
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputFormat, "format", "f", string(export.FormatCards), "Output format: cards, json, markdown, terminal")
	cmd.Flags().StringVarP(&outputPath, "out", "o", "", "Write to file instead of stdout")
	cmd.Flags().IntVar(&outputWidth, "width", 100, "Line width for cards and terminal output")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	analyzer, err := newAnalyzer()
	if err != nil {
		return err
	}

	lang := language
	if lang == "" {
		lang = cfg.Language
	}
	prof := profileName
	if prof == "" {
		prof = cfg.Profile
	}

	queries := make([]analysis.Query, 0, len(args))
	for _, company := range args {
		queries = append(queries, analysis.Query{Company: company, Language: lang, Profile: prof})
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	ctx = analysis.WithProgress(ctx, func(p analysis.Progress) {
		logger.Debug("progress", zap.Stringer("stage", p.Stage), zap.String("message", p.Message))
	})

	outcomes := analyzer.Batch(ctx, queries, concurrency)

	w, closeOut, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOut()

	var failed int
	for i, o := range outcomes {
		if o.Err != nil {
			failed++
			logger.Error("analysis failed", zap.String("company", o.Query.Company), zap.Error(o.Err))
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", o.Query.Company, o.Err)
			continue
		}
		if i > 0 && format != export.FormatJSON {
			fmt.Fprintln(w)
		}
		if err := writeResult(w, o.Result, format, outputWidth); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d analyses failed", failed, len(outcomes))
	}
	return nil
}

// writeResult writes res to w in the requested format
func writeResult(w io.Writer, res *analysis.Result, format export.Format, width int) error {
	switch format {
	case export.FormatJSON:
		return export.WriteJSON(w, res)
	case export.FormatMarkdown:
		return export.WriteMarkdown(w, res)
	case export.FormatTerminal:
		return export.WriteTerminal(w, res, width)
	default:
		return tui.WriteCards(w, res, width)
	}
}

// openOutput returns stdout or the --out file
func openOutput(cmd *cobra.Command) (io.Writer, func(), error) {
	if outputPath == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			logger.Warn("closing output file", zap.Error(err))
		}
	}, nil
}
