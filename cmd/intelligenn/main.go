package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sant0-9/intelligenn/internal/analysis"
	"github.com/sant0-9/intelligenn/internal/config"
	"github.com/sant0-9/intelligenn/internal/llm"
	"github.com/sant0-9/intelligenn/internal/logging"
	"github.com/sant0-9/intelligenn/internal/profile"
	"github.com/sant0-9/intelligenn/internal/tui"
)

var version = "dev"

var (
	// Global flags
	verbose    bool
	configPath string

	cfg      *config.Config
	firstRun bool
	profiles *profile.Index
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "intelligenn",
	Short: "Psychological sales intelligence for B2B cold calls",
	Long: `intelligenn researches a company on the web and produces a sales brief:
decision makers, a psychological profile of the lead, the "Golden Hook"
icebreaker, pension signals and a tailored call script with objection
handling.

Run without arguments to start the interactive interface.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional
		_ = godotenv.Load()

		if err := loadConfig(); err != nil {
			return err
		}

		logFile, err := cfg.LogFile()
		if err != nil {
			return err
		}
		opts := logging.Options{
			Level:   cfg.Log.Level,
			File:    logFile,
			Verbose: verbose,
		}
		// The interactive interface owns the terminal
		if cmd != cmd.Root() {
			opts.Console = os.Stderr
		}
		logger, err = logging.New(opts)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		dir, err := profile.DefaultDir()
		if err != nil {
			return err
		}
		profiles, err = profile.NewIndex(dir)
		if err != nil {
			return fmt.Errorf("failed to load caller profiles: %w", err)
		}
		logger.Debug("profiles loaded", zap.String("dir", dir), zap.Int("count", profiles.Count()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ~/.config/intelligenn/config.yaml)")

	rootCmd.AddCommand(analyzeCmd, renderCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() error {
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg == nil {
		firstRun = true
		cfg = config.DefaultConfig()
	}
	cfg.ApplyEnv()
	return nil
}

func runInteractive() error {
	opts := tui.Options{
		Config:   cfg,
		Profiles: profiles,
		Logger:   logger,
	}
	// An API key from the environment skips the setup wizard
	if firstRun && cfg.APIKey == "" {
		opts.Config = nil
	}

	p := tea.NewProgram(
		tui.NewApp(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// newAnalyzer builds an analyzer for the configured provider
func newAnalyzer() (*analysis.Analyzer, error) {
	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	return analysis.New(provider, profiles, analysis.Options{
		Model:             cfg.Model,
		CacheTTL:          cfg.CacheTTL,
		RequestsPerMinute: cfg.RequestsPerMinute,
		Logger:            logger,
	})
}
