package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sant0-9/intelligenn/internal/server"
)

var (
	serveAddr      string
	requestTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis API over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		analyzer, err := newAnalyzer()
		if err != nil {
			return err
		}

		addr := serveAddr
		if addr == "" {
			addr = cfg.Server.Addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		api := server.NewWebAPI(analyzer, logger, server.Config{
			Addr:           addr,
			RequestTimeout: requestTimeout,
		})
		return api.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().DurationVar(&requestTimeout, "request-timeout", 3*time.Minute, "Timeout for a single analysis")
}
