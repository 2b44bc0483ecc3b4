package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Skufu/healthlens/internal/config"
	"github.com/Skufu/healthlens/internal/logging"
)

// app carries what every subcommand shares once the root pre-run has loaded it.
type app struct {
	verbose bool
	cfg     *config.Config
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "healthlens",
		Short: "Health risk, detection demo, chat and gamification API",
		Long: `healthlens serves the JSON API behind the health information site: stroke
risk scoring, the skin-condition matching demo, the assistant chat with provider
fallback, journey points and achievements, news, tips, theme and contact form.

Run without a subcommand to start the HTTP server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			level := cfg.LogLevel
			if a.verbose {
				level = "debug"
			}
			log, err := logging.New(level)
			if err != nil {
				return err
			}
			a.cfg, a.log = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	serve := newServeCmd(a)
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve, newMigrateCmd(a), newRiskCmd(a), newDetectCmd(a))
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
