package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/internal/config"
	"github.com/goliatone/go-contactform/internal/logging"
)

// app carries state shared by every subcommand once the root pre-run has
// loaded it.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	stdout io.Writer
	stderr io.Writer

	logLevel  string
	logFormat string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "contactform",
		Short: "Portfolio contact form: HTTP API, terminal wizard and one-shot submissions",
		Long: `contactform collects project inquiries through a five step wizard and
delivers them as email.

Configuration comes from the environment (RESEND_API_KEY, CONTACT_FROM,
CONTACT_TO, CONTACT_SEND_TIMEOUT, CONTACT_HTTP_ADDR, CONTACT_SESSION_TTL,
CONTACT_LOG_LEVEL, CONTACT_LOG_FORMAT, CONTACT_LOCALE, CONTACT_THEME_VARIANT).
Without RESEND_API_KEY submissions are validated and logged but not sent.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = a.logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat = a.logFormat
			}
			logger, _, err := logging.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "json", "log format (json or console)")

	root.AddCommand(newServeCmd(a), newWizardCmd(a), newSubmitCmd(a))
	return root
}
