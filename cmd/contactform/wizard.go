package main

import (
	"errors"

	"github.com/spf13/cobra"

	contactform "github.com/goliatone/go-contactform"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
	"github.com/goliatone/go-contactform/pkg/wizard"
)

func newWizardCmd(a *app) *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Fill in the contact form interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			submitter, err := a.submitter(server)
			if err != nil {
				return err
			}

			runner := tui.New(tui.WithPromptDriver(tui.NewSurveyDriver(a.stdout)))
			w := contactform.NewWizard(submitter,
				wizard.WithCelebrator(runner.Celebrator()),
				wizard.WithLocale(a.cfg.Locale),
				wizard.WithLogger(a.logger.Named("wizard")),
			)

			result, err := runner.Run(a.localeContext(cmd.Context()), w)
			if errors.Is(err, tui.ErrAborted) {
				return nil
			}
			if err != nil {
				return err
			}
			if !result.Success {
				return errors.New(result.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", "", "submit to a running contactform API instead of sending locally")
	return cmd
}
