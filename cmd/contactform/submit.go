package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/pkg/model"
)

func newSubmitCmd(a *app) *cobra.Command {
	var (
		server string
		file   string
		form   model.FormData
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit one inquiry from flags or a JSON document",
		Long: `Submit validates and delivers a single inquiry, then prints the
SubmissionResult as JSON. Flags override values read with --file ("-" reads
standard input). The command exits non-zero when the submission fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data := model.FormData{}
			if file != "" {
				loaded, err := readForm(cmd.InOrStdin(), file)
				if err != nil {
					return err
				}
				data = loaded
			}
			for _, field := range model.Fields() {
				flag := cmd.Flags().Lookup(string(field))
				if flag == nil || !flag.Changed {
					continue
				}
				data = data.With(field, form.Get(field))
			}
			if data.Engagement != "" {
				engagement, ok := model.LookupEngagement(data.Engagement)
				if !ok {
					return fmt.Errorf("unknown engagement %q (want one of %v)", data.Engagement, model.EngagementTitles())
				}
				data.Engagement = engagement.Title
			}

			submitter, err := a.submitter(server)
			if err != nil {
				return err
			}
			result, err := submitter.Submit(a.localeContext(cmd.Context()), data)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(a.stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return err
			}
			if !result.Success {
				return errors.New(result.Message)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&server, "server", "", "submit to a running contactform API instead of sending locally")
	flags.StringVarP(&file, "file", "f", "", `JSON form document ("-" for stdin)`)
	flags.StringVar(&form.Name, string(model.FieldName), "", "your name")
	flags.StringVar(&form.Email, string(model.FieldEmail), "", "your email address")
	flags.StringVar(&form.Company, string(model.FieldCompany), "", "company (optional)")
	flags.StringVar(&form.Website, string(model.FieldWebsite), "", "website (optional)")
	flags.StringVar(&form.Project, string(model.FieldProject), "", "what you are working on")
	flags.StringVar(&form.Success, string(model.FieldSuccess), "", "what success looks like (optional)")
	flags.StringVar(&form.Engagement, string(model.FieldEngagement), "", "engagement model")
	return cmd
}

func readForm(stdin io.Reader, path string) (model.FormData, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return model.FormData{}, fmt.Errorf("read form: %w", err)
	}

	var data model.FormData
	if err := json.Unmarshal(raw, &data); err != nil {
		return model.FormData{}, fmt.Errorf("decode form: %w", err)
	}
	return data, nil
}
