package main

import (
	"context"
	"strings"

	contactform "github.com/goliatone/go-contactform"
	"github.com/goliatone/go-contactform/pkg/client"
	"github.com/goliatone/go-contactform/pkg/i18n"
	"github.com/goliatone/go-contactform/pkg/wizard"
)

// submitter targets a remote API when server is set and an in-process
// pipeline otherwise.
func (a *app) submitter(server string) (wizard.Submitter, error) {
	if server = strings.TrimSpace(server); server != "" {
		c, err := client.New(server)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	p, err := contactform.NewPipeline(a.cfg, a.logger)
	if err != nil {
		return nil, err
	}
	return contactform.PipelineSubmitter(p), nil
}

func (a *app) localeContext(ctx context.Context) context.Context {
	return i18n.WithLocale(ctx, a.cfg.Locale)
}
