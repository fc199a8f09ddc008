package main

import (
	"github.com/spf13/cobra"

	contactform "github.com/goliatone/go-contactform"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the contact and wizard session HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if addr != "" {
				cfg.HTTPAddr = addr
			}

			p, err := contactform.NewPipeline(cfg, a.logger)
			if err != nil {
				return err
			}
			srv, err := contactform.NewServer(cmd.Context(), cfg, p, a.logger)
			if err != nil {
				return err
			}
			return srv.ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides CONTACT_HTTP_ADDR)")
	return cmd
}
