package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tcloud/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check credentials, local directories, and API reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var lister preflight.FactoryLister
			if client, err := ctx.apiClient(); err == nil {
				lister = client
			}
			results := preflight.RunAll(commandCtx(cmd), cfg, lister)

			if ctx.jsonOutput() {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := isTerminal(out)
				for _, r := range results {
					kind := statusOK
					if !r.Passed {
						kind = statusError
					}
					fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
				}
			}

			for _, r := range results {
				if !r.Passed {
					return errors.New("one or more checks failed")
				}
			}
			return nil
		},
	}
}
