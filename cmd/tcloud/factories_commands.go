package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tcloud/internal/services/telestream"
)

func newFactoriesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factories",
		Short: "List and rename factories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List factories visible to the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withAccount(cmd, "factories.list", func(c context.Context, client *telestream.Client) error {
				factories, err := client.GetFactories(c)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSONList(cmd, factories)
				}
				if len(factories) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No factories found")
					return nil
				}
				rows := make([][]string, 0, len(factories))
				for _, f := range factories {
					rows = append(rows, []string{f.ID, f.Name, displayTimestamp(f.CreatedAt)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Name", "Created"}, rows, nil))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Change a factory's name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withAccount(cmd, "factories.rename", func(c context.Context, client *telestream.Client) error {
				factory, err := client.ChangeFactoryName(c, args[0], args[1])
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, factory)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Factory %s renamed to %q\n", factory.ID, factory.Name)
				return nil
			})
		},
	})

	return cmd
}
