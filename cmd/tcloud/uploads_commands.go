package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"tcloud/internal/uploadlog"
)

func newUploadsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uploads",
		Short: "Inspect the local upload history",
	}
	cmd.AddCommand(newUploadsHistoryCommand(ctx))
	cmd.AddCommand(newUploadsShowCommand(ctx))
	return cmd
}

// openHistory opens the configured history store, refusing when history is
// turned off.
func openHistory(ctx *commandContext) (*uploadlog.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Upload.HistoryEnabled {
		return nil, errors.New("upload history is disabled (set upload.history_enabled = true)")
	}
	return uploadlog.Open(cfg.Upload.HistoryPath)
}

func newUploadsHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent uploads started from this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(commandCtx(cmd), limit)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSONList(cmd, records)
			}
			if len(records) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No uploads recorded in %s\n", store.Path())
				return nil
			}
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{
					r.ID,
					humanize.Time(r.StartedAt),
					r.FileName,
					displayBytes(r.FileSize),
					displayStatus(string(r.Status)),
					displayText(r.FactoryID),
					displayText(r.Error),
				})
			}
			headers := []string{"ID", "Started", "File", "Size", "Status", "Factory", "Error"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of uploads to show")
	return cmd
}

func newUploadsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded upload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := store.Get(commandCtx(cmd), strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, rec)
			}

			fields := [][2]string{
				{"ID", rec.ID},
				{"File", rec.FileName},
				{"Source", rec.SourcePath},
				{"Size", displayBytes(rec.FileSize)},
				{"Sent", displayBytes(rec.BytesSent)},
				{"Factory", displayText(rec.FactoryID)},
				{"Profiles", displayText(strings.Join(rec.Profiles, ", "))},
				{"Status", displayStatus(string(rec.Status))},
				{"Location", displayText(rec.Location)},
				{"Started", rec.StartedAt.Local().Format(time.DateTime)},
			}
			if rec.Finished() {
				fields = append(fields, [2]string{"Finished", rec.FinishedAt.Local().Format(time.DateTime)})
			}
			if rec.Error != "" {
				fields = append(fields,
					[2]string{"Error", rec.Error},
					[2]string{"Error kind", displayText(rec.ErrorKind)},
				)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderDetails(fields))
			return nil
		},
	}
}
