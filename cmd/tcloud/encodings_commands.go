package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tcloud/internal/services/telestream"
)

func newEncodingsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encodings",
		Short: "Create, inspect, and manage encodings",
	}

	cmd.AddCommand(newEncodingsListCommand(ctx))
	cmd.AddCommand(newEncodingsShowCommand(ctx))
	cmd.AddCommand(newEncodingsCreateCommand(ctx))
	cmd.AddCommand(newEncodingActionCommand(ctx, "cancel", "Cancel a processing encoding"))
	cmd.AddCommand(newEncodingActionCommand(ctx, "retry", "Retry a failed encoding"))
	cmd.AddCommand(newEncodingsDeleteCommand(ctx))

	return cmd
}

func newEncodingsListCommand(ctx *commandContext) *cobra.Command {
	var (
		status      string
		profileID   string
		profileName string
		videoID     string
		screenshots bool
		page        int
		perPage     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List encodings in the factory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseEncodingStatus(status)
			if err != nil {
				return err
			}
			filter := telestream.EncodingFilter{
				Status:      parsed,
				ProfileID:   profileID,
				ProfileName: profileName,
				VideoID:     videoID,
				Screenshots: optionalBool(cmd, "screenshots", screenshots),
				Page:        optionalInt(cmd, "page", page),
				PerPage:     optionalInt(cmd, "per-page", perPage),
			}
			return ctx.withFactory(cmd, "encodings.list", func(c context.Context, client *telestream.Client, factoryID string) error {
				encodings, err := client.GetEncodings(c, factoryID, filter)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSONList(cmd, encodings)
				}
				if len(encodings) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No encodings found")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderEncodings(encodings))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (success, fail, processing, cancelled)")
	cmd.Flags().StringVar(&profileID, "profile-id", "", "Filter by profile ID")
	cmd.Flags().StringVar(&profileName, "profile-name", "", "Filter by profile name")
	cmd.Flags().StringVar(&videoID, "video-id", "", "Filter by video ID")
	cmd.Flags().BoolVar(&screenshots, "screenshots", false, "Include screenshot URLs")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", 100, "Results per page")
	return cmd
}

func parseEncodingStatus(value string) (telestream.EncodingStatus, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch telestream.EncodingStatus(value) {
	case "":
		return "", nil
	case telestream.EncodingSuccess, telestream.EncodingFail, telestream.EncodingProcessing, telestream.EncodingCancelled:
		return telestream.EncodingStatus(value), nil
	default:
		return "", fmt.Errorf("invalid --status %q (want success, fail, processing, or cancelled)", value)
	}
}

func renderEncodings(encodings []telestream.VideoEncoding) string {
	rows := make([][]string, 0, len(encodings))
	for _, e := range encodings {
		profile := e.ProfileName
		if profile == "" {
			profile = e.ProfileID
		}
		rows = append(rows, []string{
			e.ID,
			e.VideoID,
			displayText(profile),
			displayStatus(e.Status),
			displayPercent(e.EncodingProgress),
			displayBytes(e.FileSize),
		})
	}
	headers := []string{"ID", "Video", "Profile", "Status", "Progress", "Size"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight}
	return renderTable(headers, rows, aligns)
}

func printEncoding(out io.Writer, e telestream.VideoEncoding) {
	fields := [][2]string{
		{"ID", e.ID},
		{"Video", e.VideoID},
		{"Profile", displayText(e.ProfileName)},
		{"Status", displayStatus(e.Status)},
		{"Progress", displayPercent(e.EncodingProgress)},
		{"Size", displayBytes(e.FileSize)},
		{"Dimensions", displayDimensions(e.Width, e.Height)},
	}
	if e.ErrorMessage != "" {
		fields = append(fields, [2]string{"Error", e.ErrorMessage})
	}
	for _, file := range e.Files {
		fields = append(fields, [2]string{"File", file})
	}
	for _, shot := range e.Screenshots {
		fields = append(fields, [2]string{"Screenshot", shot})
	}
	fmt.Fprintln(out, renderDetails(fields))
}

func newEncodingsShowCommand(ctx *commandContext) *cobra.Command {
	var screenshots bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one encoding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withFactory(cmd, "encodings.show", func(c context.Context, client *telestream.Client, factoryID string) error {
				encoding, err := client.GetEncoding(c, factoryID, args[0], optionalBool(cmd, "screenshots", screenshots))
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, encoding)
				}
				printEncoding(cmd.OutOrStdout(), encoding)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&screenshots, "screenshots", false, "Include screenshot URLs")
	return cmd
}

func newEncodingsCreateCommand(ctx *commandContext) *cobra.Command {
	var videoID, profileID, profileName string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Encode a video with a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(profileID) == "" && strings.TrimSpace(profileName) == "" {
				return errors.New("one of --profile-id or --profile-name is required")
			}
			return ctx.withFactory(cmd, "encodings.create", func(c context.Context, client *telestream.Client, factoryID string) error {
				encoding, err := client.CreateEncoding(c, factoryID, videoID, profileID, profileName)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, encoding)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created encoding %s (%s)\n", encoding.ID, displayStatus(encoding.Status))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&videoID, "video-id", "", "Video to encode")
	cmd.Flags().StringVar(&profileID, "profile-id", "", "Profile ID")
	cmd.Flags().StringVar(&profileName, "profile-name", "", "Profile name")
	_ = cmd.MarkFlagRequired("video-id")
	cmd.MarkFlagsMutuallyExclusive("profile-id", "profile-name")
	return cmd
}

func newEncodingActionCommand(ctx *commandContext, action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withFactory(cmd, "encodings."+action, func(c context.Context, client *telestream.Client, factoryID string) error {
				var (
					encoding telestream.VideoEncoding
					err      error
				)
				if action == "cancel" {
					encoding, err = client.CancelEncoding(c, factoryID, args[0])
				} else {
					encoding, err = client.RetryEncoding(c, factoryID, args[0])
				}
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, encoding)
				}
				id := encoding.ID
				if id == "" {
					id = args[0]
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Encoding %s: %s\n", id, displayStatus(encoding.Status))
				return nil
			})
		},
	}
}

func newEncodingsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an encoding and its output files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withFactory(cmd, "encodings.delete", func(c context.Context, client *telestream.Client, factoryID string) error {
				if err := client.DeleteEncoding(c, factoryID, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted encoding %s\n", args[0])
				return nil
			})
		},
	}
}
