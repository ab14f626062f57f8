package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"tcloud/internal/services/telestream"
)

func newVideosCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "videos",
		Short: "Inspect and delete videos",
	}

	cmd.AddCommand(newVideosListCommand(ctx))
	cmd.AddCommand(newVideosShowCommand(ctx))
	cmd.AddCommand(newVideosMetadataCommand(ctx))
	cmd.AddCommand(newVideosDeleteCommand(ctx, false))
	cmd.AddCommand(newVideosDeleteCommand(ctx, true))

	return cmd
}

func newVideosListCommand(ctx *commandContext) *cobra.Command {
	var page, perPage int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List videos in the factory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := telestream.ListOptions{
				Page:    optionalInt(cmd, "page", page),
				PerPage: optionalInt(cmd, "per-page", perPage),
			}
			return ctx.withFactory(cmd, "videos.list", func(c context.Context, client *telestream.Client, factoryID string) error {
				videos, err := client.GetVideos(c, factoryID, opts)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSONList(cmd, videos)
				}
				if len(videos) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No videos found")
					return nil
				}
				rows := make([][]string, 0, len(videos))
				for _, v := range videos {
					rows = append(rows, []string{
						v.ID,
						displayText(v.OriginalFilename),
						displayStatus(v.Status),
						displayBytes(v.FileSize),
						displayDuration(v.Duration),
						displayTimestamp(v.CreatedAt),
					})
				}
				headers := []string{"ID", "File", "Status", "Size", "Duration", "Created"}
				aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", 100, "Results per page")
	return cmd
}

func newVideosShowCommand(ctx *commandContext) *cobra.Command {
	var withEncodings bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a video, optionally with its encodings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withFactory(cmd, "videos.show", func(c context.Context, client *telestream.Client, factoryID string) error {
				video, err := client.GetVideo(c, factoryID, args[0], withEncodings)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, video)
				}
				out := cmd.OutOrStdout()
				printVideo(out, video)
				if withEncodings {
					fmt.Fprintln(out)
					if len(video.Encodings) == 0 {
						fmt.Fprintln(out, "No encodings")
					} else {
						fmt.Fprintln(out, renderEncodings(video.Encodings))
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&withEncodings, "encodings", false, "Include the video's encodings")
	return cmd
}

func printVideo(out io.Writer, v telestream.Video) {
	fields := [][2]string{
		{"ID", v.ID},
		{"File", displayText(v.OriginalFilename)},
		{"Status", displayStatus(v.Status)},
		{"Size", displayBytes(v.FileSize)},
		{"Duration", displayDuration(v.Duration)},
		{"Dimensions", displayDimensions(v.Width, v.Height)},
		{"Video codec", displayText(v.VideoCodec)},
		{"Audio codec", displayText(v.AudioCodec)},
		{"Created", displayTimestamp(v.CreatedAt)},
	}
	if v.ErrorMessage != "" {
		fields = append(fields, [2]string{"Error", v.ErrorMessage})
	}
	fmt.Fprintln(out, renderDetails(fields))
}

func newVideosMetadataCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "metadata <id>",
		Short: "Show metadata extracted from a video's source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withFactory(cmd, "videos.metadata", func(c context.Context, client *telestream.Client, factoryID string) error {
				metadata, err := client.GetVideoMetadata(c, factoryID, args[0])
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, metadata)
				}
				keys := make([]string, 0, len(metadata))
				for k := range metadata {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				rows := make([][]string, 0, len(keys))
				for _, k := range keys {
					rows = append(rows, []string{k, fmt.Sprint(metadata[k])})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Key", "Value"}, rows, nil))
				return nil
			})
		},
	}
}

func newVideosDeleteCommand(ctx *commandContext, sourceOnly bool) *cobra.Command {
	use, short, operation := "delete <id>", "Delete a video and its encodings", "videos.delete"
	if sourceOnly {
		use, short, operation = "delete-source <id>", "Delete only a video's stored source file", "videos.delete_source"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withFactory(cmd, operation, func(c context.Context, client *telestream.Client, factoryID string) error {
				var err error
				if sourceOnly {
					err = client.DeleteVideoSource(c, factoryID, args[0])
				} else {
					err = client.DeleteVideo(c, factoryID, args[0])
				}
				if err != nil {
					return err
				}
				if sourceOnly {
					fmt.Fprintf(cmd.OutOrStdout(), "Deleted source of video %s\n", args[0])
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Deleted video %s\n", args[0])
				}
				return nil
			})
		},
	}
}

// optionalInt returns a pointer to value only when the flag was set, so
// unset paging flags are left to the server's defaults.
func optionalInt(cmd *cobra.Command, name string, value int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return telestream.Int(value)
}

func optionalBool(cmd *cobra.Command, name string, value bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return telestream.Bool(value)
}
