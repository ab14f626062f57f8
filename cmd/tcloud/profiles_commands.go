package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tcloud/internal/services/telestream"
)

func newProfilesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage encoding profiles",
	}

	cmd.AddCommand(newProfilesListCommand(ctx))
	cmd.AddCommand(newProfilesShowCommand(ctx))
	cmd.AddCommand(newProfileWriteCommand(ctx, false))
	cmd.AddCommand(newProfileWriteCommand(ctx, true))
	cmd.AddCommand(newProfilesDeleteCommand(ctx))

	return cmd
}

func newProfilesListCommand(ctx *commandContext) *cobra.Command {
	var expand bool
	var page, perPage int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the factory's profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := telestream.ProfileListOptions{
				Expand:  optionalBool(cmd, "expand", expand),
				Page:    optionalInt(cmd, "page", page),
				PerPage: optionalInt(cmd, "per-page", perPage),
			}
			return ctx.withFactory(cmd, "profiles.list", func(c context.Context, client *telestream.Client, factoryID string) error {
				profiles, err := client.GetProfiles(c, factoryID, opts)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSONList(cmd, profiles)
				}
				if len(profiles) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No profiles found")
					return nil
				}
				rows := make([][]string, 0, len(profiles))
				for _, p := range profiles {
					rows = append(rows, []string{
						p.ID,
						p.Name,
						displayText(p.PresetName),
						displayDimensions(p.Width, p.Height),
						displayBitrate(p.VideoBitrate),
					})
				}
				headers := []string{"ID", "Name", "Preset", "Dimensions", "Video bitrate"}
				aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&expand, "expand", false, "Return full profile settings")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&perPage, "per-page", 100, "Results per page")
	return cmd
}

func displayBitrate(kbps int) string {
	if kbps <= 0 {
		return "-"
	}
	return strconv.Itoa(kbps) + " kbps"
}

func newProfilesShowCommand(ctx *commandContext) *cobra.Command {
	var expand bool

	cmd := &cobra.Command{
		Use:   "show <id-or-name>",
		Short: "Show a profile by ID or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withFactory(cmd, "profiles.show", func(c context.Context, client *telestream.Client, factoryID string) error {
				profile, err := client.GetProfile(c, factoryID, args[0], optionalBool(cmd, "expand", expand))
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, profile)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderDetails([][2]string{
					{"ID", profile.ID},
					{"Name", profile.Name},
					{"Title", displayText(profile.Title)},
					{"Preset", displayText(profile.PresetName)},
					{"Extension", displayText(profile.Extname)},
					{"Dimensions", displayDimensions(profile.Width, profile.Height)},
					{"Video bitrate", displayBitrate(profile.VideoBitrate)},
					{"Audio bitrate", displayBitrate(profile.AudioBitrate)},
				}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&expand, "expand", false, "Return full profile settings")
	return cmd
}

// newProfileWriteCommand builds "create" or, with update set, "update". Both
// read a JSON profile definition from --file ("-" reads stdin).
func newProfileWriteCommand(ctx *commandContext, update bool) *cobra.Command {
	var file string

	use, short, operation := "create", "Create a profile from a JSON definition", "profiles.create"
	if update {
		use, short, operation = "update", "Update a profile from a JSON definition containing its id", "profiles.update"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := readProfile(cmd, file)
			if err != nil {
				return err
			}
			return ctx.withFactory(cmd, operation, func(c context.Context, client *telestream.Client, factoryID string) error {
				var saved telestream.VideoProfile
				if update {
					saved, err = client.UpdateProfile(c, factoryID, profile)
				} else {
					saved, err = client.CreateProfile(c, factoryID, profile)
				}
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, saved)
				}
				verb := "Created"
				if update {
					verb = "Updated"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s profile %s (%s)\n", verb, saved.Name, saved.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to the profile JSON (- for stdin)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readProfile(cmd *cobra.Command, path string) (*telestream.VideoProfile, error) {
	if strings.TrimSpace(path) == "-" {
		dec := json.NewDecoder(cmd.InOrStdin())
		var profile telestream.VideoProfile
		if err := dec.Decode(&profile); err != nil {
			return nil, fmt.Errorf("decode profile from stdin: %w", err)
		}
		return &profile, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile file: %w", err)
	}
	var profile telestream.VideoProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("decode profile file %s: %w", path, err)
	}
	return &profile, nil
}

func newProfilesDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withFactory(cmd, "profiles.delete", func(c context.Context, client *telestream.Client, factoryID string) error {
				if err := client.DeleteProfile(c, factoryID, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %s\n", args[0])
				return nil
			})
		},
	}
}
