package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/handiism/album-catalog/internal/config"
)

func newConfigCommand(opts *options) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(opts))
	configCmd.AddCommand(newConfigInitCommand(opts))

	return configCmd
}

func newConfigInitCommand(opts *options) *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				target = opts.configPath
			}

			if err := config.CreateSample(target, overwrite); err != nil {
				return fmt.Errorf("create sample config (use --overwrite to replace an existing file): %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit data_folder and spreadsheet.file_name before running album-catalog.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file (defaults to --config)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", opts.configPath)
			fmt.Fprintf(out, "Data folder: %s\n", settings.DataFolder)
			fmt.Fprintf(out, "Spreadsheet: %s (sheet %q)\n", settings.Spreadsheet.FileName, settings.Spreadsheet.Sheet)
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
