package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScanCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Scan the music folder and print the catalog without touching the spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, settings, reporter, cleanup, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			catalog, err := manager.Scan(cmd.Context())
			if err != nil {
				return err
			}
			reporter.finish()

			out := cmd.OutOrStdout()
			if catalog.Len() == 0 {
				fmt.Fprintf(out, "No albums found in %s\n", settings.DataFolder)
				return nil
			}

			records := catalog.Records()
			rows := make([][]string, len(records))
			for i, r := range records {
				rows[i] = []string{r.Band, r.Year, r.Name, r.Bitrate, r.Genre}
			}
			fmt.Fprintln(out, renderTable([]string{"Band", "Year", "Album", "Bitrate", "Genre"}, rows, nil))
			fmt.Fprintf(out, "%d albums from %d bands\n", catalog.Len(), catalog.BandCount())
			return nil
		},
	}
}
