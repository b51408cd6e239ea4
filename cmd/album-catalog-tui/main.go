package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/handiism/album-catalog/internal/config"
	"github.com/handiism/album-catalog/internal/tui"
)

func main() {
	var configPath string

	cmd := &cobra.Command{
		Use:           "album-catalog-tui",
		Short:         "Interactive album catalog updater",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.Run(configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Configuration file path")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
