package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/album-catalog/internal/config"
	"github.com/handiism/album-catalog/internal/logging"
	"github.com/handiism/album-catalog/internal/reconcile"
)

// options holds the persistent flags shared by every command.
type options struct {
	configPath string
	dryRun     bool
	verbose    bool
	logJSON    bool
	noProgress bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "album-catalog",
		Short: "Add the albums of a music folder to a sorted spreadsheet",
		Long: `album-catalog walks a music folder laid out as <band>/<year> - <album>/,
works out one bitrate and one genre per album and inserts every album into
the configured spreadsheet, keeping the band column sorted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "Configuration file path (.json or .toml)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Show verbose output and debug logs")
	flags.BoolVar(&opts.logJSON, "log-json", false, "Write logs as JSON")
	flags.BoolVar(&opts.noProgress, "no-progress", false, "Disable the progress bar")
	rootCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Show the rows that would be added without saving")

	rootCmd.AddCommand(newScanCommand(opts))
	rootCmd.AddCommand(newConfigCommand(opts))

	return rootCmd
}

// setup loads the configuration and builds the logger and the manager.
func setup(cmd *cobra.Command, opts *options) (*reconcile.Manager, *config.Settings, *progressReporter, func(), error) {
	settings, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(logging.Options{
		Verbose: opts.verbose,
		JSON:    opts.logJSON,
		Writer:  cmd.ErrOrStderr(),
	})
	logger.Debug("configuration loaded",
		zap.String("path", opts.configPath),
		zap.String("data_folder", settings.DataFolder),
		zap.String("spreadsheet", settings.Spreadsheet.FileName))

	reporter := newProgressReporter(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.verbose, !opts.noProgress)
	manager, err := reconcile.NewManager(settings, reporter.event, reconcile.WithLogger(logger))
	if err != nil {
		return nil, nil, nil, nil, err
	}
	reporter.track(manager)

	cleanup := func() {
		reporter.finish()
		if err := manager.Close(); err != nil {
			logger.Warn("failed to close probe cache", zap.Error(err))
		}
		_ = logger.Sync()
	}
	return manager, settings, reporter, cleanup, nil
}

func runSync(cmd *cobra.Command, opts *options) error {
	manager, _, reporter, cleanup, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	if _, err := manager.Scan(ctx); err != nil {
		return err
	}
	reporter.finish()

	result, err := manager.Apply(ctx, opts.dryRun)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.dryRun || opts.verbose {
		printInsertions(out, result)
	}
	if result.DryRun && result.Discovered > 0 {
		fmt.Fprintf(out, "Dry run: %d/%d albums would be added to '%s'\n", result.Written, result.Discovered, result.FileName)
	}
	return nil
}

func printInsertions(out io.Writer, result *reconcile.Result) {
	if len(result.Insertions) == 0 {
		return
	}
	rows := make([][]string, 0, result.Written)
	for _, insertion := range result.Insertions {
		for i, album := range insertion.Albums {
			rows = append(rows, []string{
				fmt.Sprint(insertion.After + 1 + i),
				album.Band,
				album.Year,
				album.Name,
				album.Bitrate,
				album.Genre,
			})
		}
	}
	fmt.Fprint(out, renderTable(
		[]string{"Inserted At", "Band", "Year", "Album", "Bitrate", "Genre"},
		rows,
		[]columnAlignment{alignRight},
	))
	fmt.Fprintln(out)
}
