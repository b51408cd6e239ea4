// Package reconcile runs a complete catalog update.
//
// # Manager
//
// The Manager coordinates the whole process:
//
//  1. Walk the data folder and find album folders
//  2. Aggregate the bitrate and genre of every album, concurrently
//  3. Open and lock the spreadsheet
//  4. Insert the albums at their sorted positions
//  5. Save the workbook, after an optional backup
//
// The catalog is complete before the spreadsheet is opened, and the
// spreadsheet is written once at the end. A run that finds no album never
// opens it.
//
// # Basic Usage
//
//	manager, err := reconcile.NewManager(settings, func(event reconcile.ProgressEvent) {
//	    fmt.Println(event.Message)
//	}, reconcile.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer manager.Close()
//
//	result, err := manager.Run(ctx, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// GetProgress returns counters suitable for a progress bar. Callbacks are
// never invoked concurrently.
package reconcile
