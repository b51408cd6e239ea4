// Package spreadsheet inserts catalogued albums into a spreadsheet whose
// band column is sorted.
//
// # Document
//
// The synchronizer talks to a spreadsheet through the Document interface:
// read and write a cell value or style, derive a highlighted copy of a
// style, insert rows and report the highest used row. Workbook implements
// it on one sheet of an .xlsx file using excelize.
//
// # Synchronization
//
// Sync walks the catalog band by band in ascending order. For each band it
// looks for the last row, reading the band column upwards, whose value sorts
// at or before the band name, inserts one row per album below it and fills
// the six record columns:
//
//	Band | Year | Album | Bitrate | Genre | Note
//
// New cells take the style of the first data row with the highlight
// background, so freshly added albums stand out until someone reviews them.
//
// # Usage
//
//	wb, err := spreadsheet.Open("albums.xlsx", "Albums")
//	if err != nil {
//	    return err
//	}
//	defer wb.Close()
//
//	report, err := spreadsheet.Sync(ctx, wb, catalog, spreadsheet.Layout{
//	    FirstColumn: 1,
//	    FirstRow:    2,
//	})
//	if err != nil {
//	    return err
//	}
//	if err := wb.Save(ctx, true); err != nil {
//	    return err
//	}
//	fmt.Printf("added %d albums\n", report.Written)
//
// Open holds a file lock next to the workbook until Close; a second run on
// the same file fails with ErrLocked.
package spreadsheet
