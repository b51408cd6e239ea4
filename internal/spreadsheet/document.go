package spreadsheet

import "errors"

var (
	// ErrSheetNotFound is returned when the configured sheet does not exist
	// in the workbook.
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrLocked is returned when another run holds the workbook lock.
	ErrLocked = errors.New("workbook is locked by another run")
)

// StyleID identifies a cell style registered in a document.
type StyleID int

// Document is the part of a spreadsheet the synchronizer works with.
//
// Cells are addressed by 1-based column and row numbers. Implementations
// only need to support a single sheet.
type Document interface {
	// CellValue returns the text of a cell, or "" for an empty cell.
	CellValue(col, row int) (string, error)

	// SetCellValue writes text into a cell.
	SetCellValue(col, row int, value string) error

	// CellStyle returns the style of a cell.
	CellStyle(col, row int) (StyleID, error)

	// SetCellStyle applies a style to a cell.
	SetCellStyle(col, row int, style StyleID) error

	// HighlightStyle registers a copy of base whose background is filled
	// with color (six hex digits, "9A0F00") and returns its ID.
	HighlightStyle(base StyleID, color string) (StyleID, error)

	// InsertRowsAfter inserts n empty rows directly below row, shifting
	// every following row down by n.
	InsertRowsAfter(row, n int) error

	// HighestRow returns the number of the last row holding a value, or 0
	// for an empty sheet.
	HighestRow() (int, error)
}
