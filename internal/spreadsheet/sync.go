package spreadsheet

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/handiism/album-catalog/internal/model"
)

// DefaultHighlight is the background color given to inserted rows.
const DefaultHighlight = "9A0F00"

// Layout describes where the catalog lives in a sheet.
type Layout struct {
	// FirstColumn is the 1-based column holding band names. The five
	// following columns hold year, album, bitrate, genre and note.
	FirstColumn int

	// FirstRow is the 1-based row of the first data row. Its cells provide
	// the styles of inserted cells.
	FirstRow int

	// Highlight is the background color of inserted cells. Empty means
	// DefaultHighlight.
	Highlight string
}

func (l Layout) highlight() string {
	if l.Highlight == "" {
		return DefaultHighlight
	}
	return l.Highlight
}

// Insertion describes the rows added for one band.
type Insertion struct {
	Band string
	// After is the row the new rows were inserted below.
	After  int
	Albums []model.AlbumRecord
}

// Rows returns the number of rows inserted.
func (i Insertion) Rows() int {
	return len(i.Albums)
}

// Report summarizes a synchronization.
type Report struct {
	Insertions []Insertion
	// Written is the number of album rows written.
	Written int
}

type syncOptions struct {
	logger   *zap.Logger
	onInsert func(Insertion)
}

// SyncOption configures Sync.
type SyncOption func(*syncOptions)

// WithSyncLogger sets the logger used by Sync.
func WithSyncLogger(logger *zap.Logger) SyncOption {
	return func(o *syncOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithInsertHook registers a function called after each band is written.
func WithInsertHook(fn func(Insertion)) SyncOption {
	return func(o *syncOptions) {
		o.onInsert = fn
	}
}

// Sync inserts every album of catalog into doc, keeping the band column
// sorted.
//
// Bands are processed in ascending order. For each band the insertion point
// is searched again with FindAnchor, so rows inserted for earlier bands are
// taken into account. The band's albums are written in discovery order into
// consecutive new rows below the anchor. Every new cell gets the style of
// the cell in the same column of layout.FirstRow, with the highlight
// background.
//
// An empty catalog leaves doc untouched.
//
// Example:
//
//	report, err := spreadsheet.Sync(ctx, workbook, catalog, spreadsheet.Layout{
//	    FirstColumn: 1,
//	    FirstRow:    2,
//	})
func Sync(ctx context.Context, doc Document, catalog *model.Catalog, layout Layout, opts ...SyncOption) (*Report, error) {
	o := syncOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	report := &Report{}
	if catalog == nil || catalog.Len() == 0 {
		return report, nil
	}
	if layout.FirstColumn < 1 || layout.FirstRow < 1 {
		return nil, fmt.Errorf("invalid layout: column %d, row %d", layout.FirstColumn, layout.FirstRow)
	}

	styles, err := captureStyles(doc, layout)
	if err != nil {
		return nil, err
	}

	for _, band := range catalog.Bands() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		albums := catalog.Albums(band)
		anchor, err := FindAnchor(doc, layout.FirstColumn, layout.FirstRow, band)
		if err != nil {
			return nil, err
		}
		if err := doc.InsertRowsAfter(anchor, len(albums)); err != nil {
			return nil, fmt.Errorf("insert %d rows after row %d: %w", len(albums), anchor, err)
		}

		for i, album := range albums {
			row := anchor + 1 + i
			for offset, value := range album.Columns() {
				col := layout.FirstColumn + offset
				if err := doc.SetCellValue(col, row, value); err != nil {
					return nil, fmt.Errorf("write row %d column %d: %w", row, col, err)
				}
				if err := doc.SetCellStyle(col, row, styles[offset]); err != nil {
					return nil, fmt.Errorf("style row %d column %d: %w", row, col, err)
				}
			}
		}

		insertion := Insertion{Band: band, After: anchor, Albums: albums}
		report.Insertions = append(report.Insertions, insertion)
		report.Written += len(albums)
		o.logger.Debug("inserted band",
			zap.String("band", band),
			zap.Int("after_row", anchor),
			zap.Int("rows", len(albums)))
		if o.onInsert != nil {
			o.onInsert(insertion)
		}
	}

	return report, nil
}

// FindAnchor returns the row new rows for band should be inserted below.
//
// Column col is read upwards from the highest row to firstRow; the first
// row whose value sorts at or before band is the anchor. When no such row
// exists the highest row is returned, so a band sorting before every
// existing one is appended at the end.
func FindAnchor(doc Document, col, firstRow int, band string) (int, error) {
	highest, err := doc.HighestRow()
	if err != nil {
		return 0, fmt.Errorf("highest row: %w", err)
	}

	for row := highest; row >= firstRow; row-- {
		value, err := doc.CellValue(col, row)
		if err != nil {
			return 0, fmt.Errorf("read row %d column %d: %w", row, col, err)
		}
		if value <= band {
			return row, nil
		}
	}
	return highest, nil
}

// captureStyles derives the highlight style of every record column from
// the first data row. Columns sharing a base style share the derived one.
func captureStyles(doc Document, layout Layout) ([]StyleID, error) {
	styles := make([]StyleID, model.ColumnCount)
	derived := make(map[StyleID]StyleID)

	for i := range styles {
		col := layout.FirstColumn + i
		base, err := doc.CellStyle(col, layout.FirstRow)
		if err != nil {
			return nil, fmt.Errorf("read style of row %d column %d: %w", layout.FirstRow, col, err)
		}
		if style, ok := derived[base]; ok {
			styles[i] = style
			continue
		}
		style, err := doc.HighlightStyle(base, layout.highlight())
		if err != nil {
			return nil, fmt.Errorf("derive highlight style: %w", err)
		}
		derived[base] = style
		styles[i] = style
	}

	return styles, nil
}
