package spreadsheet

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gofrs/flock"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	ioutils "github.com/handiism/album-catalog/internal/io"
)

// Workbook is a Document backed by one sheet of an .xlsx file.
//
// Open takes an exclusive lock on "<path>.lock" that is held until Close,
// so two runs never edit the same workbook at once. Changes stay in memory
// until Save.
type Workbook struct {
	path   string
	sheet  string
	file   *excelize.File
	lock   *flock.Flock
	logger *zap.Logger
}

// WorkbookOption configures Open.
type WorkbookOption func(*Workbook)

// WithWorkbookLogger sets the logger used by the workbook.
func WithWorkbookLogger(logger *zap.Logger) WorkbookOption {
	return func(w *Workbook) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Open locks and opens the workbook at path and selects sheet.
//
// Returns ErrLocked when another process holds the lock and
// ErrSheetNotFound when the workbook has no such sheet.
func Open(path, sheet string, opts ...WorkbookOption) (*Workbook, error) {
	w := &Workbook{
		path:   path,
		sheet:  sheet,
		lock:   flock.New(path + ".lock"),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	ok, err := w.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrLocked)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		w.unlock()
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	w.file = file

	index, err := file.GetSheetIndex(sheet)
	if err != nil || index == -1 {
		w.Close()
		return nil, fmt.Errorf("%s in %s: %w", sheet, path, ErrSheetNotFound)
	}

	w.logger.Debug("opened workbook", zap.String("path", path), zap.String("sheet", sheet))
	return w, nil
}

// CellValue implements Document.
func (w *Workbook) CellValue(col, row int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	return w.file.GetCellValue(w.sheet, cell)
}

// SetCellValue implements Document. Values are always stored as strings,
// so a year such as "1999" is not turned into a number.
func (w *Workbook) SetCellValue(col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return w.file.SetCellStr(w.sheet, cell, value)
}

// CellStyle implements Document.
func (w *Workbook) CellStyle(col, row int) (StyleID, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return 0, err
	}
	style, err := w.file.GetCellStyle(w.sheet, cell)
	return StyleID(style), err
}

// SetCellStyle implements Document.
func (w *Workbook) SetCellStyle(col, row int, style StyleID) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return w.file.SetCellStyle(w.sheet, cell, cell, int(style))
}

// HighlightStyle implements Document. Font, border, alignment and number
// format of base are kept; only the fill is replaced by a solid fill.
func (w *Workbook) HighlightStyle(base StyleID, color string) (StyleID, error) {
	style, err := w.file.GetStyle(int(base))
	if err != nil {
		return 0, fmt.Errorf("read style %d: %w", base, err)
	}

	derived := *style
	derived.Fill = excelize.Fill{
		Type:    "pattern",
		Pattern: 1,
		Color:   []string{strings.TrimPrefix(color, "#")},
	}

	id, err := w.file.NewStyle(&derived)
	if err != nil {
		return 0, fmt.Errorf("register highlight style: %w", err)
	}
	return StyleID(id), nil
}

// InsertRowsAfter implements Document.
func (w *Workbook) InsertRowsAfter(row, n int) error {
	if n <= 0 {
		return nil
	}
	return w.file.InsertRows(w.sheet, row+1, n)
}

// HighestRow implements Document.
func (w *Workbook) HighestRow() (int, error) {
	rows, err := w.file.GetRows(w.sheet)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Save writes the workbook back to its file.
//
// With backup set, the file on disk is first copied to "<path>.bak". The
// workbook is written to a temporary file that replaces the original only
// once it is complete.
func (w *Workbook) Save(ctx context.Context, backup bool) error {
	if backup {
		if err := ioutils.CopyFile(ctx, w.path, w.path+".bak"); err != nil {
			return fmt.Errorf("backup workbook: %w", err)
		}
		w.logger.Debug("wrote backup", zap.String("path", w.path+".bak"))
	}

	err := ioutils.WriteFileAtomic(ctx, w.path, func(out io.Writer) error {
		return w.file.Write(out)
	})
	if err != nil {
		return fmt.Errorf("save workbook %s: %w", w.path, err)
	}
	w.logger.Debug("saved workbook", zap.String("path", w.path))
	return nil
}

// Close releases the workbook and its lock. Unsaved changes are discarded.
func (w *Workbook) Close() error {
	var err error
	if w.file != nil {
		err = w.file.Close()
		w.file = nil
	}
	w.unlock()
	return err
}

func (w *Workbook) unlock() {
	if err := w.lock.Unlock(); err != nil {
		w.logger.Warn("failed to release workbook lock", zap.Error(err))
	}
}
