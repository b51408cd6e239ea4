package spreadsheet

import (
	"fmt"
	"sort"
)

type cellRef struct{ col, row int }

type highlight struct {
	base  StyleID
	color string
}

// memDocument is an in-memory Document.
type memDocument struct {
	values     map[cellRef]string
	styles     map[cellRef]StyleID
	highlights map[StyleID]highlight
	nextStyle  StyleID
	inserts    int
}

func newMemDocument() *memDocument {
	return &memDocument{
		values:     make(map[cellRef]string),
		styles:     make(map[cellRef]StyleID),
		highlights: make(map[StyleID]highlight),
		nextStyle:  100,
	}
}

// withColumn fills col downwards from row with values.
func (d *memDocument) withColumn(col, row int, values ...string) *memDocument {
	for i, v := range values {
		d.values[cellRef{col, row + i}] = v
	}
	return d
}

func (d *memDocument) withStyle(col, row int, style StyleID) *memDocument {
	d.styles[cellRef{col, row}] = style
	return d
}

func (d *memDocument) CellValue(col, row int) (string, error) {
	if col < 1 || row < 1 {
		return "", fmt.Errorf("invalid cell %d,%d", col, row)
	}
	return d.values[cellRef{col, row}], nil
}

func (d *memDocument) SetCellValue(col, row int, value string) error {
	if col < 1 || row < 1 {
		return fmt.Errorf("invalid cell %d,%d", col, row)
	}
	d.values[cellRef{col, row}] = value
	return nil
}

func (d *memDocument) CellStyle(col, row int) (StyleID, error) {
	return d.styles[cellRef{col, row}], nil
}

func (d *memDocument) SetCellStyle(col, row int, style StyleID) error {
	d.styles[cellRef{col, row}] = style
	return nil
}

func (d *memDocument) HighlightStyle(base StyleID, color string) (StyleID, error) {
	d.nextStyle++
	d.highlights[d.nextStyle] = highlight{base: base, color: color}
	return d.nextStyle, nil
}

func (d *memDocument) InsertRowsAfter(row, n int) error {
	d.inserts++
	d.values = shiftRows(d.values, row, n)
	d.styles = shiftRows(d.styles, row, n)
	return nil
}

func shiftRows[V any](cells map[cellRef]V, after, n int) map[cellRef]V {
	shifted := make(map[cellRef]V, len(cells))
	for ref, v := range cells {
		if ref.row > after {
			ref.row += n
		}
		shifted[ref] = v
	}
	return shifted
}

func (d *memDocument) HighestRow() (int, error) {
	highest := 0
	for ref, v := range d.values {
		if v != "" && ref.row > highest {
			highest = ref.row
		}
	}
	return highest, nil
}

// column returns the non-empty values of col from row onwards.
func (d *memDocument) column(col, row int) []string {
	var rows []int
	for ref, v := range d.values {
		if ref.col == col && ref.row >= row && v != "" {
			rows = append(rows, ref.row)
		}
	}
	sort.Ints(rows)
	values := make([]string, len(rows))
	for i, r := range rows {
		values[i] = d.values[cellRef{col, r}]
	}
	return values
}

func (d *memDocument) row(row, firstCol, n int) []string {
	values := make([]string, n)
	for i := range values {
		values[i] = d.values[cellRef{firstCol + i, row}]
	}
	return values
}
