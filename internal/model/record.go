package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// AlbumRecord is one catalogued album, as it will appear in a spreadsheet row.
//
// Records are created once per album folder during scanning and never
// modified afterwards. The column order of a written row is:
//
//	Band | Year | Name | Bitrate | Genre | Note
type AlbumRecord struct {
	// Band is the name of the band folder the album was found in.
	Band string

	// Year is the part of the album folder name before the first "-".
	Year string

	// Name is the part of the album folder name after the first "-".
	Name string

	// Bitrate is the album-wide bitrate consensus: a kbps value such as "320",
	// an upper-cased extension such as "FLAC", "VBR", "?" or empty.
	Bitrate string

	// Genre is the album-wide genre consensus, "?" on conflict.
	Genre string

	// Note is reserved for manual annotations and is always empty.
	Note string
}

// Columns returns the record's cell values in spreadsheet column order.
func (r AlbumRecord) Columns() []string {
	return []string{r.Band, r.Year, r.Name, r.Bitrate, r.Genre, r.Note}
}

// ColumnCount is the number of spreadsheet columns occupied by a record.
const ColumnCount = 6

// ParseAlbumFolder splits an album folder name of the form "year - name".
//
// The name is split on the first "-" only, so "1999 - Greatest - Hits"
// yields ("1999", "Greatest - Hits"). Both halves are trimmed. ok is false
// when the name contains no "-".
//
// Example:
//
//	year, name, ok := ParseAlbumFolder("2001 - Second Album")
//	// year = "2001", name = "Second Album", ok = true
func ParseAlbumFolder(folder string) (year, name string, ok bool) {
	year, name, ok = strings.Cut(folder, "-")
	if !ok {
		return "", "", false
	}
	return NormalizeName(year), NormalizeName(name), true
}

// NormalizeName trims surrounding whitespace and converts the name to Unicode
// NFC. File systems such as HFS+ hand out decomposed names, while values
// typed into a spreadsheet are composed; without this "Björk" from disk would
// not compare equal to "Björk" in a cell.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
