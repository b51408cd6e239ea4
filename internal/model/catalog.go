package model

import "sort"

// Catalog groups album records by band.
//
// Albums keep their discovery order within a band. Bands are iterated in
// lexicographic order so that two runs over the same library produce the
// same spreadsheet.
//
// Example:
//
//	catalog := NewCatalog()
//	catalog.Add(AlbumRecord{Band: "BandA", Year: "1999", Name: "First Album"})
//	for _, band := range catalog.Bands() {
//	    albums := catalog.Albums(band)
//	    ...
//	}
type Catalog struct {
	albums map[string][]AlbumRecord
	count  int
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{albums: make(map[string][]AlbumRecord)}
}

// Add appends a record to its band's album list.
func (c *Catalog) Add(record AlbumRecord) {
	c.albums[record.Band] = append(c.albums[record.Band], record)
	c.count++
}

// Bands returns all band names in ascending order.
func (c *Catalog) Bands() []string {
	bands := make([]string, 0, len(c.albums))
	for band := range c.albums {
		bands = append(bands, band)
	}
	sort.Strings(bands)
	return bands
}

// Albums returns the records of a band in discovery order.
func (c *Catalog) Albums(band string) []AlbumRecord {
	return c.albums[band]
}

// Len returns the total number of album records.
func (c *Catalog) Len() int {
	return c.count
}

// BandCount returns the number of distinct bands.
func (c *Catalog) BandCount() int {
	return len(c.albums)
}

// Records returns every record, bands in ascending order and albums in
// discovery order within a band.
func (c *Catalog) Records() []AlbumRecord {
	records := make([]AlbumRecord, 0, c.count)
	for _, band := range c.Bands() {
		records = append(records, c.albums[band]...)
	}
	return records
}
