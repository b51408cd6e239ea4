// Package model defines the core data structures used throughout
// the album-catalog application.
//
// # AlbumRecord
//
// AlbumRecord is one album as it is written to a spreadsheet row:
//
//	year, name, ok := model.ParseAlbumFolder("1999 - First Album")
//	record := model.AlbumRecord{Band: "BandA", Year: year, Name: name, Bitrate: "320", Genre: "Rock"}
//	cells := record.Columns() // Band, Year, Name, Bitrate, Genre, Note
//
// # Catalog
//
// Catalog groups records by band. Bands iterate in ascending order, albums
// in the order they were added:
//
//	catalog := model.NewCatalog()
//	catalog.Add(record)
//	for _, band := range catalog.Bands() {
//	    for _, album := range catalog.Albums(band) {
//	        ...
//	    }
//	}
package model
