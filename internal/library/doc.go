// Package library walks a music collection laid out as
//
//	<root>/<band>/<year> - <album>/...
//
// and builds a model.Catalog with one record per album folder.
//
// Album folders must be exactly two levels below the root and contain a "-"
// separating the year from the album name. Anything deeper (disc folders,
// scans) belongs to the album and is handed to the audio.Aggregator.
//
//	scanner := library.NewScanner(aggregator, library.WithWorkers(4))
//	catalog, err := scanner.Scan(ctx, "/music")
package library
