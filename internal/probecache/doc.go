// Package probecache keeps the results of audio probes between runs.
//
// Decoding the first frame and reading the tag of every file is the slow part
// of a scan. Wrapping the prober in a Cache makes a rescan of an unchanged
// library mostly database lookups:
//
//	cache, err := probecache.Open("probes.db", audio.NewFileProber(), logger)
//	if err != nil {
//	    return err
//	}
//	defer cache.Close()
//	agg := audio.NewAggregator(extensions, cache, logger)
package probecache
