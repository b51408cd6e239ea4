// Package audio derives album-level bitrate and genre values from the audio
// files in an album folder.
//
// # Probing
//
// A Prober reads one fact at a time from a single file:
//
//	prober := audio.NewFileProber()
//	kbps, err := prober.Bitrate("/music/Band/1999 - Album/01.mp3") // first frame only
//	genre, err := prober.Genre("/music/Band/1999 - Album/01.flac")
//
// # Consensus
//
// Values from many files are folded with a Consensus: equal values converge,
// the first differing value collapses the fold to a conflict sentinel which
// then sticks:
//   - "VBR" when two MP3 files report different bitrates
//   - "?" for mixed formats, mixed genres or unreadable tags
//
// # Aggregation
//
// The Aggregator applies the fold to a folder, and to an album made of
// several disc folders, using the same rule at both depths:
//
//	agg := audio.NewAggregator([]string{"mp3", "flac"}, prober, logger)
//	bitrate, genre := agg.Album(albumPath)
//
// Non-MP3 files contribute their upper-cased extension as their bitrate,
// so an album mixing MP3 and FLAC files reports "?".
package audio
