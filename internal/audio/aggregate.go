package audio

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Aggregator derives one bitrate and one genre for a folder or an album from
// the files it contains.
//
// Example:
//
//	agg := NewAggregator([]string{"mp3", "flac"}, NewFileProber(), logger)
//	bitrate, genre := agg.Album("/music/Band/1999 - Album")
//	// "320", "Rock" when every file agrees
//	// "VBR", "Rock" when MP3 bitrates differ
type Aggregator struct {
	extensions map[string]struct{}
	prober     Prober
	logger     *zap.Logger
}

// NewAggregator creates an Aggregator accepting files with the given
// extensions. Extensions are matched case-insensitively, with or without a
// leading dot. A nil logger discards diagnostics.
func NewAggregator(extensions []string, prober Prober, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[NormalizeExtension(ext)] = struct{}{}
	}
	return &Aggregator{
		extensions: allowed,
		prober:     prober,
		logger:     logger,
	}
}

// NormalizeExtension upper-cases an extension and strips its leading dot.
func NormalizeExtension(ext string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// Album aggregates an album folder. When the album has subfolders (one per
// disc, say) each subfolder is aggregated on its own and the per-disc
// results are combined with the same rule as files within a folder; files
// lying directly in the album folder are ignored. Otherwise the album
// folder itself is aggregated.
func (a *Aggregator) Album(dir string) (bitrate, genre string) {
	subdirs := subdirectories(dir)
	if len(subdirs) == 0 {
		br, gn := a.Folder(dir)
		return br.Value(), gn.Value()
	}

	var br, gn Consensus
	for _, sub := range subdirs {
		discBitrate, discGenre := a.Folder(sub)
		br.merge(discBitrate, (*Consensus).ObserveBitrate)
		gn.merge(discGenre, observeGenre)
		if br.conflict && gn.conflict {
			break
		}
	}
	return br.Value(), gn.Value()
}

// Folder folds the matching files of a single folder into a bitrate and a
// genre consensus. Subfolders are not visited.
//
// Both quantities share one pass over the files: the pass stops at the
// first conflict of either, so a bitrate conflict also leaves the genre of
// the remaining files unread.
func (a *Aggregator) Folder(dir string) (bitrate, genre Consensus) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		a.logger.Debug("cannot read folder", zap.String("path", dir), zap.Error(err))
		return bitrate, genre
	}

	for _, entry := range entries {
		if !isFile(dir, entry) {
			continue
		}
		ext := NormalizeExtension(filepath.Ext(entry.Name()))
		if _, ok := a.extensions[ext]; !ok || ext == "" {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		if token, ok := a.bitrateToken(path, ext); ok {
			if !bitrate.ObserveBitrate(token) {
				break
			}
		}

		g, err := a.prober.Genre(path)
		if err != nil {
			a.logger.Warn("cannot read tag", zap.String("path", path), zap.Error(err))
			genre.Fail(Unknown)
			break
		}
		if !observeGenre(&genre, g) {
			break
		}
	}

	return bitrate, genre
}

func observeGenre(c *Consensus, genre string) bool {
	return c.Observe(genre, Unknown)
}

// bitrateToken returns the file's contribution to the bitrate consensus.
// MP3 files contribute their kbps value, other formats their extension.
// ok is false when an MP3 file could not be decoded.
func (a *Aggregator) bitrateToken(path, ext string) (string, bool) {
	if ext != "MP3" {
		return ext, true
	}

	kbps, err := a.prober.Bitrate(path)
	if err != nil {
		if errors.Is(err, ErrNoFrames) {
			a.logger.Warn("file did not contain any frames", zap.String("path", path))
		} else {
			a.logger.Warn("cannot decode file", zap.String("path", path), zap.Error(err))
		}
		return "", false
	}
	return strconv.Itoa(kbps), true
}

func isFile(dir string, entry os.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}

// subdirectories lists the directories directly inside dir, following
// symlinks, in name order.
func subdirectories(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var dirs []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			dirs = append(dirs, path)
			continue
		}
		if entry.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				dirs = append(dirs, path)
			}
		}
	}
	return dirs
}
