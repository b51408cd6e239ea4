// Package audiotest provides an in-memory audio.Prober for tests.
package audiotest

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/handiism/album-catalog/internal/audio"
)

// Track describes what the prober reports for one file.
type Track struct {
	Kbps       int
	Genre      string
	BitrateErr error
	GenreErr   error
}

// Prober answers probes from a table keyed by file path.
// Unknown paths report audio.ErrNoFrames and audio.ErrNoGenre.
type Prober struct {
	mu     sync.Mutex
	tracks map[string]Track
	probed []string
}

// NewProber creates an empty Prober.
func NewProber() *Prober {
	return &Prober{tracks: make(map[string]Track)}
}

// Set registers the probe results for path.
func (p *Prober) Set(path string, track Track) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tracks[path] = track
}

// AddFile creates an empty file named name in dir and registers track for it.
// It returns the file's path.
func (p *Prober) AddFile(t testing.TB, dir, name string, track Track) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	p.Set(path, track)
	return path
}

// Bitrate implements audio.Prober.
func (p *Prober) Bitrate(path string) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.probed = append(p.probed, "bitrate:"+filepath.Base(path))

	track, ok := p.tracks[path]
	if !ok {
		return 0, audio.ErrNoFrames
	}
	if track.BitrateErr != nil {
		return 0, track.BitrateErr
	}
	return track.Kbps, nil
}

// Genre implements audio.Prober.
func (p *Prober) Genre(path string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.probed = append(p.probed, "genre:"+filepath.Base(path))

	track, ok := p.tracks[path]
	if !ok {
		return "", audio.ErrNoGenre
	}
	if track.GenreErr != nil {
		return "", track.GenreErr
	}
	if track.Genre == "" {
		return "", audio.ErrNoGenre
	}
	return track.Genre, nil
}

// Probed returns the probes made so far as "bitrate:<file>" and
// "genre:<file>" entries, in call order.
func (p *Prober) Probed() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.probed...)
}
