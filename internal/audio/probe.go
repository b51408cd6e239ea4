package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/dhowden/tag"
	"github.com/tcolgate/mp3"
)

// ErrNoFrames is returned by Prober.Bitrate when a file holds no MPEG audio frame.
var ErrNoFrames = errors.New("no audio frames")

// ErrNoGenre is returned by Prober.Genre when a file has no genre tag.
var ErrNoGenre = errors.New("no genre tag")

// ProbeError describes a failed probe of a single file.
type ProbeError struct {
	Path string
	Op   string // "bitrate" or "genre"
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("%s probe of %q: %v", e.Op, e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// Prober reads the two per-file facts the aggregators fold together.
//
// Implementations must be safe for concurrent use when the scanner runs
// with more than one worker.
type Prober interface {
	// Bitrate returns the bitrate in kbps of the first audio frame of an MP3 file.
	Bitrate(path string) (int, error)

	// Genre returns the genre stored in the file's tags.
	Genre(path string) (string, error)
}

// FileProber probes audio files on disk.
//
// MP3 bitrates come from the first decodable frame header. Genres are read
// with id3v2 for MP3 files, falling back to the generic tag reader, which
// also covers FLAC, M4A and OGG files and ID3v1-only MP3s.
type FileProber struct{}

// NewFileProber creates a FileProber.
func NewFileProber() *FileProber {
	return &FileProber{}
}

// Bitrate decodes only the first frame of the file.
func (p *FileProber) Bitrate(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, &ProbeError{Path: path, Op: "bitrate", Err: err}
	}
	defer file.Close()

	if err := skipID3v2(file); err != nil {
		return 0, &ProbeError{Path: path, Op: "bitrate", Err: err}
	}

	var (
		frame   mp3.Frame
		skipped int
	)
	if err := mp3.NewDecoder(file).Decode(&frame, &skipped); err != nil {
		if errors.Is(err, io.EOF) {
			err = ErrNoFrames
		}
		return 0, &ProbeError{Path: path, Op: "bitrate", Err: err}
	}

	bitrate := int(frame.Header().BitRate())
	if bitrate <= 0 {
		return 0, &ProbeError{Path: path, Op: "bitrate", Err: fmt.Errorf("invalid bitrate %d", bitrate)}
	}
	return bitrate / 1000, nil
}

// id3v2HeaderSize is the size of an ID3v2 tag header, and of its footer.
const id3v2HeaderSize = 10

// skipID3v2 positions r after any ID3v2 tags at its start, so that tag
// payloads such as cover art are never mistaken for audio frames.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, id3v2HeaderSize)
	for {
		start, err := r.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}
		if _, err := io.ReadFull(r, header); err != nil || string(header[:3]) != "ID3" {
			_, err = r.Seek(start, io.SeekStart)
			return err
		}

		size := int64(header[6]&0x7F)<<21 | int64(header[7]&0x7F)<<14 |
			int64(header[8]&0x7F)<<7 | int64(header[9]&0x7F)
		if header[5]&0x10 != 0 {
			size += id3v2HeaderSize
		}
		if _, err := r.Seek(start+id3v2HeaderSize+size, io.SeekStart); err != nil {
			return err
		}
	}
}

// Genre returns the file's genre. Multi-valued genres, stored NUL separated,
// are joined with "/".
func (p *FileProber) Genre(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		if genre, err := readID3v2Genre(path); err == nil && genre != "" {
			return joinGenres(genre), nil
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return "", &ProbeError{Path: path, Op: "genre", Err: err}
	}
	defer file.Close()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		return "", &ProbeError{Path: path, Op: "genre", Err: err}
	}

	genre := meta.Genre()
	if genre == "" {
		return "", &ProbeError{Path: path, Op: "genre", Err: ErrNoGenre}
	}
	return joinGenres(genre), nil
}

// readID3v2Genre reads only the genre frame of an ID3v2 tag.
func readID3v2Genre(path string) (string, error) {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{"Content type"}})
	if err != nil {
		return "", err
	}
	defer t.Close()

	return t.Genre(), nil
}

func joinGenres(genre string) string {
	return strings.ReplaceAll(strings.TrimRight(genre, "\x00"), "\x00", "/")
}
