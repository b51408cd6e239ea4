package audio

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mpegFrames returns n MPEG-1 Layer III frames at 44.1 kHz without CRC.
// header3 selects the bitrate: 0x90 is 128 kbps, 0xB0 is 192 kbps.
func mpegFrames(header3 byte, size, n int) []byte {
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		frame := make([]byte, size)
		copy(frame, []byte{0xFF, 0xFB, header3, 0x00})
		buf.Write(frame)
	}
	buf.Write(make([]byte, 1024))
	return buf.Bytes()
}

func TestFileProber_Bitrate(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		data []byte
		want int
	}{
		{"128 kbps", mpegFrames(0x90, 417, 3), 128},
		{"192 kbps", mpegFrames(0xB0, 626, 3), 192},
	}

	prober := NewFileProber()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".mp3")
			require.NoError(t, os.WriteFile(path, tt.data, 0o644))

			got, err := prober.Bitrate(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileProber_BitrateSkipsID3v2Tag(t *testing.T) {
	dir := t.TempDir()

	// Cover art whose bytes look like 128 kbps frames.
	cover := mpegFrames(0x90, 417, 2)

	tests := []struct {
		name    string
		picture []byte
	}{
		{"tag only", nil},
		{"frame sync inside picture", cover},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".mp3")
			file, err := os.Create(path)
			require.NoError(t, err)

			tag := id3v2.NewEmptyTag()
			tag.SetVersion(4)
			tag.SetGenre("Rock")
			if tt.picture != nil {
				tag.AddAttachedPicture(id3v2.PictureFrame{
					Encoding:    id3v2.EncodingUTF8,
					MimeType:    "image/png",
					PictureType: id3v2.PTFrontCover,
					Description: "Front",
					Picture:     tt.picture,
				})
			}
			_, err = tag.WriteTo(file)
			require.NoError(t, err)
			_, err = file.Write(mpegFrames(0xB0, 626, 3))
			require.NoError(t, err)
			require.NoError(t, file.Close())

			got, err := NewFileProber().Bitrate(path)
			require.NoError(t, err)
			assert.Equal(t, 192, got)
		})
	}
}

func TestSkipID3v2(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want int64
	}{
		{"no tag", []byte{0xFF, 0xFB, 0x90, 0x00}, 0},
		{"short file", []byte("ID"), 0},
		{"tag", append([]byte{'I', 'D', '3', 4, 0, 0x00, 0, 0, 0x01, 0x00}, make([]byte, 128)...), 138},
		{"tag with footer", append([]byte{'I', 'D', '3', 4, 0, 0x10, 0, 0, 0, 0x05}, make([]byte, 15)...), 25},
		{"two tags", append(
			append([]byte{'I', 'D', '3', 3, 0, 0, 0, 0, 0, 0x02}, 0, 0),
			'I', 'D', '3', 3, 0, 0, 0, 0, 0, 0x01, 0), 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bytes.NewReader(tt.data)
			require.NoError(t, skipID3v2(r))
			pos, err := r.Seek(0, io.SeekCurrent)
			require.NoError(t, err)
			assert.Equal(t, tt.want, pos)
		})
	}
}

func TestFileProber_BitrateNoFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.mp3")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := NewFileProber().Bitrate(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoFrames))

	var probeErr *ProbeError
	require.True(t, errors.As(err, &probeErr))
	assert.Equal(t, "bitrate", probeErr.Op)
	assert.Equal(t, path, probeErr.Path)
}

func TestFileProber_BitrateMissingFile(t *testing.T) {
	_, err := NewFileProber().Bitrate(filepath.Join(t.TempDir(), "missing.mp3"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFileProber_GenreFromID3v2(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagged.mp3")
	file, err := os.Create(path)
	require.NoError(t, err)

	tag := id3v2.NewEmptyTag()
	tag.SetVersion(4)
	tag.SetGenre("Progressive Rock")
	_, err = tag.WriteTo(file)
	require.NoError(t, err)
	_, err = file.Write(mpegFrames(0x90, 417, 2))
	require.NoError(t, err)
	require.NoError(t, file.Close())

	genre, err := NewFileProber().Genre(path)
	require.NoError(t, err)
	assert.Equal(t, "Progressive Rock", genre)
}

func TestFileProber_GenreUntagged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.mp3")
	require.NoError(t, os.WriteFile(path, mpegFrames(0x90, 417, 2), 0o644))

	_, err := NewFileProber().Genre(path)
	require.Error(t, err)

	var probeErr *ProbeError
	require.True(t, errors.As(err, &probeErr))
	assert.Equal(t, "genre", probeErr.Op)
}

func TestJoinGenres(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Rock", "Rock"},
		{"Rock\x00Pop", "Rock/Pop"},
		{"Rock\x00Pop\x00", "Rock/Pop"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, joinGenres(tt.in), "%q", tt.in)
	}
}
