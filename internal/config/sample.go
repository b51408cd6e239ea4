package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const sampleJSON = `{
  "data_folder": "~/Music",
  "extensions": ["mp3", "flac"],
  "workers": 4,
  "spreadsheet": {
    "file_name": "~/Documents/albums.xlsx",
    "sheet": "Albums",
    "first_column": 1,
    "first_row": 2,
    "highlight_color": "9A0F00",
    "backup": true
  }
}
`

const sampleTOML = `# Folder laid out as <band>/<year> - <album>/
data_folder = "~/Music"
extensions = ["mp3", "flac"]
# Albums probed concurrently.
workers = 4
# Optional SQLite cache of probe results.
# cache_path = "~/.cache/album-catalog/probes.db"

[spreadsheet]
file_name = "~/Documents/albums.xlsx"
sheet = "Albums"
# Column holding band names and first data row, both 1-based.
first_column = 1
first_row = 2
highlight_color = "9A0F00"
backup = true
`

// CreateSample writes a sample configuration file to path, in TOML when
// path ends in ".toml" and JSON otherwise. An existing file is only
// replaced when overwrite is set.
func CreateSample(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config %s: %w", path, fs.ErrExist)
		}
	}

	sample := sampleJSON
	if isTOML(path) {
		sample = sampleTOML
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
