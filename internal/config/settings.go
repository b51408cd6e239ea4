package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	ioutils "github.com/handiism/album-catalog/internal/io"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "config.json"

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Settings holds all configuration options.
type Settings struct {
	// Library settings
	DataFolder string   `json:"data_folder" toml:"data_folder"`
	Extensions []string `json:"extensions" toml:"extensions"`
	Workers    int      `json:"workers" toml:"workers"`
	CachePath  string   `json:"cache_path,omitempty" toml:"cache_path,omitempty"`

	Spreadsheet SpreadsheetSettings `json:"spreadsheet" toml:"spreadsheet"`
}

// SpreadsheetSettings locates the catalog inside a workbook.
type SpreadsheetSettings struct {
	FileName    string `json:"file_name" toml:"file_name"`
	Sheet       string `json:"sheet" toml:"sheet"`
	FirstColumn int    `json:"first_column" toml:"first_column"`
	FirstRow    int    `json:"first_row" toml:"first_row"`

	// HighlightColor is the background of inserted rows, six hex digits.
	HighlightColor string `json:"highlight_color" toml:"highlight_color"`
	// Backup copies the workbook to <file_name>.bak before saving.
	Backup bool `json:"backup" toml:"backup"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Extensions: []string{"mp3", "flac"},
		Workers:    1,
		Spreadsheet: SpreadsheetSettings{
			FirstColumn:    1,
			FirstRow:       2,
			HighlightColor: defaultHighlightColor,
		},
	}
}

// Load reads settings from a JSON file, or a TOML file when path ends in
// ".toml". Values missing from the file keep their defaults. The loaded
// settings are normalized and validated.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	settings := DefaultSettings()
	if isTOML(path) {
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(settings)
	} else {
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		err = decoder.Decode(settings)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := settings.Normalize(); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON or TOML file, depending on the extension
// of path.
func (s *Settings) Save(path string) error {
	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	data, err := s.encode(path)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (s *Settings) encode(path string) ([]byte, error) {
	if isTOML(path) {
		return toml.Marshal(s)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
