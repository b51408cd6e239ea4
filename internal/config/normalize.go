package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultHighlightColor = "9A0F00"

// Normalize trims values, expands "~" and makes paths absolute, strips
// leading dots from extensions and fills in defaults for zero values.
func (s *Settings) Normalize() error {
	var err error
	if s.DataFolder, err = expandPath(s.DataFolder); err != nil {
		return fmt.Errorf("data_folder: %w", err)
	}
	if s.CachePath, err = expandPath(s.CachePath); err != nil {
		return fmt.Errorf("cache_path: %w", err)
	}
	if s.Spreadsheet.FileName, err = expandPath(s.Spreadsheet.FileName); err != nil {
		return fmt.Errorf("spreadsheet.file_name: %w", err)
	}

	extensions := make([]string, 0, len(s.Extensions))
	seen := make(map[string]bool, len(s.Extensions))
	for _, ext := range s.Extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext == "" || seen[ext] {
			continue
		}
		seen[ext] = true
		extensions = append(extensions, ext)
	}
	s.Extensions = extensions

	if s.Workers == 0 {
		s.Workers = 1
	}

	s.Spreadsheet.Sheet = strings.TrimSpace(s.Spreadsheet.Sheet)
	color := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(s.Spreadsheet.HighlightColor), "#"))
	if color == "" {
		color = defaultHighlightColor
	}
	s.Spreadsheet.HighlightColor = color
	return nil
}

func expandPath(pathValue string) (string, error) {
	pathValue = strings.TrimSpace(pathValue)
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
