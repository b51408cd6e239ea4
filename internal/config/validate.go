package config

import (
	"fmt"
	"os"
	"regexp"
)

var hexColor = regexp.MustCompile(`^[0-9A-F]{6}$`)

// Validate ensures the settings are usable. Every error wraps ErrInvalid.
func (s *Settings) Validate() error {
	if err := s.validateLibrary(); err != nil {
		return err
	}
	if err := s.validateSpreadsheet(); err != nil {
		return err
	}
	return nil
}

func (s *Settings) validateLibrary() error {
	if s.DataFolder == "" {
		return invalid("data_folder must be set")
	}
	info, err := os.Stat(s.DataFolder)
	if err != nil {
		return invalid("data_folder %q: %v", s.DataFolder, err)
	}
	if !info.IsDir() {
		return invalid("data_folder %q is not a directory", s.DataFolder)
	}
	if len(s.Extensions) == 0 {
		return invalid("extensions must list at least one file extension")
	}
	if s.Workers < 1 {
		return invalid("workers must be positive, got %d", s.Workers)
	}
	return nil
}

func (s *Settings) validateSpreadsheet() error {
	sheet := s.Spreadsheet
	if sheet.FileName == "" {
		return invalid("spreadsheet.file_name must be set")
	}
	if sheet.Sheet == "" {
		return invalid("spreadsheet.sheet must be set")
	}
	if sheet.FirstColumn < 1 {
		return invalid("spreadsheet.first_column must be at least 1, got %d", sheet.FirstColumn)
	}
	if sheet.FirstRow < 1 {
		return invalid("spreadsheet.first_row must be at least 1, got %d", sheet.FirstRow)
	}
	if !hexColor.MatchString(sheet.HighlightColor) {
		return invalid("spreadsheet.highlight_color must be six hex digits, got %q", sheet.HighlightColor)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
