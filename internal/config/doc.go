// Package config provides configuration management for album-catalog.
//
// This package handles:
//   - Loading settings from JSON or TOML files
//   - Default configuration values
//   - Normalization and validation
//   - Writing sample configuration files
//
// # Loading from File
//
//	settings, err := config.Load("config.json")
//	if errors.Is(err, config.ErrInvalid) {
//	    // the file parsed but a value is unusable
//	}
//
// A file whose name ends in ".toml" is read as TOML, anything else as JSON.
// Keys the file leaves out keep the values of DefaultSettings.
//
// # Configuration Options
//
//	{
//	  "data_folder": "~/Music",
//	  "extensions": ["mp3", "flac"],
//	  "workers": 4,
//	  "cache_path": "~/.cache/album-catalog/probes.db",
//	  "spreadsheet": {
//	    "file_name": "albums.xlsx",
//	    "sheet": "Albums",
//	    "first_column": 1,
//	    "first_row": 2,
//	    "highlight_color": "9A0F00",
//	    "backup": true
//	  }
//	}
//
// Relative paths are resolved against the working directory.
package config
