// Command album-catalog adds the albums of a music folder to a spreadsheet.
//
// Usage:
//
//	album-catalog [--config config.json] [--dry-run] [--verbose]
//	album-catalog scan
//	album-catalog config init [--path config.toml] [--overwrite]
//	album-catalog config validate
//
// For interactive mode, use album-catalog-tui.
package main
