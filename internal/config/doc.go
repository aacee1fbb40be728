// Package config provides configuration management for shelves.
//
// This package handles:
//   - Loading and saving settings from TOML files
//   - Default configuration values
//   - The known shelf catalogue
//   - Conversion to shelf, model and audio configuration
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Library at ~/Music, known shelves "Incoming" and "Standard"
//	// Workflow disabled, stage 1 "Incoming" promotes to "Standard"
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.toml")
//	// A missing file yields the defaults. Paths are expanded ("~" included)
//	// and the result is validated.
//
// # Saving Settings
//
//	_, _, err := settings.AddKnownShelf("Soundtracks")
//	err = settings.Save("/path/to/config.toml")
//
// Save takes an advisory lock next to the file so that concurrent writers,
// for example two CLI invocations adding shelves, do not lose updates.
//
// # Example File
//
//	[library]
//	root = "~/Music"
//	known_shelves = ["Incoming", "Standard"]
//	scan_concurrency = 8
//	folder_template = "{shelf}/{artist}/{album}"
//
//	[workflow]
//	enabled = true
//	stage_1 = ["Incoming"]
//	stage_2 = "Standard"
//	stage_1_includes_non_shelves = false
//	restrict_to_known = false
//
//	[names]
//	max_length = 30
//	max_words = 3
//	album_indicators = ["Vol.", "Volume", "Disc", "CD", "Part"]
//
//	[logging]
//	level = "info"
//	format = "console"
//
//	[journal]
//	enabled = true
//	path = "~/.local/share/shelves/journal.db"
package config
