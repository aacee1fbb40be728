// Command shelves sorts a music library into shelves.
//
// A shelf is a top-level folder of the library such as "Incoming" or
// "Standard". shelves reads the SHELF tag of every MP3 file, combines it with
// the folder each album lives in and decides one shelf per album. The
// decision can be written back to the tags, used to move albums into their
// shelf folder, or exported as a playlist.
//
// Usage:
//
//	shelves scan [--apply]
//	shelves set ALBUM_DIR SHELF
//	shelves determine ALBUM_DIR
//	shelves reset ALBUM_DIR
//	shelves organize [--dry-run]
//	shelves export SHELF [--dir DIR]
//	shelves known list|add|remove|scan|prune
//	shelves validate NAME...
//	shelves classify PATH...
//	shelves history [ALBUM] [--prune AGE]
//	shelves config init|show
//
// Configuration is read from ~/.config/shelves/config.toml unless --config
// is given.
package main
