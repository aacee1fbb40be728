// Package model defines the library data structures shared by the shelves
// packages.
//
// # Album
//
// Album is a release found in the library, keyed by its album id:
//
//	album := model.NewAlbum("mbid-123", "/music/Incoming/Muse/Drones")
//	album.AddTrack(1, "Dead Inside", path, "Incoming")
//	album.ShelfTags() // distinct shelf tags found on the tracks
//
// # Track
//
// Track is a single audio file. ShelfTag holds the tag value exactly as read,
// including a "; manual" suffix when present.
//
// # Container
//
// Container is the capability shared by albums and tracks: both expose
// Metadata and the files they contain, so host actions work on either.
//
// # Path Configuration
//
// PathConfig computes where an album belongs once its shelf is known:
//
//	cfg := &model.PathConfig{Root: "/music", FolderTemplate: "{shelf}/{artist}/{album}"}
//	album.FolderPath(cfg) // "/music/Standard/Muse/Drones"
//
// Available placeholders: {shelf}, {artist}, {album}, {year}, {title}, {tracknum}
package model
