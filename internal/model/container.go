package model

// Metadata is the tag view of an album or track.
type Metadata struct {
	AlbumID string
	Artist  string
	Album   string
	Title   string
	Year    string

	// Shelf is the shelf tag value, possibly carrying the manual suffix.
	Shelf string
}

// Container is anything that has metadata and contains audio files.
// Both *Album and *Track implement it, so actions such as "set shelf"
// accept either without inspecting the concrete type.
type Container interface {
	Metadata() Metadata
	Files() []*Track
}

var (
	_ Container = (*Album)(nil)
	_ Container = (*Track)(nil)
)
