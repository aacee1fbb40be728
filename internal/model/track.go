package model

import "path/filepath"

// Track is one audio file of an album.
type Track struct {
	// Album is a reference to the parent album.
	Album *Album

	// Number is the track number (1-indexed), 0 when unknown.
	Number int

	// Title is the track title.
	Title string

	// Path is the location of the file.
	Path string

	// ShelfTag is the raw value of the file's shelf tag, including any
	// provenance suffix.
	ShelfTag string
}

// FileName returns the base name of the track file.
func (t *Track) FileName() string {
	return filepath.Base(t.Path)
}

// Metadata implements Container. Album fields come from the parent album,
// the shelf from the track's own tag.
func (t *Track) Metadata() Metadata {
	var md Metadata
	if t.Album != nil {
		md = t.Album.Metadata()
	}
	md.Title = t.Title
	md.Shelf = t.ShelfTag
	return md
}

// Files implements Container. A track contains only itself.
func (t *Track) Files() []*Track {
	return []*Track{t}
}
