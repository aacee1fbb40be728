package model

import "github.com/handiism/shelves/internal/shelf"

// Album is a release found in the library.
//
// Album groups the tracks that share an album id. The shelf tag of each
// track is kept verbatim in Track.ShelfTag; Album.Shelf holds the resolved
// assignment once the resolver has decided.
//
// Example:
//
//	album := NewAlbum("mbid-123", "/music/Incoming/Muse/Drones")
//	album.Artist, album.Title = "Muse", "Drones"
//	album.AddTrack(1, "Dead Inside", "/music/Incoming/Muse/Drones/01.mp3", "Incoming")
type Album struct {
	// ID identifies the album. It is the MusicBrainz album id when the
	// files carry one, otherwise the album directory.
	ID string

	// Artist is the album artist name.
	Artist string

	// Title is the album title.
	Title string

	// Year is the release year as written in the tags.
	Year string

	// Path is the directory holding the album files.
	Path string

	// Shelf is the resolved shelf assignment. Zero until resolved.
	Shelf shelf.Assignment

	// Tracks contains all tracks of the album.
	Tracks []*Track
}

// NewAlbum creates an empty Album.
func NewAlbum(id, path string) *Album {
	return &Album{ID: id, Path: path}
}

// AddTrack appends a track and returns it.
func (a *Album) AddTrack(number int, title, path, shelfTag string) *Track {
	t := &Track{
		Album:    a,
		Number:   number,
		Title:    title,
		Path:     path,
		ShelfTag: shelfTag,
	}
	a.Tracks = append(a.Tracks, t)
	return t
}

// ShelfTags returns the distinct non-empty shelf tags of the tracks, in
// track order.
func (a *Album) ShelfTags() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range a.Tracks {
		if t.ShelfTag == "" {
			continue
		}
		if _, ok := seen[t.ShelfTag]; ok {
			continue
		}
		seen[t.ShelfTag] = struct{}{}
		out = append(out, t.ShelfTag)
	}
	return out
}

// Metadata implements Container.
func (a *Album) Metadata() Metadata {
	return Metadata{
		AlbumID: a.ID,
		Artist:  a.Artist,
		Album:   a.Title,
		Year:    a.Year,
		Shelf:   a.Shelf.Tag(),
	}
}

// Files implements Container.
func (a *Album) Files() []*Track {
	return a.Tracks
}
