package model

import (
	"path/filepath"
	"testing"

	"github.com/handiism/shelves/internal/shelf"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal-file.mp3", "normal-file.mp3"},
		{"file:with:colons.mp3", "file_with_colons.mp3"},
		{"file<with>brackets.mp3", "file_with_brackets.mp3"},
		{"file/with\\slashes.mp3", "file_with_slashes.mp3"},
		{"file|with|pipes.mp3", "file_with_pipes.mp3"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
		{"  padded  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := sanitizeFileName(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func testAlbum() *Album {
	album := NewAlbum("mbid-1", "/music/Incoming/Muse/Drones")
	album.Artist = "Muse"
	album.Title = "Drones"
	album.Year = "2015"
	album.AddTrack(1, "Dead Inside", "/music/Incoming/Muse/Drones/01.mp3", "Incoming")
	album.AddTrack(2, "Psycho", "/music/Incoming/Muse/Drones/02.mp3", "Favorites; manual")
	album.AddTrack(3, "Mercy", "/music/Incoming/Muse/Drones/03.mp3", "Incoming")
	album.AddTrack(4, "Reapers", "/music/Incoming/Muse/Drones/04.mp3", "")
	return album
}

func TestAlbum_FolderPath(t *testing.T) {
	tests := []struct {
		name     string
		assign   shelf.Assignment
		template string
		want     string
	}{
		{"explicit shelf drops suffix", shelf.Assignment{Name: "Favorites", Kind: shelf.KindExplicit}, "", "/music/Favorites/Muse/Drones"},
		{"inferred shelf", shelf.Assignment{Name: "Standard"}, "", "/music/Standard/Muse/Drones"},
		{"no shelf", shelf.Assignment{}, "", "/music/Muse/Drones"},
		{"custom template", shelf.Assignment{Name: "Jazz"}, "{shelf}/{year} - {album}", "/music/Jazz/2015 - Drones"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			album := testAlbum()
			album.Shelf = tt.assign
			cfg := &PathConfig{Root: "/music", FolderTemplate: tt.template}

			if got := album.FolderPath(cfg); got != filepath.FromSlash(tt.want) {
				t.Errorf("FolderPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTrack_TargetPath(t *testing.T) {
	album := testAlbum()
	album.Shelf = shelf.Assignment{Name: "Standard"}

	keep := &PathConfig{Root: "/music"}
	if got, want := album.Tracks[0].TargetPath(keep), filepath.FromSlash("/music/Standard/Muse/Drones/01.mp3"); got != want {
		t.Errorf("TargetPath() = %q, want %q", got, want)
	}

	renamed := &PathConfig{Root: "/music", FileNameFormat: "{tracknum} {title}.mp3"}
	if got, want := album.Tracks[1].TargetPath(renamed), filepath.FromSlash("/music/Standard/Muse/Drones/02 Psycho.mp3"); got != want {
		t.Errorf("TargetPath() = %q, want %q", got, want)
	}
}

func TestAlbum_ShelfTags(t *testing.T) {
	got := testAlbum().ShelfTags()
	if len(got) != 2 || got[0] != "Incoming" || got[1] != "Favorites; manual" {
		t.Errorf("ShelfTags() = %v", got)
	}
}

func TestContainer(t *testing.T) {
	album := testAlbum()
	album.Shelf = shelf.Assignment{Name: "Favorites", Kind: shelf.KindExplicit}

	var c Container = album
	if md := c.Metadata(); md.AlbumID != "mbid-1" || md.Shelf != "Favorites; manual" || md.Artist != "Muse" {
		t.Errorf("album Metadata() = %+v", md)
	}
	if n := len(c.Files()); n != 4 {
		t.Errorf("album Files() = %d, want 4", n)
	}

	c = album.Tracks[0]
	md := c.Metadata()
	if md.AlbumID != "mbid-1" || md.Title != "Dead Inside" || md.Shelf != "Incoming" {
		t.Errorf("track Metadata() = %+v", md)
	}
	if files := c.Files(); len(files) != 1 || files[0] != album.Tracks[0] {
		t.Errorf("track Files() = %v", files)
	}
}
