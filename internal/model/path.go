package model

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/handiism/shelves/internal/shelf"
)

// DefaultFolderTemplate places albums below their shelf.
const DefaultFolderTemplate = "{shelf}/{artist}/{album}"

// PathConfig holds path formatting settings for albums and tracks.
//
// FolderTemplate supports these placeholders:
//   - {shelf} - Shelf name, provenance suffix removed
//   - {artist} - Album artist
//   - {album} - Album title
//   - {year} - Release year as tagged
//
// FileNameFormat additionally supports {title} and {tracknum}.
//
// Example configuration:
//
//	cfg := &PathConfig{
//	    Root:           "/music",
//	    FolderTemplate: "{shelf}/{artist}/{album}",
//	    FileNameFormat: "{tracknum} {title}.mp3",
//	}
type PathConfig struct {
	// Root is the library root all templates are relative to.
	Root string

	// FolderTemplate is the album folder template, relative to Root.
	FolderTemplate string

	// FileNameFormat is the track file name template. Empty keeps the
	// current file name.
	FileNameFormat string
}

var (
	invalidNameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots     = regexp.MustCompile(`\.+$`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
)

// FolderPath returns where the album belongs according to cfg. The shelf
// tag value is passed through shelf.CleanName, so "Favorites; manual"
// renders as "Favorites".
//
// Example:
//
//	album.Shelf = shelf.Assignment{Name: "Favorites", Kind: shelf.KindExplicit}
//	album.FolderPath(cfg) // "/music/Favorites/Muse/Drones"
func (a *Album) FolderPath(cfg *PathConfig) string {
	tmpl := cfg.FolderTemplate
	if tmpl == "" {
		tmpl = DefaultFolderTemplate
	}

	segments := strings.Split(filepath.ToSlash(tmpl), "/")
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, cfg.Root)
	for _, seg := range segments {
		seg = a.expand(seg)
		if seg == "" {
			continue
		}
		parts = append(parts, seg)
	}
	return filepath.Join(parts...)
}

// TargetPath returns where the track belongs according to cfg.
func (t *Track) TargetPath(cfg *PathConfig) string {
	dir := t.Album.FolderPath(cfg)
	if cfg.FileNameFormat == "" {
		return filepath.Join(dir, t.FileName())
	}

	name := cfg.FileNameFormat
	name = strings.ReplaceAll(name, "{title}", t.Title)
	name = strings.ReplaceAll(name, "{tracknum}", fmt.Sprintf("%02d", t.Number))
	name = t.Album.expand(name)
	return filepath.Join(dir, sanitizeFileName(name))
}

func (a *Album) expand(s string) string {
	s = strings.ReplaceAll(s, "{shelf}", shelf.CleanName(a.Shelf.Tag()))
	s = strings.ReplaceAll(s, "{artist}", a.Artist)
	s = strings.ReplaceAll(s, "{album}", a.Title)
	s = strings.ReplaceAll(s, "{year}", a.Year)
	return sanitizeFileName(s)
}

// sanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
//	sanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
func sanitizeFileName(name string) string {
	name = invalidNameChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = whitespaceRuns.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}
