package audio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
)

const (
	// ShelfDescription is the TXXX description holding the shelf tag.
	ShelfDescription = "SHELF"

	// AlbumIDDescription is the TXXX description holding the MusicBrainz
	// album id.
	AlbumIDDescription = "MusicBrainz Album Id"

	userTextFrame = "User defined text information frame"
)

// ErrNotAudioFile is returned for files the tagger does not handle.
var ErrNotAudioFile = errors.New("not a tagged audio file")

// TagEditAction defines how the shelf tag is handled on write.
type TagEditAction int

const (
	// TagEmpty removes the shelf tag.
	TagEmpty TagEditAction = iota

	// TagModify writes the resolved shelf.
	TagModify

	// TagDoNotModify leaves the existing tag unchanged.
	TagDoNotModify
)

func (a TagEditAction) String() string {
	switch a {
	case TagEmpty:
		return "empty"
	case TagDoNotModify:
		return "keep"
	default:
		return "modify"
	}
}

// ParseTagEditAction converts a configuration string ("modify", "empty",
// "keep") into a TagEditAction.
func ParseTagEditAction(s string) (TagEditAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "modify":
		return TagModify, nil
	case "empty", "clear":
		return TagEmpty, nil
	case "keep", "none":
		return TagDoNotModify, nil
	default:
		return TagModify, fmt.Errorf("unknown tag action %q", s)
	}
}

// TagInfo is what ReadTags extracts from one file.
type TagInfo struct {
	Path        string
	Artist      string
	AlbumArtist string
	Album       string
	Title       string
	Year        string
	TrackNumber int

	// AlbumID is the MusicBrainz album id, empty when absent.
	AlbumID string

	// Shelf is the raw shelf tag value.
	Shelf string
}

// ShelfTagger reads and writes the shelf tag of MP3 files.
//
// The shelf is stored in a TXXX frame described as "SHELF". All other
// frames are preserved on write.
//
// Example:
//
//	tagger := NewShelfTagger(TagModify)
//	info, err := tagger.ReadTags("/music/Incoming/Muse/Drones/01.mp3")
//	if err != nil {
//	    return err
//	}
//	_, err = tagger.WriteShelf(info.Path, "Standard")
type ShelfTagger struct {
	action TagEditAction
}

// NewShelfTagger creates a ShelfTagger applying action on every write.
func NewShelfTagger(action TagEditAction) *ShelfTagger {
	return &ShelfTagger{action: action}
}

// Action returns the configured write action.
func (t *ShelfTagger) Action() TagEditAction {
	return t.action
}

// Supported reports whether path has an extension the tagger handles.
func Supported(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp3")
}

// ReadTags reads the metadata relevant to shelf resolution.
func (t *ShelfTagger) ReadTags(path string) (TagInfo, error) {
	if !Supported(path) {
		return TagInfo{}, fmt.Errorf("%s: %w", path, ErrNotAudioFile)
	}
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return TagInfo{}, fmt.Errorf("open tags of %s: %w", path, err)
	}
	defer tag.Close()

	info := TagInfo{
		Path:        path,
		Artist:      tag.Artist(),
		AlbumArtist: tag.GetTextFrame("TPE2").Text,
		Album:       tag.Album(),
		Title:       tag.Title(),
		Year:        tag.Year(),
		TrackNumber: parseTrackNumber(tag.GetTextFrame("TRCK").Text),
	}

	for _, f := range userTextFrames(tag) {
		switch {
		case strings.EqualFold(f.Description, ShelfDescription):
			info.Shelf = strings.TrimSpace(f.Value)
		case strings.EqualFold(f.Description, AlbumIDDescription):
			info.AlbumID = strings.TrimSpace(f.Value)
		}
	}
	return info, nil
}

// ReadShelf returns the raw shelf tag value of path.
func (t *ShelfTagger) ReadShelf(path string) (string, error) {
	info, err := t.ReadTags(path)
	if err != nil {
		return "", err
	}
	return info.Shelf, nil
}

// WriteShelf stores value in the shelf tag of path according to the
// configured action. TagModify with an empty value removes the tag.
// It reports whether the file was changed.
func (t *ShelfTagger) WriteShelf(path, value string) (bool, error) {
	if t.action == TagDoNotModify {
		return false, nil
	}
	if !Supported(path) {
		return false, fmt.Errorf("%s: %w", path, ErrNotAudioFile)
	}
	if t.action == TagEmpty {
		value = ""
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return false, fmt.Errorf("open tags of %s: %w", path, err)
	}
	defer tag.Close()

	frames := userTextFrames(tag)
	current := ""
	for _, f := range frames {
		if strings.EqualFold(f.Description, ShelfDescription) {
			current = f.Value
		}
	}
	if current == value {
		return false, nil
	}

	tag.DeleteFrames(tag.CommonID(userTextFrame))
	for _, f := range frames {
		if !strings.EqualFold(f.Description, ShelfDescription) {
			tag.AddUserDefinedTextFrame(f)
		}
	}
	if value != "" {
		tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    id3v2.EncodingUTF8,
			Description: ShelfDescription,
			Value:       value,
		})
	}

	if err := tag.Save(); err != nil {
		return false, fmt.Errorf("save tags of %s: %w", path, err)
	}
	return true, nil
}

func userTextFrames(tag *id3v2.Tag) []id3v2.UserDefinedTextFrame {
	var out []id3v2.UserDefinedTextFrame
	for _, f := range tag.GetFrames(tag.CommonID(userTextFrame)) {
		if udtf, ok := f.(id3v2.UserDefinedTextFrame); ok {
			out = append(out, udtf)
		}
	}
	return out
}

// parseTrackNumber reads "3" or "3/12".
func parseTrackNumber(s string) int {
	s, _, _ = strings.Cut(strings.TrimSpace(s), "/")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
