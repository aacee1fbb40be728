package audio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/handiism/shelves/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS

	// FormatWPL creates .wpl files (Windows Media Player).
	FormatWPL
)

// ParsePlaylistFormat converts "m3u", "pls" or "wpl" into a PlaylistFormat.
func ParsePlaylistFormat(s string) (PlaylistFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "m3u", "m3u8":
		return FormatM3U, nil
	case "pls":
		return FormatPLS, nil
	case "wpl":
		return FormatWPL, nil
	default:
		return FormatM3U, fmt.Errorf("unknown playlist format %q", s)
	}
}

// Extension returns the file extension, including the dot.
func (f PlaylistFormat) Extension() string {
	switch f {
	case FormatPLS:
		return ".pls"
	case FormatWPL:
		return ".wpl"
	default:
		return ".m3u"
	}
}

// ShelfPlaylist lists every track of the albums on one shelf.
//
// Track paths are written relative to Dir, the directory the playlist will
// be saved in, so the playlist keeps working when the library is mounted
// elsewhere. Paths that cannot be made relative are written as is.
//
// Example:
//
//	pl := ShelfPlaylist{Shelf: "Standard", Dir: "/music", Albums: albums}
//	content := pl.Render(FormatM3U)
//	os.WriteFile(filepath.Join("/music", "Standard.m3u"), []byte(content), 0644)
//
//	// Result:
//	// #EXTM3U
//	// #PLAYLIST:Standard
//	// #EXTINF:-1,Muse - Dead Inside
//	// Standard/Muse/Drones/01.mp3
type ShelfPlaylist struct {
	Shelf  string
	Dir    string
	Albums []*model.Album
}

// FileName returns the default playlist file name for format.
func (p ShelfPlaylist) FileName(format PlaylistFormat) string {
	return p.Shelf + format.Extension()
}

// Render generates the playlist content.
func (p ShelfPlaylist) Render(format PlaylistFormat) string {
	switch format {
	case FormatPLS:
		return p.renderPLS()
	case FormatWPL:
		return p.renderWPL()
	default:
		return p.renderM3U()
	}
}

// Len returns the number of tracks in the playlist.
func (p ShelfPlaylist) Len() int {
	n := 0
	for _, a := range p.Albums {
		n += len(a.Tracks)
	}
	return n
}

func (p ShelfPlaylist) each(fn func(i int, a *model.Album, t *model.Track)) {
	i := 0
	for _, a := range p.Albums {
		for _, t := range a.Tracks {
			i++
			fn(i, a, t)
		}
	}
}

func (p ShelfPlaylist) entry(t *model.Track) string {
	if p.Dir == "" {
		return filepath.ToSlash(t.Path)
	}
	rel, err := filepath.Rel(p.Dir, t.Path)
	if err != nil {
		return filepath.ToSlash(t.Path)
	}
	return filepath.ToSlash(rel)
}

// renderM3U writes extended M3U. Durations are not tracked, so every
// EXTINF line carries -1.
func (p ShelfPlaylist) renderM3U() string {
	var sb strings.Builder
	sb.WriteString("#EXTM3U\n")
	fmt.Fprintf(&sb, "#PLAYLIST:%s\n", p.Shelf)
	p.each(func(_ int, a *model.Album, t *model.Track) {
		fmt.Fprintf(&sb, "#EXTINF:-1,%s - %s\n", a.Artist, trackTitle(t))
		sb.WriteString(p.entry(t) + "\n")
	})
	return sb.String()
}

func (p ShelfPlaylist) renderPLS() string {
	var sb strings.Builder
	sb.WriteString("[playlist]\n")
	p.each(func(i int, a *model.Album, t *model.Track) {
		fmt.Fprintf(&sb, "File%d=%s\n", i, p.entry(t))
		fmt.Fprintf(&sb, "Title%d=%s - %s\n", i, a.Artist, trackTitle(t))
		fmt.Fprintf(&sb, "Length%d=-1\n", i)
	})
	fmt.Fprintf(&sb, "NumberOfEntries=%d\n", p.Len())
	sb.WriteString("Version=2\n")
	return sb.String()
}

func (p ShelfPlaylist) renderWPL() string {
	var sb strings.Builder
	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n  <head>\n")
	fmt.Fprintf(&sb, "    <meta name=\"ItemCount\" content=\"%d\"/>\n", p.Len())
	fmt.Fprintf(&sb, "    <title>%s</title>\n", xmlEscaper.Replace(p.Shelf))
	sb.WriteString("  </head>\n  <body>\n    <seq>\n")
	p.each(func(_ int, _ *model.Album, t *model.Track) {
		fmt.Fprintf(&sb, "      <media src=\"%s\"/>\n", xmlEscaper.Replace(p.entry(t)))
	})
	sb.WriteString("    </seq>\n  </body>\n</smil>\n")
	return sb.String()
}

func trackTitle(t *model.Track) string {
	if t.Title != "" {
		return t.Title
	}
	return strings.TrimSuffix(t.FileName(), filepath.Ext(t.Path))
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)
