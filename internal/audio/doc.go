// Package audio reads and writes the shelf tag of audio files and renders
// shelf playlists.
//
// # Shelf Tag
//
// The shelf lives in an ID3v2 TXXX frame described as "SHELF". Automatic
// results are stored as the plain shelf name, explicit ones with the
// "; manual" suffix:
//
//	tagger := audio.NewShelfTagger(audio.TagModify)
//	info, err := tagger.ReadTags(path) // artist, album, album id, shelf tag
//	changed, err := tagger.WriteShelf(path, "Favorites; manual")
//
// Other TXXX frames, such as the MusicBrainz album id that keys albums, are
// preserved. Only .mp3 files are handled; anything else yields
// ErrNotAudioFile.
//
// # Playlists
//
// ShelfPlaylist lists the tracks of every album on a shelf:
//
//	pl := audio.ShelfPlaylist{Shelf: "Standard", Dir: root, Albums: albums}
//	content := pl.Render(audio.FormatM3U)
//
// Supported formats:
//   - M3U (extended)
//   - PLS
//   - WPL (Windows Media Player)
package audio
