package library

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/handiism/shelves/internal/audio"
	ioutils "github.com/handiism/shelves/internal/io"
	"github.com/handiism/shelves/internal/journal"
	"github.com/handiism/shelves/internal/model"
)

// Move is one file relocation planned or done by Organize.
type Move struct {
	AlbumID string
	From    string
	To      string
	Err     error

	album *model.Album
	track *model.Track
}

// Organize moves the files of every resolved album into the folder given by
// the folder template. With dryRun set nothing is touched and the planned
// moves are returned. Directories emptied by a move are removed up to the
// library root. A failed move is reported in Move.Err and does not stop
// the others.
func (m *Manager) Organize(ctx context.Context, albums []*model.Album, dryRun bool) ([]Move, error) {
	root := m.settings.Library.Root
	var moves []Move
	for _, a := range albums {
		if a.Shelf.IsZero() {
			continue
		}
		for _, t := range a.Tracks {
			dst := t.TargetPath(m.pathCfg)
			if filepath.Clean(dst) == filepath.Clean(t.Path) {
				continue
			}
			moves = append(moves, Move{AlbumID: a.ID, From: t.Path, To: dst, album: a, track: t})
		}
	}
	if dryRun {
		return moves, nil
	}

	var entries []journal.Entry
	for i := range moves {
		if err := ctx.Err(); err != nil {
			return moves, err
		}
		mv := &moves[i]
		if err := ioutils.MoveFile(ctx, mv.From, mv.To); err != nil {
			mv.Err = err
			m.logger.Error("move failed", "from", mv.From, "to", mv.To, "error", err)
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error moving %s: %v", filepath.Base(mv.From), err), Level: LevelError})
			continue
		}
		ioutils.RemoveEmptyDirs(filepath.Dir(mv.From), root)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Moved %s", mv.To), Level: LevelVerbose})

		mv.track.Path = mv.To
		mv.album.Path = filepath.Dir(mv.album.Tracks[0].Path)
		entries = append(entries, m.entry(mv.album, mv.To, journal.ActionMove, "moved from "+mv.From))
	}
	m.record(ctx, entries...)

	var errs []error
	for _, mv := range moves {
		if mv.Err != nil {
			errs = append(errs, mv.Err)
		}
	}
	m.logger.Info("albums organized", "run_id", m.RunID(), "moves", len(moves), "failed", len(errs))
	return moves, errors.Join(errs...)
}

// ExportPlaylist writes a playlist of every album resolved to shelfName
// into dir, named after the shelf. An empty dir means the library root.
// It returns the written path and the number of tracks.
func (m *Manager) ExportPlaylist(ctx context.Context, albums []*model.Album, shelfName, dir string) (string, int, error) {
	if dir == "" {
		dir = m.settings.Library.Root
	}

	var selected []*model.Album
	for _, a := range albums {
		if !a.Shelf.IsZero() && a.Shelf.Name == shelfName {
			selected = append(selected, a)
		}
	}
	sort.Slice(selected, func(i, j int) bool {
		if selected[i].Artist != selected[j].Artist {
			return selected[i].Artist < selected[j].Artist
		}
		return selected[i].Title < selected[j].Title
	})

	pl := audio.ShelfPlaylist{Shelf: shelfName, Dir: dir, Albums: selected}
	format := m.settings.ToPlaylistFormat()
	path := filepath.Join(dir, pl.FileName(format))
	if err := ioutils.WriteFile(ctx, path, []byte(pl.Render(format))); err != nil {
		return "", 0, fmt.Errorf("write playlist: %w", err)
	}

	m.logger.Info("playlist written", "shelf", shelfName, "path", path, "tracks", pl.Len())
	m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist for %s", shelfName), Level: LevelSuccess})
	return path, pl.Len(), nil
}
