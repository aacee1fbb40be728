package library

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/handiism/shelves/internal/audio"
	ioutils "github.com/handiism/shelves/internal/io"
	"github.com/handiism/shelves/internal/journal"
	"github.com/handiism/shelves/internal/model"
	"github.com/handiism/shelves/internal/shelf"
)

// Report is the outcome of a scan.
type Report struct {
	RunID     string
	Albums    []*model.Album
	Decisions []shelf.Decision
	Files     int
	Failed    int
	Conflicts int
}

// Unresolved returns the albums no shelf could be resolved for.
func (r *Report) Unresolved() []*model.Album {
	var out []*model.Album
	for _, a := range r.Albums {
		if a.Shelf.IsZero() {
			out = append(out, a)
		}
	}
	return out
}

// ByShelf groups the resolved albums by shelf name.
func (r *Report) ByShelf() map[string][]*model.Album {
	out := make(map[string][]*model.Album)
	for _, a := range r.Albums {
		if !a.Shelf.IsZero() {
			out[a.Shelf.Name] = append(out[a.Shelf.Name], a)
		}
	}
	return out
}

// Scan reads every supported file below the library root and resolves the
// shelf of each album. Files whose tags cannot be read are skipped with a
// warning. Albums are returned in path order.
func (m *Manager) Scan(ctx context.Context) (*Report, error) {
	root := m.settings.Library.Root
	if !ioutils.DirExists(root) {
		return nil, fmt.Errorf("library root %s: %w", root, fs.ErrNotExist)
	}
	runID := m.beginRun()
	m.logger.Info("scan started", "root", root, "run_id", runID)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Scanning %s", root), Level: LevelInfo})

	var paths []string
	err := ioutils.WalkFiles(ctx, root, audio.Supported, func(path string) error {
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk library: %w", err)
	}

	infos, err := m.readAll(ctx, paths)
	if err != nil {
		return nil, err
	}

	albums := group(infos)
	decisions := m.resolve(albums)

	entries := make([]journal.Entry, 0, len(decisions))
	for _, d := range decisions {
		if d.Step == shelf.StepSkipped {
			continue
		}
		entries = append(entries, journal.Entry{
			RunID:   runID,
			AlbumID: d.AlbumID,
			Path:    d.Path,
			Action:  journal.ActionResolve,
			Shelf:   d.Assignment.Name,
			Kind:    d.Assignment.Kind.String(),
			Step:    d.Step.String(),
		})
	}
	m.record(ctx, entries...)

	scanned, failed := m.GetProgress()
	report := &Report{
		RunID:     runID,
		Albums:    albums,
		Decisions: decisions,
		Files:     int(scanned),
		Failed:    int(failed),
		Conflicts: m.conflictCount(),
	}

	for _, a := range report.Unresolved() {
		m.progress(ProgressEvent{Message: fmt.Sprintf("No shelf for %s", a.Path), Level: LevelWarning})
	}
	m.logger.Info("scan finished",
		"run_id", runID,
		"files", report.Files,
		"failed", report.Failed,
		"albums", len(albums),
		"conflicts", report.Conflicts,
	)
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Scanned %d files in %d albums", report.Files, len(albums)),
		Level:   LevelSuccess,
	})
	return report, nil
}

// Apply writes the resolved shelf tag of every album to its files. Albums
// without a resolved shelf are left untouched. It returns the number of
// files changed.
func (m *Manager) Apply(ctx context.Context, albums []*model.Album) (int, error) {
	total := 0
	for _, a := range albums {
		if a.Shelf.IsZero() {
			continue
		}
		n, err := m.writeAlbum(ctx, a, journal.ActionApply)
		total += n
		if err != nil {
			return total, err
		}
		if n > 0 {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Tagged %d files of %s as %s", n, a.Path, a.Shelf.Tag()), Level: LevelVerbose})
		}
	}
	m.logger.Info("tags applied", "run_id", m.RunID(), "files", total, "action", m.tagger.Action())
	return total, nil
}

// SetShelf assigns name to the album in dir as a manual decision and writes
// the "<name>; manual" tag to its files. Names failing validation are
// rejected with shelf.ErrInvalidShelf; warnings are logged.
func (m *Manager) SetShelf(ctx context.Context, dir, name string) (*model.Album, error) {
	name = shelf.Normalize(name)
	ok, msg := m.validator.Validate(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", shelf.ErrInvalidShelf, msg)
	}
	if msg != "" {
		m.logger.Warn("unusual shelf name", "shelf", name, "reason", msg)
	}

	m.beginRun()
	album, _, err := m.loadAlbum(ctx, dir)
	if err != nil {
		return nil, err
	}

	applied, _ := m.resolver.SetAlbumShelfLocked(album.ID, name, shelf.SourceManual, true)
	album.Shelf = shelf.Assignment{Name: applied, Kind: shelf.KindExplicit}
	m.record(ctx, m.entry(album, album.Path, journal.ActionSet, "set manually"))

	if _, err := m.writeAlbum(ctx, album, journal.ActionApply); err != nil {
		return album, err
	}
	m.logger.Info("shelf set", "album_id", album.ID, "shelf", applied)
	return album, nil
}

// DetermineShelf discards the album's state and votes again using only the
// location of its files. Manual tags are ignored and overwritten with the
// inferred shelf.
func (m *Manager) DetermineShelf(ctx context.Context, dir string) (*model.Album, error) {
	m.beginRun()
	album, _, err := m.loadAlbum(ctx, dir)
	if err != nil {
		return nil, err
	}

	m.resolver.ClearAlbum(album.ID)
	known := m.Known()
	for _, t := range album.Tracks {
		candidate, _ := m.validator.ClassifyPath(t.Path, m.settings.Library.Root, known)
		if candidate == "" {
			continue
		}
		m.resolver.Vote(album.ID, candidate, 1, "location "+t.Path)
	}

	return m.settle(ctx, album, journal.ActionResolve, "determined from location")
}

// ResetShelf removes any manual decision for the album and falls back to
// automatic resolution. Files that were not already counted as votes vote
// for their tag without the manual suffix, or for their location when
// untagged.
func (m *Manager) ResetShelf(ctx context.Context, dir string) (*model.Album, error) {
	m.beginRun()
	album, decisions, err := m.loadAlbum(ctx, dir)
	if err != nil {
		return nil, err
	}

	m.resolver.ClearManualOverride(album.ID)
	known := m.Known()
	tags := make(map[string]string, len(album.Tracks))
	for _, t := range album.Tracks {
		tags[t.Path] = t.ShelfTag
	}
	for _, d := range decisions {
		if d.Step == shelf.StepVote {
			continue
		}
		if name := shelf.CleanName(tags[d.Path]); name != "" {
			m.resolver.Vote(album.ID, name, 1, "reset "+d.Path)
			continue
		}
		if candidate, _ := m.validator.ClassifyPath(d.Path, m.settings.Library.Root, known); candidate != "" {
			m.resolver.Vote(album.ID, candidate, 1, "location "+d.Path)
		}
	}

	return m.settle(ctx, album, journal.ActionReset, "manual override cleared")
}

// settle stores the album's current resolution as an inferred assignment
// and writes it to the files.
func (m *Manager) settle(ctx context.Context, album *model.Album, action journal.Action, detail string) (*model.Album, error) {
	res := m.resolver.AlbumShelf(album.ID)
	if !res.Found() {
		album.Shelf = shelf.Assignment{}
		return album, res.Err(album.ID)
	}
	album.Shelf = shelf.Assignment{Name: res.Shelf, Kind: shelf.KindInferred}
	m.record(ctx, m.entry(album, album.Path, action, detail))

	if _, err := m.writeAlbum(ctx, album, journal.ActionApply); err != nil {
		return album, err
	}
	m.logger.Info("shelf resolved", "album_id", album.ID, "shelf", res.Shelf, "source", res.Source.String())
	return album, nil
}
