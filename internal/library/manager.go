package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/handiism/shelves/internal/audio"
	"github.com/handiism/shelves/internal/config"
	ioutils "github.com/handiism/shelves/internal/io"
	"github.com/handiism/shelves/internal/journal"
	"github.com/handiism/shelves/internal/model"
	"github.com/handiism/shelves/internal/shelf"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNotUnderRoot is returned for album directories outside the library root.
	ErrNotUnderRoot = errors.New("path is not under the library root")

	// ErrNoAudioFiles is returned when an album directory holds no supported files.
	ErrNoAudioFiles = errors.New("no supported audio files")
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a progress update of a library operation.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Recorder receives journal entries. *journal.Store implements it.
type Recorder interface {
	Record(ctx context.Context, entries ...journal.Entry) error
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. The manager adds component=library.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithProgress registers a callback for human readable progress events.
func WithProgress(fn func(ProgressEvent)) Option {
	return func(m *Manager) {
		m.onProgress = fn
	}
}

// WithJournal records every decision in rec.
func WithJournal(rec Recorder) Option {
	return func(m *Manager) {
		m.journal = rec
	}
}

// Manager coordinates shelf resolution over a music library.
//
// It reads the shelf tags of every file below the library root, feeds them
// through a shelf.Engine, writes resolved shelves back to the files and can
// move albums into the folder their shelf dictates.
type Manager struct {
	settings  *config.Settings
	validator *shelf.Validator
	resolver  *shelf.Resolver
	engine    *shelf.Engine
	tagger    *audio.ShelfTagger
	pathCfg   *model.PathConfig
	known     shelf.Known

	journal    Recorder
	logger     *slog.Logger
	onProgress func(ProgressEvent)

	runID  string
	albums map[string]*model.Album

	scannedFiles int32
	failedFiles  int32
	conflicted   map[string]struct{}

	mu sync.RWMutex
}

// NewManager creates a Manager for settings.
func NewManager(settings *config.Settings, opts ...Option) *Manager {
	m := &Manager{
		settings: settings,
		logger:   slog.New(slog.DiscardHandler),
		albums:     make(map[string]*model.Album),
		conflicted: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	base := m.logger
	m.logger = base.With("component", "library")

	m.validator = shelf.NewValidator(settings.ToLimits())
	m.resolver = shelf.NewResolver(
		shelf.WithLogger(base.With("component", "resolver")),
		shelf.WithConflictObserver(m.onConflict),
	)
	m.engine = shelf.NewEngine(m.validator, m.resolver, settings.ToEngineConfig())
	m.tagger = audio.NewShelfTagger(settings.ToTagAction())
	m.pathCfg = settings.ToPathConfig()

	known, rejected := settings.KnownShelves()
	for _, r := range rejected {
		m.logger.Warn("ignoring configured shelf", "shelf", r.Name, "reason", r.Reason)
	}
	m.known = known
	return m
}

// Resolver returns the resolver holding the session state.
func (m *Manager) Resolver() *shelf.Resolver {
	return m.resolver
}

// Known returns a copy of the known shelves in use.
func (m *Manager) Known() shelf.Known {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.known.Clone()
}

// RunID returns the id of the most recent operation.
func (m *Manager) RunID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.runID
}

// GetProgress returns the number of files read and failed in the last scan.
func (m *Manager) GetProgress() (scanned, failed int32) {
	return atomic.LoadInt32(&m.scannedFiles), atomic.LoadInt32(&m.failedFiles)
}

// Album returns an album seen by the last scan or album load.
func (m *Manager) Album(id string) (*model.Album, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.albums[id]
	return a, ok
}

// DiscoveredShelves returns the resolved shelves of all albums seen so far,
// sorted, without known shelves.
func (m *Manager) DiscoveredShelves() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, a := range m.albums {
		if a.Shelf.IsZero() || m.known.Contains(a.Shelf.Name) {
			continue
		}
		seen[a.Shelf.Name] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// FileSaved is called after a file of albumID was written by another
// program. The album's state is dropped so the next scan starts fresh.
func (m *Manager) FileSaved(ctx context.Context, albumID string) {
	m.resolver.ClearAlbum(albumID)
	m.record(ctx, m.clearEntry(albumID, "file saved"))
	m.logger.Debug("album state cleared after save", "album_id", albumID)
}

// FileRemoved is called after a file of albumID was removed.
func (m *Manager) FileRemoved(ctx context.Context, albumID string) {
	m.resolver.ClearAlbum(albumID)
	m.mu.Lock()
	delete(m.albums, albumID)
	m.mu.Unlock()
	m.record(ctx, m.clearEntry(albumID, "file removed"))
	m.logger.Debug("album state cleared after removal", "album_id", albumID)
}

func (m *Manager) beginRun() string {
	id := uuid.NewString()
	m.mu.Lock()
	m.runID = id
	clear(m.conflicted)
	m.mu.Unlock()
	atomic.StoreInt32(&m.scannedFiles, 0)
	atomic.StoreInt32(&m.failedFiles, 0)
	return id
}

// readAll reads the tags of paths in parallel. Unreadable files are
// reported and left nil.
func (m *Manager) readAll(ctx context.Context, paths []string) ([]*audio.TagInfo, error) {
	infos := make([]*audio.TagInfo, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, m.settings.Library.ScanConcurrency))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			info, err := m.tagger.ReadTags(path)
			if err != nil {
				atomic.AddInt32(&m.failedFiles, 1)
				m.logger.Warn("unreadable tags", "path", path, "error", err)
				m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s: %v", filepath.Base(path), err), Level: LevelWarning})
				return nil
			}
			atomic.AddInt32(&m.scannedFiles, 1)
			infos[i] = &info
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return infos, nil
}

// group builds albums from tag infos, keeping the order of first appearance.
func group(infos []*audio.TagInfo) []*model.Album {
	byID := make(map[string]*model.Album)
	var albums []*model.Album
	for _, info := range infos {
		if info == nil {
			continue
		}
		id := albumID(info)
		album, ok := byID[id]
		if !ok {
			album = model.NewAlbum(id, filepath.Dir(info.Path))
			album.Artist = info.AlbumArtist
			if album.Artist == "" {
				album.Artist = info.Artist
			}
			album.Title = info.Album
			album.Year = info.Year
			byID[id] = album
			albums = append(albums, album)
		}
		album.AddTrack(info.TrackNumber, info.Title, info.Path, info.Shelf)
	}
	return albums
}

// albumID is the MusicBrainz album id, or the album directory when the
// files carry none.
func albumID(info *audio.TagInfo) string {
	if info.AlbumID != "" {
		return info.AlbumID
	}
	return filepath.Dir(info.Path)
}

// resolve runs the per-file priority order over albums and stores the
// outcome in Album.Shelf.
func (m *Manager) resolve(albums []*model.Album) []shelf.Decision {
	known := m.Known()
	for _, a := range albums {
		m.resolver.ClearAlbum(a.ID)
	}

	var decisions []shelf.Decision
	for _, a := range albums {
		for _, t := range a.Tracks {
			d := m.engine.ResolveFile(shelf.Observation{AlbumID: a.ID, Path: t.Path, Tag: t.ShelfTag}, known)
			m.logger.Debug("file resolved", "path", t.Path, "shelf", d.Assignment.Name, "step", d.Step.String())
			decisions = append(decisions, d)
		}
	}

	m.mu.Lock()
	for _, a := range albums {
		a.Shelf = m.resolver.AlbumShelf(a.ID).Assignment()
		m.albums[a.ID] = a
	}
	m.mu.Unlock()
	return decisions
}

// loadAlbum reads the album in dir and resolves it. dir must be inside the
// library root.
func (m *Manager) loadAlbum(ctx context.Context, dir string) (*model.Album, []shelf.Decision, error) {
	abs, err := m.underRoot(dir)
	if err != nil {
		return nil, nil, err
	}
	if !ioutils.DirExists(abs) {
		return nil, nil, fmt.Errorf("album %s: %w", dir, fs.ErrNotExist)
	}

	var paths []string
	err = ioutils.WalkFiles(ctx, abs, audio.Supported, func(path string) error {
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("list album %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("album %s: %w", dir, ErrNoAudioFiles)
	}

	infos, err := m.readAll(ctx, paths)
	if err != nil {
		return nil, nil, err
	}
	albums := group(infos)
	if len(albums) == 0 {
		return nil, nil, fmt.Errorf("album %s: %w", dir, ErrNoAudioFiles)
	}
	if len(albums) > 1 {
		m.logger.Warn("directory holds more than one album, using the first", "dir", abs, "albums", len(albums))
	}
	decisions := m.resolve(albums[:1])
	return albums[0], decisions, nil
}

func (m *Manager) underRoot(dir string) (string, error) {
	root, err := filepath.Abs(m.settings.Library.Root)
	if err != nil {
		return "", fmt.Errorf("resolve library root: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", dir, ErrNotUnderRoot)
	}
	return abs, nil
}

// writeAlbum writes the album's assignment to every track and journals the
// changed files.
func (m *Manager) writeAlbum(ctx context.Context, album *model.Album, action journal.Action) (int, error) {
	value := album.Shelf.Tag()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, m.settings.Library.ScanConcurrency))

	var (
		changed int32
		mu      sync.Mutex
		entries []journal.Entry
	)
	for _, t := range album.Tracks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ok, err := m.tagger.WriteShelf(t.Path, value)
			if err != nil {
				m.logger.Error("tag write failed", "path", t.Path, "error", err)
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", filepath.Base(t.Path), err), Level: LevelError})
				return nil
			}
			if !ok {
				return nil
			}
			atomic.AddInt32(&changed, 1)
			t.ShelfTag = value
			mu.Lock()
			entries = append(entries, m.entry(album, t.Path, action, "tag written"))
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(changed), err
	}

	m.record(ctx, entries...)
	return int(changed), nil
}

func (m *Manager) entry(album *model.Album, path string, action journal.Action, detail string) journal.Entry {
	return journal.Entry{
		RunID:   m.RunID(),
		AlbumID: album.ID,
		Path:    path,
		Action:  action,
		Shelf:   album.Shelf.Name,
		Kind:    album.Shelf.Kind.String(),
		Detail:  detail,
	}
}

func (m *Manager) clearEntry(albumID, detail string) journal.Entry {
	e := journal.Entry{RunID: m.RunID(), AlbumID: albumID, Action: journal.ActionClear, Detail: detail}
	if a, ok := m.Album(albumID); ok {
		e.Path = a.Path
	}
	return e
}

// record appends entries to the journal. Journal failures are logged and
// never fail the operation.
func (m *Manager) record(ctx context.Context, entries ...journal.Entry) {
	if m.journal == nil || len(entries) == 0 {
		return
	}
	if err := m.journal.Record(ctx, entries...); err != nil {
		m.logger.Error("journal write failed", "entries", len(entries), "error", err)
	}
}

// onConflict runs on every vote once an album has seen a second shelf, so
// albums are counted once per run.
func (m *Manager) onConflict(c shelf.Conflict) {
	m.mu.Lock()
	m.conflicted[c.AlbumID] = struct{}{}
	m.mu.Unlock()
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Conflicting shelves for %s, using %s", c.AlbumID, c.Winner),
		Level:   LevelVerbose,
	})
}

func (m *Manager) conflictCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conflicted)
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
