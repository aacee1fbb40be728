package shelf

import (
	"log/slog"
	"math"
	"sort"
	"sync"
)

// Source tells where a resolved shelf came from.
type Source int

const (
	// SourceFallback is the weakest source: a majority count or a previously
	// recorded state.
	SourceFallback Source = iota

	// SourceVoted is the weighted winner of all votes.
	SourceVoted

	// SourceManual is an explicit decision by the user or by file location.
	SourceManual
)

// String returns the lowercase source name.
func (s Source) String() string {
	switch s {
	case SourceManual:
		return "manual"
	case SourceVoted:
		return "voted"
	default:
		return "fallback"
	}
}

// Vote is one piece of evidence for a shelf.
type Vote struct {
	Shelf  string
	Weight float64
	Reason string

	// Manual marks the internal vote recorded by a manual write.
	Manual bool
}

// ShelfCount is one entry of an album's vote distribution.
type ShelfCount struct {
	Shelf  string
	Count  int
	Weight float64
}

// Conflict is emitted when an album has received votes for more than one
// shelf. It is advisory.
type Conflict struct {
	AlbumID string
	Votes   []ShelfCount
	Winner  string
}

// Resolution is the answer of AlbumShelf. An empty Shelf means nothing could
// be resolved.
type Resolution struct {
	Shelf  string
	Source Source
}

// Found reports whether a shelf was resolved.
func (r Resolution) Found() bool {
	return r.Shelf != ""
}

// Assignment converts the resolution into a provenance-carrying assignment.
func (r Resolution) Assignment() Assignment {
	if r.Shelf == "" {
		return Assignment{}
	}
	switch r.Source {
	case SourceManual:
		return Assignment{Name: r.Shelf, Kind: KindExplicit}
	case SourceVoted:
		return Assignment{Name: r.Shelf, Kind: KindInferred}
	default:
		return Assignment{Name: r.Shelf, Kind: KindFallback}
	}
}

// Err returns a *NotFoundError for albumID when nothing was resolved.
func (r Resolution) Err(albumID string) error {
	if r.Found() {
		return nil
	}
	return &NotFoundError{AlbumID: albumID}
}

// AlbumSnapshot is a read-only copy of the state kept for one album.
type AlbumSnapshot struct {
	AlbumID      string
	Shelf        string
	Source       Source
	Locked       bool
	Votes        []Vote
	Distribution []ShelfCount
	Fallback     string
}

type albumState struct {
	shelf  string
	source Source
	locked bool
}

type albumEntry struct {
	state    *albumState
	votes    []Vote
	counts   map[string]int
	order    []string
	fallback string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for conflict and not-found warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithConflictObserver registers fn to receive every Conflict. fn is called
// without the resolver lock held and may call back into the Resolver.
func WithConflictObserver(fn func(Conflict)) Option {
	return func(r *Resolver) {
		r.observer = fn
	}
}

// Resolver holds the shelf state of every album seen in a session.
//
// One Resolver is created by the host and passed to everything that needs
// it. A single mutex guards all albums; every operation runs in one critical
// section, so a ClearAlbum and a concurrent Vote for the same album are
// strictly ordered.
type Resolver struct {
	mu       sync.Mutex
	albums   map[string]*albumEntry
	logger   *slog.Logger
	observer func(Conflict)
}

// NewResolver creates an empty Resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		albums: make(map[string]*albumEntry),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Vote records one vote of weight for shelf. Blank shelf names are ignored.
// NaN weights count as zero.
func (r *Resolver) Vote(albumID, shelf string, weight float64, reason string) {
	shelf = Normalize(shelf)
	if shelf == "" {
		return
	}
	if math.IsNaN(weight) {
		weight = 0
	}

	r.mu.Lock()
	entry := r.entry(albumID)
	entry.votes = append(entry.votes, Vote{Shelf: shelf, Weight: weight, Reason: reason})
	if _, seen := entry.counts[shelf]; !seen {
		entry.order = append(entry.order, shelf)
	}
	entry.counts[shelf]++
	entry.fallback = entry.counterWinner()

	var conflict *Conflict
	if len(entry.counts) > 1 {
		conflict = &Conflict{
			AlbumID: albumID,
			Votes:   entry.distribution(),
			Winner:  entry.fallback,
		}
	}
	r.mu.Unlock()

	if conflict != nil {
		r.report(*conflict)
	}
}

// SetAlbumShelf writes the album state. Manual writes lock the album.
// See SetAlbumShelfLocked.
func (r *Resolver) SetAlbumShelf(albumID, shelf string, source Source) (string, bool) {
	return r.SetAlbumShelfLocked(albumID, shelf, source, source == SourceManual)
}

// SetAlbumShelfLocked writes the album state and returns the shelf now in
// effect and whether the write was applied.
//
// A locked album only accepts manual writes; anything else is rejected and
// the locked shelf is returned. Only manual writes can lock, so lock is
// ignored for other sources. A manual write also records a vote of infinite
// weight for shelf, replacing any earlier manual vote. A blank shelf is
// rejected.
func (r *Resolver) SetAlbumShelfLocked(albumID, shelf string, source Source, lock bool) (string, bool) {
	shelf = Normalize(shelf)
	if source != SourceManual {
		lock = false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if shelf == "" {
		if entry, ok := r.albums[albumID]; ok && entry.state != nil {
			return entry.state.shelf, false
		}
		return "", false
	}

	entry := r.entry(albumID)
	if entry.state != nil && entry.state.locked && source != SourceManual {
		return entry.state.shelf, false
	}

	entry.state = &albumState{shelf: shelf, source: source, locked: lock}
	if source == SourceManual {
		entry.dropManualVotes()
		entry.votes = append(entry.votes, Vote{
			Shelf:  shelf,
			Weight: math.Inf(1),
			Reason: "manual",
			Manual: true,
		})
	}
	return shelf, true
}

// ClearManualOverride unlocks the album and demotes a manual state to voted,
// so ordinary votes decide again.
func (r *Resolver) ClearManualOverride(albumID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.albums[albumID]
	if !ok {
		return
	}
	entry.dropManualVotes()
	if entry.state == nil {
		return
	}
	entry.state.locked = false
	if entry.state.source == SourceManual {
		entry.state.source = SourceVoted
	}
}

// AlbumShelf resolves the current shelf of an album. In order:
//
//  1. a locked or manual state wins;
//  2. otherwise the shelf with the largest total vote weight wins;
//  3. otherwise the most frequently voted shelf, or the last recorded
//     state, is returned as a fallback.
//
// Ties are broken in favour of the shelf that was voted for first.
func (r *Resolver) AlbumShelf(albumID string) Resolution {
	r.mu.Lock()
	res := r.resolve(albumID)
	r.mu.Unlock()

	if !res.Found() {
		r.logger.Warn("no shelf resolved", "album_id", albumID)
	}
	return res
}

// ClearAlbum forgets everything about an album. Clearing an unknown album is
// a no-op.
func (r *Resolver) ClearAlbum(albumID string) {
	r.mu.Lock()
	delete(r.albums, albumID)
	r.mu.Unlock()
}

// Snapshot returns a copy of the state kept for albumID. The second result
// is false when nothing is known about the album.
func (r *Resolver) Snapshot(albumID string) (AlbumSnapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.albums[albumID]
	if !ok {
		return AlbumSnapshot{AlbumID: albumID}, false
	}
	snap := AlbumSnapshot{
		AlbumID:      albumID,
		Votes:        append([]Vote(nil), entry.votes...),
		Distribution: entry.distribution(),
		Fallback:     entry.fallback,
	}
	if entry.state != nil {
		snap.Shelf = entry.state.shelf
		snap.Source = entry.state.source
		snap.Locked = entry.state.locked
	}
	return snap, true
}

// Albums returns the ids of all albums with state, sorted.
func (r *Resolver) Albums() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.albums))
	for id := range r.albums {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Resolver) resolve(albumID string) Resolution {
	entry, ok := r.albums[albumID]
	if !ok {
		return Resolution{Source: SourceFallback}
	}

	if st := entry.state; st != nil && (st.locked || st.source == SourceManual) {
		return Resolution{Shelf: st.shelf, Source: SourceManual}
	}

	if winner := entry.weightedWinner(); winner != "" {
		return Resolution{Shelf: winner, Source: SourceVoted}
	}

	if entry.fallback != "" {
		return Resolution{Shelf: entry.fallback, Source: SourceFallback}
	}
	if entry.state != nil {
		return Resolution{Shelf: entry.state.shelf, Source: SourceFallback}
	}
	return Resolution{Source: SourceFallback}
}

func (r *Resolver) report(c Conflict) {
	attrs := make([]any, 0, len(c.Votes)*2)
	for _, v := range c.Votes {
		attrs = append(attrs, v.Shelf, v.Count)
	}
	r.logger.Warn("conflicting shelf votes",
		"album_id", c.AlbumID,
		"winner", c.Winner,
		slog.Group("votes", attrs...),
	)
	if r.observer != nil {
		r.observer(c)
	}
}

// entry must be called with r.mu held.
func (r *Resolver) entry(albumID string) *albumEntry {
	entry, ok := r.albums[albumID]
	if !ok {
		entry = &albumEntry{counts: make(map[string]int)}
		r.albums[albumID] = entry
	}
	return entry
}

func (e *albumEntry) counterWinner() string {
	winner, best := "", 0
	for _, shelf := range e.order {
		if n := e.counts[shelf]; n > best {
			winner, best = shelf, n
		}
	}
	return winner
}

func (e *albumEntry) weightedWinner() string {
	if len(e.votes) == 0 {
		return ""
	}
	sums := make(map[string]float64, len(e.counts)+1)
	var order []string
	for _, v := range e.votes {
		if _, seen := sums[v.Shelf]; !seen {
			order = append(order, v.Shelf)
		}
		sums[v.Shelf] += v.Weight
	}

	winner := ""
	best := math.Inf(-1)
	for _, shelf := range order {
		sum := sums[shelf]
		if winner == "" || sum > best {
			winner, best = shelf, sum
		}
	}
	return winner
}

func (e *albumEntry) distribution() []ShelfCount {
	weights := make(map[string]float64, len(e.order))
	for _, v := range e.votes {
		if !v.Manual {
			weights[v.Shelf] += v.Weight
		}
	}
	out := make([]ShelfCount, 0, len(e.order))
	for _, shelf := range e.order {
		out = append(out, ShelfCount{Shelf: shelf, Count: e.counts[shelf], Weight: weights[shelf]})
	}
	return out
}

func (e *albumEntry) dropManualVotes() {
	kept := e.votes[:0]
	for _, v := range e.votes {
		if !v.Manual {
			kept = append(kept, v)
		}
	}
	e.votes = kept
}
