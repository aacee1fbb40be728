package shelf

import (
	"path/filepath"
	"testing"
)

func newTestEngine(rule Rule, restrict bool) *Engine {
	return NewEngine(NewValidator(DefaultLimits()), NewResolver(), EngineConfig{
		Root:            filepath.FromSlash("/music"),
		Rule:            rule,
		RestrictToKnown: restrict,
	})
}

func TestEngine_ResolveFile(t *testing.T) {
	rule := Rule{Stage1: []string{"Incoming"}, Stage2: "Standard", Enabled: true}
	known := NewKnown("Incoming", "Standard")

	tests := []struct {
		name      string
		obs       Observation
		wantShelf string
		wantKind  Kind
		wantStep  Step
	}{
		{
			"location wins over tag",
			Observation{AlbumID: "A1", Path: "/music/Incoming/Artist/Album/01.mp3", Tag: "Favorites; manual"},
			"Incoming", KindExplicit, StepLocation,
		},
		{
			"manual tag when location is not a shelf",
			Observation{AlbumID: "A1", Path: "/music/Muse - Drones/01.mp3", Tag: "Favorites; manual"},
			"Favorites", KindExplicit, StepManualTag,
		},
		{
			"plain tag is a vote after transition",
			Observation{AlbumID: "A1", Path: "/elsewhere/Album/01.mp3", Tag: "Incoming"},
			"Standard", KindInferred, StepVote,
		},
		{
			"plain tag outside the rule",
			Observation{AlbumID: "A1", Path: "/elsewhere/Album/01.mp3", Tag: "Soundtracks"},
			"Soundtracks", KindInferred, StepVote,
		},
		{
			"nothing to go on",
			Observation{AlbumID: "A1", Path: "/elsewhere/01.mp3"},
			"", KindInferred, StepSkipped,
		},
		{
			"no album id",
			Observation{Path: "/music/Incoming/Artist/01.mp3"},
			"", KindInferred, StepSkipped,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(rule, false)
			tt.obs.Path = filepath.FromSlash(tt.obs.Path)

			d := e.ResolveFile(tt.obs, known)
			if d.Assignment.Name != tt.wantShelf || d.Assignment.Kind != tt.wantKind || d.Step != tt.wantStep {
				t.Errorf("ResolveFile = %+v, want %q %v %v", d, tt.wantShelf, tt.wantKind, tt.wantStep)
			}
		})
	}
}

func TestEngine_LocationLocksAlbum(t *testing.T) {
	e := newTestEngine(Rule{}, false)
	known := NewKnown("Incoming")

	e.ResolveFile(Observation{AlbumID: "A1", Path: filepath.FromSlash("/music/Incoming/a/01.mp3")}, known)
	e.ResolveFile(Observation{AlbumID: "A1", Path: filepath.FromSlash("/x/02.mp3"), Tag: "Standard"}, known)
	e.ResolveFile(Observation{AlbumID: "A1", Path: filepath.FromSlash("/x/03.mp3"), Tag: "Standard"}, known)

	res := e.Resolver().AlbumShelf("A1")
	if res.Shelf != "Incoming" || res.Source != SourceManual {
		t.Errorf("AlbumShelf = %+v, want Incoming manual", res)
	}
}

func TestEngine_VotesAcrossFiles(t *testing.T) {
	e := newTestEngine(Rule{}, false)

	for i, tag := range []string{"Standard", "Jazz", "Standard"} {
		e.ResolveFile(Observation{
			AlbumID: "A1",
			Path:    filepath.Join("/x", "album", string(rune('a'+i))+".mp3"),
			Tag:     tag,
		}, nil)
	}

	res := e.Resolver().AlbumShelf("A1")
	if res.Shelf != "Standard" || res.Source != SourceVoted {
		t.Errorf("AlbumShelf = %+v, want Standard voted", res)
	}
}

func TestEngine_RestrictToKnown(t *testing.T) {
	rule := Rule{Stage1: []string{Wildcard}, Stage2: "Standard", Enabled: true}
	known := NewKnown("Incoming", "Standard")
	obs := Observation{AlbumID: "A1", Path: filepath.FromSlash("/x/01.mp3"), Tag: "Artist Name"}

	open := newTestEngine(rule, false).ResolveFile(obs, known)
	if open.Assignment.Name != "Standard" {
		t.Errorf("unrestricted = %q, want Standard", open.Assignment.Name)
	}

	restricted := newTestEngine(rule, true).ResolveFile(obs, known)
	if restricted.Assignment.Name != "Artist Name" {
		t.Errorf("restricted = %q, want the unknown shelf unchanged", restricted.Assignment.Name)
	}

	obs.Tag = "Incoming"
	if d := newTestEngine(rule, true).ResolveFile(obs, known); d.Assignment.Name != "Standard" {
		t.Errorf("restricted known = %q, want Standard", d.Assignment.Name)
	}
}

func TestDecision_String(t *testing.T) {
	d := Decision{Path: "a.mp3", Assignment: Assignment{Name: "Jazz", Kind: KindExplicit}, Step: StepManualTag}
	if got, want := d.String(), "a.mp3: Jazz (explicit, manual-tag)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := (Decision{Path: "b.mp3"}).String(); got != "b.mp3: skipped" {
		t.Errorf("String() = %q", got)
	}
}
