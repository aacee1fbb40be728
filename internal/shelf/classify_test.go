package shelf

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestValidator_IsLikelyShelfName(t *testing.T) {
	v := NewValidator(DefaultLimits())
	known := NewKnown("Standard", "My Very Long Known Shelf Name Here Ok")

	tests := []struct {
		name       string
		candidate  string
		wantLikely bool
		wantReason string
	}{
		{"known", "Standard", true, ""},
		{"known despite heuristics", "My Very Long Known Shelf Name Here Ok", true, ""},
		{"plain unknown", "Jazz", true, ""},
		{"empty", "", false, "Empty name"},
		{"artist album", "Muse - Drones", false, "contains ' - ' (typical for 'Artist - Album' format)"},
		{"indicator", "Greatest Hits CD", false, "contains album indicator (Vol., Disc, etc.)"},
		{
			"multiple reasons",
			"Pink Floyd - Animals",
			false,
			"contains ' - ' (typical for 'Artist - Album' format); too many words (4)",
		},
		{
			"long",
			strings.Repeat("y", 35),
			false,
			"too long (35 chars)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			likely, reason := v.IsLikelyShelfName(tt.candidate, known)
			if likely != tt.wantLikely || reason != tt.wantReason {
				t.Errorf("IsLikelyShelfName(%q) = (%v, %q), want (%v, %q)",
					tt.candidate, likely, reason, tt.wantLikely, tt.wantReason)
			}
		})
	}
}

func TestValidator_ClassifyPath(t *testing.T) {
	v := NewValidator(DefaultLimits())
	root := filepath.FromSlash("/music")
	known := NewKnown("Standard")

	tests := []struct {
		name         string
		path         string
		wantShelf    string
		wantExplicit bool
	}{
		{"shelf folder", "/music/Incoming/Artist/Album/01.mp3", "Incoming", true},
		{"known shelf", "/music/Standard/Artist/Album/01.mp3", "Standard", true},
		{"shelf with single file", "/music/Incoming/01.mp3", "Incoming", true},
		{"artist in shelf position", "/music/Muse - Drones/01.mp3", "", false},
		{"indicator in shelf position", "/music/Best Of Vol. 1/01.mp3", "", false},
		{"directly in root", "/music/01.mp3", "", false},
		{"root itself", "/music", "", false},
		{"outside root", "/other/Incoming/01.mp3", "", false},
		{"sibling prefix", "/musicians/Incoming/01.mp3", "", false},
		{"dotdot escape", "/music/../Incoming/01.mp3", "", false},
		{"unclean path", "/music/./Incoming//Artist/01.mp3", "Incoming", true},
		{"empty path", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shelf, explicit := v.ClassifyPath(filepath.FromSlash(tt.path), root, known)
			if shelf != tt.wantShelf || explicit != tt.wantExplicit {
				t.Errorf("ClassifyPath(%q) = (%q, %v), want (%q, %v)",
					tt.path, shelf, explicit, tt.wantShelf, tt.wantExplicit)
			}
		})
	}
}

func TestValidator_ClassifyPath_RelativeRoot(t *testing.T) {
	v := NewValidator(DefaultLimits())

	shelf, explicit := v.ClassifyPath(filepath.Join("lib", "Incoming", "a.mp3"), "lib", nil)
	if shelf != "Incoming" || !explicit {
		t.Errorf("ClassifyPath = (%q, %v), want (\"Incoming\", true)", shelf, explicit)
	}
}
