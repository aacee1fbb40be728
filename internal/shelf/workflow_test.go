package shelf

import "testing"

func TestRule_Apply(t *testing.T) {
	rule := Rule{Stage1: []string{"Incoming"}, Stage2: "Standard", Enabled: true}

	tests := []struct {
		name  string
		rule  Rule
		shelf string
		want  string
	}{
		{"stage 1 promoted", rule, "Incoming", "Standard"},
		{"stage 2 unchanged", rule, "Standard", "Standard"},
		{"other unchanged", rule, "Soundtracks", "Soundtracks"},
		{"empty unchanged", rule, "", ""},
		{"disabled", Rule{Stage1: []string{"Incoming"}, Stage2: "Standard"}, "Incoming", "Incoming"},
		{"no destination", Rule{Stage1: []string{"Incoming"}, Enabled: true}, "Incoming", "Incoming"},
		{"wildcard", Rule{Stage1: []string{Wildcard}, Stage2: "Standard", Enabled: true}, "Anything", "Standard"},
		{
			"includes non shelves",
			Rule{Stage1: []string{"Incoming"}, Stage2: "Standard", Enabled: true, Stage1IncludesNonShelves: true},
			"Random",
			"Standard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Apply(tt.shelf); got != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.shelf, got, tt.want)
			}
		})
	}
}

func TestRule_ApplyUnicodeForms(t *testing.T) {
	nfc := "\u00c9coute"  // precomposed É
	nfd := "E\u0301coute" // E + combining acute

	tests := []struct {
		name  string
		rule  Rule
		shelf string
		want  string
	}{
		{"decomposed tag, composed stage 1", Rule{Stage1: []string{nfc}, Stage2: "Standard", Enabled: true}, nfd, "Standard"},
		{"composed tag, decomposed stage 1", Rule{Stage1: []string{nfd}, Stage2: "Standard", Enabled: true}, nfc, "Standard"},
		{"padded stage 1", Rule{Stage1: []string{" Incoming "}, Stage2: "Standard", Enabled: true}, "Incoming", "Standard"},
		{"decomposed tag equals stage 2", Rule{Stage1: []string{Wildcard}, Stage2: nfc, Enabled: true}, nfd, nfd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Apply(tt.shelf); got != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.shelf, got, tt.want)
			}
			if got := tt.rule.ApplyKnown(tt.shelf, NewKnown(nfc, "Incoming")); got != tt.want {
				t.Errorf("ApplyKnown(%q) = %q, want %q", tt.shelf, got, tt.want)
			}
		})
	}
}

func TestRule_ApplyEqualStages(t *testing.T) {
	for _, s := range []string{"Standard", "Incoming", "X"} {
		rule := Rule{Stage1: []string{Wildcard, s}, Stage2: s, Enabled: true, Stage1IncludesNonShelves: true}
		if got := rule.Apply(s); got != s {
			t.Errorf("Apply(%q) with Stage2 %q = %q", s, s, got)
		}
		if got := rule.ApplyKnown(s, NewKnown(s)); got != s {
			t.Errorf("ApplyKnown(%q) with Stage2 %q = %q", s, s, got)
		}
	}
}

func TestRule_ApplyKnown(t *testing.T) {
	known := NewKnown("Incoming", "Standard", "Soundtracks")

	tests := []struct {
		name  string
		rule  Rule
		shelf string
		want  string
	}{
		{
			"wildcard known shelf",
			Rule{Stage1: []string{Wildcard}, Stage2: "Standard", Enabled: true},
			"Soundtracks",
			"Standard",
		},
		{
			"wildcard unknown shelf",
			Rule{Stage1: []string{Wildcard}, Stage2: "Standard", Enabled: true},
			"Artist Name",
			"Artist Name",
		},
		{
			"stage 1 member not known",
			Rule{Stage1: []string{"Inbox"}, Stage2: "Standard", Enabled: true},
			"Inbox",
			"Standard",
		},
		{
			"includes non shelves",
			Rule{Stage1: []string{"Incoming"}, Stage2: "Standard", Enabled: true, Stage1IncludesNonShelves: true},
			"Artist Name",
			"Standard",
		},
		{
			"not eligible",
			Rule{Stage1: []string{"Incoming"}, Stage2: "Standard", Enabled: true},
			"Soundtracks",
			"Soundtracks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.ApplyKnown(tt.shelf, known); got != tt.want {
				t.Errorf("ApplyKnown(%q) = %q, want %q", tt.shelf, got, tt.want)
			}
		})
	}
}

func TestRule_Mentions(t *testing.T) {
	rule := Rule{Stage1: []string{Wildcard, "Incoming"}, Stage2: "Standard"}

	if !rule.Mentions("Incoming") || !rule.Mentions("Standard") {
		t.Error("Mentions missed a workflow shelf")
	}
	if rule.Mentions("Soundtracks") || rule.Mentions(Wildcard) {
		t.Error("Mentions matched a non workflow shelf")
	}
}
