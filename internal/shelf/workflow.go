package shelf

// Wildcard in Rule.Stage1 makes every shelf eligible for the transition.
const Wildcard = "*"

// Rule promotes albums from one of the Stage1 shelves to Stage2.
type Rule struct {
	// Stage1 lists source shelves. It may contain Wildcard.
	Stage1 []string

	// Stage2 is the destination shelf.
	Stage2 string

	// Enabled turns the transition on.
	Enabled bool

	// Stage1IncludesNonShelves makes any input eligible, including names
	// that are not in Stage1 and not known shelves.
	Stage1IncludesNonShelves bool
}

// Apply returns the shelf an album on shelf should move to. It returns shelf
// unchanged when the rule is disabled, the shelf is not eligible, Stage2 is
// empty, or Stage2 equals shelf.
func (r Rule) Apply(shelf string) string {
	if shelf == "" || !r.Enabled {
		return shelf
	}
	if !r.Stage1IncludesNonShelves && !r.inStage1(shelf) && !r.hasWildcard() {
		return shelf
	}
	return r.destination(shelf)
}

// ApplyKnown is Apply with known shelves taken into account. Unless
// Stage1IncludesNonShelves is set, a shelf outside known is never promoted,
// not even through Wildcard. Stage1 members are always eligible.
func (r Rule) ApplyKnown(shelf string, known Known) string {
	if shelf == "" || !r.Enabled {
		return shelf
	}
	switch {
	case r.Stage1IncludesNonShelves:
	case r.inStage1(shelf):
	case r.hasWildcard() && known.Contains(shelf):
	default:
		return shelf
	}
	return r.destination(shelf)
}

// Shelves returns every shelf the rule names, without Wildcard.
func (r Rule) Shelves() []string {
	var out []string
	for _, s := range r.Stage1 {
		if s != Wildcard && s != "" {
			out = append(out, s)
		}
	}
	if r.Stage2 != "" {
		out = append(out, r.Stage2)
	}
	return out
}

// Mentions reports whether shelf is a stage 1 or stage 2 shelf of the rule.
func (r Rule) Mentions(shelf string) bool {
	shelf = Normalize(shelf)
	for _, s := range r.Shelves() {
		if Normalize(s) == shelf {
			return true
		}
	}
	return false
}

func (r Rule) destination(shelf string) string {
	if r.Stage2 == "" || Normalize(r.Stage2) == Normalize(shelf) {
		return shelf
	}
	return r.Stage2
}

func (r Rule) inStage1(shelf string) bool {
	shelf = Normalize(shelf)
	for _, s := range r.Stage1 {
		if Normalize(s) == shelf {
			return true
		}
	}
	return false
}

func (r Rule) hasWildcard() bool {
	for _, s := range r.Stage1 {
		if Normalize(s) == Wildcard {
			return true
		}
	}
	return false
}
