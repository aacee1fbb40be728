package config

import (
	"errors"
	"fmt"

	"github.com/handiism/shelves/internal/shelf"
)

var (
	// ErrWorkflowShelf is returned when removing a shelf the workflow uses.
	ErrWorkflowShelf = errors.New("shelf is used by the workflow")

	// ErrUnknownShelf is returned when removing a shelf that is not configured.
	ErrUnknownShelf = errors.New("shelf is not a known shelf")
)

// KnownShelves returns the valid configured shelves as a set, together with
// the names that were dropped.
func (s *Settings) KnownShelves() (shelf.Known, []shelf.Rejection) {
	v := shelf.NewValidator(s.ToLimits())
	valid, rejected := v.FilterNames(s.Library.KnownShelves)
	return shelf.NewKnown(valid...), rejected
}

// AddKnownShelf validates name and adds it to the known shelves. It returns
// the validator warning, if any, and reports whether the list changed.
func (s *Settings) AddKnownShelf(name string) (added bool, warning string, err error) {
	v := shelf.NewValidator(s.ToLimits())
	ok, msg := v.Validate(name)
	if !ok {
		return false, "", fmt.Errorf("%w: %s", shelf.ErrInvalidShelf, msg)
	}

	known, _ := s.KnownShelves()
	if !known.Add(name) {
		return false, msg, nil
	}
	s.Library.KnownShelves = known.Names()
	return true, msg, nil
}

// RemoveKnownShelf removes name from the known shelves. Shelves named by
// the workflow are only removed when force is set.
func (s *Settings) RemoveKnownShelf(name string, force bool) error {
	known, _ := s.KnownShelves()
	if !known.Contains(name) {
		return fmt.Errorf("%w: %s", ErrUnknownShelf, name)
	}
	if !force && s.ToRule().Mentions(name) {
		return fmt.Errorf("%w: %s", ErrWorkflowShelf, name)
	}
	known.Remove(name)
	s.Library.KnownShelves = known.Names()
	return nil
}

// MergeKnownShelves adds every name from names, typically directories found
// under the library root, that is both valid and a likely shelf name. It
// returns the ones that were new.
func (s *Settings) MergeKnownShelves(names []string) []string {
	v := shelf.NewValidator(s.ToLimits())
	valid, _ := v.FilterNames(names)

	known, _ := s.KnownShelves()
	var added []string
	for _, name := range valid {
		if likely, _ := v.IsLikelyShelfName(name, nil); !likely {
			continue
		}
		if known.Add(name) {
			added = append(added, name)
		}
	}
	s.Library.KnownShelves = known.Names()
	return added
}

// PruneKnownShelves drops shelves for which exists reports false and
// returns them. Workflow shelves are kept.
func (s *Settings) PruneKnownShelves(exists func(name string) bool) []string {
	known, _ := s.KnownShelves()
	rule := s.ToRule()

	var removed []string
	for _, name := range known.Names() {
		if exists(name) || rule.Mentions(name) {
			continue
		}
		known.Remove(name)
		removed = append(removed, name)
	}
	s.Library.KnownShelves = known.Names()
	return removed
}
