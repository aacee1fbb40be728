package shelf

import "sort"

// Known is the set of configured shelf names. Names are stored normalized.
//
// Known is a plain value and is not safe for concurrent mutation; hand out
// copies (Clone) to goroutines that only read.
type Known map[string]struct{}

// NewKnown builds a set from names, skipping blank entries.
func NewKnown(names ...string) Known {
	k := make(Known, len(names))
	for _, name := range names {
		k.Add(name)
	}
	return k
}

// Add inserts name and reports whether it was new.
func (k Known) Add(name string) bool {
	name = Normalize(name)
	if name == "" {
		return false
	}
	if _, ok := k[name]; ok {
		return false
	}
	k[name] = struct{}{}
	return true
}

// Remove deletes name and reports whether it was present.
func (k Known) Remove(name string) bool {
	name = Normalize(name)
	if _, ok := k[name]; !ok {
		return false
	}
	delete(k, name)
	return true
}

// Contains reports whether name is a known shelf.
func (k Known) Contains(name string) bool {
	if len(k) == 0 {
		return false
	}
	_, ok := k[Normalize(name)]
	return ok
}

// Names returns the shelves in sorted order.
func (k Known) Names() []string {
	out := make([]string, 0, len(k))
	for name := range k {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (k Known) Clone() Known {
	out := make(Known, len(k))
	for name := range k {
		out[name] = struct{}{}
	}
	return out
}

// Rejection records a configured name that failed validation.
type Rejection struct {
	Name   string
	Reason string
}

// FilterNames keeps the names that pass Validate. Names that only produce a
// warning are kept. The result is sorted and free of duplicates.
func (v *Validator) FilterNames(names []string) ([]string, []Rejection) {
	valid := make(Known, len(names))
	var rejected []Rejection
	for _, name := range names {
		ok, msg := v.Validate(name)
		if !ok {
			rejected = append(rejected, Rejection{Name: name, Reason: msg})
			continue
		}
		valid.Add(name)
	}
	return valid.Names(), rejected
}
