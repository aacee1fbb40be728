package shelf

import "strings"

// ManualSuffix marks a tag value that was set explicitly.
const ManualSuffix = "; manual"

// Kind describes how confident an assignment is.
type Kind int

const (
	// KindInferred comes from votes or workflow inference.
	KindInferred Kind = iota

	// KindExplicit comes from a user decision or a physical location.
	KindExplicit

	// KindFallback is the weakest guess, used when nothing else exists.
	KindFallback
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindExplicit:
		return "explicit"
	case KindFallback:
		return "fallback"
	default:
		return "inferred"
	}
}

// Assignment is a shelf name together with its provenance.
//
// Assignments are converted to and from tag strings only at the metadata
// boundary:
//
//	a := shelf.ParseTag("Favorites; manual") // {Name: "Favorites", Kind: KindExplicit}
//	a.Tag()                                  // "Favorites; manual"
//	shelf.Assignment{Name: "Standard"}.Tag() // "Standard"
type Assignment struct {
	Name string
	Kind Kind
}

// IsZero reports whether the assignment carries no shelf.
func (a Assignment) IsZero() bool {
	return a.Name == ""
}

// Explicit reports whether the assignment was set explicitly.
func (a Assignment) Explicit() bool {
	return a.Kind == KindExplicit && a.Name != ""
}

// Tag serializes the assignment for the shelf tag.
func (a Assignment) Tag() string {
	if a.Name == "" {
		return ""
	}
	if a.Kind == KindExplicit {
		return a.Name + ManualSuffix
	}
	return a.Name
}

// ParseTag reads a shelf tag value. Empty or blank values yield the zero
// Assignment, as does a bare suffix.
func ParseTag(tag string) Assignment {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return Assignment{}
	}
	if strings.HasSuffix(tag, ManualSuffix) {
		name := strings.TrimSpace(strings.TrimSuffix(tag, ManualSuffix))
		if name == "" {
			return Assignment{}
		}
		return Assignment{Name: name, Kind: KindExplicit}
	}
	return Assignment{Name: tag, Kind: KindInferred}
}

// CleanName returns the shelf name stored in a tag without any provenance
// suffix. It is what file naming templates should use.
func CleanName(tag string) string {
	return ParseTag(tag).Name
}
