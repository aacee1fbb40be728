package shelf

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	// DefaultMaxLength is the longest shelf name accepted, in runes.
	DefaultMaxLength = 30

	// DefaultMaxWords is the largest number of whitespace separated words.
	DefaultMaxWords = 3
)

// invalidChars cannot appear in a shelf name.
const invalidChars = `<>|:*?"/\'`

// DefaultAlbumIndicators returns the tokens that mark a name as belonging to
// an album rather than a shelf.
func DefaultAlbumIndicators() []string {
	return []string{"Vol.", "Volume", "Disc", "CD", "Part"}
}

// Limits bounds what counts as a shelf name.
type Limits struct {
	// MaxLength is the maximum name length in runes.
	MaxLength int

	// MaxWords is the maximum number of words.
	MaxWords int

	// AlbumIndicators are case-sensitive substrings that disqualify a name.
	AlbumIndicators []string
}

// DefaultLimits returns the standard limits.
func DefaultLimits() Limits {
	return Limits{
		MaxLength:       DefaultMaxLength,
		MaxWords:        DefaultMaxWords,
		AlbumIndicators: DefaultAlbumIndicators(),
	}
}

// Validator checks shelf names and classifies path components.
//
// A Validator is immutable after construction and can be shared freely.
type Validator struct {
	limits Limits
}

// NewValidator creates a Validator. Zero or negative limits are replaced
// with the defaults; a nil indicator list selects DefaultAlbumIndicators,
// an empty non-nil list disables the indicator check.
func NewValidator(limits Limits) *Validator {
	if limits.MaxLength <= 0 {
		limits.MaxLength = DefaultMaxLength
	}
	if limits.MaxWords <= 0 {
		limits.MaxWords = DefaultMaxWords
	}
	if limits.AlbumIndicators == nil {
		limits.AlbumIndicators = DefaultAlbumIndicators()
	} else {
		limits.AlbumIndicators = append([]string(nil), limits.AlbumIndicators...)
	}
	return &Validator{limits: limits}
}

// Limits returns a copy of the limits in effect.
func (v *Validator) Limits() Limits {
	out := v.limits
	out.AlbumIndicators = append([]string(nil), v.limits.AlbumIndicators...)
	return out
}

// Validate reports whether name can be used as a shelf name.
//
// The checks run in a fixed order and the first failure wins:
//  1. empty or whitespace only
//  2. "." or ".."
//  3. characters from < > | : * ? " / \ '
//  4. longer than MaxLength runes
//  5. more than MaxWords words
//  6. contains an album indicator
//
// A name starting or ending with a dot passes but comes back with a
// warning in msg. For any other valid name msg is empty.
func (v *Validator) Validate(name string) (ok bool, msg string) {
	trimmed := Normalize(name)
	if trimmed == "" {
		return false, "Shelf name cannot be empty"
	}

	if trimmed == "." || trimmed == ".." {
		return false, "Cannot use '.' or '..'"
	}

	if bad := offendingChars(trimmed); len(bad) > 0 {
		return false, "Contains invalid characters: " + strings.Join(bad, ", ")
	}

	if utf8.RuneCountInString(trimmed) > v.limits.MaxLength {
		return false, "Shelf name too long"
	}

	if len(strings.Fields(trimmed)) > v.limits.MaxWords {
		return false, "Shelf name has too many words"
	}

	if v.hasAlbumIndicator(trimmed) {
		return false, "Name contains album indicator(s)"
	}

	if strings.HasPrefix(trimmed, ".") || strings.HasSuffix(trimmed, ".") {
		return true, "Shelf name may cause issues due to leading/trailing dot"
	}

	return true, ""
}

// Normalize trims surrounding whitespace and converts name to Unicode NFC,
// so that names read from NFD filesystems compare equal to typed ones.
func Normalize(name string) string {
	return strings.TrimSpace(norm.NFC.String(name))
}

func (v *Validator) hasAlbumIndicator(name string) bool {
	for _, token := range v.limits.AlbumIndicators {
		if token != "" && strings.Contains(name, token) {
			return true
		}
	}
	return false
}

func offendingChars(name string) []string {
	seen := make(map[rune]struct{})
	for _, r := range name {
		if strings.ContainsRune(invalidChars, r) {
			seen[r] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for r := range seen {
		out = append(out, string(r))
	}
	sort.Strings(out)
	return out
}
