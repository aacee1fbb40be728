package shelf

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// IsLikelyShelfName reports whether candidate, taken from the shelf position
// of a path, looks like a shelf rather than an artist or album name.
//
// Members of known are always likely. For anything else every heuristic is
// evaluated and all triggered reasons are returned joined by "; ":
//
//	v.IsLikelyShelfName("Incoming", nil)              // true, ""
//	v.IsLikelyShelfName("Pink Floyd - Animals", nil)  // false, "contains ' - ' ...; too many words (4)"
func (v *Validator) IsLikelyShelfName(candidate string, known Known) (bool, string) {
	name := Normalize(candidate)
	if name == "" {
		return false, "Empty name"
	}
	if known.Contains(name) {
		return true, ""
	}

	var reasons []string
	if strings.Contains(name, " - ") {
		reasons = append(reasons, "contains ' - ' (typical for 'Artist - Album' format)")
	}
	if n := utf8.RuneCountInString(name); n > v.limits.MaxLength {
		reasons = append(reasons, fmt.Sprintf("too long (%d chars)", n))
	}
	if n := len(strings.Fields(name)); n > v.limits.MaxWords {
		reasons = append(reasons, fmt.Sprintf("too many words (%d)", n))
	}
	if v.hasAlbumIndicator(name) {
		reasons = append(reasons, "contains album indicator (Vol., Disc, etc.)")
	}

	if len(reasons) > 0 {
		return false, strings.Join(reasons, "; ")
	}
	return true, ""
}

// ClassifyPath extracts the shelf candidate from path, the first directory
// below root. It returns the candidate and true only when that directory
// name is a likely shelf name.
//
// The check is purely lexical. Paths outside root and files directly in root
// yield ("", false).
func (v *Validator) ClassifyPath(path, root string, known Known) (string, bool) {
	if path == "" || root == "" {
		return "", false
	}

	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return "", false
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 {
		return "", false
	}

	candidate := Normalize(parts[0])
	if ok, _ := v.IsLikelyShelfName(candidate, known); !ok {
		return "", false
	}
	return candidate, true
}
