package font

import "strings"

var boldMarkers = []string{"bold", "black", "heavy", "semibold", "demibold", "demi", "extrabold", "ultrabold"}

var italicMarkers = []string{"italic", "oblique", "slanted"}

// BaseName strips the subset tag ("ABCDEF+") and any leading slash from a
// PDF font name.
func BaseName(name string) string {
	name = strings.TrimPrefix(name, "/")
	if i := strings.IndexByte(name, '+'); i == 6 {
		name = name[i+1:]
	}
	return name
}

// IsBoldName reports whether a font name indicates a bold weight
func IsBoldName(name string) bool {
	lower := strings.ToLower(BaseName(name))
	for _, m := range boldMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	// Common PostScript suffixes such as "Arial,Bold" or "TimesNewRoman-BdIt"
	return strings.HasSuffix(lower, "-bd") || strings.Contains(lower, "-bdit") || strings.HasSuffix(lower, ",bd")
}

// IsItalicName reports whether a font name indicates an italic style
func IsItalicName(name string) bool {
	lower := strings.ToLower(BaseName(name))
	for _, m := range italicMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return strings.HasSuffix(lower, "-it") || strings.HasSuffix(lower, "bdit")
}
