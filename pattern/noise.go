package pattern

import (
	"regexp"
	"strings"
	"unicode"
)

var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+$`),               // bare numbers
	regexp.MustCompile(`(?i)\bpage\s+\d+`),    // page labels
	regexp.MustCompile(`(?i)©|\bcopyright\b`), // copyright lines
	regexp.MustCompile(`(?i)www\.|https?://`), // URLs
	regexp.MustCompile(`(?i)\bversion\s+\d+`), // version stamps
	regexp.MustCompile(`(?i)\bemail\b|@`),     // email addresses
	regexp.MustCompile(`^[\p{P}\p{S}\s\d]+$`), // punctuation and digits only
	regexp.MustCompile(`\.{4,}\s*\d*\s*$`),    // table of contents leaders
}

var titleNoisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)copyright|©`),
	regexp.MustCompile(`(?i)\bversion\b`),
	regexp.MustCompile(`(?i)\bpage\b`),
}

// IsNoise reports whether text is a fragment that can never be a heading:
// page numbers, URLs, emails, copyright and version stamps.
func IsNoise(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return true
	}
	for _, re := range noisePatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// IsTitleNoise reports whether text must never be chosen as a title. It is
// stricter than IsNoise.
func IsTitleNoise(text string) bool {
	if IsNoise(text) {
		return true
	}
	for _, re := range titleNoisePatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// LooksLikeProse reports whether text reads like a sentence of body text
// rather than a heading.
func LooksLikeProse(text string) bool {
	lower := strings.ToLower(text)
	words := len(strings.Fields(text))

	if strings.Count(lower, "the ") > 2 || strings.Count(lower, " and ") > 1 {
		return true
	}
	if strings.HasSuffix(text, ".") && !strings.HasSuffix(text, "...") && words > 8 {
		return true
	}
	return false
}

// StartsLowercase reports whether the first letter of text is lowercase.
// Headings rarely start mid-sentence.
func StartsLowercase(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) {
			return unicode.IsLower(r)
		}
		if unicode.IsDigit(r) {
			return false
		}
	}
	return false
}
