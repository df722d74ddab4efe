package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// shortHeadingWords is the word count up to which a trailing period is
// dropped
const shortHeadingWords = 8

var abbreviations = map[string]bool{
	"al.":   true,
	"co.":   true,
	"corp.": true,
	"dr.":   true,
	"e.g.":  true,
	"etc.":  true,
	"fig.":  true,
	"i.e.":  true,
	"inc.":  true,
	"jr.":   true,
	"ltd.":  true,
	"mr.":   true,
	"mrs.":  true,
	"ms.":   true,
	"no.":   true,
	"sr.":   true,
	"st.":   true,
	"vol.":  true,
	"vs.":   true,
}

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true, "has": true,
	"have": true, "in": true, "into": true, "is": true, "it": true, "its": true,
	"of": true, "on": true, "or": true, "our": true, "that": true, "the": true,
	"their": true, "this": true, "to": true, "was": true, "we": true, "were": true,
	"which": true, "will": true, "with": true,
}

// Clean normalizes heading text: NFKC, control characters removed,
// whitespace collapsed and the trailing period of a short heading dropped
func Clean(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		if r == '\u00ad' || r == '\u200b' || r == '\ufeff' {
			return -1
		}
		return r
	}, s)

	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	s = strings.Join(words, " ")

	if len(words) <= shortHeadingWords && dropsPeriod(words[len(words)-1]) {
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// dropsPeriod reports whether the trailing period of the last word of a
// heading is punctuation rather than part of an abbreviation or ellipsis
func dropsPeriod(last string) bool {
	if !strings.HasSuffix(last, ".") || strings.HasSuffix(last, "..") {
		return false
	}
	lower := strings.ToLower(last)
	if abbreviations[lower] {
		return false
	}
	// Initialisms such as "U.S." keep their period.
	if strings.Count(last, ".") > 1 && !isSectionNumber(strings.TrimSuffix(last, ".")) {
		return false
	}
	// A bare section number ("2.") is left for the pattern matcher.
	return !isSectionNumber(strings.TrimSuffix(last, "."))
}

func isSectionNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' {
			return false
		}
	}
	return true
}

// IsStopwordOnly reports whether s contains nothing but stopwords,
// punctuation and digits
func IsStopwordOnly(s string) bool {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
	for _, w := range words {
		if !stopwords[strings.Trim(w, "'")] {
			return false
		}
	}
	return true
}

// Key returns a case-folded comparison key for s
func Key(s string) string {
	// Casers are stateful and must not be shared between goroutines.
	return cases.Fold().String(Clean(s))
}
