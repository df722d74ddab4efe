// Package layout infers the outline of a document from its text spans.
//
// The stages run in order over a whole document:
//
//   - [CandidateExtractor] merges the spans of each line into candidates and
//     tags body text
//   - [RunningTextDetector] finds headers and footers repeated across pages
//   - [TitleExtractor] picks the title from the first page(s)
//   - [HeadingClassifier] scores the remaining candidates and assigns H1-H3
//   - [Normalizer] cleans, deduplicates and orders the result
//
// Every stage is configured independently:
//
//	config := layout.DefaultHeadingConfig()
//	config.Threshold = 0.8
//	classifier := layout.NewHeadingClassifierWithConfig(config, nil)
//
// # Scoring
//
// Heading and title scores are sums of [Signal] values. Font size
// contributes SizeWeight * (size/body - 1), bold adds a fixed bonus and
// structural patterns ("2.3", "Chapter 4", "Introduction") add a bonus scaled
// by the pattern kind. Candidates at or below the body size that are not bold
// never become headings.
//
// # Levels
//
// The heading tiers of the font profile that accepted headings occupy are
// ranked largest first: rank 0 is H1, rank 1 is H2 and everything below is
// H3. A numbering depth overrides the size rank, so "2.3 Results" is H2 even
// when it is set as large as an H1.
package layout
