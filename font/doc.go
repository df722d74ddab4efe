// Package font builds statistical font profiles of documents.
//
// The [Profiler] scans every span of a document and records how many
// characters were set at each font size. The size carrying the most
// characters is the body size; distinct larger sizes form the heading tiers
// used to band headings into levels:
//
//	p := font.NewProfiler()
//	prof := p.Profile(doc.Spans())
//	fmt.Println(prof.BodySize, prof.HeadingTiers())
//
// Documents with too few spans produce a degenerate profile whose body size
// is [DefaultConfig]'s fallback, so ratios stay finite.
//
// The package also carries the font-name heuristics ([IsBoldName],
// [IsItalicName]) used when the PDF reader does not expose weight flags.
package font
