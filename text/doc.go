// Package text turns positioned glyphs into text spans and cleans the text
// of heading candidates.
//
// # Span Assembly
//
// The [Assembler] groups the glyphs of one page into rows by baseline, orders
// each row in reading direction and folds neighbouring glyphs that share a
// font into [model.TextSpan] values:
//
//	asm := text.NewAssembler()
//	spans := asm.Assemble(pageNumber, glyphs)
//
// Spaces are inserted where the gap between two glyphs exceeds a fraction of
// the font size; gaps wider than a few ems start a new span.
//
// # Text Direction
//
// [DetectDirection] reports the dominant writing direction of a string. Rows
// whose glyphs are mostly right-to-left are ordered right to left.
//
// # Normalization
//
//   - [Clean] applies NFKC, collapses whitespace and drops the trailing
//     period of short headings
//   - [IsStopwordOnly] reports fragments made only of stopwords
//   - [Key] returns a case-folded comparison key
package text
