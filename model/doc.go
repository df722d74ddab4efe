// Package model provides the value types shared by every stage of outline
// extraction.
//
// # Spans and Pages
//
// A [Document] is an ordered list of [Page] values, each holding the
// [TextSpan]s the PDF reader produced for it in reading order. Span
// coordinates use a top-left origin: Y grows downward, so sorting by Y
// ascending yields reading order within a page.
//
// # Results
//
// The output of the pipeline is a [DocumentResult]: a title plus an ordered
// list of [OutlineEntry] values whose [Level] is always H1, H2 or H3.
//
//	res := model.EmptyResult()
//	res.Title = "Annual Report"
//	res.Outline = append(res.Outline, model.OutlineEntry{Level: model.LevelH1, Text: "Introduction", Page: 2})
//
// # Geometry
//
//   - [BBox] - bounding box with union and vertical gap helpers
//   - [Point] - 2D point with distance calculation
package model
