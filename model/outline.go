package model

import "fmt"

// Level is the classification assigned to a candidate fragment
type Level int

const (
	LevelNone  Level = iota // not classified yet
	LevelBody               // body text, never a heading
	LevelTitle              // part of the document title
	LevelH1                 // H1 - top-level heading
	LevelH2                 // H2 - section
	LevelH3                 // H3 - subsection and below
)

// String returns a string representation of the level
func (l Level) String() string {
	switch l {
	case LevelBody:
		return "BODY"
	case LevelTitle:
		return "TITLE"
	case LevelH1:
		return "H1"
	case LevelH2:
		return "H2"
	case LevelH3:
		return "H3"
	default:
		return "NONE"
	}
}

// IsHeading reports whether the level may appear in an outline
func (l Level) IsHeading() bool {
	return l >= LevelH1 && l <= LevelH3
}

// HeadingLevel maps a 1-based depth to a heading level. Depths beyond three
// collapse into H3.
func HeadingLevel(depth int) Level {
	switch {
	case depth <= 1:
		return LevelH1
	case depth == 2:
		return LevelH2
	default:
		return LevelH3
	}
}

// MarshalText implements encoding.TextMarshaler
func (l Level) MarshalText() ([]byte, error) {
	if !l.IsHeading() {
		return nil, fmt.Errorf("level %s is not an outline level", l)
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (l *Level) UnmarshalText(b []byte) error {
	switch string(b) {
	case "H1":
		*l = LevelH1
	case "H2":
		*l = LevelH2
	case "H3":
		*l = LevelH3
	default:
		return fmt.Errorf("unknown outline level %q", string(b))
	}
	return nil
}

// OutlineEntry is one accepted heading
type OutlineEntry struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// DocumentResult is the outline of one document
type DocumentResult struct {
	Title   string         `json:"title"`
	Outline []OutlineEntry `json:"outline"`
}

// EmptyResult returns a result with an empty title and a non-nil, empty
// outline so it serializes as [] rather than null.
func EmptyResult() DocumentResult {
	return DocumentResult{Outline: []OutlineEntry{}}
}

// IsEmpty reports whether the result carries neither a title nor headings
func (r DocumentResult) IsEmpty() bool {
	return r.Title == "" && len(r.Outline) == 0
}
