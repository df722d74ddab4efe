package layout

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/tsawler/pdfoutline/font"
	"github.com/tsawler/pdfoutline/model"
)

// runningPages builds n pages with a header at headerY, a "Page N" footer
// and a few body lines
func runningPages(n int, header string, headerY func(page int) float64) (*model.Document, []Candidate) {
	var pages [][]model.TextSpan
	for p := 1; p <= n; p++ {
		spans := []model.TextSpan{makeSpan(header, p, 72, headerY(p), 10, false)}
		spans = append(spans, bodyLines(p, 5, 300)...)
		spans = append(spans, makeSpan(fmt.Sprintf("Page %d", p), p, 290, 750, 10, false))
		pages = append(pages, spans)
	}
	doc := makeDoc(pages...)
	cands := NewCandidateExtractor().Extract(doc, font.NewProfiler().Profile(doc.Spans()))
	return doc, cands
}

func fixedY(y float64) func(int) float64 {
	return func(int) float64 { return y }
}

func TestRunningTextDetectorFindsHeaderAndFooter(t *testing.T) {
	doc, cands := runningPages(3, "Confidential Draft", fixedY(30))

	rt := NewRunningTextDetector().Detect(doc, cands)
	if !rt.HasHeaders() || !rt.HasFooters() {
		t.Fatalf("expected header and footer, got %+v", rt.Regions)
	}
	if len(rt.Regions) != 2 {
		t.Fatalf("got %d regions, want 2", len(rt.Regions))
	}

	header, footer := rt.Regions[0], rt.Regions[1]
	if header.Type != Header || header.Text != "Confidential Draft" || header.Offset != 30 {
		t.Errorf("header = %+v", header)
	}
	if footer.Type != Footer || footer.Text != "Page 1" || footer.Key != "page #" {
		t.Errorf("footer = %+v", footer)
	}
	if !reflect.DeepEqual(header.Pages, []int{1, 2, 3}) {
		t.Errorf("header pages = %v", header.Pages)
	}

	rt.Mark(cands)
	var running int
	for _, c := range cands {
		if c.Running {
			running++
			if c.Text == bodyText {
				t.Error("body line marked as running text")
			}
		}
	}
	if running != 6 {
		t.Errorf("marked %d candidates, want 6", running)
	}
}

func TestRunningTextDetectorRejects(t *testing.T) {
	tests := []struct {
		name    string
		pages   int
		headerY func(int) float64
	}{
		{"inconsistent position", 3, func(p int) float64 { return float64(p) * 20 }},
		{"single page", 1, fixedY(30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, cands := runningPages(tt.pages, "Confidential Draft", tt.headerY)
			rt := NewRunningTextDetector().Detect(doc, cands)
			if rt.HasHeaders() {
				t.Errorf("unexpected header regions: %+v", rt.Regions)
			}
		})
	}
}

func TestRunningTextDetectorOccurrenceRatio(t *testing.T) {
	var pages [][]model.TextSpan
	for p := 1; p <= 6; p++ {
		spans := bodyLines(p, 3, 300)
		if p <= 2 {
			spans = append(spans, makeSpan("Draft Notice", p, 72, 30, 10, false))
		}
		pages = append(pages, spans)
	}
	doc := makeDoc(pages...)
	cands := NewCandidateExtractor().Extract(doc, font.NewProfiler().Profile(doc.Spans()))

	if rt := NewRunningTextDetector().Detect(doc, cands); len(rt.Regions) != 0 {
		t.Errorf("text on 2 of 6 pages should not be running, got %+v", rt.Regions)
	}
}

func TestRunningTextDetectorWithoutPageSizes(t *testing.T) {
	_, cands := runningPages(3, "Quarterly Review", fixedY(20))

	rt := NewRunningTextDetector().Detect(nil, cands)
	if !rt.HasHeaders() {
		t.Errorf("expected header detection from candidate bounds, got %+v", rt.Regions)
	}
}

func TestRunningTextContainsRequiresZone(t *testing.T) {
	doc, cands := runningPages(3, "Confidential Draft", fixedY(30))
	rt := NewRunningTextDetector().Detect(doc, cands)

	inBody := makeCandidate("Confidential Draft", 2, 400, 10, false)
	if rt.Contains(inBody) {
		t.Error("text outside the header zone should not be running")
	}
	shifted := makeCandidate("Confidential Draft", 2, 50, 10, false)
	if rt.Contains(shifted) {
		t.Error("text at a different offset should not be running")
	}
	// page 4 has no known height
	if rt.Contains(makeCandidate("Confidential Draft", 4, 32, 10, false)) {
		t.Error("candidate on an unknown page should not be running")
	}
}

func TestRunningTextConfigDefaults(t *testing.T) {
	cfg := DefaultRunningTextConfig()
	if cfg.HeaderRegionHeight != 72 || cfg.FooterRegionHeight != 72 {
		t.Errorf("region heights = %v/%v", cfg.HeaderRegionHeight, cfg.FooterRegionHeight)
	}
	if cfg.MinPages != 2 || cfg.MinOccurrenceRatio != 0.5 {
		t.Errorf("cfg = %+v", cfg)
	}
}
