package text

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Introduction  ", "Introduction"},
		{"Results\tand\n Discussion", "Results and Discussion"},
		{"Introduction.", "Introduction"},
		{"Overview of the Method.", "Overview of the Method"},
		{"Acme Inc.", "Acme Inc."},
		{"Made in the U.S.", "Made in the U.S."},
		{"To be continued...", "To be continued..."},
		{"Section 2.", "Section 2."},
		{"ﬁnancial summary", "financial summary"}, // ligature
		{"Hy\u00adphen", "Hyphen"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanKeepsPeriodOnLongSentences(t *testing.T) {
	in := "This is a long sentence that goes on and on for quite a while."
	if got := Clean(in); got != in {
		t.Errorf("Clean(%q) = %q", in, got)
	}
}

func TestIsStopwordOnly(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"of the", true},
		{"And", true},
		{"in, on, at.", true},
		{"", true},
		{"The Results", false},
		{"Introduction", false},
	}
	for _, tt := range tests {
		if got := IsStopwordOnly(tt.in); got != tt.want {
			t.Errorf("IsStopwordOnly(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestKey(t *testing.T) {
	if Key("CONFIDENTIAL  Draft") != Key("confidential draft") {
		t.Error("keys should match regardless of case and spacing")
	}
	if Key("Results") == Key("Result") {
		t.Error("different words should have different keys")
	}
}

func TestDetectDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"Hello", LTR},
		{"שלום", RTL},
		{"مرحبا", RTL},
		{"123 !?", Neutral},
		{"", Neutral},
		{"Hello שלום world", LTR},
	}
	for _, tt := range tests {
		if got := DetectDirection(tt.in); got != tt.want {
			t.Errorf("DetectDirection(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
