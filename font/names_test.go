package font

import "testing"

func TestBaseName(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"ABCDEF+Arial-BoldMT", "Arial-BoldMT"},
		{"/Helvetica", "Helvetica"},
		{"Times+Roman", "Times+Roman"}, // no subset tag
		{"", ""},
	}
	for _, tt := range tests {
		if got := BaseName(tt.name); got != tt.want {
			t.Errorf("BaseName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestIsBoldName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Helvetica-Bold", true},
		{"ABCDEF+Arial-BoldMT", true},
		{"Roboto-Black", true},
		{"OpenSans-SemiBold", true},
		{"TimesNewRoman-BdIt", true},
		{"Helvetica", false},
		{"Times-Italic", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsBoldName(tt.name); got != tt.want {
			t.Errorf("IsBoldName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsItalicName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Times-Italic", true},
		{"Helvetica-BoldOblique", true},
		{"TimesNewRoman-BdIt", true},
		{"Arial-It", true},
		{"Helvetica-Bold", false},
		{"Courier", false},
	}
	for _, tt := range tests {
		if got := IsItalicName(tt.name); got != tt.want {
			t.Errorf("IsItalicName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
