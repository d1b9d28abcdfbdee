package slugs

import (
	"regexp"
	"strings"
	"testing"
)

func TestStrategy_Base(t *testing.T) {
	s := New("product")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Blue Shirt", "blue-shirt"},
		{"punctuation", "Men's T-Shirt!", "mens-t-shirt"},
		{"empty falls back", "!!!", "product"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Base(tt.in); got != tt.want {
				t.Fatalf("Base(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStrategy_BaseTruncates(t *testing.T) {
	s := New("product")
	got := s.Base(strings.Repeat("word ", 60))
	if len(got) > DefaultMaxLength {
		t.Fatalf("expected at most %d chars, got %d", DefaultMaxLength, len(got))
	}
	if strings.HasSuffix(got, "-") {
		t.Fatalf("truncated slug must not end with a dash: %q", got)
	}
}

func TestStrategy_Unique(t *testing.T) {
	s := New("product")

	tests := []struct {
		name  string
		taken []string
		want  string
	}{
		{"free", nil, "shirt"},
		{"taken once", []string{"shirt"}, "shirt-1"},
		{"gap keeps highest", []string{"shirt", "shirt-1", "shirt-4"}, "shirt-5"},
		{"unrelated prefix", []string{"shirt-dress"}, "shirt"},
		{"suffix only", []string{"shirt-2"}, "shirt-3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Unique("shirt", tt.taken); got != tt.want {
				t.Fatalf("Unique = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStrategy_Pattern(t *testing.T) {
	re := regexp.MustCompile(New("product").Pattern("shirt"))
	for _, ok := range []string{"shirt", "shirt-1", "shirt-12"} {
		if !re.MatchString(ok) {
			t.Fatalf("expected %q to match", ok)
		}
	}
	for _, no := range []string{"shirts", "shirt-dress", "t-shirt"} {
		if re.MatchString(no) {
			t.Fatalf("expected %q not to match", no)
		}
	}
}
