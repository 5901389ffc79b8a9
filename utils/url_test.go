package utils

import "testing"

func TestNormalizeBaseUrl(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.projekt-gutenberg.org/fontane/effi/", "https://www.projekt-gutenberg.org/fontane/effi/"},
		{"https://www.projekt-gutenberg.org/fontane/effi/chap01.html", "https://www.projekt-gutenberg.org/fontane/effi/"},
		{"https://www.projekt-gutenberg.org/fontane/effi/titel", "https://www.projekt-gutenberg.org/fontane/effi/"},
		{"no-separator", "no-separator"},
	}
	for _, tt := range tests {
		if got := NormalizeBaseUrl(tt.in); got != tt.want {
			t.Errorf("NormalizeBaseUrl(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveRef(t *testing.T) {
	base := "https://www.projekt-gutenberg.org/fontane/effi/chap01.html"
	tests := []struct {
		ref  string
		want string
	}{
		{"chap02.html", "https://www.projekt-gutenberg.org/fontane/effi/chap02.html"},
		{"bilder/titel.jpg", "https://www.projekt-gutenberg.org/fontane/effi/bilder/titel.jpg"},
		{"/gutenb.css", "https://www.projekt-gutenberg.org/gutenb.css"},
		{"https://example.com/extern.html", "https://example.com/extern.html"},
	}
	for _, tt := range tests {
		if got := ResolveRef(base, tt.ref); got != tt.want {
			t.Errorf("ResolveRef(%q, %q) = %q, want %q", base, tt.ref, got, tt.want)
		}
	}
}

func TestResolveRef_Idempotent(t *testing.T) {
	base := "https://www.projekt-gutenberg.org/fontane/effi/"
	once := ResolveRef(base, "chap02.html")
	twice := ResolveRef(base, once)
	if twice != once {
		t.Errorf("resolution is not idempotent: %q -> %q", once, twice)
	}
}
