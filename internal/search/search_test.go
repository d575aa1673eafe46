package search

import "testing"

func TestSourceFromURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.bbc.co.uk/news/science-123", "bbc.co.uk"},
		{"http://nasa.gov:8080/a", "nasa.gov"},
		{"not a url", "not a url"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SourceFromURL(tt.in); got != tt.want {
			t.Errorf("SourceFromURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
