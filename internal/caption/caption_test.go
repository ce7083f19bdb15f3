package caption

import "testing"

func TestCompose(t *testing.T) {
	tests := []struct {
		tags, phrase, want string
	}{
		{"photo of jonathanzxyz", "a man on a beach", "photo of jonathanzxyz, a man on a beach"},
		{"", "a man on a beach", "a man on a beach"},
		{"photo of jonathanzxyz", "", "photo of jonathanzxyz"},
		{"  photo of x  ", "  smiling  ", "photo of x, smiling"},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := Compose(tt.tags, tt.phrase); got != tt.want {
			t.Errorf("Compose(%q, %q) = %q, want %q", tt.tags, tt.phrase, got, tt.want)
		}
	}
}

func TestEnsureTags(t *testing.T) {
	tests := []struct {
		text, tags, want string
	}{
		{"a man on a beach", "photo of x", "a man on a beach, photo of x"},
		{"photo of x, a man on a beach", "photo of x", "photo of x, a man on a beach"},
		{"", "photo of x", "photo of x"},
		{"a man on a beach", "", "a man on a beach"},
	}
	for _, tt := range tests {
		if got := EnsureTags(tt.text, tt.tags); got != tt.want {
			t.Errorf("EnsureTags(%q, %q) = %q, want %q", tt.text, tt.tags, got, tt.want)
		}
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  a man\non a beach  ", "a man on a beach"},
		{"\"a quoted caption\"", "a quoted caption"},
		{"**bold caption**", "bold caption"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
