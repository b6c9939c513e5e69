package notify

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		s    string
		max  int
		want string
	}{
		{"short stays intact", "hello", 10, "hello"},
		{"exact length stays intact", "hello", 5, "hello"},
		{"long gets ellipsis", "hello world", 7, "hello …"},
		{"multibyte runes counted as one", "héllo wörld", 7, "héllo …"},
		{"zero max", "hello", 0, ""},
		{"negative max", "hello", -1, ""},
		{"empty input", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.s, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.max, got, tt.want)
			}
		})
	}
}

func TestTruncateResultLength(t *testing.T) {
	long := make([]rune, 500)
	for i := range long {
		long[i] = 'x'
	}

	got := Truncate(string(long), 200)
	if n := len([]rune(got)); n != 200 {
		t.Errorf("truncated length = %d runes, want 200", n)
	}
}
