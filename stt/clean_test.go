package stt

import "testing"

func TestCleanTranscript(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "Hello, world.",
			want: "Hello, world.",
		},
		{
			name: "blank audio marker",
			in:   "[BLANK_AUDIO]",
			want: "",
		},
		{
			name: "marker inside sentence",
			in:   "Hello [MUSIC] world",
			want: "Hello world",
		},
		{
			name: "vtt timestamps",
			in:   "00:00:00.000 --> 00:00:02.500 Hello there",
			want: "Hello there",
		},
		{
			name: "bracketed timestamp",
			in:   "[00:00:00.000 --> 00:00:02.500] Hello there",
			want: "Hello there",
		},
		{
			name: "surrounding whitespace",
			in:   "  Hello there \n",
			want: "Hello there",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanTranscript(tt.in); got != tt.want {
				t.Errorf("cleanTranscript(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
