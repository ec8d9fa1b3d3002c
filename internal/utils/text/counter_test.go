package text_test

import (
	"testing"

	"news-digest/internal/utils/text"
)

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty", input: "", want: 0},
		{name: "ascii", input: "hello", want: 5},
		{name: "accented", input: "café crème", want: 10},
		{name: "cjk", input: "世界ニュース", want: 6},
		{name: "emoji", input: "news 📰", want: 6},
		{name: "bullets", input: "- one\n- two\n- three", want: 19},
		{name: "invalid utf8 counts each byte", input: "a\xffb", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.CountRunes(tt.input); got != tt.want {
				t.Errorf("CountRunes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
