package repl

import (
	"slices"
	"testing"
)

func TestWordBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "push", 4, "push", 0, 4},
		{"after_dollar", "3d$hp", 5, "hp", 3, 5},
		{"after_plus", "1 + po", 6, "po", 4, 6},
		{"in_list", "[1, ho", 6, "ho", 4, 6},
		{"after_colon", "fish:2d", 7, "2d", 5, 7},
		{"command", ":he", 3, "he", 1, 3},
		{"empty_at_boundary", "1 + ", 4, "", 4, 4},
		{"mid_word", "pushed", 2, "pushed", 0, 6},
		{"cursor_past_end", "as", 9, "as", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestCandidates(t *testing.T) {
	t.Parallel()

	vars := []string{"bonus", "hp"}

	tests := []struct {
		name      string
		input     string
		wordStart int
		want      []string
	}{
		{"command", ":", 1, commands},
		{"command_argument", ":ops 3", 5, nil},
		{"variable", "1+$", 3, vars},
		{"keyword", "3d6 ", 4, []string{"as", "pop", "push"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := candidates(tt.input, tt.wordStart, vars); !slices.Equal(got, tt.want) {
				t.Errorf("candidates(%q, %d) = %q, want %q",
					tt.input, tt.wordStart, got, tt.want)
			}
		})
	}
}
