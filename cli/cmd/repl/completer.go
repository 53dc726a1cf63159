package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/roll/lang"
)

// commandPrefix starts a REPL command line, e.g. ":help".
const commandPrefix = ":"

// commands are the available REPL commands, without the prefix.
var commands = []string{"clear", "help", "ops", "quit", "seed", "vars"}

// isWordBoundary reports whether r separates completion words. This is the
// punctuation of dice notation plus whitespace.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t',
		'(', ')', '[', ']', '{', '}',
		'$', '+', '-', '.', ',',
		':', '!', '=', '<', '>', '\'', '"':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input.
// Returns an empty word when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// keywordWords are the reserved words long enough to be worth completing.
var keywordWords = slices.DeleteFunc(lang.Keywords(), func(s string) bool {
	return len(s) < 2
})

// candidates returns the completions valid for a word starting at wordStart:
// commands at the start of a command line, variable names after '$', and
// keywords elsewhere.
func candidates(input string, wordStart int, vars []string) []string {
	prefix := input[:wordStart]

	switch {
	case prefix == commandPrefix:
		return commands
	case strings.HasPrefix(prefix, commandPrefix):
		return nil
	case strings.HasSuffix(prefix, "$"):
		return vars
	default:
		return keywordWords
	}
}

// computeMatches ranks the candidates for the word under the cursor.
// It returns the matches (ranked best-first) and the word boundaries.
// An empty word only matches when it follows '$' or the command prefix, so
// the available names can be browsed.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())
	list := candidates(input, wordStart, m.varNames)

	if len(list) == 0 {
		return nil, wordStart, wordEnd
	}

	if word == "" {
		if wordStart == 0 || !slices.Contains([]string{"$", commandPrefix}, input[wordStart-1:wordStart]) {
			return nil, wordStart, wordEnd
		}

		matches = make(fuzzy.Matches, len(list))
		for i, c := range list {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, wordStart, wordEnd
	}

	return fuzzy.Find(word, list), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. The selected candidate (when tabbing) uses
// the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		last := i == len(matches)-1

		if i > 0 && used+entryWidth+ellipsisWidth > width && !last {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
