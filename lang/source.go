package lang

import (
	"bufio"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/klauspost/readahead"
)

// Line is one expression read from batch input.
type Line struct {
	Text   string
	Number int // 1-based line number in the input
}

// ScanLines returns an iterator over the expressions in r, one per line.
// Blank lines and lines starting with '#' are skipped. A read failure is
// yielded once as [ErrReadInput] and ends the iteration.
func ScanLines(r io.Reader) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		// Read ahead asynchronously while earlier lines are evaluated.
		ra := readahead.NewReader(r)
		defer ra.Close()

		scan := bufio.NewScanner(ra)
		n := 0

		for scan.Scan() {
			n++

			text := strings.TrimSpace(scan.Text())
			if text == "" || strings.HasPrefix(text, "#") {
				continue
			}

			if !yield(Line{Text: text, Number: n}, nil) {
				return
			}
		}

		if err := scan.Err(); err != nil {
			yield(Line{}, ErrReadInput.
				With(slog.Int("line", n+1)).
				Wrap(err))
		}
	}
}
