package lang

import (
	"context"
	"log/slog"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/roll/log"
)

// programCache stores compiled programs keyed by the xxh3 hash of their
// source text.
var programCache sync.Map

// compiled is a cache entry. The program is produced at most once.
type compiled struct {
	once   sync.Once
	err    error
	source string
	prog   Program
}

// Compile parses source into a [Program], reusing the result of any earlier
// compilation of identical source. The returned Program is shared and must
// not be modified.
func Compile(source string) (Program, error) {
	return compile(context.Background(), log.Logger{}, source)
}

func compile(
	ctx context.Context,
	logger log.Logger,
	source string,
) (Program, error) {
	key := xxh3.HashString(source)

	v, loaded := programCache.LoadOrStore(key, &compiled{source: source})
	entry, _ := v.(*compiled)

	if entry.source != source {
		logger.TraceContext(ctx, "cache collision",
			slog.Uint64("hash", key),
		)

		return Parse(source)
	}

	entry.once.Do(func() {
		entry.prog, entry.err = Parse(source)
	})

	logger.TraceContext(ctx, "compile",
		slog.Bool("cached", loaded),
		slog.Int("ops", len(entry.prog)),
		slog.Uint64("hash", key),
	)

	return entry.prog, entry.err
}

// ClearCache drops every cached program.
func ClearCache() {
	programCache.Clear()
}
