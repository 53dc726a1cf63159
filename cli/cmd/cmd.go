package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/roll/lang"
	"github.com/ardnew/roll/log"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Session holds the settings shared by every expression rolled in one run.
type Session struct {
	Vars map[string]lang.Value
	Seed int64 // zero picks a random seed
}

type sessionKey struct{}

// WithSession returns a new context.Context containing s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func sessionFrom(ctx context.Context) Session {
	s, _ := ctx.Value(sessionKey{}).(Session)

	return s
}

// roller holds the evaluation options shared by the expressions of one run.
type roller struct {
	base []lang.Option
	seed int64
}

// options returns the options for the index-th expression of the run. Each
// expression owns its random source, a stream of the run seed, so a fixed
// seed reproduces all of them.
func (r roller) options(index int) []lang.Option {
	return append(slices.Clip(r.base), lang.WithRand(lang.NewStream(r.seed, index)))
}

// roller resolves the run seed, picking a random one when s.Seed is 0.
func (s Session) roller(ctx context.Context) (roller, error) {
	seed := s.Seed

	if seed == 0 {
		var err error

		seed, err = lang.NewSeed()
		if err != nil {
			return roller{}, err
		}
	}

	log.DebugContext(ctx, "session",
		slog.Int64("seed", seed),
		slog.Int("vars", len(s.Vars)),
	)

	return roller{
		base: []lang.Option{
			lang.WithVars(s.Vars),
			lang.WithLogger(log.Default()),
		},
		seed: seed,
	}, nil
}

type outputKey struct{}

// WithOutput returns a new context.Context whose commands write results to w
// instead of standard output.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

type inputKey struct{}

// WithInput returns a new context.Context whose commands read standard input
// from r.
func WithInput(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, inputKey{}, r)
}

func inputFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(inputKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// sourceFiles is the concatenation of batch inputs. Files are read in the
// order given; stdin, if requested, is read last.
type sourceFiles struct {
	files []*os.File
	stdin io.Reader
}

// Reader returns a reader over every source in order.
func (s *sourceFiles) Reader() io.Reader {
	readers := make([]io.Reader, 0, len(s.files)+1)

	for _, f := range s.files {
		readers = append(readers, f)
	}

	if s.stdin != nil {
		readers = append(readers, s.stdin)
	}

	return io.MultiReader(readers...)
}

// Close closes every opened file.
func (s *sourceFiles) Close() error {
	var first error

	for _, f := range s.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

// openSourceFiles opens the named sources, reading stdin for "-" or when no
// sources are given.
//
// Duplicates are dropped by resolving symlinks and comparing device/inode
// pairs. All occurrences of "-" are replaced with a single stdin reader
// placed last so it reads after all regular files.
func openSourceFiles(ctx context.Context, sources []string) (*sourceFiles, error) {
	stdin := inputFrom(ctx)

	if len(sources) == 0 {
		return &sourceFiles{stdin: stdin}, nil
	}

	var srcs sourceFiles

	seen := make(map[fileKey]struct{})

	for _, src := range sources {
		if src == stdinSource {
			srcs.stdin = stdin

			continue
		}

		file, err := openUniqueFile(src, seen)
		if err != nil {
			_ = srcs.Close()

			return nil, ErrReadSource.With(slog.String("file", src)).Wrap(err)
		}

		if file != nil {
			srcs.files = append(srcs.files, file)
		}
	}

	return &srcs, nil
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It returns a nil file and no error for duplicates.
func openUniqueFile(path string, seen map[fileKey]struct{}) (*os.File, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, err
	}

	if key, ok := makeFileKey(info); ok {
		if _, exists := seen[key]; exists {
			return nil, nil
		}

		seen[key] = struct{}{}
	}

	return os.Open(resolved)
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
