// Package log wraps [log/slog] with functional options, a trace level below
// debug, and colorized text and JSON handlers for terminals.
//
// A [Logger] is built once from options and is safe for concurrent use. The
// zero Logger discards everything, so libraries can accept one without
// requiring callers to configure logging:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("none"))
//	logger.Trace("roll", slog.String("die", "6"), slog.Int("count", 3))
//
// The package-level functions log through a default Logger writing to
// stderr, reconfigured with [Config]:
//
//	log.Config(log.WithLevel(log.LevelDebug))
//	log.Debug("config loaded", slog.String("path", path))
//
// Context-unaware methods use [DefaultContextProvider], which returns
// [context.TODO] by default.
//
// [Level] and [Format] implement [encoding.TextUnmarshaler], so they can be
// decoded directly from flags, environment variables and config files.
package log
