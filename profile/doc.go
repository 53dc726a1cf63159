// Package profile starts optional runtime profiling over
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//	roll --pprof-mode cpu 1000d20
//	go tool pprof -http=: ~/.cache/roll/pprof/cpu.pprof
//
// Without the tag, [Profiler.Start] always returns a no-op and [Modes] is
// empty, so callers never need their own build constraints.
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
