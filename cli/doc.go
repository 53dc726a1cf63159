// Package cli contains the command line interface for roll.
//
// # Usage
//
//	roll [flags] <expr> ...            # roll each expression
//	roll ops <expr> ...                # show compiled operations
//	roll batch [file ...]              # one expression per line
//	roll repl                          # interactive session
//	roll init [--force]                # write config.yaml
//
// # Variables and seeding
//
// Variables are bound with --var name=EXPR, where EXPR is an expr-lang
// expression such as 2*3, 'orc' or 1..6. They are referenced in dice
// expressions as $name. --seed fixes the random source so a run can be
// reproduced.
//
// # Environment
//
//   - ROLL_SEED: default seed, overridden by --seed
//   - ROLL_VARS: variable bindings as name=EXPR;name=EXPR, overridden by --var
//   - ROLL_OTEL_ENDPOINT: OTLP/HTTP endpoint that enables tracing
//   - ROLL_OTEL_ENABLED: set false to disable tracing without unsetting the
//     endpoint
//
// # Configuration Files
//
// Flag defaults are read from config.yaml and config.json in the user
// configuration directory (e.g. ~/.config/roll). Keys name flags without
// dashes. Command-line flags override configuration values.
//
//	log:
//	  level: debug
//	seed: 42
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o roll .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/roll/pprof)
package cli
