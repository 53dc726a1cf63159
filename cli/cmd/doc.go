// Package cmd provides the roll subcommands: roll, ops, batch, repl and
// init.
//
// Commands read their [Session] and output writer from the context built by
// the cli package, so tests can run them against buffers.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path of
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
