// Package pkg holds the identity of the roll program: its name, version and
// the directories it keeps state in.
package pkg

import (
	_ "embed"
	"strings"
)

// Version is the semantic version embedded at build time.
//
//go:embed VERSION
var version string

// Version returns the semantic version without surrounding whitespace.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the canonical command identifier. It appears in help text,
	// default config paths and the environment variable prefix.
	Name = "roll"
	// Description is a short summary used in help output.
	Description = "Roll dice written in dice notation"
)

// EnvPrefix returns the prefix of every environment variable read by the
// program, e.g. "ROLL_".
func EnvPrefix() string { return strings.ToUpper(Name) + "_" }
