package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/roll/log"
	"github.com/ardnew/roll/pkg"
	"github.com/ardnew/roll/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a configuration file with current flag values.
type Init struct {
	Path  string `default:"${config}" help:"Configuration file to write" type:"path"`
	Force bool   `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(i.Path)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", i.Path)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.MarshalContext(ctx, flagValues(ktx),
		yaml.Indent(defaultConfigIndent),
	)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", i.Path)).
			Wrap(err)
	}

	err = os.MkdirAll(filepath.Dir(i.Path), pkg.DirMode)
	if err == nil {
		err = os.WriteFile(i.Path, data, 0o600)
	}

	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", i.Path)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", i.Path),
	)

	return nil
}

// flagValues maps the name of every configurable top-level flag to its
// current value. Help, version and profiling flags are skipped, as are
// empty strings and lists.
func flagValues(ktx *kong.Context) yaml.MapSlice {
	prefixIgnore := []string{"help", "version", profile.Tag}

	var values yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		switch v := ktx.FlagValue(flag).(type) {
		case nil:
			continue

		case string:
			if v == "" {
				continue
			}

			values = append(values, yaml.MapItem{Key: flag.Name, Value: v})

		case []string:
			if len(v) == 0 {
				continue
			}

			values = append(values, yaml.MapItem{Key: flag.Name, Value: v})

		default:
			values = append(values, yaml.MapItem{Key: flag.Name, Value: v})
		}
	}

	return values
}
