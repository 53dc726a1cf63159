package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ardnew/roll/cli/cmd/repl"
	"github.com/ardnew/roll/log"
	"github.com/ardnew/roll/pkg"
)

// Repl starts an interactive session.
type Repl struct {
	History   string `default:"${cache}/history" help:"History file"                type:"path"`
	NoHistory bool   `                           help:"Do not read or save history"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	session := sessionFrom(ctx)

	rl, err := session.roller(ctx)
	if err != nil {
		return err
	}

	cfg := repl.Config{
		Options: rl.base,
		Seed:    rl.seed,
		Vars:    session.Vars,
		Logger:  log.Default(),
	}

	if !r.NoHistory {
		if err := os.MkdirAll(filepath.Dir(r.History), pkg.DirMode); err != nil {
			return ErrNoHistory.With(slog.String("file", r.History)).Wrap(err)
		}

		cfg.History = r.History
	}

	return repl.Run(ctx, cfg)
}
