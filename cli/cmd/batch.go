package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/roll/lang"
	"github.com/ardnew/roll/log"
)

// Batch rolls one expression per line of its input files.
type Batch struct {
	Output `embed:""`

	Source []string `arg:"" help:"Input files, or '-' for stdin (default)" name:"source" optional:""`
}

// Run executes the batch command. A failing line is reported and the batch
// continues; the command fails if any line did.
func (b *Batch) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	rl, err := sessionFrom(ctx).roller(ctx)
	if err != nil {
		return err
	}

	srcs, err := openSourceFiles(ctx, b.Source)
	if err != nil {
		return err
	}
	defer srcs.Close()

	w := outputFrom(ctx)
	total, failed := 0, 0

	for line, err := range lang.ScanLines(srcs.Reader()) {
		if err != nil {
			return ErrReadSource.With(slog.String("command", "batch")).Wrap(err)
		}

		total++

		report := roll(ctx, "batch", line.Text, total, rl.options(total))
		if report.Err != nil {
			failed++

			log.DebugContext(ctx, "batch line failed",
				slog.Int("line", line.Number),
				slog.String("source", line.Text),
			)
		}

		if err := b.write(ctx, w, report); err != nil {
			return err
		}
	}

	log.InfoContext(ctx, "batch complete",
		slog.Int("total", total),
		slog.Int("failed", failed),
	)

	if failed > 0 {
		return ErrRollFailed.With(
			slog.String("command", "batch"),
			slog.Int("failed", failed),
			slog.Int("total", total),
		)
	}

	return nil
}
