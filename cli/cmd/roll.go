package cmd

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ardnew/roll/lang"
	"github.com/ardnew/roll/log"
	"github.com/ardnew/roll/telemetry"
)

// Roll evaluates each expression argument and reports its rolls, labels and
// result.
type Roll struct {
	Output `embed:""`

	Expr   []string `arg:"" help:"Dice expressions, e.g. 3d6 or 4d6h3" name:"expr"`
	Repeat int      `default:"1" help:"Roll every expression N times" placeholder:"N" short:"n"`
}

// Run executes the roll command. Every expression is reported, including
// those that fail; the command fails if any of them did.
func (r *Roll) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	rl, err := sessionFrom(ctx).roller(ctx)
	if err != nil {
		return err
	}

	w := outputFrom(ctx)
	failed := 0
	index := 0

	for range max(r.Repeat, 1) {
		for _, src := range r.Expr {
			index++

			report := roll(ctx, "roll", src, index, rl.options(index))
			if report.Err != nil {
				failed++
			}

			if err := r.write(ctx, w, report); err != nil {
				return err
			}
		}
	}

	if failed > 0 {
		return ErrRollFailed.With(
			slog.String("command", "roll"),
			slog.Int("failed", failed),
			slog.Int("total", index),
		)
	}

	return nil
}

// roll evaluates one expression inside a span named after the command.
func roll(
	ctx context.Context,
	command, src string,
	index int,
	opts []lang.Option,
) lang.Report {
	ctx, span := telemetry.Start(ctx, command,
		attribute.String("roll.source", src),
		attribute.Int("roll.index", index),
	)

	v, trace, err := lang.Evaluate(ctx, src, opts...)
	if err != nil {
		err = lang.WrapError(err).With(
			slog.String("command", command),
			slog.Int("index", index),
		)

		log.DebugContext(ctx, "roll failed", slog.Any("error", err))
	} else {
		span.SetAttributes(
			attribute.String("roll.result", v.String()),
			attribute.Int("roll.dice", len(trace.Rolls)),
		)
	}

	telemetry.End(span, err)

	return lang.Report{
		Source: src,
		Index:  index,
		Result: v,
		Trace:  trace,
		Err:    err,
	}
}
