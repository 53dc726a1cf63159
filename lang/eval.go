package lang

import (
	"context"
	"log/slog"
)

// Evaluate compiles and executes source in a fresh [Context] configured by
// opts. It returns the final value and the trace of rolls and labels.
//
// On failure the returned Trace still reflects everything recorded before the
// failing instruction.
func Evaluate(
	ctx context.Context,
	source string,
	opts ...Option,
) (Value, Trace, error) {
	c := NewContext(opts...)

	prog, err := compile(ctx, c.logger, source)
	if err != nil {
		return Value{}, Trace{}, err
	}

	v, err := c.Execute(ctx, prog)
	trace := c.Trace()

	if err != nil {
		return Value{}, trace, err
	}

	c.logger.DebugContext(ctx, "evaluated",
		slog.String("source", source),
		slog.String("result", v.String()),
		slog.Int("rolls", len(trace.Rolls)),
		slog.Int("labels", len(trace.Labels)),
	)

	return v, trace, nil
}
