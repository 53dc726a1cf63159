package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/roll/lang"
)

// Output selects how roll reports are written.
type Output struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"o"`
	Indent int    `default:"2"                          help:"Indent width for JSON and YAML output (0 for compact)."`
}

// write writes report to w in the selected format.
func (o Output) write(ctx context.Context, w io.Writer, report lang.Report) error {
	var err error

	switch o.Format {
	case "json":
		err = report.FormatJSON(ctx, w, o.Indent)
	case "yaml":
		err = report.FormatYAML(ctx, w, o.Indent)
	default:
		err = report.Format(ctx, w)
	}

	if err != nil {
		return ErrWriteOutput.With(slog.String("format", o.Format)).Wrap(err)
	}

	return nil
}
