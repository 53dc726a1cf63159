package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/roll/lang"
)

// Ops prints the operations an expression compiles to, without rolling.
type Ops struct {
	Format string   `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"o"`
	Expr   []string `arg:""         help:"Dice expressions to compile"                   name:"expr"`
}

// program is the serialized shape of a compiled expression.
type program struct {
	Source string       `json:"source"        yaml:"source"`
	Error  string       `json:"error,omitempty" yaml:"error,omitempty"`
	Ops    lang.Program `json:"ops"           yaml:"ops"`
}

// Run executes the ops command.
func (o *Ops) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	w := outputFrom(ctx)
	failed := 0
	docs := make([]program, 0, len(o.Expr))

	for _, src := range o.Expr {
		doc := program{Source: src}

		prog, cerr := lang.Compile(src)
		if cerr != nil {
			failed++
			doc.Error = cerr.Error()
		}

		doc.Ops = prog

		docs = append(docs, doc)
	}

	switch o.Format {
	case "json":
		err = json.NewEncoder(w).Encode(docs)

	case "yaml":
		var data []byte

		data, err = yaml.MarshalContext(ctx, docs)
		if err == nil {
			_, err = w.Write(data)
		}

	default:
		for _, doc := range docs {
			if doc.Error != "" {
				_, err = fmt.Fprintf(w, "%s\n  error: %s\n", doc.Source, doc.Error)
			} else {
				_, err = fmt.Fprintf(w, "%s\n  %s\n", doc.Source, doc.Ops)
			}

			if err != nil {
				break
			}
		}
	}

	if err != nil {
		return ErrWriteOutput.With(slog.String("format", o.Format)).Wrap(err)
	}

	if failed > 0 {
		return ErrCompile.With(
			slog.String("command", "ops"),
			slog.Int("failed", failed),
			slog.Int("total", len(o.Expr)),
		)
	}

	return nil
}
