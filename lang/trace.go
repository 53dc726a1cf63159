package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Trace is the record of one evaluation: every roll in execution order,
// every label, and whatever the program left on the stack beneath its
// result.
type Trace struct {
	Rolls  []Value `json:"rolls"           yaml:"rolls"`
	Labels []Label `json:"labels"          yaml:"labels"`
	Stack  []Value `json:"stack,omitempty" yaml:"stack,omitempty"`
}

// String renders the trace as lines of text.
func (t Trace) String() string {
	var sb strings.Builder

	sb.WriteString("Rolls : ")
	sb.WriteString(joinValues(t.Rolls, " | "))

	if len(t.Stack) > 0 {
		sb.WriteString("\nStack : ")
		sb.WriteString(joinValues(t.Stack, " | "))
	}

	for _, l := range t.Labels {
		sb.WriteByte('\n')
		sb.WriteString(l.String())
	}

	return sb.String()
}

func joinValues(vs []Value, sep string) string {
	part := make([]string, len(vs))
	for i, v := range vs {
		part[i] = v.String()
	}

	return strings.Join(part, sep)
}

// Report pairs a source expression with the outcome of evaluating it.
type Report struct {
	Err    error
	Source string
	Result Value
	Trace  Trace
	Index  int // 1-based position within a run of several expressions
}

// document is the serialized shape of a Report.
type document struct {
	Result *Value  `json:"result,omitempty" yaml:"result,omitempty"`
	Source string  `json:"source"           yaml:"source"`
	Error  string  `json:"error,omitempty"  yaml:"error,omitempty"`
	Rolls  []Value `json:"rolls"            yaml:"rolls"`
	Labels []Label `json:"labels"           yaml:"labels"`
	Stack  []Value `json:"stack,omitempty"  yaml:"stack,omitempty"`
	Index  int     `json:"index,omitempty"  yaml:"index,omitempty"`
}

func (r Report) document() document {
	doc := document{
		Source: r.Source,
		Index:  r.Index,
		Rolls:  r.Trace.Rolls,
		Labels: r.Trace.Labels,
		Stack:  r.Trace.Stack,
	}

	if doc.Rolls == nil {
		doc.Rolls = []Value{}
	}

	if doc.Labels == nil {
		doc.Labels = []Label{}
	}

	if r.Err != nil {
		doc.Error = r.Err.Error()
	} else {
		result := r.Result
		doc.Result = &result
	}

	return doc
}

// Format writes the report as text.
func (r Report) Format(_ context.Context, w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("Roll ")

	if r.Index > 0 {
		sb.WriteString(strconv.Itoa(r.Index))
		sb.WriteByte(' ')
	}

	sb.WriteString(": ")
	sb.WriteString(r.Source)
	sb.WriteByte('\n')
	sb.WriteString(r.Trace.String())
	sb.WriteByte('\n')

	if r.Err != nil {
		sb.WriteString("Error = ")
		sb.WriteString(r.Err.Error())
	} else {
		sb.WriteString("Result = ")
		sb.WriteString(r.Result.String())
	}

	_, err := fmt.Fprintln(w, sb.String())

	return err
}

// FormatJSON writes the report as JSON to the writer.
func (r Report) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(r.document(), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(r.document())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the report as a YAML document to the writer.
func (r Report) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, r.document(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, "---\n", string(yamlData))

	return err
}
