package lang

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/roll/log"
)

// maxDice bounds the number of dice a single D instruction may roll.
const maxDice = 1 << 16

// Label is a named value recorded during evaluation.
type Label struct {
	Name  string `json:"name"  yaml:"name"`
	Value Value  `json:"value" yaml:"value"`
}

func (l Label) String() string { return l.Name + " " + l.Value.String() }

// Context is the stack machine that executes a [Program].
//
// A Context is owned by a single evaluation. Its operand stack, roll history
// and label history only grow by push, pop and append; no recorded Value is
// modified in place.
type Context struct {
	rng    Rand
	vars   map[string]Value
	logger log.Logger
	stack  []Value
	rolls  []Value
	labels []Label
}

// Option configures a [Context].
type Option func(*Context)

// WithRand sets the random source used by every roll.
// If not provided, a source seeded from [NewSeed] is used.
func WithRand(r Rand) Option {
	return func(c *Context) {
		c.rng = r
	}
}

// WithVars adds variable bindings visible to $name lookups.
func WithVars(vars map[string]Value) Option {
	return func(c *Context) {
		maps.Copy(c.vars, vars)
	}
}

// WithVar adds a single variable binding.
func WithVar(name string, v Value) Option {
	return func(c *Context) {
		c.vars[name] = v
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *Context) {
		c.logger = logger
	}
}

// NewContext returns an empty Context configured by opts.
func NewContext(opts ...Option) *Context {
	c := &Context{vars: make(map[string]Value)}

	for _, opt := range opts {
		opt(c)
	}

	if c.rng == nil {
		c.rng = newDefaultRand()
	}

	return c
}

// Push pushes v onto the operand stack.
func (c *Context) Push(v Value) { c.stack = append(c.stack, v) }

// Pop removes and returns the top of the stack, if any.
func (c *Context) Pop() (Value, bool) {
	if len(c.stack) == 0 {
		return Value{}, false
	}

	v := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]

	return v, true
}

// TryPop is Pop that fails on an empty stack.
func (c *Context) TryPop() (Value, error) {
	v, ok := c.Pop()
	if !ok {
		return Value{}, ErrStack.Wrapf("nothing on stack")
	}

	return v, nil
}

// TryTop returns the top of the stack without removing it.
func (c *Context) TryTop() (Value, error) {
	if len(c.stack) == 0 {
		return Value{}, ErrStack.Wrapf("nothing on stack")
	}

	return c.stack[len(c.stack)-1], nil
}

// TopN removes the top k values and returns them in stack order.
func (c *Context) TopN(k int) ([]Value, error) {
	if k < 0 || k > len(c.stack) {
		return nil, ErrStack.
			With(slog.Int("want", k), slog.Int("have", len(c.stack))).
			Wrapf("not enough elements")
	}

	at := len(c.stack) - k
	top := slices.Clone(c.stack[at:])
	c.stack = c.stack[:at]

	return top, nil
}

// Depth returns the number of values on the stack.
func (c *Context) Depth() int { return len(c.stack) }

// PushRoll pushes v and records it in the roll history.
func (c *Context) PushRoll(v Value) {
	c.Push(v)
	c.rolls = append(c.rolls, v)
}

// LastRoll returns the most recent roll.
func (c *Context) LastRoll() (Value, error) {
	if len(c.rolls) == 0 {
		return Value{}, ErrState.Wrapf("no previous roll")
	}

	return c.rolls[len(c.rolls)-1], nil
}

// Var returns the value bound to name.
func (c *Context) Var(name string) (Value, error) {
	v, ok := c.vars[name]
	if !ok {
		return Value{}, ErrName.
			With(slog.String("name", name)).
			Wrapf("variable not found: %s", name)
	}

	return v, nil
}

// PushVar pushes the value bound to name.
func (c *Context) PushVar(name string) error {
	v, err := c.Var(name)
	if err != nil {
		return err
	}

	c.Push(v)

	return nil
}

// Bind binds name to v for later $name lookups.
func (c *Context) Bind(name string, v Value) { c.vars[name] = v }

// AddLabel records a named value. Names may repeat.
func (c *Context) AddLabel(name string, v Value) {
	c.labels = append(c.labels, Label{Name: name, Value: v})
}

// Trace returns a snapshot of the roll and label histories and of any values
// left on the stack.
func (c *Context) Trace() Trace {
	return Trace{
		Rolls:  slices.Clone(c.rolls),
		Labels: slices.Clone(c.labels),
		Stack:  slices.Clone(c.stack),
	}
}

// Execute runs prog and returns the value left on top of the stack.
//
// A failing instruction aborts execution and leaves the Context as it was at
// the point of failure, so its Trace can still be inspected.
func (c *Context) Execute(ctx context.Context, prog Program) (Value, error) {
	for pc, op := range prog {
		c.logger.TraceContext(ctx, "execute",
			slog.Int("pc", pc),
			slog.String("op", op.String()),
			slog.Int("depth", len(c.stack)),
		)

		if err := c.step(op); err != nil {
			return Value{}, WrapError(err).With(
				slog.Int("pc", pc),
				slog.String("op", op.String()),
			)
		}
	}

	return c.TryPop()
}
