package lang

import (
	"log/slog"
	"slices"
)

// fudge holds the faces of a fudge die.
var fudge = List(Num(-1), Num(0), Num(1))

// step executes a single instruction.
func (c *Context) step(op Op) error {
	switch op.Code {
	case OpNum:
		c.Push(Num(op.N))

	case OpWord:
		c.Push(Word(op.Word))

	case OpList:
		elems, err := c.TopN(op.N)
		if err != nil {
			return err
		}

		c.Push(listOf(elems))

	case OpVar:
		name, err := c.TryPop()
		if err != nil {
			return err
		}

		return c.PushVar(name.String())

	case OpAdd:
		return c.arith(addInt)

	case OpSub:
		return c.arith(subInt)

	case OpNeg:
		a, err := c.popInt()
		if err != nil {
			return err
		}

		n, err := negInt(a)
		if err != nil {
			return err
		}

		c.Push(Num(n))

	case OpSum:
		a, err := c.popInt()
		if err != nil {
			return err
		}

		c.Push(Num(a))

	case OpDice:
		return c.dice()

	case OpRange:
		b, err := c.popInt()
		if err != nil {
			return err
		}

		a, err := c.popInt()
		if err != nil {
			return err
		}

		c.Push(Range(a, b))

	case OpLabel:
		v, err := c.TryPop()
		if err != nil {
			return err
		}

		name, err := c.TryPop()
		if err != nil {
			return err
		}

		c.AddLabel(name.String(), v)
		c.Push(v)

	case OpHighest:
		return c.pushLast(Value.Highest)

	case OpLowest:
		return c.pushLast(Value.Lowest)

	case OpPrevious:
		return c.pushLast(func(v Value) (Value, error) { return v, nil })

	case OpFudge:
		c.Push(fudge)

	case OpEqual:
		return c.filter(func(n int) bool { return n == 0 })

	case OpLess:
		return c.filter(func(n int) bool { return n < 0 })

	case OpGreater:
		return c.filter(func(n int) bool { return n > 0 })

	case OpAppend:
		b, err := c.TryPop()
		if err != nil {
			return err
		}

		a, err := c.TryPop()
		if err != nil {
			return err
		}

		c.Push(listOf(append(a.Elements(), b.Elements()...)))

	case OpCount:
		a, err := c.TryPop()
		if err != nil {
			return err
		}

		c.Push(Num(len(a.Flatten())))

	case OpReplace:
		b, err := c.TryPop()
		if err != nil {
			return err
		}

		if _, err := c.TryPop(); err != nil {
			return err
		}

		c.Push(b)

	case OpAs:
		name, err := c.TryPop()
		if err != nil {
			return err
		}

		v, err := c.TryPop()
		if err != nil {
			return err
		}

		c.Bind(name.String(), v)
		c.Push(v)

	case OpPush:
		// Both operands stay on the stack.

	case OpPop:
		_, err := c.TryPop()

		return err

	case OpHighestN:
		return c.keep(func(a, b Value) int { return Compare(b, a) })

	case OpLowestN:
		return c.keep(Compare)

	default:
		return ErrState.Wrapf("unknown instruction %s", op)
	}

	return nil
}

func (c *Context) popInt() (int, error) {
	v, err := c.TryPop()
	if err != nil {
		return 0, err
	}

	return v.AsInt()
}

func (c *Context) arith(fn func(a, b int) (int, error)) error {
	b, err := c.popInt()
	if err != nil {
		return err
	}

	a, err := c.popInt()
	if err != nil {
		return err
	}

	n, err := fn(a, b)
	if err != nil {
		return err
	}

	c.Push(Num(n))

	return nil
}

func (c *Context) dice() error {
	die, err := c.TryPop()
	if err != nil {
		return err
	}

	n, err := c.popInt()
	if err != nil {
		return err
	}

	switch {
	case n < 0:
		return ErrValue.Wrapf("negative dice count %d", n)
	case n > maxDice:
		return ErrValue.Wrapf("too many dice: %d", n)
	}

	rolled, err := die.RollN(c.rng, n)
	if err != nil {
		return err
	}

	c.logger.Trace("roll",
		slog.String("die", die.String()),
		slog.Int("count", n),
		slog.String("result", rolled.String()),
	)
	c.PushRoll(rolled)

	return nil
}

func (c *Context) pushLast(fn func(Value) (Value, error)) error {
	last, err := c.LastRoll()
	if err != nil {
		return err
	}

	v, err := fn(last)
	if err != nil {
		return err
	}

	c.Push(v)

	return nil
}

// filter pops b then a and pushes the parts of a whose comparison with b
// satisfies keep.
func (c *Context) filter(keep func(int) bool) error {
	b, err := c.TryPop()
	if err != nil {
		return err
	}

	a, err := c.TryPop()
	if err != nil {
		return err
	}

	c.Push(a.Filter(func(v Value) bool { return keep(Compare(v, b)) }))

	return nil
}

// keep pops a count then a pool, and pushes the first count numbers of the
// flattened pool under order, preserving their original relative order.
func (c *Context) keep(order func(a, b Value) int) error {
	n, err := c.popInt()
	if err != nil {
		return err
	}

	pool, err := c.TryPop()
	if err != nil {
		return err
	}

	if n < 0 {
		return ErrValue.Wrapf("negative keep count %d", n)
	}

	elems := pool.Flatten()

	idx := make([]int, 0, len(elems))
	for i, e := range elems {
		if e.Kind() == KindNum {
			idx = append(idx, i)
		}
	}

	slices.SortStableFunc(idx, func(i, j int) int {
		return order(elems[i], elems[j])
	})

	idx = idx[:min(n, len(idx))]
	slices.Sort(idx)

	kept := make([]Value, len(idx))
	for i, at := range idx {
		kept[i] = elems[at]
	}

	c.Push(listOf(kept))

	return nil
}
