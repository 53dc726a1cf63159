package lang

import (
	"cmp"
	"encoding/json"
	"math"
	"math/big"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies which variant a [Value] holds.
type Kind int

// Kinds are declared in their heterogeneous sort order.
const (
	KindNum   Kind = iota // number
	KindWord              // word
	KindRange             // range
	KindList              // list
)

// Value is the tagged runtime value manipulated by a [Context].
//
// A Value is immutable once constructed. Copying a Value is cheap: a list
// shares its backing array with every copy, which is safe because nothing
// writes to it after construction.
//
// The zero Value is Num(0).
type Value struct {
	list []Value
	word string
	kind Kind
	num  int
	lo   int
	hi   int
}

// Num returns a number value.
func Num(n int) Value { return Value{kind: KindNum, num: n} }

// Word returns a word value.
func Word(s string) Value { return Value{kind: KindWord, word: s} }

// Range returns a range value. The bounds are stored as given; consumers
// normalize them before use.
func Range(lo, hi int) Value { return Value{kind: KindRange, lo: lo, hi: hi} }

// List returns a list value holding a copy of elems.
func List(elems ...Value) Value {
	return Value{kind: KindList, list: slices.Clone(elems)}
}

// listOf wraps elems without copying. Callers must not retain elems.
func listOf(elems []Value) Value {
	if elems == nil {
		elems = []Value{}
	}

	return Value{kind: KindList, list: elems}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// Int returns the number held by v and whether v is a number.
func (v Value) Int() (int, bool) { return v.num, v.kind == KindNum }

// Text returns the text held by v and whether v is a word.
func (v Value) Text() (string, bool) { return v.word, v.kind == KindWord }

// Bounds returns the range bounds of v as constructed, and whether v is a
// range.
func (v Value) Bounds() (lo, hi int, ok bool) {
	return v.lo, v.hi, v.kind == KindRange
}

// Len returns the number of elements of a list, or 1 for any scalar.
func (v Value) Len() int {
	if v.kind == KindList {
		return len(v.list)
	}

	return 1
}

// Elements returns the elements of a list, or a one-element slice holding v
// for any scalar. The returned slice may be modified by the caller.
func (v Value) Elements() []Value {
	if v.kind == KindList {
		return slices.Clone(v.list)
	}

	return []Value{v}
}

// span returns the normalized range bounds.
func (v Value) span() (lo, hi int) {
	return min(v.lo, v.hi), max(v.lo, v.hi)
}

// AsInt collapses v to an integer. Lists sum their elements.
func (v Value) AsInt() (int, error) {
	switch v.kind {
	case KindNum:
		return v.num, nil

	case KindList:
		sum := 0

		for _, e := range v.list {
			n, err := e.AsInt()
			if err != nil {
				return 0, err
			}

			if sum, err = addInt(sum, n); err != nil {
				return 0, err
			}
		}

		return sum, nil

	default:
		return 0, ErrType.Wrapf("cannot use %s as number", v.kind)
	}
}

// Highest returns the largest number in v.
// Non-numeric list elements are skipped.
func (v Value) Highest() (Value, error) {
	return v.extreme("highest", func(a, b int) int { return max(a, b) })
}

// Lowest returns the smallest number in v.
// Non-numeric list elements are skipped.
func (v Value) Lowest() (Value, error) {
	return v.extreme("lowest", func(a, b int) int { return min(a, b) })
}

func (v Value) extreme(name string, pick func(a, b int) int) (Value, error) {
	switch v.kind {
	case KindNum:
		return v, nil

	case KindRange:
		return Num(pick(v.lo, v.hi)), nil

	case KindList:
		var (
			best  int
			found bool
		)

		for _, e := range v.list {
			n, ok := e.Int()
			if !ok {
				continue
			}

			if !found {
				best, found = n, true
			} else {
				best = pick(best, n)
			}
		}

		if !found {
			return Value{}, ErrValue.Wrapf("no numbers in value")
		}

		return Num(best), nil

	default:
		return Value{}, ErrType.Wrapf("cannot take %s of %s", name, v.kind)
	}
}

// Filter selects the parts of v satisfying keep. A list keeps its matching
// elements; a scalar yields itself if it matches, or an empty list.
func (v Value) Filter(keep func(Value) bool) Value {
	if v.kind != KindList {
		if keep(v) {
			return v
		}

		return listOf(nil)
	}

	out := make([]Value, 0, len(v.list))

	for _, e := range v.list {
		if keep(e) {
			out = append(out, e)
		}
	}

	return listOf(out)
}

// Flatten expands nested lists into one sequence in order.
// A scalar flattens to a one-element sequence.
func (v Value) Flatten() []Value {
	if v.kind != KindList {
		return []Value{v}
	}

	out := make([]Value, 0, len(v.list))

	for _, e := range v.list {
		if e.kind == KindList {
			out = append(out, e.Flatten()...)
		} else {
			out = append(out, e)
		}
	}

	return out
}

// Roll draws one outcome of v from r.
//
//   - Num(10) rolls 0 through 9.
//   - Num(n) rolls 1 through n.
//   - Range(a, b) rolls over [min(a,b), max(a,b)).
//   - Word rolls to itself.
//   - List picks one element; an empty list rolls Num(0).
func (v Value) Roll(r Rand) (Value, error) {
	switch v.kind {
	case KindNum:
		switch {
		case v.num == 10:
			return Num(r.IntN(10)), nil
		case v.num < 1:
			return Value{}, ErrValue.Wrapf("cannot roll a die with %d faces", v.num)
		default:
			return Num(r.IntN(v.num) + 1), nil
		}

	case KindWord:
		return v, nil

	case KindRange:
		lo, hi := v.span()
		if lo == hi {
			return Value{}, ErrValue.Wrapf("cannot roll empty range %s", v)
		}

		width := hi - lo
		if width < 0 {
			return Value{}, ErrValue.Wrapf("range too wide: %s", v)
		}

		return Num(lo + r.IntN(width)), nil

	case KindList:
		if len(v.list) == 0 {
			return Num(0), nil
		}

		return v.list[r.IntN(len(v.list))], nil

	default:
		return Value{}, ErrType.Wrapf("cannot roll %s", v.kind)
	}
}

// RollN rolls v count times. A count of one yields the single outcome,
// any other count yields a list of outcomes.
func (v Value) RollN(r Rand, count int) (Value, error) {
	if count < 0 {
		return Value{}, ErrValue.Wrapf("negative dice count %d", count)
	}

	if count == 1 {
		return v.Roll(r)
	}

	out := make([]Value, count)

	for i := range out {
		x, err := v.Roll(r)
		if err != nil {
			return Value{}, err
		}

		out[i] = x
	}

	return listOf(out), nil
}

// Compare orders two values. Values of different kinds order by kind
// (Num < Word < Range < List). Ranges order by 2*max-min, then by their low
// bound. Lists order lexicographically.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		return cmp.Compare(a.kind, b.kind)
	}

	switch a.kind {
	case KindNum:
		return cmp.Compare(a.num, b.num)

	case KindWord:
		return strings.Compare(a.word, b.word)

	case KindRange:
		alo, ahi := a.span()
		blo, bhi := b.span()

		if c := rangeKey(alo, ahi).Cmp(rangeKey(blo, bhi)); c != 0 {
			return c
		}

		return cmp.Compare(alo, blo)

	case KindList:
		return slices.CompareFunc(a.list, b.list, Compare)

	default:
		return 0
	}
}

// Equal reports whether a and b compare equal.
func Equal(a, b Value) bool { return Compare(a, b) == 0 }

// String formats v the way it is displayed in a trace.
func (v Value) String() string {
	var sb strings.Builder

	v.write(&sb)

	return sb.String()
}

func (v Value) write(sb *strings.Builder) {
	switch v.kind {
	case KindNum:
		sb.WriteString(strconv.Itoa(v.num))

	case KindWord:
		sb.WriteString(v.word)

	case KindRange:
		sb.WriteString(strconv.Itoa(v.lo))
		sb.WriteString("..")
		sb.WriteString(strconv.Itoa(v.hi))

	case KindList:
		sb.WriteByte('[')

		for i, e := range v.list {
			if i > 0 {
				sb.WriteString(", ")
			}

			e.write(sb)
		}

		sb.WriteByte(']')
	}
}

// ToNative converts v to plain Go data: int, string, or []any.
// Ranges convert to their display string.
func (v Value) ToNative() any {
	switch v.kind {
	case KindNum:
		return v.num

	case KindWord:
		return v.word

	case KindList:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.ToNative()
		}

		return out

	default:
		return v.String()
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToNative())
}

// MarshalYAML implements the go-yaml InterfaceMarshaler.
func (v Value) MarshalYAML() (any, error) {
	return v.ToNative(), nil
}

// rangeKey is 2*hi-lo, computed without overflow.
func rangeKey(lo, hi int) *big.Int {
	k := big.NewInt(int64(hi))
	k.Lsh(k, 1)

	return k.Sub(k, big.NewInt(int64(lo)))
}

// addInt returns a+b, or an ErrValue if the sum does not fit in an int.
func addInt(a, b int) (int, error) {
	s := a + b
	if (s > a) != (b > 0) {
		return 0, ErrValue.Wrapf("integer overflow: %d + %d", a, b)
	}

	return s, nil
}

// subInt returns a-b, or an ErrValue if the difference does not fit in an int.
func subInt(a, b int) (int, error) {
	d := a - b
	if (d < a) != (b > 0) {
		return 0, ErrValue.Wrapf("integer overflow: %d - %d", a, b)
	}

	return d, nil
}

// negInt returns -a, or an ErrValue for the most negative int.
func negInt(a int) (int, error) {
	if a == math.MinInt {
		return 0, ErrValue.Wrapf("integer overflow: -(%d)", a)
	}

	return -a, nil
}
