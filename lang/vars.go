package lang

import (
	"log/slog"
	"maps"
	"math"
	"reflect"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
)

// ParseVar splits a "name=expression" definition and evaluates the
// expression with [EvalVar].
func ParseVar(def string) (string, Value, error) {
	name, src, ok := strings.Cut(def, "=")
	name = strings.TrimSpace(name)

	if !ok || name == "" {
		return "", Value{}, ErrVarExpr.Wrapf("expected name=expression, got %q", def)
	}

	v, err := EvalVar(src)
	if err != nil {
		return "", Value{}, WrapError(err).With(slog.String("name", name))
	}

	return name, v, nil
}

// ParseVars evaluates every definition with [ParseVar]. Later definitions of
// the same name win.
func ParseVars(defs []string) (map[string]Value, error) {
	vars := make(map[string]Value, len(defs))

	for _, def := range defs {
		name, v, err := ParseVar(def)
		if err != nil {
			return nil, err
		}

		vars[name] = v
	}

	return vars, nil
}

// EvalVars evaluates each expression of a name to expression mapping.
func EvalVars(defs map[string]string) (map[string]Value, error) {
	vars := make(map[string]Value, len(defs))

	for _, name := range slices.Sorted(maps.Keys(defs)) {
		v, err := EvalVar(defs[name])
		if err != nil {
			return nil, WrapError(err).With(slog.String("name", name))
		}

		vars[name] = v
	}

	return vars, nil
}

// EvalVar evaluates src as an expr-lang expression and converts the result
// with [FromNative]. For example "2*3" binds Num(6), "'orc'" binds
// Word(orc), and "1..3" binds [1, 2, 3].
func EvalVar(src string) (Value, error) {
	out, err := expr.Eval(src, nil)
	if err != nil {
		return Value{}, ErrVarExpr.
			With(slog.String("expr", src)).
			Wrap(err)
	}

	v, err := FromNative(out)
	if err != nil {
		return Value{}, WrapError(err).With(slog.String("expr", src))
	}

	return v, nil
}

// FromNative converts plain Go data to a [Value]. Integers and integral
// floats become numbers, strings become words, booleans become 1 or 0, and
// slices or arrays become lists.
func FromNative(x any) (Value, error) {
	if v, ok := x.(Value); ok {
		return v, nil
	}

	if x == nil {
		return Value{}, ErrVarExpr.Wrapf("nil has no value")
	}

	rv := reflect.ValueOf(x)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Num(int(rv.Int())), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt {
			return Value{}, ErrVarExpr.Wrapf("number out of range: %d", u)
		}

		return Num(int(u)), nil

	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || f < math.MinInt || f > math.MaxInt {
			return Value{}, ErrVarExpr.Wrapf("not an integer: %v", f)
		}

		return Num(int(f)), nil

	case reflect.String:
		return Word(rv.String()), nil

	case reflect.Bool:
		if rv.Bool() {
			return Num(1), nil
		}

		return Num(0), nil

	case reflect.Slice, reflect.Array:
		elems := make([]Value, rv.Len())

		for i := range elems {
			v, err := FromNative(rv.Index(i).Interface())
			if err != nil {
				return Value{}, err
			}

			elems[i] = v
		}

		return listOf(elems), nil

	default:
		return Value{}, ErrVarExpr.Wrapf("unsupported type %T", x)
	}
}
