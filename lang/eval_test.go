package lang

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func evaluate(t *testing.T, source string, opts ...Option) (Value, Trace, error) {
	t.Helper()

	opts = append([]Option{WithRand(NewRand(42))}, opts...)

	return Evaluate(t.Context(), source, opts...)
}

func numbers(t *testing.T, v Value) []int {
	t.Helper()

	var out []int

	for _, e := range v.Flatten() {
		n, ok := e.Int()
		if !ok {
			t.Fatalf("expected only numbers in %s", v)
		}

		out = append(out, n)
	}

	return out
}

func TestEvaluate_Deterministic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  Value
	}{
		{"add", "3+4", Num(7)},
		{"sub", "10-3-2", Num(5)},
		{"precedence", "1+5-2", Num(4)},
		{"negate", "-3+1", Num(-2)},
		{"sum", "+[1,2,3]", Num(6)},
		{"count", "[1,2,3]!", Num(3)},
		{"count_nested", "{[1,2],3}!", Num(3)},
		{"label", "fish:5", Num(5)},
		{"range", "1..6", Range(1, 6)},
		{"word", "orc", Word("orc")},
		{"list", "[1, orc, (2..3)]", List(Num(1), Word("orc"), Range(2, 3))},
		{"select_greater", "[1,2,3,4]>2", List(Num(3), Num(4))},
		{"select_less", "[1,2,3,4]<3", List(Num(1), Num(2))},
		{"select_equal", "[1,2,2,3]==2", List(Num(2), Num(2))},
		{"select_scalar_miss", "5<3", List()},
		{"select_scalar_hit", "5>3", Num(5)},
		{"select_count", "[6,1,5,2]>4!", Num(2)},
		{"append", "[1,2]++3", List(Num(1), Num(2), Num(3))},
		{"append_lists", "[1]++[[2]]", List(Num(1), List(Num(2)))},
		{"keep_highest", "[1,5,3,6]h2", List(Num(5), Num(6))},
		{"keep_highest_order", "[6,1,5]K2", List(Num(6), Num(5))},
		{"keep_lowest", "[1,5,3,6]l2", List(Num(1), Num(3))},
		{"keep_lowest_k", "[4,2,9]k1", List(Num(2))},
		{"keep_ties_stable", "[4,4,1]h1", List(Num(4))},
		{"keep_more_than_pool", "[3,1]h5", List(Num(3), Num(1))},
		{"keep_skips_words", "[a,3,b,1]h1", List(Num(3))},
		{"fudge", "F", List(Num(-1), Num(0), Num(1))},
		{"replace", "3 4", Num(4)},
		{"bind_and_use", "5 as x $x+1", Num(6)},
		{"push_pop", "1 push 2 pop", Num(1)},
		{"push_keeps_top", "1 push 2", Num(2)},
		{"single_face", "3d1", List(Num(1), Num(1), Num(1))},
		{"zero_dice", "0d6", List()},
		{"dice_count_from_list", "[1,1]d1", List(Num(1), Num(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, _, err := evaluate(t, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !Equal(got, tt.want) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestEvaluate_NoRolls(t *testing.T) {
	t.Parallel()

	got, trace, err := evaluate(t, "3+4")
	if err != nil {
		t.Fatal(err)
	}

	if !Equal(got, Num(7)) {
		t.Errorf("expected 7, got %s", got)
	}

	if len(trace.Rolls) != 0 {
		t.Errorf("expected no rolls, got %v", trace.Rolls)
	}
}

func TestEvaluate_DicePool(t *testing.T) {
	t.Parallel()

	got, trace, err := evaluate(t, "3d6")
	if err != nil {
		t.Fatal(err)
	}

	if got.Kind() != KindList || got.Len() != 3 {
		t.Fatalf("expected a list of 3, got %s", got)
	}

	for _, n := range numbers(t, got) {
		if n < 1 || n > 6 {
			t.Errorf("rolled %d outside [1, 6]", n)
		}
	}

	if len(trace.Rolls) != 1 || !Equal(trace.Rolls[0], got) {
		t.Errorf("expected one recorded roll equal to the result, got %v", trace.Rolls)
	}
}

func TestEvaluate_DiceBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		lo, hi int
		count  int
	}{
		{"50d10", 0, 9, 50},
		{"50d20", 1, 20, 50},
		{"50d(3..7)", 3, 6, 50},
		{"50dF", -1, 1, 50},
		{"d6", 1, 6, 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, _, err := evaluate(t, tt.input)
			if err != nil {
				t.Fatal(err)
			}

			ns := numbers(t, got)
			if len(ns) != tt.count {
				t.Fatalf("expected %d dice, got %d", tt.count, len(ns))
			}

			for _, n := range ns {
				if n < tt.lo || n > tt.hi {
					t.Errorf("rolled %d outside [%d, %d]", n, tt.lo, tt.hi)
				}
			}
		})
	}
}

func TestEvaluate_SameSeedSameResult(t *testing.T) {
	t.Parallel()

	a, _, err := Evaluate(t.Context(), "10d20+3d6", WithRand(NewRand(99)))
	if err != nil {
		t.Fatal(err)
	}

	b, _, err := Evaluate(t.Context(), "10d20+3d6", WithRand(NewRand(99)))
	if err != nil {
		t.Fatal(err)
	}

	if !Equal(a, b) {
		t.Errorf("expected equal results for equal seeds, got %s and %s", a, b)
	}
}

func TestEvaluate_Vars(t *testing.T) {
	t.Parallel()

	_, _, err := evaluate(t, "$x")
	if !errors.Is(err, ErrName) {
		t.Fatalf("expected ErrName for unbound variable, got %v", err)
	}

	got, _, err := evaluate(t, "$x", WithVar("x", Num(5)))
	if err != nil {
		t.Fatal(err)
	}

	if !Equal(got, Num(5)) {
		t.Errorf("expected 5, got %s", got)
	}

	got, _, err = evaluate(t, "$hp+$bonus", WithVars(map[string]Value{
		"hp":    Num(10),
		"bonus": Num(2),
	}))
	if err != nil {
		t.Fatal(err)
	}

	if !Equal(got, Num(12)) {
		t.Errorf("expected 12, got %s", got)
	}
}

func TestEvaluate_Labels(t *testing.T) {
	t.Parallel()

	got, trace, err := evaluate(t, "fish:5")
	if err != nil {
		t.Fatal(err)
	}

	if !Equal(got, Num(5)) {
		t.Errorf("expected 5, got %s", got)
	}

	want := []Label{{Name: "fish", Value: Num(5)}}
	if !slices.EqualFunc(trace.Labels, want, func(a, b Label) bool {
		return a.Name == b.Name && Equal(a.Value, b.Value)
	}) {
		t.Errorf("expected labels %v, got %v", want, trace.Labels)
	}

	_, trace, err = evaluate(t, "[(hit:1d20), (dmg:2d6), (hit:3)]")
	if err != nil {
		t.Fatal(err)
	}

	names := make([]string, len(trace.Labels))
	for i, l := range trace.Labels {
		names[i] = l.Name
	}

	if !slices.Equal(names, []string{"hit", "dmg", "hit"}) {
		t.Errorf("expected repeated labels in order, got %v", names)
	}
}

func TestEvaluate_HighestOfRoll(t *testing.T) {
	t.Parallel()

	got, trace, err := evaluate(t, "4d6H")
	if err != nil {
		t.Fatal(err)
	}

	if len(trace.Rolls) != 1 {
		t.Fatalf("expected one roll, got %v", trace.Rolls)
	}

	want, err := trace.Rolls[0].Highest()
	if err != nil {
		t.Fatal(err)
	}

	if !Equal(got, want) {
		t.Errorf("expected %s, got %s", want, got)
	}

	got, trace, err = evaluate(t, "4d6L")
	if err != nil {
		t.Fatal(err)
	}

	want, _ = trace.Rolls[0].Lowest()
	if !Equal(got, want) {
		t.Errorf("expected %s, got %s", want, got)
	}

	got, trace, err = evaluate(t, "2d8 P")
	if err != nil {
		t.Fatal(err)
	}

	if !Equal(got, trace.Rolls[0]) {
		t.Errorf("expected previous roll %s, got %s", trace.Rolls[0], got)
	}
}

func TestEvaluate_KeepHighestOfPool(t *testing.T) {
	t.Parallel()

	got, trace, err := evaluate(t, "4d6h3")
	if err != nil {
		t.Fatal(err)
	}

	kept := numbers(t, got)
	pool := numbers(t, trace.Rolls[0])

	if len(kept) != 3 {
		t.Fatalf("expected 3 dice kept, got %v", kept)
	}

	slices.Sort(kept)
	slices.Sort(pool)

	if !slices.Equal(kept, pool[1:]) {
		t.Errorf("expected the 3 highest of %v, got %v", pool, kept)
	}
}

func TestEvaluate_PushPop(t *testing.T) {
	t.Parallel()

	got, trace, err := evaluate(t, "3d6 push 2d4 pop")
	if err != nil {
		t.Fatal(err)
	}

	if len(trace.Rolls) != 2 {
		t.Fatalf("expected two rolls, got %v", trace.Rolls)
	}

	if !Equal(got, trace.Rolls[0]) {
		t.Errorf("expected the 3d6 pool %s, got %s", trace.Rolls[0], got)
	}
}

func TestEvaluate_ReplaceKeepsRolls(t *testing.T) {
	t.Parallel()

	got, trace, err := evaluate(t, "2d10H")
	if err != nil {
		t.Fatal(err)
	}

	if got.Kind() != KindNum {
		t.Errorf("expected a number, got %s", got)
	}

	if len(trace.Rolls) != 1 || trace.Rolls[0].Len() != 2 {
		t.Errorf("expected the 2d10 roll in the trace, got %v", trace.Rolls)
	}

	if len(trace.Stack) != 0 {
		t.Errorf("expected an empty stack, got %v", trace.Stack)
	}
}

func TestEvaluate_LeftoverStack(t *testing.T) {
	t.Parallel()

	got, trace, err := evaluate(t, "1 push 2")
	if err != nil {
		t.Fatal(err)
	}

	if !Equal(got, Num(2)) {
		t.Errorf("expected 2, got %s", got)
	}

	if len(trace.Stack) != 1 || !Equal(trace.Stack[0], Num(1)) {
		t.Errorf("expected [1] left on the stack, got %v", trace.Stack)
	}
}

func TestEvaluate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
		msg     string
	}{
		{"parse", "(", ErrParse, "expected value"},
		{"lex", "3 @", ErrLex, "unexpected character"},
		{"word_arithmetic", `"a"+1`, ErrType, "cannot use word as number"},
		{"range_arithmetic", "1..3+1", ErrType, "cannot use range as number"},
		{"unbound", "$nope", ErrName, "variable not found"},
		{"no_previous", "P", ErrState, "no previous roll"},
		{"no_highest", "H", ErrState, "no previous roll"},
		{"negative_count", "(-1)d6", ErrValue, "negative dice count"},
		{"zero_faces", "1d0", ErrValue, "faces"},
		{"empty_range", "1d(3..3)", ErrValue, "empty range"},
		{"too_many", "100000d6", ErrValue, "too many dice"},
		{"pop_empty", "3 pop", ErrStack, "nothing on stack"},
		{"keep_negative", "[1,2]h(-1)", ErrValue, "negative keep count"},
		{"add_overflow", "9223372036854775807+1", ErrValue, "integer overflow"},
		{"sub_overflow", "0-9223372036854775807-2", ErrValue, "integer overflow"},
		{"neg_overflow", "-(0-9223372036854775807-1)", ErrValue, "integer overflow"},
		{"sum_overflow", "+[9223372036854775807, 1]", ErrValue, "integer overflow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := evaluate(t, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("expected error containing %q, got %q", tt.msg, err)
			}
		})
	}
}

func TestEvaluate_ErrorKeepsPartialTrace(t *testing.T) {
	t.Parallel()

	_, trace, err := evaluate(t, `fish:3d6+"x"`)
	if !errors.Is(err, ErrType) {
		t.Fatalf("expected ErrType, got %v", err)
	}

	if len(trace.Rolls) != 1 {
		t.Errorf("expected the 3d6 roll to survive the failure, got %v", trace.Rolls)
	}
}

func TestContext_Primitives(t *testing.T) {
	t.Parallel()

	c := NewContext(WithRand(NewRand(1)))

	if _, ok := c.Pop(); ok {
		t.Error("expected Pop on an empty stack to fail")
	}

	if _, err := c.TryTop(); !errors.Is(err, ErrStack) {
		t.Errorf("expected ErrStack, got %v", err)
	}

	c.Push(Num(1))
	c.Push(Num(2))
	c.Push(Num(3))

	top, err := c.TryTop()
	if err != nil || !Equal(top, Num(3)) {
		t.Errorf("expected top 3, got %s (%v)", top, err)
	}

	if _, err := c.TopN(4); !errors.Is(err, ErrStack) {
		t.Errorf("expected ErrStack for TopN beyond depth, got %v", err)
	}

	two, err := c.TopN(2)
	if err != nil {
		t.Fatal(err)
	}

	if !slices.EqualFunc(two, []Value{Num(2), Num(3)}, Equal) {
		t.Errorf("expected [2 3] in stack order, got %v", two)
	}

	if c.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", c.Depth())
	}

	if _, err := c.LastRoll(); !errors.Is(err, ErrState) {
		t.Errorf("expected ErrState, got %v", err)
	}

	c.PushRoll(Num(6))

	last, err := c.LastRoll()
	if err != nil || !Equal(last, Num(6)) {
		t.Errorf("expected last roll 6, got %s (%v)", last, err)
	}

	if c.Depth() != 2 {
		t.Errorf("expected PushRoll to push, depth %d", c.Depth())
	}

	c.Bind("x", Word("y"))

	if err := c.PushVar("x"); err != nil {
		t.Fatal(err)
	}

	if err := c.PushVar("nope"); !errors.Is(err, ErrName) {
		t.Errorf("expected ErrName, got %v", err)
	}
}

func TestContext_Step_HandlesEveryOpCode(t *testing.T) {
	t.Parallel()

	for code := range opCodeCount {
		c := NewContext(WithRand(NewRand(1)), WithVar("1", Num(1)))
		c.PushRoll(List(Num(1), Num(2)))

		for range 3 {
			c.Push(Num(1))
		}

		err := c.step(Op{Code: code, N: 1, Word: "w"})
		if err != nil && strings.Contains(err.Error(), "unknown instruction") {
			t.Errorf("%s is not handled", code)
		}
	}

	c := NewContext(WithRand(NewRand(1)))
	if err := c.step(Op{Code: opCodeCount}); !errors.Is(err, ErrState) {
		t.Errorf("expected ErrState for an unknown op code, got %v", err)
	}
}
