package lang

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestValue_Roll_DieBounds(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 20; n++ {
		lo, hi := 1, n
		if n == 10 {
			lo, hi = 0, 9
		}

		rng := NewRand(int64(n))

		for range 500 {
			v, err := Num(n).Roll(rng)
			if err != nil {
				t.Fatalf("d%d: unexpected error: %v", n, err)
			}

			got, ok := v.Int()
			if !ok {
				t.Fatalf("d%d: expected number, got %s", n, v.Kind())
			}

			if got < lo || got > hi {
				t.Fatalf("d%d: rolled %d outside [%d, %d]", n, got, lo, hi)
			}
		}
	}
}

func TestValue_Roll_TenIncludesZero(t *testing.T) {
	t.Parallel()

	rng := NewRand(10)
	seen := make(map[int]bool)

	for range 2000 {
		v, err := Num(10).Roll(rng)
		if err != nil {
			t.Fatal(err)
		}

		n, _ := v.Int()
		seen[n] = true
	}

	if !seen[0] {
		t.Error("expected d10 to roll 0")
	}

	if seen[10] {
		t.Error("expected d10 never to roll 10")
	}
}

func TestValue_Roll_RangeNormalized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		value  Value
		lo, hi int
	}{
		{"ascending", Range(3, 8), 3, 8},
		{"descending", Range(8, 3), 3, 8},
		{"negative", Range(-1, 2), -1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rng := NewRand(7)

			for range 500 {
				v, err := tt.value.Roll(rng)
				if err != nil {
					t.Fatal(err)
				}

				n, _ := v.Int()
				if n < tt.lo || n >= tt.hi {
					t.Fatalf("rolled %d outside [%d, %d)", n, tt.lo, tt.hi)
				}
			}
		})
	}
}

func TestValue_Roll_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value Value
	}{
		{"zero_faces", Num(0)},
		{"negative_faces", Num(-4)},
		{"empty_range", Range(3, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.value.Roll(NewRand(1))
			if !errors.Is(err, ErrValue) {
				t.Errorf("expected ErrValue, got %v", err)
			}
		})
	}
}

func TestValue_Roll_WordAndList(t *testing.T) {
	t.Parallel()

	rng := NewRand(3)

	v, err := Word("orc").Roll(rng)
	if err != nil || !Equal(v, Word("orc")) {
		t.Errorf("expected word to roll to itself, got %s (%v)", v, err)
	}

	v, err = List().Roll(rng)
	if err != nil || !Equal(v, Num(0)) {
		t.Errorf("expected empty list to roll 0, got %s (%v)", v, err)
	}

	faces := List(Word("a"), Word("b"), Word("c"))

	for range 100 {
		v, err := faces.Roll(rng)
		if err != nil {
			t.Fatal(err)
		}

		if !slices.ContainsFunc(faces.Elements(), func(e Value) bool { return Equal(e, v) }) {
			t.Fatalf("rolled %s which is not a face of %s", v, faces)
		}
	}
}

func TestValue_RollN(t *testing.T) {
	t.Parallel()

	rng := NewRand(5)

	one, err := Num(6).RollN(rng, 1)
	if err != nil {
		t.Fatal(err)
	}

	if one.Kind() != KindNum {
		t.Errorf("expected a single roll to be a number, got %s", one.Kind())
	}

	three, err := Num(6).RollN(rng, 3)
	if err != nil {
		t.Fatal(err)
	}

	if three.Kind() != KindList || three.Len() != 3 {
		t.Errorf("expected a list of 3, got %s", three)
	}

	none, err := Num(6).RollN(rng, 0)
	if err != nil {
		t.Fatal(err)
	}

	if none.Kind() != KindList || none.Len() != 0 {
		t.Errorf("expected an empty list, got %s", none)
	}

	if _, err := Num(6).RollN(rng, -1); !errors.Is(err, ErrValue) {
		t.Errorf("expected ErrValue for negative count, got %v", err)
	}
}

func TestValue_AsInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   Value
		want    int
		wantErr error
	}{
		{"num", Num(7), 7, nil},
		{"negative", Num(-3), -3, nil},
		{"list_sum", List(Num(1), Num(2), Num(3)), 6, nil},
		{"nested_list", List(List(Num(1), Num(2)), Num(3)), 6, nil},
		{"empty_list", List(), 0, nil},
		{"word", Word("x"), 0, ErrType},
		{"range", Range(1, 6), 0, ErrType},
		{"list_with_word", List(Num(1), Word("x")), 0, ErrType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.value.AsInt()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestValue_HighestLowest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   Value
		high    Value
		low     Value
		wantErr error
	}{
		{name: "num", value: Num(4), high: Num(4), low: Num(4)},
		{name: "range", value: Range(6, 1), high: Num(6), low: Num(1)},
		{
			name:  "list",
			value: List(Num(3), Num(9), Num(-2)),
			high:  Num(9),
			low:   Num(-2),
		},
		{
			name:  "list_skips_words",
			value: List(Word("a"), Num(5), Word("z"), Num(2)),
			high:  Num(5),
			low:   Num(2),
		},
		{name: "all_words", value: List(Word("a")), wantErr: ErrValue},
		{name: "empty_list", value: List(), wantErr: ErrValue},
		{name: "word", value: Word("a"), wantErr: ErrType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			high, herr := tt.value.Highest()
			low, lerr := tt.value.Lowest()

			if tt.wantErr != nil {
				if !errors.Is(herr, tt.wantErr) || !errors.Is(lerr, tt.wantErr) {
					t.Errorf("expected %v, got %v and %v", tt.wantErr, herr, lerr)
				}

				return
			}

			if herr != nil || lerr != nil {
				t.Fatalf("unexpected errors: %v, %v", herr, lerr)
			}

			if !Equal(high, tt.high) {
				t.Errorf("highest: expected %s, got %s", tt.high, high)
			}

			if !Equal(low, tt.low) {
				t.Errorf("lowest: expected %s, got %s", tt.low, low)
			}
		})
	}
}

func TestValue_Highest_Idempotent(t *testing.T) {
	t.Parallel()

	for n := -50; n <= 50; n++ {
		got, err := Num(n).Highest()
		if err != nil || !Equal(got, Num(n)) {
			t.Fatalf("highest(%d) = %s, %v", n, got, err)
		}

		i, err := Num(n).AsInt()
		if err != nil || i != n {
			t.Fatalf("as_int(%d) = %d, %v", n, i, err)
		}
	}
}

func TestValue_Filter(t *testing.T) {
	t.Parallel()

	greater := func(b int) func(Value) bool {
		return func(v Value) bool { return Compare(v, Num(b)) > 0 }
	}

	got := List(Num(1), Num(5), Num(3), Num(6)).Filter(greater(3))
	if !Equal(got, List(Num(5), Num(6))) {
		t.Errorf("expected [5, 6], got %s", got)
	}

	got = Num(7).Filter(greater(3))
	if !Equal(got, Num(7)) {
		t.Errorf("expected scalar to keep itself, got %s", got)
	}

	got = Num(2).Filter(greater(3))
	if !Equal(got, List()) {
		t.Errorf("expected empty list, got %s", got)
	}
}

func TestValue_Flatten(t *testing.T) {
	t.Parallel()

	got := List(List(Num(1), Num(2)), Num(3)).Flatten()
	want := []Value{Num(1), Num(2), Num(3)}

	if !slices.EqualFunc(got, want, Equal) {
		t.Errorf("expected %v, got %v", want, got)
	}

	deep := List(List(List(Num(1)), List()), List(Num(2), List(Num(3)))).Flatten()
	if !slices.EqualFunc(deep, want, Equal) {
		t.Errorf("expected %v, got %v", want, deep)
	}

	if scalar := Word("x").Flatten(); len(scalar) != 1 || !Equal(scalar[0], Word("x")) {
		t.Errorf("expected [x], got %v", scalar)
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Value
		want int
	}{
		{"num_less", Num(1), Num(2), -1},
		{"num_equal", Num(2), Num(2), 0},
		{"num_before_word", Num(100), Word("a"), -1},
		{"word_before_range", Word("z"), Range(0, 1), -1},
		{"range_before_list", Range(0, 100), List(), -1},
		{"word_order", Word("b"), Word("a"), 1},
		{"range_expected_value", Range(1, 6), Range(1, 4), 1},
		{"range_order_irrelevant", Range(6, 1), Range(1, 6), 0},
		{"range_tie_low_bound", Range(2, 4), Range(0, 3), 1},
		{"range_wide_bounds", Range(0, math.MaxInt), Range(0, 1), 1},
		{"range_wide_negative", Range(math.MinInt, 0), Range(0, 1), 1},
		{"list_lexicographic", List(Num(1), Num(3)), List(Num(1), Num(4)), -1},
		{"list_prefix", List(Num(1)), List(Num(1), Num(0)), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}

			if got := Compare(tt.b, tt.a); got != -tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.b, tt.a, got, -tt.want)
			}
		})
	}
}

func TestValue_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value Value
		want  string
	}{
		{Num(-3), "-3"},
		{Word("fish"), "fish"},
		{Range(1, 6), "1..6"},
		{List(Num(1), List(Num(2), Word("x"))), "[1, [2, x]]"},
		{List(), "[]"},
		{Value{}, "0"},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestValue_List_CopiesInput(t *testing.T) {
	t.Parallel()

	elems := []Value{Num(1), Num(2)}
	v := List(elems...)
	elems[0] = Num(9)

	if !Equal(v, List(Num(1), Num(2))) {
		t.Errorf("expected list to be unaffected by caller mutation, got %s", v)
	}

	out := v.Elements()
	out[1] = Num(9)

	if !Equal(v, List(Num(1), Num(2))) {
		t.Errorf("expected list to be unaffected by Elements mutation, got %s", v)
	}
}
